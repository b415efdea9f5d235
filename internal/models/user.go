package models

type User struct {
	BaseModel
	Email        string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username     string   `gorm:"size:100;not null" json:"username"`
	Role         UserRole `gorm:"type:varchar(20);not null;index" json:"role"`
	PasswordHash string   `gorm:"size:255;not null" json:"-"`
	IsSuspended  bool     `gorm:"default:false;not null" json:"is_suspended"`
}

// UserSummary is the owner snippet embedded in employer ticket listings.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Summary() *UserSummary {
	if u == nil || u.ID == "" {
		return nil
	}
	return &UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}
