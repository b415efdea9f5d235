package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Ticket struct {
	BaseModel
	EmployeeID    string       `gorm:"type:varchar(36);not null;index" json:"employee_id"`
	SpentAt       time.Time    `gorm:"not null" json:"spent_at"`
	Amount        float64      `gorm:"not null" json:"amount"`
	Currency      string       `gorm:"size:10;not null" json:"currency"`
	Description   *string      `gorm:"type:text" json:"description,omitempty"`
	Link          *string      `gorm:"type:text" json:"link,omitempty"`
	Status        TicketStatus `gorm:"type:varchar(20);default:'pending';not null;index" json:"status"`
	IsSoftDeleted bool         `gorm:"default:false;not null;index" json:"-"`

	Employee *User `gorm:"foreignKey:EmployeeID" json:"-"`
}

// TicketEvent is one entry of a ticket's audit trail.
type TicketEvent struct {
	ID        string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	TicketID  string          `gorm:"type:varchar(36);not null;index" json:"ticket_id"`
	ActorID   string          `gorm:"type:varchar(36);not null" json:"actor_id"`
	Type      TicketEventType `gorm:"type:varchar(20);not null" json:"type"`
	Payload   datatypes.JSON  `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func (e *TicketEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
