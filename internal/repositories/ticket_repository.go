package repositories

import (
	"errors"

	"expense_tracker/internal/models"

	"gorm.io/gorm"
)

var ErrTicketNotFound = errors.New("ticket not found")

// TicketScope narrows ticket queries to what a viewer may see.
type TicketScope struct {
	// EmployeeID restricts results to tickets owned by this user.
	EmployeeID string
	// ExcludeSuspendedOwners hides tickets whose owner is suspended.
	ExcludeSuspendedOwners bool
}

type TicketRepository interface {
	Create(db *gorm.DB, ticket *models.Ticket) error
	FindVisible(db *gorm.DB, id string, scope TicketScope) (*models.Ticket, error)
	ListVisible(db *gorm.DB, scope TicketScope) ([]models.Ticket, error)
	Update(db *gorm.DB, ticket *models.Ticket, fields map[string]interface{}) error
	SoftDelete(db *gorm.DB, ticket *models.Ticket) error
}

type TicketRepositoryImpl struct{}

func NewTicketRepository() TicketRepository {
	return &TicketRepositoryImpl{}
}

func (r *TicketRepositoryImpl) Create(db *gorm.DB, ticket *models.Ticket) error {
	return db.Create(ticket).Error
}

func (r *TicketRepositoryImpl) visible(db *gorm.DB, scope TicketScope) *gorm.DB {
	q := db.Model(&models.Ticket{}).
		Preload("Employee").
		Where("tickets.is_soft_deleted = ?", false)

	if scope.EmployeeID != "" {
		q = q.Where("tickets.employee_id = ?", scope.EmployeeID)
	}
	if scope.ExcludeSuspendedOwners {
		q = q.Joins("JOIN users ON users.id = tickets.employee_id").
			Where("users.is_suspended = ?", false)
	}
	return q
}

func (r *TicketRepositoryImpl) FindVisible(db *gorm.DB, id string, scope TicketScope) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.visible(db, scope).Where("tickets.id = ?", id).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// ListVisible returns tickets newest first.
func (r *TicketRepositoryImpl) ListVisible(db *gorm.DB, scope TicketScope) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.visible(db, scope).
		Order("tickets.created_at DESC").
		Find(&tickets).Error
	return tickets, err
}

func (r *TicketRepositoryImpl) Update(db *gorm.DB, ticket *models.Ticket, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return db.Model(ticket).Updates(fields).Error
}

func (r *TicketRepositoryImpl) SoftDelete(db *gorm.DB, ticket *models.Ticket) error {
	result := db.Model(ticket).Update("is_soft_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}
