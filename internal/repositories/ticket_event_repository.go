package repositories

import (
	"expense_tracker/internal/models"

	"gorm.io/gorm"
)

type TicketEventRepository interface {
	Create(db *gorm.DB, event *models.TicketEvent) error
	ListByTicket(db *gorm.DB, ticketID string) ([]models.TicketEvent, error)
}

type TicketEventRepositoryImpl struct{}

func NewTicketEventRepository() TicketEventRepository {
	return &TicketEventRepositoryImpl{}
}

func (r *TicketEventRepositoryImpl) Create(db *gorm.DB, event *models.TicketEvent) error {
	return db.Create(event).Error
}

// ListByTicket returns the audit trail oldest first.
func (r *TicketEventRepositoryImpl) ListByTicket(db *gorm.DB, ticketID string) ([]models.TicketEvent, error) {
	var events []models.TicketEvent
	err := db.Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}
