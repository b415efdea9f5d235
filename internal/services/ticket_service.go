package services

import (
	"encoding/json"
	"errors"
	"strings"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repositories"
	"expense_tracker/internal/services/dto"
	"expense_tracker/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notifier is told about approve/deny decisions once they are committed.
type Notifier interface {
	NotifyTicketDecision(owner *models.User, ticket *models.Ticket)
}

type TicketService interface {
	List(db *gorm.DB, viewer *models.User) ([]dto.TicketResponse, error)
	Get(db *gorm.DB, viewer *models.User, ticketID string) (*dto.TicketResponse, error)
	Create(db *gorm.DB, viewer *models.User, req *dto.CreateTicketRequest) (*dto.TicketResponse, error)
	Update(db *gorm.DB, viewer *models.User, ticketID string, req *dto.UpdateTicketRequest) (*dto.TicketResponse, error)
	Delete(db *gorm.DB, viewer *models.User, ticketID string) (*dto.TicketResponse, error)
	Approve(db *gorm.DB, viewer *models.User, ticketID string) (*dto.TicketResponse, error)
	Deny(db *gorm.DB, viewer *models.User, ticketID string) (*dto.TicketResponse, error)
	Events(db *gorm.DB, viewer *models.User, ticketID string) ([]dto.TicketEventResponse, error)
}

type TicketServiceImpl struct {
	ticketRepo repositories.TicketRepository
	eventRepo  repositories.TicketEventRepository
	notifier   Notifier
}

// NewTicketService accepts a nil notifier.
func NewTicketService(
	ticketRepo repositories.TicketRepository,
	eventRepo repositories.TicketEventRepository,
	notifier Notifier,
) TicketService {
	return &TicketServiceImpl{
		ticketRepo: ticketRepo,
		eventRepo:  eventRepo,
		notifier:   notifier,
	}
}

// scopeFor maps a viewer to the tickets they may see: employees their own,
// employers everything whose owner is not suspended.
func scopeFor(viewer *models.User) repositories.TicketScope {
	if viewer.Role == models.UserRoleEmployer {
		return repositories.TicketScope{ExcludeSuspendedOwners: true}
	}
	return repositories.TicketScope{EmployeeID: viewer.ID}
}

func withEmployee(viewer *models.User) bool {
	return viewer.Role == models.UserRoleEmployer
}

func (s *TicketServiceImpl) List(db *gorm.DB, viewer *models.User) ([]dto.TicketResponse, error) {
	tickets, err := s.ticketRepo.ListVisible(db, scopeFor(viewer))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewTicketResponses(tickets, withEmployee(viewer)), nil
}

func (s *TicketServiceImpl) Get(db *gorm.DB, viewer *models.User, ticketID string) (*dto.TicketResponse, error) {
	ticket, err := s.find(db, viewer, ticketID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTicketResponse(ticket, withEmployee(viewer))
	return &resp, nil
}

func (s *TicketServiceImpl) Create(db *gorm.DB, viewer *models.User, req *dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	if viewer.Role != models.UserRoleEmployee {
		return nil, apperrors.ErrInsufficientPermissions
	}

	ticket := &models.Ticket{
		EmployeeID:  viewer.ID,
		SpentAt:     req.SpentAt,
		Amount:      req.Amount,
		Currency:    strings.ToUpper(strings.TrimSpace(req.Currency)),
		Description: req.Description,
		Link:        req.Link,
		Status:      models.TicketStatusPending,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.ticketRepo.Create(tx, ticket); err != nil {
			return err
		}
		return s.record(tx, ticket.ID, viewer.ID, models.TicketEventCreated, map[string]interface{}{
			"amount":   ticket.Amount,
			"currency": ticket.Currency,
			"spent_at": ticket.SpentAt,
		})
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewTicketResponse(ticket, false)
	return &resp, nil
}

func (s *TicketServiceImpl) Update(db *gorm.DB, viewer *models.User, ticketID string, req *dto.UpdateTicketRequest) (*dto.TicketResponse, error) {
	if viewer.Role != models.UserRoleEmployee {
		return nil, apperrors.ErrInsufficientPermissions
	}

	var ticket *models.Ticket
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		if ticket, err = s.find(tx, viewer, ticketID); err != nil {
			return err
		}
		if !ticket.Editable() {
			return apperrors.ErrTicketNotEditable
		}

		fields := applyUpdate(ticket, req)
		if len(fields) == 0 {
			return nil
		}
		if err := s.ticketRepo.Update(tx, ticket, fields); err != nil {
			return err
		}
		return s.record(tx, ticket.ID, viewer.ID, models.TicketEventUpdated, fields)
	})
	if err != nil {
		return nil, asServiceError(err)
	}

	resp := dto.NewTicketResponse(ticket, false)
	return &resp, nil
}

func (s *TicketServiceImpl) Delete(db *gorm.DB, viewer *models.User, ticketID string) (*dto.TicketResponse, error) {
	if viewer.Role != models.UserRoleEmployee {
		return nil, apperrors.ErrInsufficientPermissions
	}

	var ticket *models.Ticket
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		if ticket, err = s.find(tx, viewer, ticketID); err != nil {
			return err
		}
		if !ticket.Editable() {
			return apperrors.ErrTicketNotDeletable
		}
		if err := s.ticketRepo.SoftDelete(tx, ticket); err != nil {
			return err
		}
		return s.record(tx, ticket.ID, viewer.ID, models.TicketEventDeleted, nil)
	})
	if err != nil {
		return nil, asServiceError(err)
	}

	resp := dto.NewTicketResponse(ticket, false)
	return &resp, nil
}

func (s *TicketServiceImpl) Approve(db *gorm.DB, viewer *models.User, ticketID string) (*dto.TicketResponse, error) {
	return s.decide(db, viewer, ticketID, models.TicketEventApproved)
}

func (s *TicketServiceImpl) Deny(db *gorm.DB, viewer *models.User, ticketID string) (*dto.TicketResponse, error) {
	return s.decide(db, viewer, ticketID, models.TicketEventDenied)
}

// decide applies an employer decision. Repeating the same decision is a
// no-op; reversing a decision is a conflict.
func (s *TicketServiceImpl) decide(db *gorm.DB, viewer *models.User, ticketID string, decision models.TicketEventType) (*dto.TicketResponse, error) {
	if viewer.Role != models.UserRoleEmployer {
		return nil, apperrors.ErrInsufficientPermissions
	}

	var (
		ticket  *models.Ticket
		changed bool
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		if ticket, err = s.find(tx, viewer, ticketID); err != nil {
			return err
		}

		from := ticket.Status
		to, ch, ok := models.Decide(decision, from)
		if !ok {
			if from == models.TicketStatusApproved {
				return apperrors.ErrTicketAlreadyApproved
			}
			return apperrors.ErrTicketAlreadyDenied
		}
		if changed = ch; !changed {
			return nil
		}

		ticket.Status = to
		if err := s.ticketRepo.Update(tx, ticket, map[string]interface{}{"status": to}); err != nil {
			return err
		}
		return s.record(tx, ticket.ID, viewer.ID, decision, map[string]interface{}{
			"from": from,
			"to":   to,
		})
	})
	if err != nil {
		return nil, asServiceError(err)
	}

	if changed && s.notifier != nil {
		s.notifier.NotifyTicketDecision(ticket.Employee, ticket)
	}

	resp := dto.NewTicketResponse(ticket, true)
	return &resp, nil
}

func (s *TicketServiceImpl) Events(db *gorm.DB, viewer *models.User, ticketID string) ([]dto.TicketEventResponse, error) {
	if _, err := s.find(db, viewer, ticketID); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListByTicket(db, ticketID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewTicketEventResponses(events), nil
}

func (s *TicketServiceImpl) find(db *gorm.DB, viewer *models.User, ticketID string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindVisible(db, ticketID, scopeFor(viewer))
	if err != nil {
		if errors.Is(err, repositories.ErrTicketNotFound) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return ticket, nil
}

func (s *TicketServiceImpl) record(db *gorm.DB, ticketID, actorID string, kind models.TicketEventType, payload map[string]interface{}) error {
	event := &models.TicketEvent{
		TicketID: ticketID,
		ActorID:  actorID,
		Type:     kind,
	}
	if len(payload) > 0 {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		event.Payload = datatypes.JSON(raw)
	}
	return s.eventRepo.Create(db, event)
}

// applyUpdate copies the set fields of req onto ticket and returns the
// columns that actually changed.
func applyUpdate(ticket *models.Ticket, req *dto.UpdateTicketRequest) map[string]interface{} {
	fields := make(map[string]interface{})

	if req.SpentAt != nil && !req.SpentAt.Equal(ticket.SpentAt) {
		ticket.SpentAt = *req.SpentAt
		fields["spent_at"] = ticket.SpentAt
	}
	if req.Amount != nil && *req.Amount != ticket.Amount {
		ticket.Amount = *req.Amount
		fields["amount"] = ticket.Amount
	}
	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if currency != ticket.Currency {
			ticket.Currency = currency
			fields["currency"] = currency
		}
	}
	if req.Description != nil {
		ticket.Description = req.Description
		fields["description"] = *req.Description
	}
	if req.Link != nil {
		ticket.Link = req.Link
		fields["link"] = *req.Link
	}
	return fields
}

// asServiceError passes AppErrors through and wraps everything else.
func asServiceError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.InternalError(err)
}
