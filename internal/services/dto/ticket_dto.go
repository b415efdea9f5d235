package dto

import (
	"encoding/json"
	"time"

	"expense_tracker/internal/models"
)

type CreateTicketRequest struct {
	SpentAt     time.Time `json:"spent_at" validate:"required"`
	Amount      float64   `json:"amount" validate:"gt=0"`
	Currency    string    `json:"currency" validate:"required,max=10,is-currency"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Link        *string   `json:"link,omitempty" validate:"omitempty,url"`
}

// UpdateTicketRequest is a partial update; nil fields are left untouched.
type UpdateTicketRequest struct {
	SpentAt     *time.Time `json:"spent_at,omitempty"`
	Amount      *float64   `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Currency    *string    `json:"currency,omitempty" validate:"omitempty,max=10,is-currency"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Link        *string    `json:"link,omitempty" validate:"omitempty,url"`
}

func (r *UpdateTicketRequest) Empty() bool {
	return r.SpentAt == nil && r.Amount == nil && r.Currency == nil &&
		r.Description == nil && r.Link == nil
}

type TicketResponse struct {
	ID          string              `json:"id"`
	EmployeeID  string              `json:"employee_id"`
	SpentAt     time.Time           `json:"spent_at"`
	Amount      float64             `json:"amount"`
	Currency    string              `json:"currency"`
	Description *string             `json:"description,omitempty"`
	Link        *string             `json:"link,omitempty"`
	Status      models.TicketStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Employee    *models.UserSummary `json:"employee,omitempty"`
}

// NewTicketResponse embeds the owner summary only when withEmployee is set.
func NewTicketResponse(t *models.Ticket, withEmployee bool) TicketResponse {
	resp := TicketResponse{
		ID:          t.ID,
		EmployeeID:  t.EmployeeID,
		SpentAt:     t.SpentAt,
		Amount:      t.Amount,
		Currency:    t.Currency,
		Description: t.Description,
		Link:        t.Link,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if withEmployee {
		resp.Employee = t.Employee.Summary()
	}
	return resp
}

func NewTicketResponses(tickets []models.Ticket, withEmployee bool) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i], withEmployee))
	}
	return out
}

type TicketEventResponse struct {
	ID        string                 `json:"id"`
	TicketID  string                 `json:"ticket_id"`
	ActorID   string                 `json:"actor_id"`
	Type      models.TicketEventType `json:"type"`
	Payload   json.RawMessage        `json:"payload,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

func NewTicketEventResponses(events []models.TicketEvent) []TicketEventResponse {
	out := make([]TicketEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, TicketEventResponse{
			ID:        e.ID,
			TicketID:  e.TicketID,
			ActorID:   e.ActorID,
			Type:      e.Type,
			Payload:   json.RawMessage(e.Payload),
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}
