package models

type UserRole string
type TicketStatus string
type TicketEventType string

const (
	UserRoleEmployee UserRole = "employee"
	UserRoleEmployer UserRole = "employer"

	TicketStatusPending  TicketStatus = "pending"
	TicketStatusApproved TicketStatus = "approved"
	TicketStatusDenied   TicketStatus = "denied"

	TicketEventCreated  TicketEventType = "created"
	TicketEventUpdated  TicketEventType = "updated"
	TicketEventApproved TicketEventType = "approved"
	TicketEventDenied   TicketEventType = "denied"
	TicketEventDeleted  TicketEventType = "deleted"
)

func (r UserRole) Valid() bool {
	return r == UserRoleEmployee || r == UserRoleEmployer
}

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusPending, TicketStatusApproved, TicketStatusDenied:
		return true
	}
	return false
}
