package models

// decisionTargets maps an employer decision to the status it produces.
var decisionTargets = map[TicketEventType]TicketStatus{
	TicketEventApproved: TicketStatusApproved,
	TicketEventDenied:   TicketStatusDenied,
}

// Decide reports the outcome of applying an employer decision to a ticket in
// status from. changed is false when the ticket already carries the target
// status; ok is false when the ticket was already decided the other way.
func Decide(decision TicketEventType, from TicketStatus) (to TicketStatus, changed bool, ok bool) {
	target, known := decisionTargets[decision]
	if !known {
		return from, false, false
	}
	switch from {
	case target:
		return from, false, true
	case TicketStatusPending:
		return target, true, true
	default:
		return from, false, false
	}
}

// Editable reports whether the owner may still update or delete the ticket.
func (t *Ticket) Editable() bool {
	return t.Status == TicketStatusPending
}
