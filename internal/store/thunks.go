package store

import (
	"context"
	"encoding/json"
	"fmt"

	"expense_tracker/internal/client"
	"expense_tracker/internal/logger"
	"expense_tracker/internal/models"
	"expense_tracker/internal/services/dto"
	"expense_tracker/internal/session"
)

// Fallback messages used when an API error carries no message of its own.
const (
	MsgLoginFailed         = "login failed"
	MsgRegisterFailed      = "registration failed"
	MsgInitializeFailed    = "failed to initialize auth"
	MsgFetchTicketsFailed  = "failed to fetch tickets"
	MsgCreateTicketFailed  = "failed to create ticket"
	MsgUpdateTicketFailed  = "failed to update ticket"
	MsgApproveTicketFailed = "failed to approve ticket"
	MsgDenyTicketFailed    = "failed to deny ticket"
	MsgDeleteTicketFailed  = "failed to delete ticket"
	MsgFetchEmployeesFail  = "failed to fetch employees"
	MsgSuspendFailed       = "failed to suspend employee"
	MsgActivateFailed      = "failed to activate employee"
)

// Thunks run API calls and dispatch their pending/fulfilled/rejected actions.
type Thunks struct {
	store   *Store
	api     *client.Client
	storage session.Storage
}

// NewThunks also routes the client's 401 handling into Logout.
func NewThunks(s *Store, api *client.Client, storage session.Storage) *Thunks {
	t := &Thunks{store: s, api: api, storage: storage}
	api.OnUnauthorized(func() {
		logger.Debug("unauthorized response, clearing session")
		t.Logout()
	})
	return t
}

func (t *Thunks) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	t.store.Dispatch(LoginPending{})

	resp, err := t.api.Auth.Login(ctx, dto.LoginRequest{Email: email, Password: password})
	if err == nil {
		err = t.persist(resp.Token, &resp.User)
	}
	if err != nil {
		t.store.Dispatch(LoginRejected{Error: client.MessageOf(err, MsgLoginFailed)})
		return nil, err
	}

	t.store.Dispatch(LoginFulfilled{Response: *resp})
	return resp, nil
}

func (t *Thunks) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	t.store.Dispatch(RegisterPending{})

	resp, err := t.api.Auth.Register(ctx, req)
	if err == nil {
		err = t.persist(resp.Token, &resp.User)
	}
	if err != nil {
		t.store.Dispatch(RegisterRejected{Error: client.MessageOf(err, MsgRegisterFailed)})
		return nil, err
	}

	t.store.Dispatch(RegisterFulfilled{Response: *resp})
	return resp, nil
}

// Logout wipes persisted keys and resets auth, tickets and employees.
func (t *Thunks) Logout() {
	if t.storage != nil {
		if err := t.storage.Clear(); err != nil {
			logger.WithError(err).Warn("failed to clear session storage")
		}
	}
	t.store.Dispatch(LogoutFulfilled{})
}

// InitializeAuth validates a stored token with /auth/me. A 401 or 403 ends
// the session; other failures keep it for a later retry.
func (t *Thunks) InitializeAuth(ctx context.Context) error {
	t.store.Dispatch(InitializePending{})

	token := ""
	if t.storage != nil {
		token, _ = t.storage.Get(session.KeyToken)
	}
	if token == "" {
		t.store.Dispatch(InitializeFulfilled{})
		return nil
	}

	me, err := t.api.Auth.Me(ctx)
	if err != nil {
		if client.IsUnauthorized(err) || client.IsForbidden(err) {
			t.Logout()
		}
		t.store.Dispatch(InitializeRejected{Error: client.MessageOf(err, MsgInitializeFailed)})
		return err
	}

	if err := t.persist(token, me); err != nil {
		t.store.Dispatch(InitializeRejected{Error: client.MessageOf(err, MsgInitializeFailed)})
		return err
	}
	t.store.Dispatch(InitializeFulfilled{Token: token, User: me})
	return nil
}

func (t *Thunks) persist(token string, user *dto.UserResponse) error {
	if t.storage == nil {
		return nil
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding session user: %w", err)
	}
	if err := t.storage.Set(session.KeyToken, token); err != nil {
		return err
	}
	if err := t.storage.Set(session.KeyRole, string(user.Role)); err != nil {
		return err
	}
	return t.storage.Set(session.KeyUser, string(raw))
}

func (t *Thunks) FetchTickets(ctx context.Context) ([]dto.TicketResponse, error) {
	t.store.Dispatch(FetchTicketsPending{})

	tickets, err := t.api.Tickets.List(ctx)
	if err != nil {
		t.store.Dispatch(FetchTicketsRejected{Error: client.MessageOf(err, MsgFetchTicketsFailed)})
		return nil, err
	}
	t.store.Dispatch(FetchTicketsFulfilled{Tickets: tickets})
	return tickets, nil
}

func (t *Thunks) CreateTicket(ctx context.Context, req dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	t.store.Dispatch(CreateTicketPending{})

	ticket, err := t.api.Tickets.Create(ctx, req)
	if err != nil {
		t.store.Dispatch(CreateTicketRejected{Error: client.MessageOf(err, MsgCreateTicketFailed)})
		return nil, err
	}
	t.store.Dispatch(CreateTicketFulfilled{Ticket: *ticket})
	return ticket, nil
}

func (t *Thunks) UpdateTicket(ctx context.Context, id string, req dto.UpdateTicketRequest) (*dto.TicketResponse, error) {
	t.store.Dispatch(UpdateTicketPending{})

	ticket, err := t.api.Tickets.Update(ctx, id, req)
	if err != nil {
		t.store.Dispatch(UpdateTicketRejected{Error: client.MessageOf(err, MsgUpdateTicketFailed)})
		return nil, err
	}
	t.store.Dispatch(UpdateTicketFulfilled{Ticket: *ticket})
	return ticket, nil
}

func (t *Thunks) ApproveTicket(ctx context.Context, id string) (*dto.TicketResponse, error) {
	return t.decide(ctx, id, models.TicketStatusApproved, t.api.Tickets.Approve, MsgApproveTicketFailed)
}

func (t *Thunks) DenyTicket(ctx context.Context, id string) (*dto.TicketResponse, error) {
	return t.decide(ctx, id, models.TicketStatusDenied, t.api.Tickets.Deny, MsgDenyTicketFailed)
}

func (t *Thunks) decide(
	ctx context.Context,
	id string,
	status models.TicketStatus,
	call func(context.Context, string) (*dto.TicketResponse, error),
	fallback string,
) (*dto.TicketResponse, error) {
	t.store.Dispatch(DecideTicketPending{})

	ticket, err := call(ctx, id)
	if err != nil {
		t.store.Dispatch(DecideTicketRejected{Error: client.MessageOf(err, fallback)})
		return nil, err
	}
	t.store.Dispatch(DecideTicketFulfilled{TicketID: id, Status: status, Ticket: ticket})
	return ticket, nil
}

func (t *Thunks) DeleteTicket(ctx context.Context, id string) error {
	t.store.Dispatch(DeleteTicketPending{})

	if err := t.api.Tickets.Delete(ctx, id); err != nil {
		t.store.Dispatch(DeleteTicketRejected{Error: client.MessageOf(err, MsgDeleteTicketFailed)})
		return err
	}
	t.store.Dispatch(DeleteTicketFulfilled{TicketID: id})
	return nil
}

func (t *Thunks) FetchEmployees(ctx context.Context) ([]dto.UserResponse, error) {
	t.store.Dispatch(FetchEmployeesPending{})

	employees, err := t.api.Employees.List(ctx)
	if err != nil {
		t.store.Dispatch(FetchEmployeesRejected{Error: client.MessageOf(err, MsgFetchEmployeesFail)})
		return nil, err
	}
	t.store.Dispatch(FetchEmployeesFulfilled{Employees: employees})
	return employees, nil
}

func (t *Thunks) SuspendEmployee(ctx context.Context, id string) (*dto.UserResponse, error) {
	return t.toggle(ctx, id, true, t.api.Employees.Suspend, MsgSuspendFailed)
}

func (t *Thunks) ActivateEmployee(ctx context.Context, id string) (*dto.UserResponse, error) {
	return t.toggle(ctx, id, false, t.api.Employees.Activate, MsgActivateFailed)
}

func (t *Thunks) toggle(
	ctx context.Context,
	id string,
	suspended bool,
	call func(context.Context, string) (*dto.UserResponse, error),
	fallback string,
) (*dto.UserResponse, error) {
	t.store.Dispatch(ToggleEmployeePending{})

	user, err := call(ctx, id)
	if err != nil {
		t.store.Dispatch(ToggleEmployeeRejected{Error: client.MessageOf(err, fallback)})
		return nil, err
	}
	t.store.Dispatch(ToggleEmployeeFulfilled{EmployeeID: id, Suspended: suspended})
	return user, nil
}

// TicketEvents reads the audit trail of one ticket. Events are not kept in
// the store.
func (t *Thunks) TicketEvents(ctx context.Context, id string) ([]dto.TicketEventResponse, error) {
	return t.api.Tickets.Events(ctx, id)
}
