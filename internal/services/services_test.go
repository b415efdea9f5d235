package services

import (
	"sync"
	"testing"
	"time"

	"expense_tracker/internal/auth"
	"expense_tracker/internal/models"
	"expense_tracker/internal/services/dto"
	"expense_tracker/internal/testutil"
	"expense_tracker/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	mu      sync.Mutex
	notices []models.TicketStatus
}

func (n *recordingNotifier) NotifyTicketDecision(_ *models.User, ticket *models.Ticket) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, ticket.Status)
}

type fixture struct {
	db       *gorm.DB
	svc      *ServiceContainer
	notifier *recordingNotifier
	alice    *models.User
	bob      *models.User
	boss     *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	n := &recordingNotifier{}
	return &fixture{
		db:       db,
		svc:      NewServiceContainer(auth.NewTokenManager("test-secret", time.Hour), n),
		notifier: n,
		alice:    testutil.CreateUser(t, db, "alice", models.UserRoleEmployee),
		bob:      testutil.CreateUser(t, db, "bob", models.UserRoleEmployee),
		boss:     testutil.CreateUser(t, db, "boss", models.UserRoleEmployer),
	}
}

func ptr[T any](v T) *T { return &v }

func TestAuthService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.AuthService.Register(f.db, &dto.RegisterRequest{
		Email: "Carol@Example.com", Password: "secret1", Username: "carol", Role: models.UserRoleEmployee,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "carol@example.com", resp.User.Email)

	_, err = f.svc.AuthService.Register(f.db, &dto.RegisterRequest{
		Email: "carol@example.com", Password: "secret1", Username: "c2", Role: models.UserRoleEmployer,
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	login, err := f.svc.AuthService.Login(f.db, &dto.LoginRequest{Email: "carol@example.com", Password: "secret1"})
	require.NoError(t, err)

	user, err := f.svc.AuthService.Authenticate(f.db, login.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
}

func TestAuthService_LoginFailures(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AuthService.Login(f.db, &dto.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.svc.AuthService.Login(f.db, &dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	testutil.SuspendUser(t, f.db, f.alice)

	// Wrong password on a suspended account still reads as bad credentials.
	_, err = f.svc.AuthService.Login(f.db, &dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.svc.AuthService.Login(f.db, &dto.LoginRequest{Email: "alice@example.com", Password: testutil.DefaultPassword})
	assert.ErrorIs(t, err, apperrors.ErrUserSuspended)
}

func TestAuthService_AuthenticateSuspended(t *testing.T) {
	f := newFixture(t)
	login, err := f.svc.AuthService.Login(f.db, &dto.LoginRequest{Email: "alice@example.com", Password: testutil.DefaultPassword})
	require.NoError(t, err)

	testutil.SuspendUser(t, f.db, f.alice)

	_, err = f.svc.AuthService.Authenticate(f.db, login.Token)
	assert.ErrorIs(t, err, apperrors.ErrUserSuspended)

	_, err = f.svc.AuthService.Authenticate(f.db, "garbage")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTicketService_CreateAndList(t *testing.T) {
	f := newFixture(t)
	ts := f.svc.TicketService

	created, err := ts.Create(f.db, f.alice, &dto.CreateTicketRequest{
		SpentAt: testutil.FixedTime(), Amount: 12.5, Currency: "eur", Description: ptr("taxi"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusPending, created.Status)
	assert.Equal(t, "EUR", created.Currency)
	assert.Nil(t, created.Employee)

	_, err = ts.Create(f.db, f.boss, &dto.CreateTicketRequest{SpentAt: testutil.FixedTime(), Amount: 1, Currency: "USD"})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	testutil.CreateTicket(t, f.db, f.bob, 5, models.TicketStatusPending)

	own, err := ts.List(f.db, f.alice)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, created.ID, own[0].ID)

	all, err := ts.List(f.db, f.boss)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	for _, tk := range all {
		require.NotNil(t, tk.Employee)
	}

	testutil.SuspendUser(t, f.db, f.bob)
	all, err = ts.List(f.db, f.boss)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTicketService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ts := f.svc.TicketService
	ticket := testutil.CreateTicket(t, f.db, f.alice, 10, models.TicketStatusPending)

	updated, err := ts.Update(f.db, f.alice, ticket.ID, &dto.UpdateTicketRequest{Amount: ptr(20.0)})
	require.NoError(t, err)
	assert.Equal(t, 20.0, updated.Amount)

	_, err = ts.Update(f.db, f.bob, ticket.ID, &dto.UpdateTicketRequest{Amount: ptr(30.0)})
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)

	deleted, err := ts.Delete(f.db, f.alice, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, deleted.ID)

	_, err = ts.Get(f.db, f.alice, ticket.ID)
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)

	decided := testutil.CreateTicket(t, f.db, f.alice, 10, models.TicketStatusApproved)
	_, err = ts.Update(f.db, f.alice, decided.ID, &dto.UpdateTicketRequest{Amount: ptr(1.0)})
	assert.ErrorIs(t, err, apperrors.ErrTicketNotEditable)
	_, err = ts.Delete(f.db, f.alice, decided.ID)
	assert.ErrorIs(t, err, apperrors.ErrTicketNotDeletable)
}

func TestTicketService_Decisions(t *testing.T) {
	f := newFixture(t)
	ts := f.svc.TicketService
	ticket := testutil.CreateTicket(t, f.db, f.alice, 10, models.TicketStatusPending)

	approved, err := ts.Approve(f.db, f.boss, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusApproved, approved.Status)

	again, err := ts.Approve(f.db, f.boss, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusApproved, again.Status)

	_, err = ts.Deny(f.db, f.boss, ticket.ID)
	assert.ErrorIs(t, err, apperrors.ErrTicketAlreadyApproved)

	_, err = ts.Approve(f.db, f.alice, ticket.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	other := testutil.CreateTicket(t, f.db, f.bob, 3, models.TicketStatusPending)
	_, err = ts.Deny(f.db, f.boss, other.ID)
	require.NoError(t, err)
	_, err = ts.Approve(f.db, f.boss, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrTicketAlreadyDenied)

	assert.Equal(t, []models.TicketStatus{models.TicketStatusApproved, models.TicketStatusDenied}, f.notifier.notices)

	events, err := ts.Events(f.db, f.boss, ticket.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.TicketEventApproved, events[0].Type)
	assert.JSONEq(t, `{"from":"pending","to":"approved"}`, string(events[0].Payload))
}

func TestTicketService_EventsFollowVisibility(t *testing.T) {
	f := newFixture(t)
	ts := f.svc.TicketService

	created, err := ts.Create(f.db, f.alice, &dto.CreateTicketRequest{SpentAt: testutil.FixedTime(), Amount: 1, Currency: "USD"})
	require.NoError(t, err)

	events, err := ts.Events(f.db, f.alice, created.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.TicketEventCreated, events[0].Type)

	_, err = ts.Events(f.db, f.bob, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
}

func TestEmployeeService(t *testing.T) {
	f := newFixture(t)
	es := f.svc.EmployeeService

	list, err := es.List(f.db)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	suspended, err := es.Suspend(f.db, f.alice.ID)
	require.NoError(t, err)
	assert.True(t, suspended.IsSuspended)

	active, err := es.Activate(f.db, f.alice.ID)
	require.NoError(t, err)
	assert.False(t, active.IsSuspended)

	_, err = es.Suspend(f.db, f.boss.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = es.Suspend(f.db, "unknown")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
