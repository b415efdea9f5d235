package store

import (
	"context"
	"testing"
	"time"

	"expense_tracker/internal/client"
	"expense_tracker/internal/models"
	"expense_tracker/internal/services/dto"
	"expense_tracker/internal/session"
	"expense_tracker/internal/testutil"
	"expense_tracker/internal/testutil/apitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	store   *Store
	thunks  *Thunks
	storage *session.MemoryStorage
}

func newHarness(ts *apitest.TestServer) *harness {
	storage := session.NewMemoryStorage()
	s := New(InitialState(storage))
	api := client.New(ts.Server.URL, storage)
	return &harness{store: s, thunks: NewThunks(s, api, storage), storage: storage}
}

func TestThunks_LoginPersistsSession(t *testing.T) {
	ts := apitest.NewTestServer(t)
	testutil.CreateUser(t, ts.DB, "alice", models.UserRoleEmployee)
	h := newHarness(ts)

	resp, err := h.thunks.Login(context.Background(), "alice@example.com", testutil.DefaultPassword)
	require.NoError(t, err)

	st := h.store.State().Auth
	assert.True(t, st.IsAuthenticated)
	assert.False(t, st.Loading)
	assert.Equal(t, resp.Token, st.Token)
	assert.Equal(t, "alice", st.User.Username)

	token, _ := h.storage.Get(session.KeyToken)
	role, _ := h.storage.Get(session.KeyRole)
	assert.Equal(t, resp.Token, token)
	assert.Equal(t, "employee", role)
	_, ok := h.storage.Get(session.KeyUser)
	assert.True(t, ok)

	h.thunks.Logout()
	assert.Equal(t, AuthState{Initialized: true}, h.store.State().Auth)
	_, ok = h.storage.Get(session.KeyToken)
	assert.False(t, ok)
}

func TestThunks_LoginRejected(t *testing.T) {
	ts := apitest.NewTestServer(t)
	testutil.CreateUser(t, ts.DB, "alice", models.UserRoleEmployee)
	h := newHarness(ts)

	_, err := h.thunks.Login(context.Background(), "alice@example.com", "wrong-password")
	require.Error(t, err)

	st := h.store.State().Auth
	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.Loading)
	assert.Equal(t, "Invalid email or password", st.Error)
}

func TestThunks_Register(t *testing.T) {
	ts := apitest.NewTestServer(t)
	h := newHarness(ts)

	_, err := h.thunks.Register(context.Background(), dto.RegisterRequest{
		Email: "bob@example.com", Password: "secret1", Username: "bob", Role: models.UserRoleEmployer,
	})
	require.NoError(t, err)
	assert.True(t, IsEmployer(h.store.State()))

	_, err = h.thunks.Register(context.Background(), dto.RegisterRequest{
		Email: "bob@example.com", Password: "secret1", Username: "bob", Role: models.UserRoleEmployer,
	})
	require.Error(t, err)
	assert.Equal(t, "User already exists", h.store.State().Auth.Error)
}

func TestThunks_InitializeAuth(t *testing.T) {
	ts := apitest.NewTestServer(t)
	alice := testutil.CreateUser(t, ts.DB, "alice", models.UserRoleEmployee)
	ctx := context.Background()

	t.Run("no session", func(t *testing.T) {
		h := newHarness(ts)
		require.NoError(t, h.thunks.InitializeAuth(ctx))
		st := h.store.State().Auth
		assert.True(t, st.Initialized)
		assert.False(t, st.IsAuthenticated)
	})

	t.Run("valid token", func(t *testing.T) {
		storage := session.NewMemoryStorage()
		require.NoError(t, storage.Set(session.KeyToken, ts.Login(t, "alice@example.com")))
		s := New(InitialState(storage))
		assert.False(t, s.State().Auth.Initialized)
		thunks := NewThunks(s, client.New(ts.Server.URL, storage), storage)

		require.NoError(t, thunks.InitializeAuth(ctx))
		st := s.State().Auth
		assert.True(t, st.Initialized)
		assert.True(t, st.IsAuthenticated)
		assert.Equal(t, alice.ID, st.User.ID)
		role, _ := storage.Get(session.KeyRole)
		assert.Equal(t, "employee", role)
	})

	t.Run("garbage token logs out", func(t *testing.T) {
		storage := session.NewMemoryStorage()
		require.NoError(t, storage.Set(session.KeyToken, "garbage"))
		s := New(InitialState(storage))
		thunks := NewThunks(s, client.New(ts.Server.URL, storage), storage)

		err := thunks.InitializeAuth(ctx)
		assert.True(t, client.IsUnauthorized(err))
		st := s.State().Auth
		assert.True(t, st.Initialized)
		assert.False(t, st.IsAuthenticated)
		assert.False(t, st.Loading)
		_, ok := storage.Get(session.KeyToken)
		assert.False(t, ok)
	})

	t.Run("suspended user logs out", func(t *testing.T) {
		bob := testutil.CreateUser(t, ts.DB, "bob", models.UserRoleEmployee)
		storage := session.NewMemoryStorage()
		require.NoError(t, storage.Set(session.KeyToken, ts.Login(t, "bob@example.com")))
		testutil.SuspendUser(t, ts.DB, bob)

		s := New(InitialState(storage))
		thunks := NewThunks(s, client.New(ts.Server.URL, storage), storage)

		err := thunks.InitializeAuth(ctx)
		assert.True(t, client.IsForbidden(err))
		st := s.State().Auth
		assert.False(t, st.IsAuthenticated)
		assert.Equal(t, "User suspended", st.Error)
		_, ok := storage.Get(session.KeyToken)
		assert.False(t, ok)
	})
}

func TestThunks_TicketFlow(t *testing.T) {
	ts := apitest.NewTestServer(t)
	testutil.CreateUser(t, ts.DB, "alice", models.UserRoleEmployee)
	testutil.CreateUser(t, ts.DB, "boss", models.UserRoleEmployer)
	ctx := context.Background()

	employee := newHarness(ts)
	_, err := employee.thunks.Login(ctx, "alice@example.com", testutil.DefaultPassword)
	require.NoError(t, err)

	first, err := employee.thunks.CreateTicket(ctx, dto.CreateTicketRequest{
		SpentAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Amount: 12, Currency: "USD",
	})
	require.NoError(t, err)
	second, err := employee.thunks.CreateTicket(ctx, dto.CreateTicketRequest{
		SpentAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Amount: 8, Currency: "EUR",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID, first.ID}, ids(employee.store.State().Tickets.Tickets))

	amount := 15.0
	_, err = employee.thunks.UpdateTicket(ctx, first.ID, dto.UpdateTicketRequest{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, 15.0, employee.store.State().Tickets.Tickets[1].Amount)

	employer := newHarness(ts)
	_, err = employer.thunks.Login(ctx, "boss@example.com", testutil.DefaultPassword)
	require.NoError(t, err)

	tickets, err := employer.thunks.FetchTickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, 2, PendingCount(employer.store.State()))

	_, err = employer.thunks.ApproveTicket(ctx, first.ID)
	require.NoError(t, err)
	_, err = employer.thunks.DenyTicket(ctx, second.ID)
	require.NoError(t, err)
	st := employer.store.State()
	assert.Equal(t, 0, PendingCount(st))
	assert.Len(t, TicketsByStatus(st, models.TicketStatusApproved), 1)

	_, err = employer.thunks.ApproveTicket(ctx, second.ID)
	require.Error(t, err)
	assert.Equal(t, "Already denied", employer.store.State().Tickets.Error)
	assert.Len(t, TicketsByStatus(employer.store.State(), models.TicketStatusDenied), 1)

	err = employee.thunks.DeleteTicket(ctx, first.ID)
	require.Error(t, err)
	assert.Equal(t, "Only pending ticket can be deleted", employee.store.State().Tickets.Error)
}

func TestThunks_DeleteTicket(t *testing.T) {
	ts := apitest.NewTestServer(t)
	alice := testutil.CreateUser(t, ts.DB, "alice", models.UserRoleEmployee)
	pending := testutil.CreateTicket(t, ts.DB, alice, 5, models.TicketStatusPending)
	ctx := context.Background()

	h := newHarness(ts)
	_, err := h.thunks.Login(ctx, "alice@example.com", testutil.DefaultPassword)
	require.NoError(t, err)
	_, err = h.thunks.FetchTickets(ctx)
	require.NoError(t, err)
	require.Len(t, h.store.State().Tickets.Tickets, 1)

	require.NoError(t, h.thunks.DeleteTicket(ctx, pending.ID))
	assert.Empty(t, h.store.State().Tickets.Tickets)
	assert.False(t, h.store.State().Tickets.Updating)
}

func TestThunks_Employees(t *testing.T) {
	ts := apitest.NewTestServer(t)
	alice := testutil.CreateUser(t, ts.DB, "alice", models.UserRoleEmployee)
	testutil.CreateUser(t, ts.DB, "boss", models.UserRoleEmployer)
	ctx := context.Background()

	employee := newHarness(ts)
	_, err := employee.thunks.Login(ctx, "alice@example.com", testutil.DefaultPassword)
	require.NoError(t, err)
	_, err = employee.thunks.FetchEmployees(ctx)
	require.Error(t, err)
	assert.Equal(t, "Forbidden", employee.store.State().Employees.Error)

	employer := newHarness(ts)
	_, err = employer.thunks.Login(ctx, "boss@example.com", testutil.DefaultPassword)
	require.NoError(t, err)

	list, err := employer.thunks.FetchEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = employer.thunks.SuspendEmployee(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, employer.store.State().Employees.Employees[0].IsSuspended)

	_, err = employer.thunks.ActivateEmployee(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, employer.store.State().Employees.Employees[0].IsSuspended)

	_, err = employer.thunks.SuspendEmployee(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, "User not found", employer.store.State().Employees.Error)
}

func TestThunks_UnauthorizedResponseLogsOut(t *testing.T) {
	ts := apitest.NewTestServer(t)
	h := newHarness(ts)

	require.NoError(t, h.storage.Set(session.KeyToken, "stale"))
	h.store.Dispatch(FetchTicketsFulfilled{Tickets: []dto.TicketResponse{{ID: "old"}}})
	h.store.Dispatch(SetUser{User: dto.UserResponse{ID: "u1"}})

	_, err := h.thunks.FetchTickets(context.Background())
	require.Error(t, err)

	st := h.store.State()
	assert.False(t, st.Auth.IsAuthenticated)
	assert.Empty(t, st.Tickets.Tickets)
	assert.NotEmpty(t, st.Tickets.Error)
	_, ok := h.storage.Get(session.KeyToken)
	assert.False(t, ok)
}
