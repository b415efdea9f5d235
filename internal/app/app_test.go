package app_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"expense_tracker/internal/models"
	"expense_tracker/internal/services/dto"
	"expense_tracker/internal/testutil"
	"expense_tracker/internal/testutil/apitest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Domain  string `json:"domain"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, body string) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.Unmarshal([]byte(body), &e), body)
	return e
}

func TestHealth(t *testing.T) {
	ts := apitest.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var h dto.HealthResponse
	require.NoError(t, json.Unmarshal([]byte(body), &h))
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "ok", h.Database)
}

func TestRegisterLoginMe(t *testing.T) {
	ts := apitest.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "dana@example.com", "password": "secret1", "username": "dana", "role": "employee",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var reg dto.AuthResponse
	require.NoError(t, json.Unmarshal([]byte(body), &reg))
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, models.UserRoleEmployee, reg.User.Role)

	res, body = ts.SendRequest(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "dana@example.com", "password": "secret1", "username": "dana", "role": "employee",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, "User already exists", decodeError(t, body).Error.Message)

	res, body = ts.SendRequest(t, http.MethodGet, "/auth/me", reg.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var me dto.UserResponse
	require.NoError(t, json.Unmarshal([]byte(body), &me))
	assert.Equal(t, "dana", me.Username)
	assert.False(t, me.IsSuspended)
}

func TestRegisterValidation(t *testing.T) {
	ts := apitest.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "not-an-email", "password": "123", "username": "x", "role": "admin",
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	var e struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &e))
	assert.Equal(t, "VALIDATION_FAILED", e.Error.Code)
	assert.Contains(t, e.Error.Details, "email")
	assert.Contains(t, e.Error.Details, "password")
	assert.Contains(t, e.Error.Details, "role")
}

func TestLoginErrors(t *testing.T) {
	ts := apitest.NewTestServer(t)
	alice := testutil.CreateUser(t, ts.DB, "alice", models.UserRoleEmployee)

	res, body := ts.SendRequest(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "Invalid email or password", decodeError(t, body).Error.Message)

	testutil.SuspendUser(t, ts.DB, alice)
	res, body = ts.SendRequest(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": testutil.DefaultPassword,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "User suspended", decodeError(t, body).Error.Message)
}

func TestAuthMiddleware(t *testing.T) {
	ts := apitest.NewTestServer(t)
	alice := testutil.CreateUser(t, ts.DB, "alice", models.UserRoleEmployee)
	token := ts.Login(t, alice.Email)

	res, _ := ts.SendRequest(t, http.MethodGet, "/tickets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/tickets", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// Suspension applies to tokens issued before it.
	testutil.SuspendUser(t, ts.DB, alice)
	res, body := ts.SendRequest(t, http.MethodGet, "/tickets", token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "User suspended", decodeError(t, body).Error.Message)

	// A deleted user is unknown.
	require.NoError(t, ts.DB.Delete(&models.User{}, "id = ?", alice.ID).Error)
	res, _ = ts.SendRequest(t, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestTicketLifecycle(t *testing.T) {
	notifier, provider := apitest.NewMockNotifier()
	ts := apitest.NewTestServerWithNotifier(t, notifier)

	alice := testutil.CreateUser(t, ts.DB, "alice", models.UserRoleEmployee)
	testutil.CreateUser(t, ts.DB, "boss", models.UserRoleEmployer)
	employee := ts.Login(t, alice.Email)
	employer := ts.Login(t, "boss@example.com")

	res, body := ts.SendRequest(t, http.MethodPost, "/tickets", employee, map[string]interface{}{
		"spent_at": "2024-03-01T10:00:00Z", "amount": 42.5, "currency": "EUR", "description": "dinner",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var created dto.TicketResponse
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, models.TicketStatusPending, created.Status)

	// Employers cannot create.
	res, body = ts.SendRequest(t, http.MethodPost, "/tickets", employer, map[string]interface{}{
		"spent_at": "2024-03-01T10:00:00Z", "amount": 1, "currency": "EUR",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "Forbidden", decodeError(t, body).Error.Message)

	res, body = ts.SendRequest(t, http.MethodPut, "/tickets/"+created.ID, employee, map[string]interface{}{"amount": 50})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/tickets", employer, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var listed []dto.TicketResponse
	require.NoError(t, json.Unmarshal([]byte(body), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, 50.0, listed[0].Amount)
	require.NotNil(t, listed[0].Employee)
	assert.Equal(t, "alice", listed[0].Employee.Username)

	res, body = ts.SendRequest(t, http.MethodPost, "/tickets/"+created.ID+"/approve", employee, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/tickets/"+created.ID+"/approve", employer, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodPost, "/tickets/"+created.ID+"/approve", employer, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPost, "/tickets/"+created.ID+"/deny", employer, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, "Already approved", decodeError(t, body).Error.Message)

	res, body = ts.SendRequest(t, http.MethodPut, "/tickets/"+created.ID, employee, map[string]interface{}{"amount": 60})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, "Only pending ticket can be updated", decodeError(t, body).Error.Message)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/tickets/"+created.ID, employee, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodGet, "/tickets/"+created.ID+"/events", employee, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var events []dto.TicketEventResponse
	require.NoError(t, json.Unmarshal([]byte(body), &events))
	require.Len(t, events, 3)
	assert.Equal(t, models.TicketEventCreated, events[0].Type)
	assert.Equal(t, models.TicketEventUpdated, events[1].Type)
	assert.Equal(t, models.TicketEventApproved, events[2].Type)

	// One notice, for the single real transition.
	assert.Equal(t, 1, notifier.Pending())
	assert.Empty(t, provider.Sent())
}

func TestTicketDeleteAndVisibility(t *testing.T) {
	ts := apitest.NewTestServer(t)
	alice := testutil.CreateUser(t, ts.DB, "alice", models.UserRoleEmployee)
	bob := testutil.CreateUser(t, ts.DB, "bob", models.UserRoleEmployee)
	testutil.CreateUser(t, ts.DB, "boss", models.UserRoleEmployer)
	aliceToken := ts.Login(t, alice.Email)
	bobToken := ts.Login(t, bob.Email)
	bossToken := ts.Login(t, "boss@example.com")

	mine := testutil.CreateTicket(t, ts.DB, alice, 10, models.TicketStatusPending)
	testutil.CreateTicket(t, ts.DB, bob, 20, models.TicketStatusPending)

	res, _ := ts.SendRequest(t, http.MethodGet, "/tickets/"+mine.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/tickets/"+mine.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodDelete, "/tickets/"+mine.ID, aliceToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodGet, "/tickets/"+mine.ID, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPost, "/employees/"+bob.ID+"/suspend", bossToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/tickets", bossToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var listed []dto.TicketResponse
	require.NoError(t, json.Unmarshal([]byte(body), &listed))
	assert.Empty(t, listed)
}

func TestEmployees(t *testing.T) {
	ts := apitest.NewTestServer(t)
	alice := testutil.CreateUser(t, ts.DB, "alice", models.UserRoleEmployee)
	boss := testutil.CreateUser(t, ts.DB, "boss", models.UserRoleEmployer)
	aliceToken := ts.Login(t, alice.Email)
	bossToken := ts.Login(t, boss.Email)

	res, _ := ts.SendRequest(t, http.MethodGet, "/employees", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodGet, "/employees", bossToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var employees []dto.UserResponse
	require.NoError(t, json.Unmarshal([]byte(body), &employees))
	require.Len(t, employees, 1)
	assert.Equal(t, alice.ID, employees[0].ID)

	res, _ = ts.SendRequest(t, http.MethodPost, "/employees/"+boss.ID+"/suspend", bossToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPost, "/employees/"+alice.ID+"/suspend", bossToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var suspended dto.UserResponse
	require.NoError(t, json.Unmarshal([]byte(body), &suspended))
	assert.True(t, suspended.IsSuspended)

	res, _ = ts.SendRequest(t, http.MethodGet, "/auth/me", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/employees/"+alice.ID+"/activate", bossToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/auth/me", aliceToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestSwaggerServed(t *testing.T) {
	ts := apitest.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "/tickets/{id}/approve")
}
