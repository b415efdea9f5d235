package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"expense_tracker/internal/services/dto"
	"expense_tracker/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseURLFromEnv(t *testing.T) {
	env := map[string]string{}
	lookup := func(k string) string { return env[k] }

	assert.Equal(t, DefaultBaseURL, BaseURLFromEnv(lookup))

	env["EXPENSE_API_URL"] = "https://api.example.com"
	assert.Equal(t, "https://api.example.com", BaseURLFromEnv(lookup))
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dto.UserResponse{ID: "u1", Role: "employee"})
	}))
	defer srv.Close()

	store := session.NewMemoryStorage()
	c := New(srv.URL+"/", store)

	_, err := c.Auth.Me(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)

	require.NoError(t, store.Set(session.KeyToken, "abc"))
	me, err := c.Auth.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "u1", me.ID)
}

func TestClient_UnauthorizedHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"INVALID_TOKEN","domain":"auth","message":"Invalid token"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, session.NewMemoryStorage())
	calls := 0
	c.OnUnauthorized(func() { calls++ })

	_, err := c.Tickets.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Invalid token", MessageOf(err, "failed"))
}

func TestClient_ForbiddenDoesNotTriggerLogout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail":"Forbidden"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, session.NewMemoryStorage())
	calls := 0
	c.OnUnauthorized(func() { calls++ })

	_, err := c.Employees.List(context.Background())
	assert.True(t, IsForbidden(err))
	assert.Zero(t, calls)
}

func TestClient_InterceptorsRunInOrder(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, "server:"+r.Header.Get("X-Trace"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	c.UseRequest(func(req *http.Request) error {
		seen = append(seen, "request")
		req.Header.Set("X-Trace", "t1")
		return nil
	})
	c.UseResponse(func(res *http.Response, err error) error {
		seen = append(seen, "response")
		return err
	})

	tickets, err := c.Tickets.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tickets)
	assert.Equal(t, []string{"request", "server:t1", "response"}, seen)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, nil)
	_, err := c.Tickets.List(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Tickets.Get(context.Background(), "t1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindDecode, apiErr.Kind)
}

func TestClient_PathsAndMethods(t *testing.T) {
	type call struct{ method, path string }
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	c := New(srv.URL, nil)
	_, _ = c.Tickets.Approve(ctx, "t1")
	_, _ = c.Tickets.Deny(ctx, "t1")
	_ = c.Tickets.Delete(ctx, "t1")
	_, _ = c.Tickets.Update(ctx, "t1", dto.UpdateTicketRequest{})
	_, _ = c.Employees.Suspend(ctx, "e1")
	_, _ = c.Employees.Activate(ctx, "e1")

	assert.Equal(t, []call{
		{http.MethodPost, "/tickets/t1/approve"},
		{http.MethodPost, "/tickets/t1/deny"},
		{http.MethodDelete, "/tickets/t1"},
		{http.MethodPut, "/tickets/t1"},
		{http.MethodPost, "/employees/e1/suspend"},
		{http.MethodPost, "/employees/e1/activate"},
	}, calls)
}
