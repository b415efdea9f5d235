package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"expense_tracker/internal/app"
	"expense_tracker/internal/config"
	"expense_tracker/internal/email"
	"expense_tracker/internal/services"
	"expense_tracker/internal/testutil"
	"expense_tracker/internal/workers"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestServer is the full API served from httptest over in-memory SQLite.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Config *config.Config
}

// NewTestServer starts the API with a fresh database and no notifier.
func NewTestServer(t *testing.T) *TestServer {
	return NewTestServerWithNotifier(t, nil)
}

func NewTestServerWithNotifier(t *testing.T, notifier services.Notifier) *TestServer {
	t.Helper()

	cfg := config.Default()
	cfg.JWT.Secret = "test-secret"
	db := testutil.NewTestDB(t)

	server := httptest.NewServer(app.SetupRouter(cfg, db, notifier))
	t.Cleanup(server.Close)

	return &TestServer{Server: server, DB: db, Config: cfg}
}

// NewMockNotifier returns an unstarted worker over a recording provider.
func NewMockNotifier() (*workers.NotificationWorker, *email.MockProvider) {
	provider := email.NewMockProvider()
	return workers.NewNotificationWorker(provider, 16), provider
}

// SendRequest performs a JSON request and returns the response with its body.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(data)
}

// Login returns a token for a user created with testutil.CreateUser.
func (ts *TestServer) Login(t *testing.T, email string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": testutil.DefaultPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}
