package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/domain"
	"taskdeck/internal/testutil"
)

func newTestAuthClient(t *testing.T, handler http.HandlerFunc) *AuthClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAuthClient(NewClient(ClientConfig{
		BaseURL:    server.URL,
		Middleware: []Middleware{NormalizeErrors(testutil.NopLogger{})},
	}))
}

func TestAuthClient_LoginUnwrapsEnvelope(t *testing.T) {
	client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)

		var creds domain.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice@example.com", creds.Email)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"user":         map[string]any{"id": "u1", "username": "alice"},
				"token":        "tok",
				"refreshToken": "ref",
				"expiresIn":    900,
			},
		})
	})

	resp, err := client.Login(context.Background(), domain.Credentials{Email: "alice@example.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, "ref", resp.RefreshToken)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestAuthClient_LoginRejectsEnvelopeFailure(t *testing.T) {
	// Some backends report auth failures inside a 200 envelope.
	client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Invalid username or password",
		})
	})

	_, err := client.Login(context.Background(), domain.Credentials{Email: "alice@example.com", Password: "wrong"})

	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid username or password", apiErr.Message)
}

func TestAuthClient_RefreshSendsToken(t *testing.T) {
	client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/refresh", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ref-1", body["refreshToken"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"user":         map[string]any{"id": "u1", "username": "alice"},
				"token":        "tok-2",
				"refreshToken": "ref-2",
				"expiresIn":    900,
			},
		})
	})

	resp, err := client.Refresh(context.Background(), "ref-1")

	require.NoError(t, err)
	assert.Equal(t, "tok-2", resp.Token)
	assert.Equal(t, "ref-2", resp.RefreshToken)
}

func TestTaskClient_ListBuildsQuery(t *testing.T) {
	var query map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	client := NewTaskClient(NewClient(ClientConfig{
		BaseURL:    server.URL,
		Middleware: []Middleware{NormalizeErrors(testutil.NopLogger{})},
	}))

	filter := domain.TaskFilter{
		Statuses:   []domain.Status{domain.StatusTodo, domain.StatusInProgress},
		Priorities: []domain.Priority{domain.PriorityHigh},
		SearchText: "deploy",
		Tags:       []string{"infra", "urgent"},
	}
	opts := domain.ListOptions{SortBy: domain.SortByDueDate, SortOrder: domain.SortDesc, Page: 2, PageSize: 25}

	_, err := client.List(context.Background(), filter, opts)

	require.NoError(t, err)
	assert.Equal(t, "TODO,IN_PROGRESS", query["status"][0])
	assert.Equal(t, "HIGH", query["priority"][0])
	assert.Equal(t, "deploy", query["search"][0])
	assert.Equal(t, "infra,urgent", query["tags"][0])
	assert.Equal(t, "dueDate", query["sortBy"][0])
	assert.Equal(t, "desc", query["sortOrder"][0])
	assert.Equal(t, "2", query["page"][0])
	assert.Equal(t, "25", query["pageSize"][0])
}
