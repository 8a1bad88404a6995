package memapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/domain"
	"taskdeck/internal/testutil"
)

// The seeded backlog has due dates around 2024-12-27; pin the clock nearby
// so overdue and due-today behave deterministically.
var testNow = time.Date(2024, 12, 27, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*httptest.Server, *domain.AuthResponse) {
	t.Helper()
	srv := NewServer(testutil.NopLogger{}, WithClock(&testutil.MockClock{NowTime: testNow}))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	auth := login(t, ts, "admin@example.com")
	return ts, auth
}

func login(t *testing.T, ts *httptest.Server, email string) *domain.AuthResponse {
	t.Helper()
	body, _ := json.Marshal(domain.Credentials{Email: email, Password: "anything"})
	resp, err := http.Post(ts.URL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data domain.AuthResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return &envelope.Data
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeTasks(t *testing.T, resp *http.Response) []domain.Task {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var tasks []domain.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tasks))
	return tasks
}

func TestServer_LoginIssuesVerifiableToken(t *testing.T) {
	_, auth := newTestServer(t)

	assert.NotEmpty(t, auth.Token)
	assert.NotEmpty(t, auth.RefreshToken)
	assert.Equal(t, "admin", auth.User.Username)
	assert.Equal(t, 3600, auth.ExpiresIn)
}

func TestServer_LoginUnknownEmail(t *testing.T) {
	ts, _ := newTestServer(t)

	body, _ := json.Marshal(domain.Credentials{Email: "nobody@example.com", Password: "x"})
	resp, err := http.Post(ts.URL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_TasksRequireAuth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/tasks", "", nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_RefreshRotatesToken(t *testing.T) {
	ts, auth := newTestServer(t)

	// First exchange succeeds.
	resp := doJSON(t, http.MethodPost, ts.URL+"/auth/refresh", "", map[string]string{"refreshToken": auth.RefreshToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var envelope struct {
		Data domain.AuthResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	_ = resp.Body.Close()
	assert.NotEmpty(t, envelope.Data.Token)
	assert.NotEqual(t, auth.RefreshToken, envelope.Data.RefreshToken)

	// The consumed refresh token is gone.
	resp = doJSON(t, http.MethodPost, ts.URL+"/auth/refresh", "", map[string]string{"refreshToken": auth.RefreshToken})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_ListTasksFiltersAndSorts(t *testing.T) {
	ts, auth := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/tasks?status=TODO&priority=URGENT", auth.Token, nil)
	tasks := decodeTasks(t, resp)

	require.Len(t, tasks, 1)
	assert.Equal(t, "Security audit", tasks[0].Title)

	resp = doJSON(t, http.MethodGet, ts.URL+"/tasks?sortBy=priority&sortOrder=desc&pageSize=3", auth.Token, nil)
	tasks = decodeTasks(t, resp)

	require.Len(t, tasks, 3)
	assert.Equal(t, domain.PriorityUrgent, tasks[0].Priority)
}

func TestServer_GetTaskNotFound(t *testing.T) {
	ts, auth := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/tasks/999", auth.Token, nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_CreateAndDeleteTask(t *testing.T) {
	ts, auth := newTestServer(t)

	draft := domain.TaskDraft{Title: "Ship release", Priority: domain.PriorityHigh}
	resp := doJSON(t, http.MethodPost, ts.URL+"/tasks", auth.Token, draft)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created domain.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	_ = resp.Body.Close()
	assert.Equal(t, "11", created.ID)
	assert.Equal(t, domain.StatusTodo, created.Status)

	resp = doJSON(t, http.MethodDelete, ts.URL+"/tasks/"+created.ID, auth.Token, nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, ts.URL+"/tasks/"+created.ID, auth.Token, nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_UpdateDerivesCompletedAt(t *testing.T) {
	ts, auth := newTestServer(t)

	done := domain.StatusDone
	resp := doJSON(t, http.MethodPut, ts.URL+"/tasks/5", auth.Token, domain.TaskPatch{Status: &done})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated domain.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	_ = resp.Body.Close()

	assert.Equal(t, domain.StatusDone, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, testNow, updated.CompletedAt.UTC())
}

func TestServer_UpdateReopenClearsCompletedAt(t *testing.T) {
	ts, auth := newTestServer(t)

	// Task 1 is seeded DONE with a completion timestamp.
	todo := domain.StatusTodo
	resp := doJSON(t, http.MethodPut, ts.URL+"/tasks/1", auth.Token, domain.TaskPatch{Status: &todo})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated domain.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	_ = resp.Body.Close()

	assert.Equal(t, domain.StatusTodo, updated.Status)
	assert.Nil(t, updated.CompletedAt)
}

func TestServer_UpdateEmptyPatchRejected(t *testing.T) {
	ts, auth := newTestServer(t)

	resp := doJSON(t, http.MethodPut, ts.URL+"/tasks/5", auth.Token, domain.TaskPatch{})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestServer_Stats(t *testing.T) {
	ts, auth := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/tasks/stats", auth.Token, nil)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats domain.TaskStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 6, stats.Todo)
	assert.Equal(t, 2, stats.InProgress)
	assert.Equal(t, 2, stats.Done)
	// Security audit is due 2024-12-27 00:00, before the pinned noon clock.
	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, 1, stats.DueToday)
}

func TestServer_OverdueAndDueToday(t *testing.T) {
	ts, auth := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/tasks/overdue", auth.Token, nil)
	overdue := decodeTasks(t, resp)
	require.Len(t, overdue, 1)
	assert.Equal(t, "Security audit", overdue[0].Title)

	resp = doJSON(t, http.MethodGet, ts.URL+"/tasks/due-today", auth.Token, nil)
	dueToday := decodeTasks(t, resp)
	require.Len(t, dueToday, 1)
	assert.Equal(t, "Security audit", dueToday[0].Title)
}

func TestServer_SearchMatchesTags(t *testing.T) {
	ts, auth := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/tasks/search?q=devops", auth.Token, nil)
	results := decodeTasks(t, resp)

	require.Len(t, results, 1)
	assert.Equal(t, "Setup CI/CD pipeline", results[0].Title)
}

func TestServer_RegisterCreatesAuthenticatedUser(t *testing.T) {
	ts, _ := newTestServer(t)

	reg := domain.Registration{
		Email:           "new@example.com",
		Username:        "newbie",
		Password:        "secret",
		ConfirmPassword: "secret",
		FirstName:       "New",
		LastName:        "Person",
	}
	body, _ := json.Marshal(reg)
	resp, err := http.Post(ts.URL+"/auth/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var envelope struct {
		Data domain.AuthResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, domain.RoleUser, envelope.Data.User.Role)
	assert.NotEmpty(t, envelope.Data.Token)

	// Duplicate registration is rejected.
	resp2, err := http.Post(ts.URL+"/auth/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp2.StatusCode)
}

func TestVerifyToken_RejectsTampering(t *testing.T) {
	secret := []byte("secret")
	token := signToken(secret, "1", "a@example.com", testNow, time.Hour)

	_, err := verifyToken(secret, token, testNow)
	require.NoError(t, err)

	_, err = verifyToken([]byte("other"), token, testNow)
	assert.Error(t, err)

	_, err = verifyToken(secret, token+"x", testNow)
	assert.Error(t, err)

	_, err = verifyToken(secret, token, testNow.Add(2*time.Hour))
	assert.Error(t, err)
}
