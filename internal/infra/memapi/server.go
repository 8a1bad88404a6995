// Package memapi provides an in-memory REST backend for development and
// demos. It serves the same surface the real backend would: JWT-based auth
// with refresh rotation, and the full task collection with filtering,
// sorting and pagination.
package memapi

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"taskdeck/internal/domain"
)

// DefaultTokenTTL is how long an issued access token stays valid.
const DefaultTokenTTL = time.Hour

// Server is an in-memory REST backend.
// Fields are ordered to minimize memory padding.
type Server struct {
	refreshTokens map[string]string // refresh token -> user ID
	clock         domain.Clock
	logger        domain.Logger
	users         []domain.User
	tasks         []domain.Task
	secret        []byte
	tokenTTL      time.Duration
	nextTaskID    int
	nextUserID    int
	mu            sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides the clock. This is useful for testing.
func WithClock(clock domain.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithTokenTTL overrides the access token lifetime.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) { s.tokenTTL = ttl }
}

// NewServer creates a Server seeded with the demo users and tasks.
func NewServer(logger domain.Logger, opts ...Option) *Server {
	secret := make([]byte, 32)
	_, _ = rand.Read(secret)

	s := &Server{
		refreshTokens: make(map[string]string),
		clock:         domain.RealClock{},
		logger:        logger,
		users:         seedUsers(),
		tasks:         seedTasks(),
		secret:        secret,
		tokenTTL:      DefaultTokenTTL,
		nextTaskID:    11,
		nextUserID:    5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler for the full API surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/refresh", s.handleRefresh)
	mux.HandleFunc("POST /auth/logout", s.requireAuth(s.handleLogout))

	mux.HandleFunc("GET /tasks", s.requireAuth(s.handleListTasks))
	mux.HandleFunc("POST /tasks", s.requireAuth(s.handleCreateTask))
	mux.HandleFunc("GET /tasks/stats", s.requireAuth(s.handleStats))
	mux.HandleFunc("GET /tasks/recent", s.requireAuth(s.handleRecent))
	mux.HandleFunc("GET /tasks/overdue", s.requireAuth(s.handleOverdue))
	mux.HandleFunc("GET /tasks/due-today", s.requireAuth(s.handleDueToday))
	mux.HandleFunc("GET /tasks/search", s.requireAuth(s.handleSearch))
	mux.HandleFunc("GET /tasks/{id}", s.requireAuth(s.handleGetTask))
	mux.HandleFunc("PUT /tasks/{id}", s.requireAuth(s.handleUpdateTask))
	mux.HandleFunc("DELETE /tasks/{id}", s.requireAuth(s.handleDeleteTask))

	return mux
}

// requireAuth rejects requests without a valid bearer token.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeError(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}
		if _, err := verifyToken(s.secret, token, s.clock.Now()); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		next(w, r)
	}
}

// ----- auth handlers -----

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Demo backend: any password is accepted for a known email.
	user := s.findUserByEmail(creds.Email)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	now := s.clock.Now()
	user.LastLoginAt = &now
	s.logger.Info("memapi", "login", "user", user.Username)
	writeJSON(w, http.StatusOK, s.authEnvelope(*user, "Login successful"))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := reg.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUserByEmail(reg.Email) != nil {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}

	now := s.clock.Now()
	user := domain.User{
		ID:         strconv.Itoa(s.nextUserID),
		Email:      reg.Email,
		Username:   reg.Username,
		FirstName:  reg.FirstName,
		LastName:   reg.LastName,
		Phone:      reg.Phone,
		Department: reg.Department,
		Role:       domain.RoleUser,
		Status:     domain.UserActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.nextUserID++
	s.users = append(s.users, user)

	s.logger.Info("memapi", "register", "user", user.Username)
	writeJSON(w, http.StatusCreated, s.authEnvelope(user, "Registration successful"))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.refreshTokens[body.RefreshToken]
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	user := s.findUserByID(userID)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	// Rotation: the presented token is consumed by the exchange.
	delete(s.refreshTokens, body.RefreshToken)
	writeJSON(w, http.StatusOK, s.authEnvelope(*user, "Token refreshed"))
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Logged out"})
}

// authEnvelope issues a fresh token pair for user. Caller holds s.mu.
func (s *Server) authEnvelope(user domain.User, message string) map[string]any {
	now := s.clock.Now()
	token := signToken(s.secret, user.ID, user.Email, now, s.tokenTTL)

	refreshBytes := make([]byte, 24)
	_, _ = rand.Read(refreshBytes)
	refresh := base64.RawURLEncoding.EncodeToString(refreshBytes)
	s.refreshTokens[refresh] = user.ID

	return map[string]any{
		"success": true,
		"message": message,
		"data": domain.AuthResponse{
			User:         &user,
			Token:        token,
			RefreshToken: refresh,
			ExpiresIn:    int(s.tokenTTL.Seconds()),
		},
	}
}

// ----- task handlers -----

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := parseFilter(query)

	sortBy := domain.SortKey(query.Get("sortBy"))
	if sortBy == "" {
		sortBy = domain.SortByCreatedAt
	}
	sortOrder := domain.SortOrder(query.Get("sortOrder"))
	if sortOrder == "" {
		sortOrder = domain.SortDesc
	}

	s.mu.Lock()
	result := domain.SortTasks(domain.FilterTasks(s.tasks, filter), sortBy, sortOrder)
	s.mu.Unlock()

	// Pagination
	page := intParam(query.Get("page"), 1)
	pageSize := intParam(query.Get("pageSize"), len(result))
	start := (page - 1) * pageSize
	if start > len(result) {
		start = len(result)
	}
	end := start + pageSize
	if end > len(result) {
		end = len(result)
	}

	writeJSON(w, http.StatusOK, result[start:end])
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTask(id)
	if task == nil {
		writeError(w, http.StatusNotFound, "Task with id "+id+" not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var draft domain.TaskDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := draft.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	status := draft.Status
	if status == "" {
		status = domain.StatusTodo
	}
	task := domain.Task{
		ID:             strconv.Itoa(s.nextTaskID),
		Title:          draft.Title,
		Description:    draft.Description,
		Status:         status,
		Priority:       draft.Priority,
		AssignedTo:     draft.AssignedTo,
		CreatedBy:      "1",
		CreatedAt:      now,
		UpdatedAt:      now,
		DueDate:        draft.DueDate,
		Tags:           draft.Tags,
		EstimatedHours: draft.EstimatedHours,
	}
	s.nextTaskID++
	s.tasks = append(s.tasks, task)

	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch domain.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := patch.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTask(id)
	if task == nil {
		writeError(w, http.StatusNotFound, "Task with id "+id+" not found")
		return
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		// Completion timestamp is derived from the status transition:
		// set on entering DONE, cleared on leaving it.
		switch {
		case *patch.Status == domain.StatusDone && task.Status != domain.StatusDone:
			now := s.clock.Now()
			task.CompletedAt = &now
		case *patch.Status != domain.StatusDone:
			task.CompletedAt = nil
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.AssignedTo != nil {
		task.AssignedTo = *patch.AssignedTo
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.Tags != nil {
		task.Tags = patch.Tags
	}
	if patch.EstimatedHours != nil {
		task.EstimatedHours = patch.EstimatedHours
	}
	task.UpdatedAt = s.clock.Now()

	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Task with id "+id+" not found")
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	weekFromNow := now.Add(7 * 24 * time.Hour)

	var stats domain.TaskStats
	stats.Total = len(s.tasks)
	for i := range s.tasks {
		t := &s.tasks[i]
		switch t.Status {
		case domain.StatusTodo:
			stats.Todo++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusDone:
			stats.Done++
		}
		if t.IsOverdue(now) {
			stats.Overdue++
		}
		if t.IsDueToday(now) {
			stats.DueToday++
		}
		if t.DueDate != nil && !t.DueDate.Before(now) && !t.DueDate.After(weekFromNow) {
			stats.DueThisWeek++
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r.URL.Query().Get("limit"), 5)

	s.mu.Lock()
	recent := append([]domain.Task(nil), s.tasks...)
	s.mu.Unlock()

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].UpdatedAt.After(recent[j].UpdatedAt)
	})
	if limit < len(recent) {
		recent = recent[:limit]
	}
	writeJSON(w, http.StatusOK, recent)
}

func (s *Server) handleOverdue(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	overdue := []domain.Task{}
	for i := range s.tasks {
		if s.tasks[i].IsOverdue(now) {
			overdue = append(overdue, s.tasks[i])
		}
	}
	writeJSON(w, http.StatusOK, overdue)
}

func (s *Server) handleDueToday(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	due := []domain.Task{}
	for i := range s.tasks {
		if s.tasks[i].IsDueToday(now) {
			due = append(due, s.tasks[i])
		}
	}
	writeJSON(w, http.StatusOK, due)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("q"))

	s.mu.Lock()
	defer s.mu.Unlock()

	results := []domain.Task{}
	for i := range s.tasks {
		t := &s.tasks[i]
		if strings.Contains(strings.ToLower(t.Title), query) ||
			strings.Contains(strings.ToLower(t.Description), query) ||
			tagMatches(t.Tags, query) {
			results = append(results, *t)
		}
	}
	writeJSON(w, http.StatusOK, results)
}

// ----- helpers -----

func (s *Server) findUserByEmail(email string) *domain.User {
	for i := range s.users {
		if s.users[i].Email == email {
			return &s.users[i]
		}
	}
	return nil
}

func (s *Server) findUserByID(id string) *domain.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

func (s *Server) findTask(id string) *domain.Task {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i]
		}
	}
	return nil
}

func tagMatches(tags []string, query string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func parseFilter(query map[string][]string) domain.TaskFilter {
	get := func(key string) string {
		if v, ok := query[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	var filter domain.TaskFilter
	if v := get("status"); v != "" {
		for _, part := range strings.Split(v, ",") {
			filter.Statuses = append(filter.Statuses, domain.Status(part))
		}
	}
	if v := get("priority"); v != "" {
		for _, part := range strings.Split(v, ",") {
			filter.Priorities = append(filter.Priorities, domain.Priority(part))
		}
	}
	filter.AssignedTo = get("assignedTo")
	filter.CreatedBy = get("createdBy")
	filter.SearchText = get("search")
	if v := get("tags"); v != "" {
		filter.Tags = strings.Split(v, ",")
	}
	if v := get("dueFrom"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DueFrom = &t
		}
	}
	if v := get("dueTo"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DueTo = &t
		}
	}
	return filter
}

func intParam(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
