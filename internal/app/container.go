// Package app provides the dependency injection container for the application.
package app

import (
	"net/http"
	"os"
	"path/filepath"

	"taskdeck/internal/domain"
	"taskdeck/internal/infra/config"
	"taskdeck/internal/infra/httpapi"
	"taskdeck/internal/infra/logging"
	"taskdeck/internal/infra/sessionfile"
	"taskdeck/internal/session"
	"taskdeck/internal/taskcache"
	"taskdeck/internal/usecase"
)

// Paths holds the application data locations.
type Paths struct {
	DataDir     string // Root data directory (e.g., ~/.local/share/taskdeck)
	SessionPath string // Path to session.json
}

// defaultPaths resolves the data directory following XDG conventions.
func defaultPaths() Paths {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	dataDir := filepath.Join(dataHome, "taskdeck")
	return Paths{
		DataDir:     dataDir,
		SessionPath: filepath.Join(dataDir, "session.json"),
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	AuthAPI domain.AuthAPI
	TaskAPI domain.TaskAPI
	Store   domain.SessionStore
	Clock   domain.Clock
	Logger  domain.Logger

	// Application state
	Session *session.Manager
	Cache   *taskcache.Cache
	Loading *httpapi.LoadingTracker

	// Configuration
	Config *config.Config
	Paths  Paths
}

// New creates a Container wired against the configured REST backend.
func New() (*Container, error) {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return nil, err
	}
	return build(cfg, defaultPaths(), nil)
}

// NewWithBackend creates a Container that talks to a specific backend over
// the given HTTP client. This is used by the serve command's demo mode and
// by tests.
func NewWithBackend(cfg *config.Config, paths Paths, httpClient *http.Client) (*Container, error) {
	return build(cfg, paths, httpClient)
}

func build(cfg *config.Config, paths Paths, httpClient *http.Client) (*Container, error) {
	logger := logging.New(paths.DataDir, logging.ParseLevel(cfg.Log.Level))
	clock := domain.RealClock{}

	store := sessionfile.New(paths.SessionPath)
	manager := session.NewManager(nil, store, logger, clock,
		session.WithRefreshThreshold(cfg.RefreshThreshold()))

	cache := taskcache.New()
	tracker := httpapi.NewLoadingTracker(cache.SetLoading)

	// Pipeline order is fixed: loading brackets everything, auth handles
	// 401 recovery, retry only sees requests that already carry a token,
	// and normalization turns raw failures into APIErrors for the layers
	// above it.
	client := httpapi.NewClient(httpapi.ClientConfig{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: httpClient,
		Middleware: []httpapi.Middleware{
			httpapi.Loading(tracker),
			httpapi.NewAuthMiddleware(manager, logger).Middleware(),
			httpapi.Retry(cfg.Retry.Attempts, cfg.RetryDelay(), logger),
			httpapi.NormalizeErrors(logger),
		},
	})

	authAPI := httpapi.NewAuthClient(client)
	taskAPI := httpapi.NewTaskClient(client)
	manager.SetAPI(authAPI)

	return &Container{
		AuthAPI: authAPI,
		TaskAPI: taskAPI,
		Store:   store,
		Clock:   clock,
		Logger:  logger,
		Session: manager,
		Cache:   cache,
		Loading: tracker,
		Config:  cfg,
		Paths:   paths,
	}, nil
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if closer, ok := c.Logger.(*logging.Logger); ok {
		return closer.Close()
	}
	return nil
}

// UseCase factory methods

// LoginUseCase returns a new Login use case.
func (c *Container) LoginUseCase() *usecase.Login {
	return usecase.NewLogin(c.Session, c.Logger)
}

// RegisterUseCase returns a new Register use case.
func (c *Container) RegisterUseCase() *usecase.Register {
	return usecase.NewRegister(c.Session, c.Logger)
}

// LogoutUseCase returns a new Logout use case.
func (c *Container) LogoutUseCase() *usecase.Logout {
	return usecase.NewLogout(c.Session, c.Cache, c.Logger)
}

// RefreshSessionUseCase returns a new RefreshSession use case.
func (c *Container) RefreshSessionUseCase() *usecase.RefreshSession {
	return usecase.NewRefreshSession(c.Session, c.Logger)
}

// FetchTasksUseCase returns a new FetchTasks use case.
func (c *Container) FetchTasksUseCase() *usecase.FetchTasks {
	return usecase.NewFetchTasks(c.TaskAPI, c.Cache, c.Logger)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.TaskAPI, c.Cache)
}

// CreateTaskUseCase returns a new CreateTask use case.
func (c *Container) CreateTaskUseCase() *usecase.CreateTask {
	return usecase.NewCreateTask(c.TaskAPI, c.Cache, c.Logger)
}

// UpdateTaskUseCase returns a new UpdateTask use case.
func (c *Container) UpdateTaskUseCase() *usecase.UpdateTask {
	return usecase.NewUpdateTask(c.TaskAPI, c.Cache, c.Logger)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.TaskAPI, c.Cache, c.Logger)
}

// DashboardUseCase returns a new Dashboard use case.
func (c *Container) DashboardUseCase() *usecase.Dashboard {
	return usecase.NewDashboard(c.TaskAPI)
}

// SearchTasksUseCase returns a new SearchTasks use case.
func (c *Container) SearchTasksUseCase() *usecase.SearchTasks {
	return usecase.NewSearchTasks(c.TaskAPI)
}
