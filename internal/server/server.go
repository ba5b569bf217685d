package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"dashboard/internal/auth"
	"dashboard/internal/models"
	"dashboard/internal/storage/sqlstore"
	"dashboard/internal/summary"
	"dashboard/internal/workflow"
)

// Deps are the collaborators the HTTP layer dispatches to.
// Summarizer may be nil when no completion service is configured.
type Deps struct {
	Store      *sqlstore.Store
	Auth       *auth.Service
	Workflow   *workflow.Engine
	Summarizer *summary.Summarizer
	Logger     *slog.Logger
}

// Options tune the HTTP surface.
type Options struct {
	StaticDir   string
	CORSOrigins []string
}

// Server provides HTTP handlers for the project dashboard backend.
type Server struct {
	engine     *gin.Engine
	store      *sqlstore.Store
	auth       *auth.Service
	workflow   *workflow.Engine
	summarizer *summary.Summarizer
	logger     *slog.Logger
	staticDir  string
}

// New constructs the HTTP server with routes and middleware configured.
func New(deps Deps, opts Options) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/healthz"))
	router.Use(corsMiddleware(opts.CORSOrigins))

	srv := &Server{
		engine:     router,
		store:      deps.Store,
		auth:       deps.Auth,
		workflow:   deps.Workflow,
		summarizer: deps.Summarizer,
		logger:     logger,
		staticDir:  opts.StaticDir,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	r := s.engine

	r.GET("/healthz", s.handleHealth)

	r.POST("/register", s.handleRegister)
	r.POST("/login", s.handleLogin)
	r.GET("/users", s.handleListUsers)

	r.GET("/projects", s.handleListProjects)
	r.GET("/projects/", s.handleListProjectsWithTasks)
	r.POST("/projects/", s.handleCreateProject)
	r.POST("/projects/full-create", s.handleFullCreateProject)
	r.GET("/projects/:id", s.handleGetProject)
	r.DELETE("/projects/:id", s.handleDeleteProject)
	r.PATCH("/projects/:id/drawing-version", s.handleUpdateDrawingVersion)
	r.GET("/projects/:id/tasks", s.handleListTasks)
	r.GET("/projects/:id/tasks/", s.handleListTasks)
	r.POST("/projects/:id/tasks", s.handleCreateTask)
	r.POST("/projects/:id/tasks/", s.handleCreateTask)

	r.DELETE("/tasks/:id", s.handleDeleteTask)
	r.PATCH("/tasks/:id/status", s.handleUpdateTaskStatus)

	me := r.Group("", s.requireUser())
	{
		me.GET("/my-tasks", s.handleMyTasks)
		me.GET("/notifications", s.handleListNotifications)
		me.DELETE("/notifications/:id", s.handleDeleteNotification)
	}

	r.POST("/ai/analyze", s.handleAnalyze)

	s.mountStatic()
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		s.respondError(c, http.StatusServiceUnavailable, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to int64 with error handling.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return id, true
}

// fail maps a domain error to its status code and responds.
func (s *Server) fail(c *gin.Context, err error) {
	s.respondError(c, statusFor(err), err)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var (
		fieldErrs validation.Errors
		ruleErr   validation.Error
	)
	switch {
	case errors.As(err, &fieldErrs), errors.As(err, &ruleErr),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, auth.ErrDuplicateUser),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, workflow.ErrUnknownUser),
		errors.Is(err, workflow.ErrProjectNotFound),
		errors.Is(err, workflow.ErrTaskNotFound),
		errors.Is(err, summary.ErrProjectNotFound),
		errors.Is(err, sqlstore.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, summary.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the error and returns a JSON payload. Internal failures are not
// echoed to the client.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		if status >= http.StatusInternalServerError {
			s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.Int("status", status), slog.String("error", err.Error()))
		} else {
			s.logger.Debug("request rejected", slog.String("path", c.FullPath()), slog.Int("status", status), slog.String("error", err.Error()))
			msg = err.Error()
		}
	}
	if status == http.StatusBadGateway && err != nil {
		msg = summary.ErrUpstream.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
