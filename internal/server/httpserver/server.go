// Package httpserver is the rendering/display layer of the dashboard: it
// translates browser requests into session-gate transitions, renders the
// view the resulting state selects, and serves the gated JSON endpoints the
// charts and the choropleth consume.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/klimata/riskboard/internal/logging"
	"github.com/klimata/riskboard/internal/server/dataset"
	"github.com/klimata/riskboard/internal/server/session"
)

type Server struct {
	e        *echo.Echo
	address  string
	logger   logging.Logger
	store    session.Store
	data     *dataset.Dataset
	sessions *registry
	validate *validator.Validate
	topN     int
}

// New builds the echo application with all routes registered. store is the
// credential store consulted by the session gate; data is the loaded
// indicator dataset.
func New(address string, l logging.Logger, store session.Store, data *dataset.Dataset, topN int) (*Server, error) {
	s := &Server{
		address:  address,
		logger:   l.With("module", "httpserver"),
		store:    store,
		data:     data,
		sessions: newRegistry(),
		validate: validator.New(),
		topN:     topN,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = r

	e.Use(middleware.Recover())

	// views
	e.GET("/", s.handleIndex)
	e.GET("/login", s.handleLoginPage)
	e.POST("/login", s.handleLogin)
	e.GET("/signup", s.handleSignUpPage)
	e.POST("/signup", s.handleSignUp)
	e.POST("/logout", s.handleLogout)
	e.GET("/dashboard", s.handleDashboard)
	e.GET("/manage", s.handleManagePage)
	e.POST("/manage/password", s.handlePasswordChange)
	e.POST("/manage/delete", s.handleDeleteAccount)

	// gated data endpoints for the map and charts
	api := e.Group("/api", s.requireAuth)
	api.GET("/geojson", s.handleGeoJSON)
	api.GET("/summary", s.handleSummary)
	api.GET("/top", s.handleTop)
	api.GET("/distribution", s.handleDistribution)
	api.GET("/barangay/:pcode", s.handleBarangay)

	// operational endpoints
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	s.e = e
	return s, nil
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requireAuth guards the data endpoints: without an authenticated session
// the dataset is not reachable, whatever URL was requested.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		st := s.sessions.get(s.sessionID(c))
		if !st.Authenticated {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}
		return next(c)
	}
}
