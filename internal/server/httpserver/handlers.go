package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/klimata/riskboard/internal/common"
	"github.com/klimata/riskboard/internal/server/dataset"
	"github.com/klimata/riskboard/internal/server/session"
)

func pagePath(p session.Page) string {
	switch p {
	case session.PageSignUp:
		return "/signup"
	case session.PageDashboard:
		return "/dashboard"
	case session.PageManageAccount:
		return "/manage"
	default:
		return "/login"
	}
}

func pageTemplate(p session.Page) string {
	switch p {
	case session.PageSignUp:
		return "signup.html"
	case session.PageDashboard:
		return "dashboard.html"
	case session.PageManageAccount:
		return "manage.html"
	default:
		return "login.html"
	}
}

func pageTitle(p session.Page) string {
	switch p {
	case session.PageSignUp:
		return "Sign Up"
	case session.PageDashboard:
		return "Urban Risk Dashboard"
	case session.PageManageAccount:
		return "Manage Account"
	default:
		return "Log In"
	}
}

// renderState draws the view the state machine selected. The templates are a
// pure function of (State, Flash); no transition logic lives in them.
func (s *Server) renderState(c echo.Context, st session.State, flash session.Flash) error {
	return c.Render(http.StatusOK, pageTemplate(st.ActivePage),
		newViewData(pageTitle(st.ActivePage), st, flash))
}

// navigate is the shared GET handler: it resolves the requested page through
// the session gate's guard and either renders it or redirects to the page
// the guard allows.
func (s *Server) navigate(c echo.Context, requested session.Page) error {
	id := s.sessionID(c)
	st := s.sessions.get(id)

	resolved := st.Resolve(requested)
	if resolved != requested {
		return c.Redirect(http.StatusSeeOther, pagePath(resolved))
	}

	st.ActivePage = resolved
	s.sessions.put(id, st)
	return s.renderState(c, st, session.Flash{})
}

func (s *Server) handleIndex(c echo.Context) error {
	st := s.sessions.get(s.sessionID(c))
	return c.Redirect(http.StatusSeeOther, pagePath(st.Resolve(st.ActivePage)))
}

func (s *Server) handleLoginPage(c echo.Context) error {
	return s.navigate(c, session.PageLogin)
}

func (s *Server) handleSignUpPage(c echo.Context) error {
	return s.navigate(c, session.PageSignUp)
}

func (s *Server) handleDashboard(c echo.Context) error {
	return s.navigate(c, session.PageDashboard)
}

func (s *Server) handleManagePage(c echo.Context) error {
	id := s.sessionID(c)
	st := s.sessions.get(id)

	next, err := st.GoToManageAccount()
	if err != nil {
		// not logged in: the guard sends the client to the login page
		return c.Redirect(http.StatusSeeOther, pagePath(st.Resolve(session.PageManageAccount)))
	}

	s.sessions.put(id, next)
	return s.renderState(c, next, session.Flash{})
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (s *Server) handleLogin(c echo.Context) error {
	id := s.sessionID(c)
	st := s.sessions.get(id)

	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad form")
	}
	if form.Username == "" || form.Password == "" {
		return s.renderState(c, st, session.Flash{Level: session.FlashError, Message: "All fields are required"})
	}

	next, flash, err := st.SubmitLogin(c.Request().Context(), s.store, form.Username, form.Password)
	if err != nil {
		s.logger.Error(c.Request().Context(), "login failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "storage failure")
	}
	s.sessions.put(id, next)

	if !next.Authenticated {
		loginsTotal.WithLabelValues(resultFailure).Inc()
		return s.renderState(c, next, flash)
	}

	loginsTotal.WithLabelValues(resultSuccess).Inc()
	s.logger.Info(c.Request().Context(), "user logged in", "username", next.Username)
	return c.Redirect(http.StatusSeeOther, pagePath(next.ActivePage))
}

type signupForm struct {
	Username string `form:"username" validate:"omitempty,alphanum,max=64"`
	Password string `form:"password"`
	Confirm  string `form:"confirm"`
}

func (s *Server) handleSignUp(c echo.Context) error {
	id := s.sessionID(c)
	st := s.sessions.get(id)

	var form signupForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad form")
	}
	if err := s.validate.Struct(&form); err != nil {
		st = st.GoToSignUp()
		s.sessions.put(id, st)
		return s.renderState(c, st, session.Flash{
			Level:   session.FlashError,
			Message: "Username may only contain letters and digits (max 64)",
		})
	}

	next, flash, err := st.SubmitSignUp(c.Request().Context(), s.store, form.Username, form.Password, form.Confirm)
	if err != nil {
		s.logger.Error(c.Request().Context(), "signup failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "storage failure")
	}
	s.sessions.put(id, next)

	if flash.Level == session.FlashError {
		signupsTotal.WithLabelValues(resultFailure).Inc()
	} else {
		signupsTotal.WithLabelValues(resultSuccess).Inc()
		s.logger.Info(c.Request().Context(), "account created", "username", form.Username)
	}
	return s.renderState(c, next, flash)
}

func (s *Server) handleLogout(c echo.Context) error {
	id := s.sessionID(c)
	st := s.sessions.get(id).Logout()
	s.sessions.put(id, st)
	return c.Redirect(http.StatusSeeOther, pagePath(st.ActivePage))
}

type passwordForm struct {
	Password string `form:"password"`
	Confirm  string `form:"confirm"`
}

func (s *Server) handlePasswordChange(c echo.Context) error {
	id := s.sessionID(c)
	st := s.sessions.get(id)

	var form passwordForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad form")
	}

	next, flash, err := st.SubmitPasswordChange(c.Request().Context(), s.store, form.Password, form.Confirm)
	if err != nil {
		if errors.Is(err, common.ErrorNotAuthenticated) {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}
		s.logger.Error(c.Request().Context(), "password change failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "storage failure")
	}
	s.sessions.put(id, next)

	if flash.Level == session.FlashError {
		passwordChangesTotal.WithLabelValues(resultFailure).Inc()
	} else {
		passwordChangesTotal.WithLabelValues(resultSuccess).Inc()
	}
	return s.renderState(c, next, flash)
}

func (s *Server) handleDeleteAccount(c echo.Context) error {
	id := s.sessionID(c)
	st := s.sessions.get(id)
	username := st.Username

	next, flash, err := st.ConfirmDeleteAccount(c.Request().Context(), s.store)
	if err != nil {
		if errors.Is(err, common.ErrorNotAuthenticated) {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}
		s.logger.Error(c.Request().Context(), "account deletion failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "storage failure")
	}
	s.sessions.drop(id)
	s.sessions.put(id, next)

	accountDeletionsTotal.Inc()
	s.logger.Info(c.Request().Context(), "account deleted", "username", username)
	return s.renderState(c, next, flash)
}

// --- gated data endpoints ---

func (s *Server) handleGeoJSON(c echo.Context) error {
	return c.JSON(http.StatusOK, s.data.GeoJSON())
}

func (s *Server) handleSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, s.data.Summary())
}

func (s *Server) handleTop(c echo.Context) error {
	n := s.topN
	if v := c.QueryParam("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "n must be a positive integer")
		}
		n = parsed
	}
	return c.JSON(http.StatusOK, s.data.TopAtRisk(n))
}

func (s *Server) handleDistribution(c echo.Context) error {
	return c.JSON(http.StatusOK, s.data.RiskDistribution())
}

type barangayResponse struct {
	PCode           string                    `json:"pcode"`
	Name            string                    `json:"name"`
	RiskIndex       float64                   `json:"risk_index"`
	RiskLabel       string                    `json:"risk_label"`
	ClimateExposure float64                   `json:"climate_exposure"`
	InfraIndex      float64                   `json:"infra_index"`
	WealthIndex     float64                   `json:"wealth_index"`
	Centroid        [2]float64                `json:"centroid"` // lon, lat
	Comparison      []dataset.Metric          `json:"comparison"`
	GeoJSON         dataset.FeatureCollection `json:"geojson"`
}

func (s *Server) handleBarangay(c echo.Context) error {
	pcode := c.Param("pcode")

	r, err := s.data.ByPCode(pcode)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "unknown barangay")
	}

	comparison, err := s.data.Compare(pcode)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "unknown barangay")
	}
	fc, err := s.data.GeoJSONFor(pcode)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "unknown barangay")
	}

	centroid := r.Geometry.Centroid()
	return c.JSON(http.StatusOK, barangayResponse{
		PCode:           r.PCode,
		Name:            r.Name,
		RiskIndex:       r.RiskIndex,
		RiskLabel:       r.RiskLabel,
		ClimateExposure: r.ClimateExposure,
		InfraIndex:      r.InfraIndex,
		WealthIndex:     r.WealthIndex,
		Centroid:        [2]float64{centroid.Lon, centroid.Lat},
		Comparison:      comparison,
		GeoJSON:         fc,
	})
}
