package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mmcdole/campus-transit/pkg/authentication"
	"github.com/mmcdole/campus-transit/pkg/authorization"
	"github.com/mmcdole/campus-transit/pkg/portal"
	"github.com/mmcdole/campus-transit/pkg/registration"
	"github.com/mmcdole/campus-transit/pkg/schedule"
)

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	User          *portal.Profile `json:"user"`
}

type redirectResponse struct {
	Message  string          `json:"message,omitempty"`
	Redirect string          `json:"redirect"`
	User     *portal.Profile `json:"user,omitempty"`
}

type screenResponse struct {
	Screen authorization.Screen `json:"screen"`
	User   *portal.Profile      `json:"user"`
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.handleScreen(authorization.ScreenLanding)(w, r)
}

// handleScreen describes a public screen
func (s *Server) handleScreen(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.portal.Navigate(name) != authorization.Allow {
			s.handleNotFound(w, r)
			return
		}
		screen, _ := s.portal.Authorizer().Screen(name)
		writeJSON(w, http.StatusOK, screenResponse{
			Screen: screen,
			User:   portal.ProfileOf(s.portal.Current()),
		})
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Page not found.")
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	profile := portal.ProfileOf(s.portal.Current())
	writeJSON(w, http.StatusOK, sessionResponse{
		Authenticated: profile != nil,
		User:          profile,
	})
}

func (s *Server) handleScreens(w http.ResponseWriter, r *http.Request) {
	screens := s.portal.Authorizer().Visible(s.portal.Current())
	if screens == nil {
		screens = []authorization.Screen{}
	}
	writeJSON(w, http.StatusOK, screens)
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	sess, err := s.portal.Login(req.Username, req.Password)
	if errors.Is(err, authentication.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, redirectResponse{
		Redirect: "/dashboard",
		User:     portal.ProfileOf(sess),
	})
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req portal.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	err := s.portal.Signup(req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, redirectResponse{
			Message:  portal.SignupSuccessMessage,
			Redirect: authorization.SignInPath,
		})
	case errors.Is(err, registration.ErrPasswordMismatch), errors.Is(err, registration.ErrWeakPassword):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, registration.ErrUsernameTaken), errors.Is(err, registration.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeInternalError(w, err)
	}
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := s.portal.Logout(); err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, redirectResponse{Redirect: authorization.SignInPath})
}

// writeViewError maps errors from portal views. A denial here means the
// session changed after the guard ran.
func (s *Server) writeViewError(w http.ResponseWriter, r *http.Request, err error) {
	if d, denied := portal.IsDenied(err); denied {
		if d == authorization.RedirectToSignIn {
			http.Redirect(w, r, authorization.SignInPath, http.StatusSeeOther)
			return
		}
		s.handleNotFound(w, r)
		return
	}
	writeInternalError(w, err)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := s.portal.Dashboard()
	if err != nil {
		s.writeViewError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleBusDetails(w http.ResponseWriter, r *http.Request) {
	details, err := s.portal.BusDetails(chi.URLParam(r, "scheduleID"))
	if errors.Is(err, schedule.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Schedule not found.")
		return
	}
	if err != nil {
		s.writeViewError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleAdminBuses(w http.ResponseWriter, r *http.Request) {
	buses, err := s.portal.AdminBuses()
	if err != nil {
		s.writeViewError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, buses)
}

func (s *Server) handleAdminRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := s.portal.AdminRoutes()
	if err != nil {
		s.writeViewError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, routes)
}

func (s *Server) handleAdminSchedules(w http.ResponseWriter, r *http.Request) {
	list, err := s.portal.AdminSchedules()
	if err != nil {
		s.writeViewError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleAdminDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := s.portal.AdminDrivers()
	if err != nil {
		s.writeViewError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, drivers)
}
