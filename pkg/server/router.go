package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mmcdole/campus-transit/pkg/authorization"
)

// Handler builds the router
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.countRequests)
	r.Use(s.logRequests)

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	r.Get("/", s.handleLanding)
	r.Get(authorization.UnauthorizedPath, s.handleNotFound)
	r.Get("/session", s.handleSession)
	r.Get("/screens", s.handleScreens)

	r.Route(authorization.SignInPath, func(r chi.Router) {
		r.Get("/", s.handleScreen(authorization.ScreenSignIn))
		r.Post("/", s.handleSignIn)
	})
	r.Route("/signup", func(r chi.Router) {
		r.Get("/", s.handleScreen(authorization.ScreenSignUp))
		r.Post("/", s.handleSignUp)
	})
	r.Post("/signout", s.handleSignOut)

	r.With(s.guard(authorization.ScreenDashboard)).Get("/dashboard", s.handleDashboard)
	r.With(s.guard(authorization.ScreenBusDetails)).Get("/bus/{scheduleID}", s.handleBusDetails)

	r.Route("/admin", func(r chi.Router) {
		r.With(s.guard(authorization.ScreenAdminBuses)).Get("/buses", s.handleAdminBuses)
		r.With(s.guard(authorization.ScreenAdminRoutes)).Get("/routes", s.handleAdminRoutes)
		r.With(s.guard(authorization.ScreenAdminSchedules)).Get("/schedules", s.handleAdminSchedules)
		r.With(s.guard(authorization.ScreenAdminDrivers)).Get("/drivers", s.handleAdminDrivers)
	})

	return r
}
