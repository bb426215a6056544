package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mmcdole/campus-transit/pkg/authorization"
	"github.com/mmcdole/campus-transit/pkg/logging"
)

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logging.App.Debug("Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// guard runs the route authorizer for screen before the handler. Signed-out
// users are sent to the sign-in screen; users without the role get the
// not-found view.
func (s *Server) guard(screen string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch s.portal.Navigate(screen) {
			case authorization.Allow:
				next.ServeHTTP(w, r)
			case authorization.RedirectToSignIn:
				http.Redirect(w, r, authorization.SignInPath, http.StatusSeeOther)
			default:
				s.handleNotFound(w, r)
			}
		})
	}
}
