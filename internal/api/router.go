package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soundcork/soundcork/internal/registry"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Health check
	r.Get("/health", s.handleHealth)

	// Marge routes: device-facing, local record store only
	r.Route("/marge/streaming/account/{account}", func(r chi.Router) {
		r.Get("/device/{device}/group", s.handleDeviceGroupStatus)
		r.Post("/group", s.handleLocalCreateGroup)
		r.Post("/group/{group}", s.handleLocalRenameGroup)
		r.Delete("/group/{group}", s.handleLocalDeleteGroup)
	})

	// Service routes: operator-facing, full flows including the speakers
	r.Route("/service/account/{account}", func(r chi.Router) {
		r.Get("/creategroup", s.handleCreateGroup)
		r.Get("/modgroup", s.handleModGroup)
		r.Get("/removegroup", s.handleRemoveGroup)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeStatusDoc(w, http.StatusOK, "ok")
}

// requireAccount extracts the account route parameter and verifies the
// account exists. On failure it writes the error response and returns "".
func (s *Server) requireAccount(w http.ResponseWriter, r *http.Request) string {
	account := chi.URLParam(r, "account")
	if !s.registry.AccountExists(account) {
		renderError(w, fmt.Errorf("%w: %s", registry.ErrAccountNotFound, account))
		return ""
	}
	return account
}
