// Package api exposes the resource controllers over HTTP.
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jbweber/homelab/cornerstone/internal/resources"
)

// API holds the controllers served under /api/v0
type API struct {
	stores      resources.Stores
	controllers resources.Controllers
	logger      *slog.Logger
}

// New creates an API. A nil logger means slog.Default().
func New(stores resources.Stores, controllers resources.Controllers, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{stores: stores, controllers: controllers, logger: logger}
}

// Router returns a chi router with request logging and panic recovery.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	a.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers all API endpoints to the given chi router.
func (a *API) RegisterRoutes(r chi.Router) {
	// Health check endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if _, err := fmt.Fprintln(w, "Cornerstone web service is running!"); err != nil {
			a.logger.Warn("failed to write response", "error", err)
		}
	})

	r.Route("/api/v0", func(r chi.Router) {
		r.Route("/machines", func(r chi.Router) {
			r.Get("/name/{name}", a.findMachineHandler("name"))
			r.Get("/ipv4/{ipv4}", a.findMachineHandler("ipv4"))
			Mount[resources.Machine, int64](r, a.controllers.Machines, a.logger)
		})
		r.Route("/sshkeys", func(r chi.Router) {
			Mount[resources.SSHKey, int64](r, a.controllers.SSHKeys, a.logger)
		})
		r.Route("/networks", func(r chi.Router) {
			Mount[resources.Network, int64](r, a.controllers.Networks, a.logger)
		})
		r.Route("/dhcpranges", func(r chi.Router) {
			Mount[resources.DHCPRange, int64](r, a.controllers.DHCPRanges, a.logger)
		})
	})
}

// findMachineHandler handles GET /api/v0/machines/{field}/{value} for the
// machine's natural keys.
func (a *API) findMachineHandler(field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		machine, err := resources.FindMachine(r.Context(), a.stores, field, chi.URLParam(r, field))
		if err != nil {
			writeError(w, r, a.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, machine, a.logger)
	}
}
