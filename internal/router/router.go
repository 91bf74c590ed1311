// Package router sets up all HTTP routes and middleware chains for the
// GrowthDesk API server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"growthdesk/internal/handlers"
	"growthdesk/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Session-scoped navigation position.
		r.Route("/navigation", func(r chi.Router) {
			r.Get("/", api.NavigationGet)
			r.Put("/", api.NavigationUpdate)
			r.Delete("/", api.NavigationClear)
			r.Get("/breadcrumb", api.NavigationBreadcrumb)
		})

		// Hierarchy nodes.
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", api.CategoriesList)
			r.Post("/", api.CategoryEnsure)
			r.Get("/{id}", api.CategoryGet)
			r.Delete("/{id}", api.CategoryDelete)
			r.Get("/{id}/children", api.CategoryChildren)
			r.Get("/{id}/breadcrumb", api.CategoryBreadcrumb)
		})

		// Cohort membership.
		r.Route("/cohorts/{id}/companies", func(r chi.Router) {
			r.Get("/", api.CohortCompanies)
			r.Post("/", api.CohortAttach)
			r.Delete("/{companyId}", api.CohortDetach)
			r.Put("/{companyId}/status", api.CohortMemberStatus)
		})

		// Companies and their financial series.
		r.Route("/companies", func(r chi.Router) {
			r.Get("/", api.CompaniesList)
			r.Post("/", api.CompanyCreate)
			r.Get("/{id}", api.CompanyGet)
			r.Put("/{id}/checkins", api.CheckInUpsert)
			r.Get("/{id}/checkins", api.CheckInsList)
			r.Get("/{id}/finance/quarters", api.FinanceQuarters)
			r.Get("/{id}/finance/variance", api.FinanceVariance)
			r.Put("/{id}/bank-statements", api.BankStatementUpsert)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
