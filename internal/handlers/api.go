// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON API handlers for GrowthDesk.
// Handlers receive their dependencies through the API struct and talk to
// the grouping engine rather than to the database directly.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"growthdesk/internal/hierarchy"
	"growthdesk/internal/models"
	"growthdesk/internal/session"
)

// Repository is the engine repository plus the administrative hooks the
// API exposes on top of it.
type Repository interface {
	hierarchy.Repository
	DeleteCategory(ctx context.Context, id int64) error
	SetMembershipStatus(ctx context.Context, cohortID, companyID int64, status *models.MembershipStatus) error
}

// CompanySource is the company persistence surface the API needs beyond
// the engine repository.
type CompanySource interface {
	List(ctx context.Context) ([]models.Company, error)
	FindByID(ctx context.Context, id int64) (*models.Company, error)
	Create(ctx context.Context, c *models.Company) (*models.Company, error)
}

// CheckInSource is the persistence surface of the finance handlers.
type CheckInSource interface {
	Upsert(ctx context.Context, c *models.CheckIn) (*models.CheckIn, error)
	ListByCompany(ctx context.Context, companyID int64) ([]models.CheckIn, error)
	UpsertBankStatement(ctx context.Context, b *models.BankStatement) (*models.BankStatement, error)
	ListBankStatements(ctx context.Context, companyID int64) ([]models.BankStatement, error)
}

// SessionStore identifies callers so their navigation context survives
// reloads. May be nil, in which case all callers share one context.
type SessionStore interface {
	Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, error)
}

// API groups all JSON handlers and their dependencies.
type API struct {
	repo        Repository
	companies   CompanySource
	checkIns    CheckInSource
	sessions    SessionStore
	contexts    *hierarchy.ContextManager
	aggregator  *hierarchy.StatsAggregator
	breadcrumbs *hierarchy.BreadcrumbResolver
}

// NewAPI creates the API handler group.
func NewAPI(repo Repository, companies CompanySource, checkIns CheckInSource, sessions SessionStore, contexts *hierarchy.ContextManager) *API {
	return &API{
		repo:        repo,
		companies:   companies,
		checkIns:    checkIns,
		sessions:    sessions,
		contexts:    contexts,
		aggregator:  hierarchy.NewStatsAggregator(repo),
		breadcrumbs: hierarchy.NewBreadcrumbResolver(repo),
	}
}

// sessionID resolves the caller's session. Session storage being down must
// not break navigation, so failures degrade to a shared anonymous scope.
func (a *API) sessionID(w http.ResponseWriter, r *http.Request) string {
	if a.sessions == nil {
		return "anonymous"
	}
	id, err := a.sessions.Ensure(r.Context(), w, r)
	if err != nil {
		slog.Warn("session unavailable, using anonymous scope", "error", err)
		return "anonymous"
	}
	return id
}

// writeJSON renders v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeError renders a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// urlID parses a numeric URL parameter, writing a 400 on failure.
func urlID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// decodeBody decodes a JSON request body into dst, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

var _ SessionStore = (*session.Store)(nil)
