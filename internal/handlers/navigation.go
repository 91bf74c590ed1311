// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"growthdesk/internal/hierarchy"
	"growthdesk/internal/models"
)

// navUpdateRequest is the sparse navigation update body. Raw messages
// distinguish an absent level (untouched) from an explicit null (cleared).
type navUpdateRequest struct {
	ClientID  json.RawMessage `json:"clientId"`
	ProgramID json.RawMessage `json:"programId"`
	CohortID  json.RawMessage `json:"cohortId"`
}

// parseNavField maps a raw JSON value onto a navigation field update.
func parseNavField(raw json.RawMessage) (hierarchy.Field, error) {
	if len(raw) == 0 {
		return hierarchy.Field{}, nil
	}
	if string(raw) == "null" {
		return hierarchy.Deselect(), nil
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return hierarchy.Field{}, err
	}
	return hierarchy.Select(id), nil
}

// NavigationGet returns the caller's current navigation context.
func (a *API) NavigationGet(w http.ResponseWriter, r *http.Request) {
	store := a.contexts.ForSession(r.Context(), a.sessionID(w, r))
	writeJSON(w, http.StatusOK, store.Get())
}

// NavigationUpdate merges a sparse update into the caller's navigation
// context and returns the resulting state after cascade clearing.
func (a *API) NavigationUpdate(w http.ResponseWriter, r *http.Request) {
	var req navUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var p hierarchy.Partial
	var err error
	if p.ClientID, err = parseNavField(req.ClientID); err != nil {
		writeError(w, http.StatusBadRequest, "clientId must be a number or null")
		return
	}
	if p.ProgramID, err = parseNavField(req.ProgramID); err != nil {
		writeError(w, http.StatusBadRequest, "programId must be a number or null")
		return
	}
	if p.CohortID, err = parseNavField(req.CohortID); err != nil {
		writeError(w, http.StatusBadRequest, "cohortId must be a number or null")
		return
	}

	store := a.contexts.ForSession(r.Context(), a.sessionID(w, r))
	store.Update(r.Context(), p)
	writeJSON(w, http.StatusOK, store.Get())
}

// NavigationClear resets the caller's navigation context.
func (a *API) NavigationClear(w http.ResponseWriter, r *http.Request) {
	store := a.contexts.ForSession(r.Context(), a.sessionID(w, r))
	store.Clear(r.Context())
	writeJSON(w, http.StatusOK, store.Get())
}

// breadcrumbResponse carries a trail plus whether resolution worked; an
// unavailable trail is not an error, the client renders without it.
type breadcrumbResponse struct {
	Entries   []models.BreadcrumbEntry `json:"entries"`
	Available bool                     `json:"available"`
}

// NavigationBreadcrumb resolves the trail for the deepest selected id in
// the caller's navigation context.
func (a *API) NavigationBreadcrumb(w http.ResponseWriter, r *http.Request) {
	store := a.contexts.ForSession(r.Context(), a.sessionID(w, r))

	id, ok := store.Get().DeepestID()
	if !ok {
		writeJSON(w, http.StatusOK, breadcrumbResponse{Entries: []models.BreadcrumbEntry{}, Available: true})
		return
	}

	a.writeBreadcrumb(w, r, id)
}

// CategoryBreadcrumb resolves the trail for an explicit category id.
func (a *API) CategoryBreadcrumb(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	a.writeBreadcrumb(w, r, id)
}

func (a *API) writeBreadcrumb(w http.ResponseWriter, r *http.Request, id int64) {
	trail, err := a.breadcrumbs.Resolve(r.Context(), id)
	if errors.Is(err, hierarchy.ErrBreadcrumbUnavailable) {
		writeJSON(w, http.StatusOK, breadcrumbResponse{Available: false})
		return
	}
	writeJSON(w, http.StatusOK, breadcrumbResponse{Entries: trail, Available: true})
}
