// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"growthdesk/internal/models"
)

// withStats guarantees presence-or-zero statistics at the presentation
// boundary: an absent record renders as zeros, never as unknown.
func withStats(categories []models.Category) []models.Category {
	for i := range categories {
		if categories[i].Stats == nil {
			categories[i].Stats = &models.CategoryStatistics{}
		}
	}
	return categories
}

// CategoriesList returns all categories of one type (default client),
// annotated with statistics.
func (a *API) CategoriesList(w http.ResponseWriter, r *http.Request) {
	ctype := models.CategoryType(r.URL.Query().Get("type"))
	if ctype == "" {
		ctype = models.CategoryClient
	}
	if !ctype.Valid() {
		writeError(w, http.StatusBadRequest, "unknown category type")
		return
	}

	categories, err := a.repo.ListCategories(r.Context(), ctype)
	if err != nil {
		slog.Error("list categories failed", "type", ctype, "error", err)
		writeError(w, http.StatusBadGateway, "could not load categories")
		return
	}

	annotated := a.aggregator.Annotate(r.Context(), categories)
	writeJSON(w, http.StatusOK, map[string]any{"categories": withStats(annotated)})
}

// CategoryChildren returns the direct children of a category, annotated
// with statistics. An optional type query restricts the result.
func (a *API) CategoryChildren(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	ctype := models.CategoryType(r.URL.Query().Get("type"))
	if ctype != "" && !ctype.Valid() {
		writeError(w, http.StatusBadRequest, "unknown category type")
		return
	}

	children, err := a.repo.ListChildren(r.Context(), id, ctype)
	if err != nil {
		slog.Error("list children failed", "category_id", id, "error", err)
		writeError(w, http.StatusBadGateway, "could not load children")
		return
	}

	annotated := a.aggregator.Annotate(r.Context(), children)
	writeJSON(w, http.StatusOK, map[string]any{"categories": withStats(annotated)})
}

// CategoryGet returns one category with its statistics.
func (a *API) CategoryGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	category, err := a.repo.GetCategory(r.Context(), id)
	if err != nil {
		slog.Error("get category failed", "category_id", id, "error", err)
		writeError(w, http.StatusBadGateway, "could not load category")
		return
	}
	if category == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	annotated := a.aggregator.Annotate(r.Context(), []models.Category{*category})
	writeJSON(w, http.StatusOK, withStats(annotated)[0])
}

// categoryEnsureRequest is the create-or-fetch body.
type categoryEnsureRequest struct {
	Type        models.CategoryType `json:"type"`
	ParentID    *int64              `json:"parent_id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
}

// CategoryEnsure idempotently creates a category keyed on type, parent,
// and name, returning the existing node when it is already there.
func (a *API) CategoryEnsure(w http.ResponseWriter, r *http.Request) {
	var req categoryEnsureRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := a.repo.EnsureCategory(r.Context(), req.Type, req.ParentID, req.Name, req.Description)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// CategoryDelete removes a category and everything under it.
func (a *API) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	if err := a.repo.DeleteCategory(r.Context(), id); err != nil {
		slog.Error("delete category failed", "category_id", id, "error", err)
		writeError(w, http.StatusBadGateway, "could not delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
