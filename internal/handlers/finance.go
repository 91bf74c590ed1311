// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"growthdesk/internal/finance"
	"growthdesk/internal/models"
)

// checkInView pairs a stored check-in with its derived metrics.
type checkInView struct {
	models.CheckIn
	Metrics finance.Metrics `json:"metrics"`
}

// CheckInUpsert records (or corrects) one month of figures for a company.
func (a *API) CheckInUpsert(w http.ResponseWriter, r *http.Request) {
	companyID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	var checkIn models.CheckIn
	if !decodeBody(w, r, &checkIn) {
		return
	}
	checkIn.CompanyID = companyID

	stored, err := a.checkIns.Upsert(r.Context(), &checkIn)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, checkInView{CheckIn: *stored, Metrics: finance.Compute(*stored)})
}

// CheckInsList returns a company's check-ins with derived metrics, in
// chronological order.
func (a *API) CheckInsList(w http.ResponseWriter, r *http.Request) {
	companyID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	checkIns, err := a.checkIns.ListByCompany(r.Context(), companyID)
	if err != nil {
		slog.Error("list check-ins failed", "company_id", companyID, "error", err)
		writeError(w, http.StatusBadGateway, "could not load check-ins")
		return
	}

	views := make([]checkInView, len(checkIns))
	for i, c := range checkIns {
		views[i] = checkInView{CheckIn: c, Metrics: finance.Compute(c)}
	}
	writeJSON(w, http.StatusOK, map[string]any{"check_ins": views})
}

// FinanceQuarters returns the quarterly rollups for a company.
func (a *API) FinanceQuarters(w http.ResponseWriter, r *http.Request) {
	companyID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	checkIns, err := a.checkIns.ListByCompany(r.Context(), companyID)
	if err != nil {
		slog.Error("list check-ins failed", "company_id", companyID, "error", err)
		writeError(w, http.StatusBadGateway, "could not load check-ins")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"quarters": finance.QuarterlySummaries(checkIns)})
}

// FinanceVariance returns the check-in vs bank-statement variance report.
func (a *API) FinanceVariance(w http.ResponseWriter, r *http.Request) {
	companyID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	checkIns, err := a.checkIns.ListByCompany(r.Context(), companyID)
	if err != nil {
		slog.Error("list check-ins failed", "company_id", companyID, "error", err)
		writeError(w, http.StatusBadGateway, "could not load check-ins")
		return
	}

	statements, err := a.checkIns.ListBankStatements(r.Context(), companyID)
	if err != nil {
		slog.Error("list bank statements failed", "company_id", companyID, "error", err)
		writeError(w, http.StatusBadGateway, "could not load bank statements")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"variance": finance.VarianceReport(checkIns, statements)})
}

// BankStatementUpsert records one month of bank figures for a company.
func (a *API) BankStatementUpsert(w http.ResponseWriter, r *http.Request) {
	companyID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	var statement models.BankStatement
	if !decodeBody(w, r, &statement) {
		return
	}
	statement.CompanyID = companyID

	stored, err := a.checkIns.UpsertBankStatement(r.Context(), &statement)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stored)
}
