// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"growthdesk/internal/hierarchy"
	"growthdesk/internal/models"
)

// companyView decorates a company with its derived compliance score for
// the API response.
type companyView struct {
	models.Company
	ComplianceScore int `json:"compliance_score"`
}

func companyViews(companies []models.Company) []companyView {
	out := make([]companyView, len(companies))
	for i, c := range companies {
		out[i] = companyView{Company: c, ComplianceScore: c.ComplianceScore()}
	}
	return out
}

// CompaniesList returns all companies, filtered by the q parameter and
// sorted by the sort/dir parameters.
func (a *API) CompaniesList(w http.ResponseWriter, r *http.Request) {
	companies, err := a.companies.List(r.Context())
	if err != nil {
		slog.Error("list companies failed", "error", err)
		writeError(w, http.StatusBadGateway, "could not load companies")
		return
	}

	query := r.URL.Query()
	companies = hierarchy.FilterCompanies(companies, query.Get("q"))

	if key := query.Get("sort"); key != "" {
		dir := hierarchy.SortDirection(query.Get("dir"))
		if dir != hierarchy.SortDesc {
			dir = hierarchy.SortAsc
		}
		companies = hierarchy.SortCompanies(companies, hierarchy.SortKey(key), dir)
	}

	writeJSON(w, http.StatusOK, map[string]any{"companies": companyViews(companies)})
}

// CompanyGet returns one company.
func (a *API) CompanyGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	company, err := a.companies.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("get company failed", "company_id", id, "error", err)
		writeError(w, http.StatusBadGateway, "could not load company")
		return
	}
	if company == nil {
		writeError(w, http.StatusNotFound, "company not found")
		return
	}
	writeJSON(w, http.StatusOK, companyView{Company: *company, ComplianceScore: company.ComplianceScore()})
}

// CompanyCreate registers a new company.
func (a *API) CompanyCreate(w http.ResponseWriter, r *http.Request) {
	var company models.Company
	if !decodeBody(w, r, &company) {
		return
	}
	if company.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := a.companies.Create(r.Context(), &company)
	if err != nil {
		slog.Error("create company failed", "error", err)
		writeError(w, http.StatusBadGateway, "could not create company")
		return
	}
	writeJSON(w, http.StatusCreated, companyView{Company: *created, ComplianceScore: created.ComplianceScore()})
}

// membershipQuery builds the scoped availability query from URL params.
func membershipQuery(r *http.Request, cohortID int64) hierarchy.AvailableQuery {
	q := hierarchy.AvailableQuery{
		CohortID: cohortID,
		Search:   r.URL.Query().Get("search"),
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("programId"), 10, 64); err == nil {
		q.ProgramID = &v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("clientId"), 10, 64); err == nil {
		q.ClientID = &v
	}
	return q
}

// CohortCompanies returns both membership panes for a cohort in one
// response: the assigned companies and the companies still available for
// attachment under the given scope and search.
func (a *API) CohortCompanies(w http.ResponseWriter, r *http.Request) {
	cohortID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	both, err := a.repo.ListCohortCompanies(r.Context(), membershipQuery(r, cohortID))
	if err != nil {
		slog.Error("list cohort companies failed", "cohort_id", cohortID, "error", err)
		writeError(w, http.StatusBadGateway, "could not load cohort companies")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"assigned":  companyViews(both.Assigned),
		"available": companyViews(both.Available),
	})
}

// attachRequest is the batch-attach body.
type attachRequest struct {
	CompanyIDs []int64 `json:"company_ids"`
}

// attachFailure reports one company that could not be attached.
type attachFailure struct {
	CompanyID int64  `json:"company_id"`
	Error     string `json:"error"`
}

// CohortAttach attaches a batch of companies to a cohort. The attaches
// run concurrently with no atomicity across the batch: companies that
// attach stay attached when siblings fail, and the response lists the
// failures next to the reloaded membership lists.
func (a *API) CohortAttach(w http.ResponseWriter, r *http.Request) {
	cohortID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	cohort, err := a.repo.GetCategory(r.Context(), cohortID)
	if err != nil {
		slog.Error("get cohort failed", "cohort_id", cohortID, "error", err)
		writeError(w, http.StatusBadGateway, "could not load cohort")
		return
	}
	if cohort == nil || cohort.Type != models.CategoryCohort {
		writeError(w, http.StatusNotFound, "cohort not found")
		return
	}

	var req attachRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.CompanyIDs) == 0 {
		writeError(w, http.StatusBadRequest, "company_ids is required")
		return
	}

	var (
		g        errgroup.Group
		mu       sync.Mutex
		failures []attachFailure
	)
	for _, companyID := range req.CompanyIDs {
		companyID := companyID
		g.Go(func() error {
			if err := a.repo.AttachCompany(r.Context(), cohortID, companyID); err != nil {
				slog.Error("attach company failed",
					"cohort_id", cohortID,
					"company_id", companyID,
					"error", err,
				)
				mu.Lock()
				failures = append(failures, attachFailure{CompanyID: companyID, Error: err.Error()})
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(failures, func(i, j int) bool { return failures[i].CompanyID < failures[j].CompanyID })

	// Reload after mutating: the lists in the response are the backend's
	// current truth, not a local patch.
	both, err := a.repo.ListCohortCompanies(r.Context(), membershipQuery(r, cohortID))
	if err != nil {
		slog.Error("reload cohort companies failed", "cohort_id", cohortID, "error", err)
		writeError(w, http.StatusBadGateway, "attached, but could not reload cohort companies")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"attached":  len(req.CompanyIDs) - len(failures),
		"failures":  failures,
		"assigned":  companyViews(both.Assigned),
		"available": companyViews(both.Available),
	})
}

// CohortDetach removes one company from a cohort.
func (a *API) CohortDetach(w http.ResponseWriter, r *http.Request) {
	cohortID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	companyID, ok := urlID(w, r, "companyId")
	if !ok {
		return
	}

	if err := a.repo.DetachCompany(r.Context(), cohortID, companyID); err != nil {
		slog.Error("detach company failed",
			"cohort_id", cohortID,
			"company_id", companyID,
			"error", err,
		)
		writeError(w, http.StatusBadGateway, "could not detach company")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// statusRequest carries a membership status change; null clears the status.
type statusRequest struct {
	Status *models.MembershipStatus `json:"status"`
}

// CohortMemberStatus updates the status of one membership.
func (a *API) CohortMemberStatus(w http.ResponseWriter, r *http.Request) {
	cohortID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	companyID, ok := urlID(w, r, "companyId")
	if !ok {
		return
	}

	var req statusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Status != nil {
		switch *req.Status {
		case models.MembershipActive, models.MembershipCompleted, models.MembershipWithdrawn:
		default:
			writeError(w, http.StatusBadRequest, "unknown membership status")
			return
		}
	}

	if err := a.repo.SetMembershipStatus(r.Context(), cohortID, companyID, req.Status); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
