// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"

	"growthdesk/internal/hierarchy"
	"growthdesk/internal/models"
)

// Repo adapts the category and company stores to the engine's Repository
// contract.
type Repo struct {
	Categories *CategoryStore
	Companies  *CompanyStore
}

// NewRepo creates the Postgres-backed engine repository.
func NewRepo(db *sql.DB) *Repo {
	return &Repo{
		Categories: NewCategoryStore(db),
		Companies:  NewCompanyStore(db),
	}
}

var _ hierarchy.Repository = (*Repo)(nil)

func (r *Repo) ListCategories(ctx context.Context, ctype models.CategoryType) ([]models.Category, error) {
	return r.Categories.List(ctx, ctype)
}

func (r *Repo) ListChildren(ctx context.Context, parentID int64, ctype models.CategoryType) ([]models.Category, error) {
	return r.Categories.ListChildren(ctx, parentID, ctype)
}

func (r *Repo) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return r.Categories.FindByID(ctx, id)
}

func (r *Repo) GetStatistics(ctx context.Context, id int64) (models.CategoryStatistics, error) {
	return r.Categories.Statistics(ctx, id)
}

func (r *Repo) GetBreadcrumb(ctx context.Context, id int64) ([]models.BreadcrumbEntry, error) {
	return r.Categories.Breadcrumb(ctx, id)
}

func (r *Repo) ListAssignedCompanies(ctx context.Context, cohortID int64) ([]models.Company, error) {
	return r.Companies.ListAssigned(ctx, cohortID)
}

func (r *Repo) ListAvailableCompanies(ctx context.Context, q hierarchy.AvailableQuery) ([]models.Company, error) {
	return r.Companies.ListAvailable(ctx, q)
}

func (r *Repo) ListCohortCompanies(ctx context.Context, q hierarchy.AvailableQuery) (hierarchy.CohortCompanies, error) {
	return r.Companies.ListCohortCompanies(ctx, q)
}

func (r *Repo) AttachCompany(ctx context.Context, cohortID, companyID int64) error {
	return r.Companies.Attach(ctx, cohortID, companyID)
}

func (r *Repo) DetachCompany(ctx context.Context, cohortID, companyID int64) error {
	return r.Companies.Detach(ctx, cohortID, companyID)
}

func (r *Repo) EnsureCategory(ctx context.Context, ctype models.CategoryType, parentID *int64, name, description string) (*models.Category, error) {
	return r.Categories.Ensure(ctx, ctype, parentID, name, description)
}

func (r *Repo) DeleteCategory(ctx context.Context, id int64) error {
	return r.Categories.Delete(ctx, id)
}

func (r *Repo) SetMembershipStatus(ctx context.Context, cohortID, companyID int64, status *models.MembershipStatus) error {
	return r.Companies.SetMembershipStatus(ctx, cohortID, companyID, status)
}
