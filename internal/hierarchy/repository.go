// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package hierarchy implements the grouping and membership engine: the
// navigation context over the Client → Program → Cohort tree, breadcrumb
// resolution, per-category statistics aggregation, the cohort membership
// picker, and company filtering/sorting. The engine talks to a Repository
// and holds no persistence of its own apart from an injected key-value
// store for the navigation context.
package hierarchy

import (
	"context"

	"growthdesk/internal/models"
)

// AvailableQuery scopes a lookup of companies that can still be attached
// to a cohort. ProgramID and ClientID optionally restrict the candidate
// pool to companies already participating under that ancestor (companies
// not yet attached anywhere always qualify). Search is an optional
// substring filter over name, contact person, registration number, and
// city.
type AvailableQuery struct {
	CohortID  int64
	ProgramID *int64
	ClientID  *int64
	Search    string
}

// CohortCompanies is the result of the combined membership query: both
// sides of the picker, produced by a single repository call so the two
// lists cannot drift apart relative to each other.
type CohortCompanies struct {
	Assigned  []models.Company
	Available []models.Company
}

// Repository is the engine's view of the category/company backend. All
// calls are fallible and non-transactional across each other; the engine
// never assumes consistency stronger than "reload after mutating".
type Repository interface {
	// ListCategories returns all categories of the given type.
	ListCategories(ctx context.Context, ctype models.CategoryType) ([]models.Category, error)

	// ListChildren returns the direct children of a category, optionally
	// restricted to one type (empty means any).
	ListChildren(ctx context.Context, parentID int64, ctype models.CategoryType) ([]models.Category, error)

	// GetCategory returns a single category, or nil if it does not exist.
	GetCategory(ctx context.Context, id int64) (*models.Category, error)

	// GetStatistics computes the display statistics for one category.
	// May fail independently per id.
	GetStatistics(ctx context.Context, id int64) (models.CategoryStatistics, error)

	// GetBreadcrumb returns the ancestor chain of a category, root first.
	GetBreadcrumb(ctx context.Context, id int64) ([]models.BreadcrumbEntry, error)

	// ListAssignedCompanies returns the companies attached to a cohort.
	ListAssignedCompanies(ctx context.Context, cohortID int64) ([]models.Company, error)

	// ListAvailableCompanies returns companies not yet attached to the
	// query's cohort, honoring its scope and search filter.
	ListAvailableCompanies(ctx context.Context, q AvailableQuery) ([]models.Company, error)

	// ListCohortCompanies returns both membership lists in one call.
	ListCohortCompanies(ctx context.Context, q AvailableQuery) (CohortCompanies, error)

	// AttachCompany links a company to a cohort. Attaching an already
	// attached company is a no-op.
	AttachCompany(ctx context.Context, cohortID, companyID int64) error

	// DetachCompany removes the link between a company and a cohort.
	DetachCompany(ctx context.Context, cohortID, companyID int64) error

	// EnsureCategory returns the category with the given type, parent and
	// name, creating it if necessary.
	EnsureCategory(ctx context.Context, ctype models.CategoryType, parentID *int64, name, description string) (*models.Category, error)
}
