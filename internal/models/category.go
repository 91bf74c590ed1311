// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// CategoryType identifies the level of a node in the grouping hierarchy.
type CategoryType string

// The three levels of the hierarchy, top-down. A program's parent must be
// a client and a cohort's parent must be a program; clients have no parent.
const (
	CategoryClient  CategoryType = "client"
	CategoryProgram CategoryType = "program"
	CategoryCohort  CategoryType = "cohort"
)

// Valid reports whether t is one of the three known category types.
func (t CategoryType) Valid() bool {
	return t == CategoryClient || t == CategoryProgram || t == CategoryCohort
}

// ParentType returns the category type a node of type t must have as its
// parent, and false for clients, which are roots.
func (t CategoryType) ParentType() (CategoryType, bool) {
	switch t {
	case CategoryProgram:
		return CategoryClient, true
	case CategoryCohort:
		return CategoryProgram, true
	}
	return "", false
}

// Category represents a Client, Program, or Cohort node in the hierarchy.
// Companies attach to cohort-type categories only.
type Category struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Type        CategoryType `json:"type"`
	ParentID    *int64       `json:"parent_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Virtual fields populated by store methods.
	Depth int                 `json:"depth"`
	Stats *CategoryStatistics `json:"stats,omitempty"`
}

// CategoryStatistics is a derived, non-persisted aggregate attached to a
// category for display. Only the counts relevant to the node's level are
// populated. The zero value is the "empty record" substituted when a
// statistics lookup fails; callers render its fields as zeros.
type CategoryStatistics struct {
	ProgramsCount  int `json:"programs_count"`
	CohortsCount   int `json:"cohorts_count"`
	CompaniesCount int `json:"companies_count"`

	// Mutually exclusive status breakdown over the companies reachable
	// under the node. Companies without a status appear in the total only,
	// so the breakdown sums to at most CompaniesCount.
	ActiveCompanies    int `json:"active_companies"`
	CompletedCompanies int `json:"completed_companies"`
	WithdrawnCompanies int `json:"withdrawn_companies"`
}

// BreadcrumbEntry is one element of an ancestor trail, root first.
type BreadcrumbEntry struct {
	ID    int64        `json:"id"`
	Name  string       `json:"name"`
	Type  CategoryType `json:"type"`
	Depth int          `json:"depth"`
}
