// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"math"
	"time"
)

// MembershipStatus tracks a company's progress within a cohort.
type MembershipStatus string

// Possible membership statuses. A membership may also carry no status at
// all, in which case the company counts toward totals but not toward any
// status breakdown bucket.
const (
	MembershipActive    MembershipStatus = "active"
	MembershipCompleted MembershipStatus = "completed"
	MembershipWithdrawn MembershipStatus = "withdrawn"
)

// Company is a participating business entity. Companies are attached to,
// not owned by, cohorts: the relationship is many-to-many through the
// cohort_companies join table.
type Company struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	RegistrationNumber string  `json:"registration_number"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	ContactPerson      string  `json:"contact_person"`
	City               string  `json:"city"`
	BusinessLocation   string  `json:"business_location"`
	Description        string  `json:"description"`
	TurnoverEstimated  *float64 `json:"turnover_estimated"`

	// Compliance flags are nullable: nil means the check has never been
	// recorded, which scores the same as a failed check.
	HasCIPCRegistration *bool `json:"has_cipc_registration"`
	HasTaxClearance     *bool `json:"has_tax_clearance"`
	HasValidBBBEE       *bool `json:"has_valid_bbbee"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Virtual field populated when listed through a cohort membership.
	MembershipStatus *MembershipStatus `json:"membership_status,omitempty"`
}

// ComplianceScore returns the percentage of the three compliance checks
// that are recorded as passing, rounded to the nearest whole percent.
// A company with no checks recorded scores 0.
func (c *Company) ComplianceScore() int {
	passed := 0
	for _, flag := range []*bool{c.HasCIPCRegistration, c.HasTaxClearance, c.HasValidBBBEE} {
		if flag != nil && *flag {
			passed++
		}
	}
	return int(math.Round(float64(passed) / 3 * 100))
}

// Turnover returns the estimated turnover, treating a missing value as 0.
func (c *Company) Turnover() float64 {
	if c.TurnoverEstimated == nil {
		return 0
	}
	return *c.TurnoverEstimated
}
