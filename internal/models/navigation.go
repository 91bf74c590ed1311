// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// NavigationContext holds the currently selected position in the
// Client → Program → Cohort hierarchy. All fields are nullable; a nil
// field means no selection at that level. The JSON shape is also the
// persisted storage layout.
type NavigationContext struct {
	ClientID  *int64 `json:"clientId"`
	ProgramID *int64 `json:"programId"`
	CohortID  *int64 `json:"cohortId"`
}

// DeepestID returns the most specific selected id, cohort first, and
// false when nothing is selected.
func (n NavigationContext) DeepestID() (int64, bool) {
	switch {
	case n.CohortID != nil:
		return *n.CohortID, true
	case n.ProgramID != nil:
		return *n.ProgramID, true
	case n.ClientID != nil:
		return *n.ClientID, true
	}
	return 0, false
}
