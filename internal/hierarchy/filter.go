// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hierarchy

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"growthdesk/internal/models"
)

// SortKey selects the comparison applied by SortCompanies.
type SortKey string

// Supported sort keys.
const (
	SortByName       SortKey = "name"
	SortByLocation   SortKey = "location"
	SortByTurnover   SortKey = "turnover"
	SortByCompliance SortKey = "compliance"
)

// SortDirection controls the ordering of SortCompanies.
type SortDirection string

// Sort directions. Descending negates the ascending comparator uniformly
// for every key.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// FilterCompanies returns the companies whose name, email, contact person,
// city, business location, registration number, or description contains
// the query, case-insensitively. Any single matching field qualifies a
// company. An empty query returns the input unchanged.
func FilterCompanies(companies []models.Company, query string) []models.Company {
	if query == "" {
		return companies
	}

	needle := strings.ToLower(query)
	var out []models.Company
	for _, c := range companies {
		for _, field := range []string{
			c.Name, c.Email, c.ContactPerson, c.City,
			c.BusinessLocation, c.RegistrationNumber, c.Description,
		} {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// SortCompanies returns a sorted copy of companies. Name and location use
// locale-aware string comparison; turnover compares numerically with
// missing values as 0; compliance compares the derived compliance score.
// The sort is stable, so ties keep their original relative order.
func SortCompanies(companies []models.Company, key SortKey, dir SortDirection) []models.Company {
	out := make([]models.Company, len(companies))
	copy(out, companies)

	cmp := comparator(key)

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(&out[i], &out[j])
		if dir == SortDesc {
			c = -c
		}
		return c < 0
	})
	return out
}

// comparator returns the ascending comparison for a sort key. Unknown
// keys fall back to name.
func comparator(key SortKey) func(a, b *models.Company) int {
	switch key {
	case SortByTurnover:
		return func(a, b *models.Company) int {
			return compareFloat(a.Turnover(), b.Turnover())
		}
	case SortByCompliance:
		return func(a, b *models.Company) int {
			return a.ComplianceScore() - b.ComplianceScore()
		}
	case SortByLocation:
		coll := collate.New(language.English, collate.Loose)
		return func(a, b *models.Company) int {
			return coll.CompareString(a.BusinessLocation, b.BusinessLocation)
		}
	default:
		coll := collate.New(language.English, collate.Loose)
		return func(a, b *models.Company) int {
			return coll.CompareString(a.Name, b.Name)
		}
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
