// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "testing"

func flag(b bool) *bool { return &b }

func TestComplianceScore(t *testing.T) {
	tests := []struct {
		name    string
		company Company
		want    int
	}{
		{
			name: "all passing",
			company: Company{
				HasCIPCRegistration: flag(true),
				HasTaxClearance:     flag(true),
				HasValidBBBEE:       flag(true),
			},
			want: 100,
		},
		{
			name: "two of three",
			company: Company{
				HasCIPCRegistration: flag(true),
				HasTaxClearance:     flag(false),
				HasValidBBBEE:       flag(true),
			},
			want: 67,
		},
		{
			name: "one of three",
			company: Company{
				HasCIPCRegistration: flag(true),
				HasTaxClearance:     flag(false),
				HasValidBBBEE:       flag(false),
			},
			want: 33,
		},
		{
			name: "none passing",
			company: Company{
				HasCIPCRegistration: flag(false),
				HasTaxClearance:     flag(false),
				HasValidBBBEE:       flag(false),
			},
			want: 0,
		},
		{
			name:    "unknown flags count as failing",
			company: Company{HasTaxClearance: flag(true)},
			want:    33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.company.ComplianceScore(); got != tt.want {
				t.Errorf("ComplianceScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTurnoverDefaultsToZero(t *testing.T) {
	var c Company
	if got := c.Turnover(); got != 0 {
		t.Errorf("Turnover() = %v, want 0 when unset", got)
	}

	v := 250000.0
	c.TurnoverEstimated = &v
	if got := c.Turnover(); got != v {
		t.Errorf("Turnover() = %v, want %v", got, v)
	}
}

func TestCheckInQuarter(t *testing.T) {
	for month, want := range map[int]int{1: 1, 3: 1, 4: 2, 6: 2, 7: 3, 9: 3, 10: 4, 12: 4} {
		c := CheckIn{Month: month}
		if got := c.Quarter(); got != want {
			t.Errorf("Quarter() for month %d = %d, want %d", month, got, want)
		}
	}
}

func TestCategoryTypeHierarchy(t *testing.T) {
	if pt, ok := CategoryProgram.ParentType(); !ok || pt != CategoryClient {
		t.Errorf("program parent = %q/%v, want client", pt, ok)
	}
	if pt, ok := CategoryCohort.ParentType(); !ok || pt != CategoryProgram {
		t.Errorf("cohort parent = %q/%v, want program", pt, ok)
	}
	if _, ok := CategoryClient.ParentType(); ok {
		t.Error("client reported a parent type; clients are roots")
	}
	if CategoryType("department").Valid() {
		t.Error("unknown category type reported valid")
	}
}
