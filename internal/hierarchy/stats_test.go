// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hierarchy

import (
	"context"
	"errors"
	"testing"

	"growthdesk/internal/models"
)

func TestStatsAggregator_IndexAlignedWithFailures(t *testing.T) {
	repo := &fakeRepo{
		statsFn: func(id int64) (models.CategoryStatistics, error) {
			if id == 2 {
				return models.CategoryStatistics{}, errors.New("node unreachable")
			}
			return models.CategoryStatistics{CompaniesCount: int(id) * 10}, nil
		},
	}

	input := []models.Category{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}
	out := NewStatsAggregator(repo).Annotate(context.Background(), input)

	if len(out) != 3 {
		t.Fatalf("got %d categories, want 3", len(out))
	}

	// Results stay zipped to their source position regardless of the
	// completion order of the underlying requests.
	for i, want := range []int64{1, 2, 3} {
		if out[i].ID != want {
			t.Errorf("out[%d].ID = %d, want %d", i, out[i].ID, want)
		}
		if out[i].Stats == nil {
			t.Fatalf("out[%d].Stats is nil", i)
		}
	}
	if out[0].Stats.CompaniesCount != 10 || out[2].Stats.CompaniesCount != 30 {
		t.Errorf("successful stats wrong: %+v, %+v", out[0].Stats, out[2].Stats)
	}

	// The failed node gets the empty record, not an abort.
	if *out[1].Stats != (models.CategoryStatistics{}) {
		t.Errorf("failed node stats = %+v, want empty record", out[1].Stats)
	}

	if calls := repo.recordedStatsCalls(); len(calls) != 3 {
		t.Errorf("issued %d statistics requests, want 3", len(calls))
	}
}

func TestStatsAggregator_EmptyInputIssuesNoRequests(t *testing.T) {
	repo := &fakeRepo{}

	out := NewStatsAggregator(repo).Annotate(context.Background(), nil)
	if out == nil || len(out) != 0 {
		t.Errorf("Annotate(nil) = %v, want empty non-nil list", out)
	}
	if calls := repo.recordedStatsCalls(); len(calls) != 0 {
		t.Errorf("issued %d statistics requests, want 0", len(calls))
	}
}

func TestStatsAggregator_InputNotMutated(t *testing.T) {
	repo := &fakeRepo{}
	input := []models.Category{{ID: 1}}

	out := NewStatsAggregator(repo).Annotate(context.Background(), input)
	if input[0].Stats != nil {
		t.Error("Annotate mutated its input")
	}
	if out[0].Stats == nil {
		t.Error("output missing stats")
	}
}
