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

func demoTrail(id int64) []models.BreadcrumbEntry {
	return []models.BreadcrumbEntry{
		{ID: 1, Name: "Client", Type: models.CategoryClient, Depth: 0},
		{ID: 2, Name: "Program", Type: models.CategoryProgram, Depth: 1},
		{ID: id, Name: "Cohort", Type: models.CategoryCohort, Depth: 2},
	}
}

func TestBreadcrumbResolver_Resolve(t *testing.T) {
	repo := &fakeRepo{
		breadcrumbFn: func(id int64) ([]models.BreadcrumbEntry, error) {
			return demoTrail(id), nil
		},
	}

	trail, err := NewBreadcrumbResolver(repo).Resolve(context.Background(), 3)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(trail) != 3 || trail[0].Type != models.CategoryClient || trail[2].ID != 3 {
		t.Errorf("trail = %+v", trail)
	}
}

func TestBreadcrumbResolver_FailureIsUnavailable(t *testing.T) {
	repo := &fakeRepo{
		breadcrumbFn: func(id int64) ([]models.BreadcrumbEntry, error) {
			return nil, errors.New("backend down")
		},
	}

	_, err := NewBreadcrumbResolver(repo).Resolve(context.Background(), 3)
	if !errors.Is(err, ErrBreadcrumbUnavailable) {
		t.Fatalf("err = %v, want ErrBreadcrumbUnavailable", err)
	}

	// One attempt, no retry.
	if len(repo.breadcrumbCalls) != 1 {
		t.Errorf("issued %d requests, want 1", len(repo.breadcrumbCalls))
	}
}

func TestBreadcrumbResolver_FollowTracksDeepestID(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{
		breadcrumbFn: func(id int64) ([]models.BreadcrumbEntry, error) {
			return demoTrail(id), nil
		},
	}
	store := NewContextStore(ctx, newMemKV(), "navctx:test")

	var trails [][]models.BreadcrumbEntry
	cancel := NewBreadcrumbResolver(repo).Follow(ctx, store, func(trail []models.BreadcrumbEntry, err error) {
		trails = append(trails, trail)
	})
	defer cancel()

	// Empty selection on attach: no resolution yet.
	if len(repo.breadcrumbCalls) != 0 {
		t.Fatalf("resolved with empty selection: %v", repo.breadcrumbCalls)
	}

	store.Update(ctx, Partial{ClientID: Select(1)})
	store.Update(ctx, Partial{CohortID: Select(3)})
	if got := repo.breadcrumbCalls; len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("breadcrumb calls = %v, want [1 3]", got)
	}

	// A mutation that keeps the deepest id does not re-resolve.
	store.Update(ctx, Partial{CohortID: Select(3)})
	if len(repo.breadcrumbCalls) != 2 {
		t.Errorf("re-resolved for unchanged deepest id: %v", repo.breadcrumbCalls)
	}

	// Emptying the selection reports a nil trail without a request.
	store.Clear(ctx)
	if len(repo.breadcrumbCalls) != 2 {
		t.Errorf("resolved on clear: %v", repo.breadcrumbCalls)
	}
	if last := trails[len(trails)-1]; last != nil {
		t.Errorf("trail after clear = %+v, want nil", last)
	}
}
