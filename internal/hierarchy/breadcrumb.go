// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"growthdesk/internal/models"
)

// ErrBreadcrumbUnavailable is returned when the ancestor chain could not
// be resolved. Callers treat it as non-fatal and render without a trail.
var ErrBreadcrumbUnavailable = errors.New("breadcrumb unavailable")

// BreadcrumbResolver turns a leaf category id into an ordered ancestor
// trail. Chain computation is delegated to the repository in a single
// call; the resolver does not walk parent pointers itself and makes no
// retries.
type BreadcrumbResolver struct {
	repo Repository
}

// NewBreadcrumbResolver creates a resolver over the given repository.
func NewBreadcrumbResolver(repo Repository) *BreadcrumbResolver {
	return &BreadcrumbResolver{repo: repo}
}

// Resolve returns the trail for leafID, root first. Any repository
// failure is reported as ErrBreadcrumbUnavailable.
func (r *BreadcrumbResolver) Resolve(ctx context.Context, leafID int64) ([]models.BreadcrumbEntry, error) {
	trail, err := r.repo.GetBreadcrumb(ctx, leafID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBreadcrumbUnavailable, err)
	}
	return trail, nil
}

// Follow subscribes to a context store and re-resolves the trail whenever
// the deepest selected id changes. The callback receives the new trail or
// a nil trail with ErrBreadcrumbUnavailable; when the selection empties it
// receives (nil, nil). The returned function cancels the subscription.
func (r *BreadcrumbResolver) Follow(ctx context.Context, store *ContextStore, fn func([]models.BreadcrumbEntry, error)) func() {
	var mu sync.Mutex
	var last *int64

	react := func(nav models.NavigationContext) {
		mu.Lock()
		defer mu.Unlock()

		id, ok := nav.DeepestID()
		if !ok {
			if last != nil {
				last = nil
				fn(nil, nil)
			}
			return
		}
		if last != nil && *last == id {
			return
		}
		last = &id
		fn(r.Resolve(ctx, id))
	}

	react(store.Get())
	return store.Subscribe(react)
}
