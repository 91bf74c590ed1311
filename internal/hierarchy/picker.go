// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"growthdesk/internal/models"
)

// DefaultDebounce is the quiet period applied to picker searches before a
// reload is triggered.
const DefaultDebounce = 300 * time.Millisecond

// PickerState is the observable loading state of a Picker.
type PickerState string

// Picker states. Adding/removing are tracked separately and may overlap
// with the loaded state.
const (
	PickerIdle       PickerState = "idle"
	PickerLoading    PickerState = "loading"
	PickerLoaded     PickerState = "loaded"
	PickerLoadFailed PickerState = "load_failed"
)

// PickerScope fixes the cohort a Picker operates on, plus its ancestor
// program and client used to scope the available-companies pool.
type PickerScope struct {
	CohortID  int64
	ProgramID *int64
	ClientID  *int64
}

// PickerSnapshot is a point-in-time copy of the picker's observable state.
type PickerSnapshot struct {
	State     PickerState
	Assigned  []models.Company
	Available []models.Company
	Selected  []int64
	Search    string
	Adding    int
	Removing  *int64
	LoadErr   error
}

// Picker manages the dual-pane attach/detach workflow for one cohort:
// an available pane with debounced search and multi-select staging, and
// an assigned pane with immediate detachment. Both panes come from a
// single combined repository query and are fully reloaded after every
// mutation; the picker never patches its lists locally.
//
// Every load carries a generation number; a response is applied only when
// it belongs to the most recently issued load, so a stale search result
// can never overwrite a newer one no matter the completion order.
type Picker struct {
	repo     Repository
	scope    PickerScope
	debounce time.Duration

	mu         sync.Mutex
	state      PickerState
	assigned   []models.Company
	available  []models.Company
	selected   map[int64]struct{}
	search     string
	generation uint64
	timer      *time.Timer
	adding     int
	removing   *int64
	loadErr    error
	listeners  []func()
}

// NewPicker creates a picker for the given scope. A zero debounce selects
// DefaultDebounce; tests pass a short one.
func NewPicker(repo Repository, scope PickerScope, debounce time.Duration) *Picker {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Picker{
		repo:     repo,
		scope:    scope,
		debounce: debounce,
		state:    PickerIdle,
		selected: make(map[int64]struct{}),
	}
}

// Load fetches both panes immediately with the current search term. Used
// when the picker opens and after every mutation.
func (p *Picker) Load(ctx context.Context) error {
	gen, q := p.beginLoad()
	return p.runLoad(ctx, gen, q)
}

// Search records a new term and restarts the debounce timer. Rapid calls
// collapse into a single reload for the final term once the quiet period
// elapses. The context is held until that reload runs, so it must outlive
// the debounce window; a context cancelled mid-window turns the reload
// into a logged failure.
func (p *Picker) Search(ctx context.Context, term string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.search = term
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.debounce, func() {
		gen, q := p.beginLoad()
		if err := p.runLoad(ctx, gen, q); err != nil {
			slog.Warn("picker search reload failed",
				"cohort_id", p.scope.CohortID,
				"term", q.Search,
				"error", err,
			)
		}
	})
}

// ToggleSelect stages or unstages a company for attachment. Purely local;
// nothing is sent to the repository until CommitAdd.
func (p *Picker) ToggleSelect(companyID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.selected[companyID]; ok {
		delete(p.selected, companyID)
	} else {
		p.selected[companyID] = struct{}{}
	}
}

// CommitAdd attaches every staged company concurrently. There is no
// atomicity across the batch: companies that attach stay attached even
// when siblings fail, and the failures are reported joined into one
// error. On settle the staged selection clears, both panes reload, and
// membership listeners fire regardless of partial failure.
func (p *Picker) CommitAdd(ctx context.Context) error {
	p.mu.Lock()
	ids := make([]int64, 0, len(p.selected))
	for id := range p.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	p.adding = len(ids)
	p.mu.Unlock()

	if len(ids) == 0 {
		return nil
	}

	var (
		g      errgroup.Group
		errsMu sync.Mutex
		errs   []error
	)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := p.repo.AttachCompany(ctx, p.scope.CohortID, id); err != nil {
				slog.Error("attach company failed",
					"cohort_id", p.scope.CohortID,
					"company_id", id,
					"error", err,
				)
				errsMu.Lock()
				errs = append(errs, fmt.Errorf("attach company %d: %w", id, err))
				errsMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	p.mu.Lock()
	p.selected = make(map[int64]struct{})
	p.adding = 0
	p.mu.Unlock()

	gen, q := p.beginLoad()
	loadErr := p.runLoad(ctx, gen, q)
	p.notifyChanged()

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return loadErr
}

// Remove detaches a single company. On failure the prior panes stay
// untouched and the error is returned without retry; on success both
// panes reload and membership listeners fire.
func (p *Picker) Remove(ctx context.Context, companyID int64) error {
	p.mu.Lock()
	id := companyID
	p.removing = &id
	p.mu.Unlock()

	err := p.repo.DetachCompany(ctx, p.scope.CohortID, companyID)

	p.mu.Lock()
	p.removing = nil
	p.mu.Unlock()

	if err != nil {
		return fmt.Errorf("detach company %d: %w", companyID, err)
	}

	gen, q := p.beginLoad()
	loadErr := p.runLoad(ctx, gen, q)
	p.notifyChanged()
	return loadErr
}

// OnMembershipChange registers a callback fired after any attach or
// detach settles.
func (p *Picker) OnMembershipChange(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Snapshot returns a copy of the observable state.
func (p *Picker) Snapshot() PickerSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	selected := make([]int64, 0, len(p.selected))
	for id := range p.selected {
		selected = append(selected, id)
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i] < selected[j] })

	return PickerSnapshot{
		State:     p.state,
		Assigned:  append([]models.Company(nil), p.assigned...),
		Available: append([]models.Company(nil), p.available...),
		Selected:  selected,
		Search:    p.search,
		Adding:    p.adding,
		Removing:  p.removing,
		LoadErr:   p.loadErr,
	}
}

// Close stops any pending debounced reload.
func (p *Picker) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// beginLoad bumps the generation and snapshots the query under the lock.
// The returned generation decides whether the eventual response may be
// applied: only the latest issued load wins.
func (p *Picker) beginLoad() (uint64, AvailableQuery) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.generation++
	p.state = PickerLoading
	q := AvailableQuery{
		CohortID:  p.scope.CohortID,
		ProgramID: p.scope.ProgramID,
		ClientID:  p.scope.ClientID,
		Search:    p.search,
	}
	return p.generation, q
}

// runLoad performs the combined query and applies the result if its
// generation is still current. Superseded responses are discarded, not
// aborted.
func (p *Picker) runLoad(ctx context.Context, gen uint64, q AvailableQuery) error {
	res, err := p.repo.ListCohortCompanies(ctx, q)

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		return nil
	}
	if err != nil {
		p.state = PickerLoadFailed
		p.loadErr = err
		return fmt.Errorf("load cohort companies: %w", err)
	}
	p.assigned = res.Assigned
	p.available = res.Available
	p.state = PickerLoaded
	p.loadErr = nil
	return nil
}

// notifyChanged fires membership listeners outside the lock.
func (p *Picker) notifyChanged() {
	p.mu.Lock()
	listeners := append([]func(){}, p.listeners...)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
