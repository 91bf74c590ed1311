// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hierarchy

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"growthdesk/internal/models"
)

// KV is the persistence medium for the navigation context. Implementations
// exist over Valkey and in memory; the engine does not care which.
type KV interface {
	// Get returns the stored value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value string) error
}

// Field is an optional update to one navigation level. The zero value
// leaves the level untouched; use Select to pick an id and Deselect to
// clear the level explicitly.
type Field struct {
	set bool
	id  *int64
}

// Select returns a Field that sets a level to the given category id.
func Select(id int64) Field {
	return Field{set: true, id: &id}
}

// Deselect returns a Field that explicitly clears a level.
func Deselect() Field {
	return Field{set: true}
}

// Partial is a sparse navigation update. Levels whose Field is the zero
// value keep their current selection.
type Partial struct {
	ClientID  Field
	ProgramID Field
	CohortID  Field
}

// ContextStore holds the current navigation position for one session and
// enforces the cascade invariant: changing the client clears program and
// cohort, changing the program clears the cohort. Every mutation is
// written through to the injected KV and announced to subscribers.
//
// Persistence is best-effort: a KV failure is logged and swallowed, never
// surfaced, so navigation keeps working without storage.
type ContextStore struct {
	kv  KV
	key string

	mu      sync.Mutex
	current models.NavigationContext
	subs    map[int]func(models.NavigationContext)
	nextSub int
}

// NewContextStore creates a store persisted under the given KV key and
// loads any previously saved state. A load failure leaves the store empty.
func NewContextStore(ctx context.Context, kv KV, key string) *ContextStore {
	s := &ContextStore{
		kv:   kv,
		key:  key,
		subs: make(map[int]func(models.NavigationContext)),
	}

	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		slog.Warn("navigation context load failed", "key", key, "error", err)
		return s
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &s.current); err != nil {
			slog.Warn("navigation context corrupt, starting empty", "key", key, "error", err)
			s.current = models.NavigationContext{}
		}
	}
	return s
}

// Get returns the current navigation context.
func (s *ContextStore) Get() models.NavigationContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update merges the partial into the current context, applies the cascade
// invariant, persists, and notifies subscribers. Values passed alongside
// a client or program change are still cleared by the cascade.
func (s *ContextStore) Update(ctx context.Context, p Partial) {
	s.mu.Lock()

	prev := s.current

	if p.ClientID.set {
		s.current.ClientID = p.ClientID.id
	}
	if p.ProgramID.set {
		s.current.ProgramID = p.ProgramID.id
	}
	if p.CohortID.set {
		s.current.CohortID = p.CohortID.id
	}

	// Cascade: a changed client invalidates program and cohort; a changed
	// program invalidates the cohort.
	if !idEqual(prev.ClientID, s.current.ClientID) {
		s.current.ProgramID = nil
		s.current.CohortID = nil
	} else if !idEqual(prev.ProgramID, s.current.ProgramID) {
		s.current.CohortID = nil
	}

	snapshot := s.current
	s.persistLocked(ctx, snapshot)
	subs := s.subscribersLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// Clear resets all three levels and persists the empty context.
func (s *ContextStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.current = models.NavigationContext{}
	snapshot := s.current
	s.persistLocked(ctx, snapshot)
	subs := s.subscribersLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// Subscribe registers a callback invoked with a snapshot after every
// mutation. The returned function removes the subscription.
func (s *ContextStore) Subscribe(fn func(models.NavigationContext)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// persistLocked writes the context through to the KV, swallowing failures.
func (s *ContextStore) persistLocked(ctx context.Context, snapshot models.NavigationContext) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		slog.Warn("navigation context marshal failed", "key", s.key, "error", err)
		return
	}
	if err := s.kv.Set(ctx, s.key, string(payload)); err != nil {
		slog.Warn("navigation context persist failed", "key", s.key, "error", err)
	}
}

// subscribersLocked snapshots the subscriber list so callbacks run outside
// the lock.
func (s *ContextStore) subscribersLocked() []func(models.NavigationContext) {
	out := make([]func(models.NavigationContext), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func idEqual(a, b *int64) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// ContextManager hands out one ContextStore per session, creating and
// caching them lazily. Stores persist under "navctx:<session id>".
type ContextManager struct {
	kv KV

	mu     sync.Mutex
	stores map[string]*ContextStore
}

// NewContextManager creates a manager over the given KV.
func NewContextManager(kv KV) *ContextManager {
	return &ContextManager{
		kv:     kv,
		stores: make(map[string]*ContextStore),
	}
}

// ForSession returns the context store for a session id, loading persisted
// state on first use.
func (m *ContextManager) ForSession(ctx context.Context, sessionID string) *ContextStore {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[sessionID]; ok {
		return s
	}
	s := NewContextStore(ctx, m.kv, "navctx:"+sessionID)
	m.stores[sessionID] = s
	return s
}
