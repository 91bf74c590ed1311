// repo_fake_test.go provides an in-memory Repository double shared by the
// engine tests. Behavior is injected per test through function fields;
// every call is recorded for assertions.
package hierarchy

import (
	"context"
	"sync"

	"growthdesk/internal/models"
)

type fakeRepo struct {
	mu sync.Mutex

	statsFn      func(id int64) (models.CategoryStatistics, error)
	breadcrumbFn func(id int64) ([]models.BreadcrumbEntry, error)
	cohortFn     func(q AvailableQuery) (CohortCompanies, error)
	attachFn     func(cohortID, companyID int64) error
	detachFn     func(cohortID, companyID int64) error

	statsCalls      []int64
	breadcrumbCalls []int64
	cohortCalls     []AvailableQuery
	attachCalls     [][2]int64
	detachCalls     [][2]int64
}

func (f *fakeRepo) ListCategories(ctx context.Context, ctype models.CategoryType) ([]models.Category, error) {
	return nil, nil
}

func (f *fakeRepo) ListChildren(ctx context.Context, parentID int64, ctype models.CategoryType) ([]models.Category, error) {
	return nil, nil
}

func (f *fakeRepo) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return nil, nil
}

func (f *fakeRepo) GetStatistics(ctx context.Context, id int64) (models.CategoryStatistics, error) {
	f.mu.Lock()
	f.statsCalls = append(f.statsCalls, id)
	fn := f.statsFn
	f.mu.Unlock()

	if fn == nil {
		return models.CategoryStatistics{}, nil
	}
	return fn(id)
}

func (f *fakeRepo) GetBreadcrumb(ctx context.Context, id int64) ([]models.BreadcrumbEntry, error) {
	f.mu.Lock()
	f.breadcrumbCalls = append(f.breadcrumbCalls, id)
	fn := f.breadcrumbFn
	f.mu.Unlock()

	if fn == nil {
		return nil, nil
	}
	return fn(id)
}

func (f *fakeRepo) ListAssignedCompanies(ctx context.Context, cohortID int64) ([]models.Company, error) {
	both, err := f.ListCohortCompanies(ctx, AvailableQuery{CohortID: cohortID})
	return both.Assigned, err
}

func (f *fakeRepo) ListAvailableCompanies(ctx context.Context, q AvailableQuery) ([]models.Company, error) {
	both, err := f.ListCohortCompanies(ctx, q)
	return both.Available, err
}

func (f *fakeRepo) ListCohortCompanies(ctx context.Context, q AvailableQuery) (CohortCompanies, error) {
	f.mu.Lock()
	f.cohortCalls = append(f.cohortCalls, q)
	fn := f.cohortFn
	f.mu.Unlock()

	if fn == nil {
		return CohortCompanies{}, nil
	}
	return fn(q)
}

func (f *fakeRepo) AttachCompany(ctx context.Context, cohortID, companyID int64) error {
	f.mu.Lock()
	f.attachCalls = append(f.attachCalls, [2]int64{cohortID, companyID})
	fn := f.attachFn
	f.mu.Unlock()

	if fn == nil {
		return nil
	}
	return fn(cohortID, companyID)
}

func (f *fakeRepo) DetachCompany(ctx context.Context, cohortID, companyID int64) error {
	f.mu.Lock()
	f.detachCalls = append(f.detachCalls, [2]int64{cohortID, companyID})
	fn := f.detachFn
	f.mu.Unlock()

	if fn == nil {
		return nil
	}
	return fn(cohortID, companyID)
}

func (f *fakeRepo) EnsureCategory(ctx context.Context, ctype models.CategoryType, parentID *int64, name, description string) (*models.Category, error) {
	return nil, nil
}

func (f *fakeRepo) recordedCohortCalls() []AvailableQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]AvailableQuery(nil), f.cohortCalls...)
}

func (f *fakeRepo) recordedAttachCalls() [][2]int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][2]int64(nil), f.attachCalls...)
}

func (f *fakeRepo) recordedStatsCalls() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.statsCalls...)
}

// memKV is an in-memory KV used to test navigation persistence.
type memKV struct {
	mu      sync.Mutex
	data    map[string]string
	failSet error
	sets    int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.failSet != nil {
		return m.failSet
	}
	m.data[key] = value
	return nil
}
