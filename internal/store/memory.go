package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkravets/upkeep/internal/forms"
)

// MemoryStore is an in-memory implementation of the Store interface backed
// by maps and an RWMutex. Suitable for development, testing, and
// single-instance deployments.
type MemoryStore struct {
	mu          sync.RWMutex
	templates   map[string]forms.Template
	submissions map[string]forms.Submission
	locations   map[string]forms.Location
	assets      map[string]forms.Asset
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		templates:   make(map[string]forms.Template),
		submissions: make(map[string]forms.Submission),
		locations:   make(map[string]forms.Location),
		assets:      make(map[string]forms.Asset),
	}
}

// --- Templates ---

func (m *MemoryStore) ListTemplates(ctx context.Context) ([]forms.Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]forms.Template, 0, len(m.templates))
	for _, t := range m.templates {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MemoryStore) GetTemplate(ctx context.Context, id string) (*forms.Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.templates[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *MemoryStore) CreateTemplate(ctx context.Context, t forms.Template) (*forms.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	t.Version = 1
	t.CreatedAt = now
	t.UpdatedAt = now
	m.templates[t.ID] = t
	return &t, nil
}

func (m *MemoryStore) UpdateTemplate(ctx context.Context, t forms.Template) (*forms.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.templates[t.ID]
	if !ok {
		return nil, ErrNotFound
	}
	t.Version = existing.Version + 1
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	m.templates[t.ID] = t
	return &t, nil
}

func (m *MemoryStore) DeleteTemplate(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.templates, id)
	return nil
}

// --- Submissions ---

func (m *MemoryStore) ListSubmissions(ctx context.Context, templateID string) ([]forms.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]forms.Submission, 0)
	for _, s := range m.submissions {
		if s.TemplateID == templateID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *MemoryStore) GetSubmission(ctx context.Context, id string) (*forms.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.submissions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) CreateSubmission(ctx context.Context, s forms.Submission) (*forms.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = time.Now().UTC()
	m.submissions[s.ID] = s
	return &s, nil
}

func (m *MemoryStore) DeleteSubmission(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.submissions, id)
	return nil
}

// --- Locations ---

func (m *MemoryStore) ListLocations(ctx context.Context) ([]forms.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]forms.Location, 0, len(m.locations))
	for _, l := range m.locations {
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MemoryStore) GetLocation(ctx context.Context, id string) (*forms.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.locations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (m *MemoryStore) CreateLocation(ctx context.Context, l forms.Location) (*forms.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	m.locations[l.ID] = l
	return &l, nil
}

func (m *MemoryStore) UpdateLocation(ctx context.Context, l forms.Location) (*forms.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.locations[l.ID]
	if !ok {
		return nil, ErrNotFound
	}
	l.CreatedAt = existing.CreatedAt
	l.UpdatedAt = time.Now().UTC()
	m.locations[l.ID] = l
	return &l, nil
}

func (m *MemoryStore) DeleteLocation(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.locations, id)
	return nil
}

// --- Assets ---

func (m *MemoryStore) ListAssets(ctx context.Context, locationID string) ([]forms.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]forms.Asset, 0, len(m.assets))
	for _, a := range m.assets {
		if locationID != "" && a.LocationID != locationID {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MemoryStore) GetAsset(ctx context.Context, id string) (*forms.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.assets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *MemoryStore) CreateAsset(ctx context.Context, a forms.Asset) (*forms.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	m.assets[a.ID] = a
	return &a, nil
}

func (m *MemoryStore) UpdateAsset(ctx context.Context, a forms.Asset) (*forms.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.assets[a.ID]
	if !ok {
		return nil, ErrNotFound
	}
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now().UTC()
	m.assets[a.ID] = a
	return &a, nil
}

func (m *MemoryStore) DeleteAsset(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.assets, id)
	return nil
}

// Ping is a no-op for MemoryStore.
func (m *MemoryStore) Ping(ctx context.Context) error { return nil }

// Close is a no-op for MemoryStore as there are no resources to release.
func (m *MemoryStore) Close() error { return nil }
