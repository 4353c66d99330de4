// Package tabletest provides an in-memory table.Accessor for tests.
package tabletest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/odyssey-erp/odyssey-shop/internal/platform/table"
	"github.com/odyssey-erp/odyssey-shop/internal/shared"
)

// Memory is a map-backed table.Accessor with the same key-range paging and
// key assignment (first key 1) as the PostgreSQL table.
type Memory[T any] struct {
	mu     sync.Mutex
	key    func(*T) *int64
	rows   map[int64]T
	nextID int64

	// Error injection
	GetErr    error
	InsertErr error
	UpdateErr error
	DeleteErr error
}

// NewMemory constructs an empty table keyed by key.
func NewMemory[T any](key func(*T) *int64) *Memory[T] {
	return &Memory[T]{key: key, rows: make(map[int64]T), nextID: 1}
}

// Seed inserts records as-is, assigning keys only to records without one.
func (m *Memory[T]) Seed(records ...T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range records {
		rec := records[i]
		id := m.key(&rec)
		if *id == 0 {
			*id = m.nextID
		}
		if *id >= m.nextID {
			m.nextID = *id + 1
		}
		m.rows[*id] = rec
	}
}

// Len reports how many rows are stored.
func (m *Memory[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// All returns every stored row ordered by key.
func (m *Memory[T]) All() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.rows[id])
	}
	return out
}

func (m *Memory[T]) GetAll(ctx context.Context, page, perPage int) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	start, end := table.KeyRange(page, perPage)
	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		if id >= start && id < end {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.rows[id])
	}
	return out, nil
}

func (m *Memory[T]) CountTotal(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return 0, m.GetErr
	}
	return len(m.rows), nil
}

func (m *Memory[T]) GetOneOrNone(ctx context.Context, id int64) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	rec, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *Memory[T]) Insert(ctx context.Context, rec *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertErr != nil {
		return m.InsertErr
	}
	id := m.key(rec)
	*id = m.nextID
	m.nextID++
	m.rows[*id] = *rec
	return nil
}

func (m *Memory[T]) Update(ctx context.Context, rec *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	id := *m.key(rec)
	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("memory: update %d: %w", id, shared.ErrNotFound)
	}
	m.rows[id] = *rec
	return nil
}

func (m *Memory[T]) Delete(ctx context.Context, rec *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	id := *m.key(rec)
	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("memory: delete %d: %w", id, shared.ErrNotFound)
	}
	delete(m.rows, id)
	return nil
}

var _ table.Accessor[struct{ ID int64 }] = (*Memory[struct{ ID int64 }])(nil)
