package memory

import (
	"sync"

	"stayseed/internal/domain"
)

// Tables is an in-memory, append-only row store keyed by table name.
type Tables struct {
	mu   sync.RWMutex
	rows map[string][]domain.Accommodation
}

func New() *Tables {
	return &Tables{rows: map[string][]domain.Accommodation{}}
}

// Insert appends rows to table and returns the table size afterwards.
func (t *Tables) Insert(table string, rows []domain.Accommodation) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[table] = append(t.rows[table], rows...)
	return len(t.rows[table])
}

// List returns a copy of the rows in table, in insertion order.
func (t *Tables) List(table string) []domain.Accommodation {
	t.mu.RLock()
	defer t.mu.RUnlock()
	src := t.rows[table]
	out := make([]domain.Accommodation, len(src))
	copy(out, src)
	return out
}

func (t *Tables) Count(table string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows[table])
}
