package pydb

import (
	"context"
	"sync"

	"github.com/csrgxtu/pydb/internal/pydb"
)

// Rows iterates over the result of a scan
type Rows struct {
	mu   *sync.Mutex
	iter pydb.Iterator
}

// Next advances to the next row. It returns false at the end of the rows or
// on error, check Err to tell the two apart.
func (r *Rows) Next(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.iter.Next(ctx)
}

func (r *Rows) Row() Row {
	return r.iter.Row()
}

func (r *Rows) Err() error {
	return r.iter.Err()
}

// All drains the remaining rows
func (r *Rows) All(ctx context.Context) ([]Row, error) {
	var rows []Row
	for r.Next(ctx) {
		rows = append(rows, r.Row())
	}
	return rows, r.Err()
}
