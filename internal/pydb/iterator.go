package pydb

import (
	"context"
	"errors"
)

var ErrNoMoreRows = errors.New("no more rows")

type Iterator struct {
	rowFunc func(ctx context.Context) (Row, error)
	nextRow Row
	end     bool
	err     error
}

// NewIterator wraps a row producer. The producer signals the end of rows
// by returning ErrNoMoreRows.
func NewIterator(rowFunc func(ctx context.Context) (Row, error)) Iterator {
	return Iterator{
		rowFunc: rowFunc,
	}
}

func (i *Iterator) Row() Row {
	return i.nextRow
}

func (i *Iterator) Next(ctx context.Context) bool {
	if i.err != nil || i.end || i.rowFunc == nil {
		return false
	}
	aRow, err := i.rowFunc(ctx)
	if err != nil {
		if errors.Is(err, ErrNoMoreRows) {
			i.end = true
			return false
		}
		i.err = err
		return false
	}
	i.nextRow = aRow
	return true
}

func (i *Iterator) Err() error {
	return i.err
}

// Collect drains the iterator
func (i *Iterator) Collect(ctx context.Context) ([]Row, error) {
	var rows []Row
	for i.Next(ctx) {
		rows = append(rows, i.Row())
	}
	return rows, i.Err()
}
