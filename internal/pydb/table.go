package pydb

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Table struct {
	logger  *zap.Logger
	pager   Pager
	numRows uint32
	// trailing bytes of a partial row found at the end of the file on open
	fragment     int64
	strictLength bool
	err          error // fatal error that made the table unusable
	closed       bool
}

// OpenTable opens the table stored in the file at path
func OpenTable(ctx context.Context, logger *zap.Logger, path string, opts ...TableOption) (*Table, error) {
	aPager, err := OpenPager(logger, path)
	if err != nil {
		return nil, err
	}

	aTable, err := NewTable(ctx, logger, aPager, opts...)
	if err != nil {
		return nil, multierr.Append(err, aPager.Close())
	}

	return aTable, nil
}

func NewTable(ctx context.Context, logger *zap.Logger, aPager Pager, opts ...TableOption) (*Table, error) {
	aTable := &Table{
		logger: logger,
		pager:  aPager,
	}

	for _, opt := range opts {
		opt(aTable)
	}

	var (
		fileSize = aPager.FileSize()
		numRows  = fileSize / RowSize
		fragment = fileSize % RowSize
	)

	if numRows > MaxRows {
		return nil, fmt.Errorf("%w: file holds %d rows, table limit is %d", ErrPageOutOfBounds, numRows, MaxRows)
	}

	if fragment != 0 {
		if aTable.strictLength {
			return nil, fmt.Errorf("%w: %d trailing bytes after %d rows", ErrTruncatedRow, fragment, numRows)
		}
		logger.Sugar().With(
			"file_size", fileSize,
			"num_rows", numRows,
			"trailing_bytes", fragment,
		).Warn("database file ends with a truncated row, ignoring it")
		aTable.fragment = fragment
	}

	aTable.numRows = uint32(numRows)

	logger.Sugar().With(
		"file_size", fileSize,
		"num_rows", numRows,
	).Debug("opened table")

	return aTable, nil
}

func (t *Table) NumRows() uint32 {
	return t.numRows
}

// RowSlot maps a logical row number to its page and byte offset within the page
func (t *Table) RowSlot(rowNum uint32) (PageIndex, uint32) {
	pageIdx := PageIndex(rowNum / RowsPerPage)
	offset := (rowNum % RowsPerPage) * RowSize
	return pageIdx, offset
}

// Insert appends a row after the last row of the table
func (t *Table) Insert(ctx context.Context, aRow Row) error {
	if err := t.usable(); err != nil {
		return err
	}

	if t.numRows >= MaxRows {
		return ErrTableFull
	}

	if err := aRow.Validate(); err != nil {
		return err
	}

	aCursor := TableEnd(t)
	slot, err := aCursor.slot(ctx)
	if err != nil {
		return t.fail(err)
	}

	if err := aRow.Marshal(slot); err != nil {
		return err
	}
	t.numRows += 1

	return nil
}

// Scan returns an iterator over all rows in insertion order. Every call
// starts from the first row.
func (t *Table) Scan(ctx context.Context) Iterator {
	if err := t.usable(); err != nil {
		return NewIterator(func(ctx context.Context) (Row, error) {
			return Row{}, err
		})
	}

	aCursor := TableStart(t)

	return NewIterator(func(ctx context.Context) (Row, error) {
		if err := t.usable(); err != nil {
			return Row{}, err
		}
		if aCursor.EndOfTable {
			return Row{}, ErrNoMoreRows
		}

		aRow, err := aCursor.fetchRow(ctx)
		if err != nil {
			return Row{}, t.fail(err)
		}
		aCursor.Advance()

		return aRow, nil
	})
}

// Close flushes all cached pages holding rows and closes the file. Full
// pages are written whole, the last partial page only up to its last row.
func (t *Table) Close(ctx context.Context) error {
	if t.closed {
		return nil
	}
	t.closed = true

	var (
		err       error
		fullPages = PageIndex(t.numRows / RowsPerPage)
		remainder = int(t.numRows % RowsPerPage)
	)

	for pageIdx := PageIndex(0); pageIdx < fullPages; pageIdx++ {
		if !t.pager.Loaded(pageIdx) {
			continue
		}
		err = multierr.Append(err, t.flush(ctx, pageIdx, UsablePageSize))
	}

	if remainder > 0 && t.pager.Loaded(fullPages) {
		err = multierr.Append(err, t.flush(ctx, fullPages, remainder*RowSize))
	}

	// Only drop the trailing fragment once every row is safely on disk,
	// truncating a short file would extend it with zeroed slots.
	if t.fragment > 0 && err == nil {
		size := int64(t.numRows) * RowSize
		if truncErr := t.pager.Truncate(ctx, size); truncErr != nil {
			err = multierr.Append(err, truncErr)
		} else {
			t.logger.Sugar().With(
				"file_size", size,
				"dropped_bytes", t.fragment,
			).Info("truncated partial row at the end of database file")
		}
	}

	err = multierr.Append(err, t.pager.Close())

	t.logger.Sugar().With(
		"num_rows", int(t.numRows),
		"error", err,
	).Debug("closed table")

	return err
}

func (t *Table) flush(ctx context.Context, pageIdx PageIndex, size int) error {
	if err := t.pager.Flush(ctx, pageIdx, size); err != nil {
		t.logger.Sugar().With(
			"page_index", int(pageIdx),
			"bytes", size,
			"error", err,
		).Error("failed to flush page")
		return err
	}
	return nil
}

func (t *Table) usable() error {
	if t.closed {
		return ErrTableClosed
	}
	if t.err != nil {
		return fmt.Errorf("%w: %w", ErrTableUnusable, t.err)
	}
	return nil
}

// fail remembers fatal errors so the table refuses further work
func (t *Table) fail(err error) error {
	if IsFatal(err) && t.err == nil {
		t.err = err
		t.logger.Sugar().With(
			"error", err,
		).Error("table is unusable")
	}
	return err
}
