// Package pydb is a single table record store. Rows of (id, username,
// email) are appended to a flat file of fixed width slots through a paged
// cache and can be scanned back in insertion order.
package pydb

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/csrgxtu/pydb/internal/parser"
	"github.com/csrgxtu/pydb/internal/pkg/logging"
	"github.com/csrgxtu/pydb/internal/pydb"
)

type (
	Row           = pydb.Row
	Column        = pydb.Column
	StatementKind = pydb.StatementKind
)

const (
	Insert = pydb.Insert
	Select = pydb.Select
)

var (
	ErrTableFull     = pydb.ErrTableFull
	ErrCorruptRecord = pydb.ErrCorruptRecord
	ErrTableClosed   = pydb.ErrTableClosed
	ErrTruncatedRow  = pydb.ErrTruncatedRow
	ErrStringTooLong = pydb.ErrStringTooLong
	ErrInvalidID     = pydb.ErrInvalidID
)

// IsFatal reports whether err ended the usefulness of the database handle
func IsFatal(err error) bool {
	return pydb.IsFatal(err)
}

// DB is an open database. It serializes all operations on the table.
type DB struct {
	config   *ConnectionConfig
	logger   *zap.Logger
	database *pydb.Database
	mu       sync.Mutex
}

// Open opens the database described by a connection string
func Open(ctx context.Context, connStr string) (*DB, error) {
	config, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, err
	}
	return OpenWithConfig(ctx, config)
}

func OpenWithConfig(ctx context.Context, config *ConnectionConfig) (*DB, error) {
	level, err := logging.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}
	logger, err := logging.DefaultConfig(level).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return openWithLogger(ctx, config, logger)
}

func openWithLogger(ctx context.Context, config *ConnectionConfig, logger *zap.Logger) (*DB, error) {
	aTable, err := pydb.OpenTable(
		ctx,
		logger,
		config.FilePath,
		pydb.WithStrictLength(config.StrictLength),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{
		config:   config,
		logger:   logger,
		database: pydb.NewDatabase(logger, parser.New(), aTable),
	}, nil
}

func (d *DB) Config() ConnectionConfig {
	return *d.config
}

func (d *DB) Logger() *zap.Logger {
	return d.logger
}

func (d *DB) NumRows() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return int(d.database.Table().NumRows())
}

// Insert appends a row, ErrTableFull is returned once the table is at capacity
func (d *DB) Insert(ctx context.Context, aRow Row) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.database.Table().Insert(ctx, aRow)
}

// Scan returns all rows in insertion order
func (d *DB) Scan(ctx context.Context) *Rows {
	d.mu.Lock()
	defer d.mu.Unlock()

	return &Rows{
		mu:   &d.mu,
		iter: d.database.Table().Scan(ctx),
	}
}

// Exec parses one `insert <id> <username> <email>` or `select` statement
// and executes it.
func (d *DB) Exec(ctx context.Context, line string) (Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	stmt, err := d.database.PrepareStatement(ctx, line)
	if err != nil {
		return Result{}, err
	}

	aResult, err := d.database.ExecuteStatement(ctx, stmt)
	if err != nil {
		return Result{Kind: stmt.Kind}, err
	}

	result := Result{
		Kind:         aResult.Kind,
		RowsAffected: aResult.RowsAffected,
		Columns:      aResult.Columns,
	}
	if aResult.Kind == Select {
		result.Rows = &Rows{
			mu:   &d.mu,
			iter: aResult.Rows,
		}
	}

	return result, nil
}

// Close flushes cached pages and closes the database file
func (d *DB) Close(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.database.Close(ctx)
	_ = d.logger.Sync() // flushes buffer, if any

	return err
}
