package pydb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/csrgxtu/pydb/internal/pkg/logging"
)

//go:generate mockery --name=Pager --structname=MockPager --inpackage --case=snake --testonly

var (
	gen        = newDataGen(uint64(time.Now().Unix()))
	testLogger *zap.Logger
)

func init() {
	var err error
	testLogger, err = logging.FromEnv("error")
	if err != nil {
		panic(err)
	}
}

type dataGen struct {
	*gofakeit.Faker
}

func newDataGen(seed uint64) *dataGen {
	g := dataGen{
		Faker: gofakeit.New(seed),
	}

	return &g
}

func (g *dataGen) Row() Row {
	return Row{
		ID:       int64(g.IntRange(1, MaxID)),
		Username: truncate(g.Username(), UsernameSize),
		Email:    truncate(g.Email(), EmailSize),
	}
}

// Rows generates rows with ids 1..number so they are easy to tell apart
func (g *dataGen) Rows(number int) []Row {
	rows := make([]Row, 0, number)
	for i := range number {
		aRow := g.Row()
		aRow.ID = int64(i + 1)
		rows = append(rows, aRow)
	}
	return rows
}

func truncate(value string, size int) string {
	if len(value) > size {
		return value[:size]
	}
	return value
}

func testDBPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "test.db")
}

func openTestTable(t *testing.T, path string, opts ...TableOption) *Table {
	aTable, err := OpenTable(context.Background(), testLogger, path, opts...)
	require.NoError(t, err)
	return aTable
}

func insertRows(t *testing.T, aTable *Table, rows []Row) {
	ctx := context.Background()
	for _, aRow := range rows {
		require.NoError(t, aTable.Insert(ctx, aRow))
	}
}

func scanRows(t *testing.T, aTable *Table) []Row {
	anIterator := aTable.Scan(context.Background())
	rows, err := anIterator.Collect(context.Background())
	require.NoError(t, err)
	return rows
}

func resetMock(aMock *mock.Mock) {
	aMock.ExpectedCalls = nil
	aMock.Calls = nil
}
