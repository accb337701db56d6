package e2etests

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/csrgxtu/pydb"
	engine "github.com/csrgxtu/pydb/internal/pydb"
)

func (s *TestSuite) TestSession() {
	s.Run("Insert and select rows", func() {
		out := s.session(
			"insert 1 cstack foo@bar.com",
			"insert 2 bob bob@example.com",
			"select",
			"insert foo bar 1",
			".exit",
		)

		s.Contains(out, "db > Executed.\ndb > Executed.\n")
		s.Contains(out, "(1, cstack, foo@bar.com)\n(2, bob, bob@example.com)\nExecuted.\n")
		s.Contains(out, "Syntax error. Could not parse statement.\n")
	})

	s.Run("Rows are still there after restart", func() {
		out := s.session("select", ".exit")

		s.Equal("db > (1, cstack, foo@bar.com)\n(2, bob, bob@example.com)\nExecuted.\ndb > ", out)
		s.Equal(int64(2*engine.RowSize), s.fileSize())
	})

	s.Run("Append after restart", func() {
		out := s.session("insert 3 alice alice@example.com", ".exit")
		s.Equal("db > Executed.\ndb > ", out)

		s.Equal([]pydb.Row{
			{ID: 1, Username: "cstack", Email: "foo@bar.com"},
			{ID: 2, Username: "bob", Email: "bob@example.com"},
			{ID: 3, Username: "alice", Email: "alice@example.com"},
		}, s.allRows())
	})
}

func (s *TestSuite) TestFillTable() {
	ctx := context.Background()
	users := s.users(engine.MaxRows)

	for _, aUser := range users {
		s.Require().NoError(s.db.Insert(ctx, aUser))
	}

	err := s.db.Insert(ctx, pydb.Row{ID: 1, Username: "a", Email: "b"})
	s.Require().ErrorIs(err, pydb.ErrTableFull)

	s.Run("Reinitialise to force unmarshaling from disk", func() {
		s.reopen()

		s.Equal(int64(engine.MaxRows*engine.RowSize), s.fileSize())
		s.Equal(engine.MaxRows, s.db.NumRows())
		s.Equal(users, s.allRows())
	})

	s.Run("Table is still full after restart", func() {
		out := s.session("insert 1301 a b", ".exit")
		s.Equal("db > Error: Table full.\ndb > ", out)
	})
}

func (s *TestSuite) TestTruncatedTrailingRow() {
	ctx := context.Background()
	users := s.users(engine.RowsPerPage + 1)
	for _, aUser := range users {
		s.Require().NoError(s.db.Insert(ctx, aUser))
	}
	s.Require().NoError(s.db.Close(ctx))

	// simulate a crash half way through writing a row
	f, err := os.OpenFile(s.dbPath, os.O_WRONLY|os.O_APPEND, 0600)
	s.Require().NoError(err)
	_, err = f.WriteString(fmt.Sprintf("%08d%s", 99, strings.Repeat(" ", 10)))
	s.Require().NoError(err)
	s.Require().NoError(f.Close())

	s.Run("Strict open refuses the file", func() {
		_, err := pydb.Open(ctx, s.dbPath+"?log_level=error&strict=true")
		s.Require().ErrorIs(err, pydb.ErrTruncatedRow)
	})

	s.Run("Default open drops the partial row", func() {
		s.open()

		s.Equal(len(users), s.db.NumRows())
		s.Equal(users, s.allRows())

		s.reopen()
		s.Equal(int64(len(users)*engine.RowSize), s.fileSize())
	})
}
