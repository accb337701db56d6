// Package repl implements the interactive command loop on top of a pydb.DB.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/csrgxtu/pydb"
	"github.com/csrgxtu/pydb/internal/parser"
	"github.com/csrgxtu/pydb/internal/pkg/util"
	engine "github.com/csrgxtu/pydb/internal/pydb"
)

const prompt = "db > "

// Format controls how selected rows are printed
type Format string

const (
	FormatTuple Format = "tuple"
	FormatTable Format = "table"
)

type metaCommand int

const (
	Unknown metaCommand = iota + 1
	Help
	Exit
	Constants
)

func doMetaCommand(line string) metaCommand {
	switch line {
	case ".help":
		return Help
	case ".exit":
		return Exit
	case ".constants":
		return Constants
	default:
		return Unknown
	}
}

// REPL reads statements line by line, executes them and writes the outcome
type REPL struct {
	db     *pydb.DB
	out    io.Writer
	format Format
	logger *zap.Logger
}

func New(aDB *pydb.DB, out io.Writer, format Format) *REPL {
	if format == "" {
		format = FormatTuple
	}
	return &REPL{
		db:     aDB,
		out:    out,
		format: format,
		logger: aDB.Logger(),
	}
}

// Run processes input until `.exit`, end of input or a fatal error. The
// database is closed in every case. A nil return means the session ended
// cleanly, a non nil error should end the process with a failure status.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)

	for {
		if err := ctx.Err(); err != nil {
			return r.close(ctx, nil)
		}

		r.printPrompt()
		if !scanner.Scan() {
			// Print an additional line if we encountered an EOF character
			fmt.Fprintln(r.out)
			return r.close(ctx, scanner.Err())
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if exit := r.doMetaCommand(line); exit {
				return r.close(ctx, nil)
			}
			continue
		}

		if err := r.execute(ctx, line); err != nil {
			r.logger.Sugar().With("error", err).Error("fatal error, closing database")
			fmt.Fprintf(r.out, "Error: %s\n", err)
			return r.close(ctx, err)
		}
	}
}

func (r *REPL) printPrompt() {
	fmt.Fprint(r.out, prompt)
}

func (r *REPL) doMetaCommand(line string) bool {
	switch doMetaCommand(line) {
	case Help:
		fmt.Fprintln(r.out, ".help       - Show available commands")
		fmt.Fprintln(r.out, ".constants  - Show the storage layout constants")
		fmt.Fprintln(r.out, ".exit       - Flush the table to disk and exit")
		fmt.Fprintln(r.out, "insert <id> <username> <email>")
		fmt.Fprintln(r.out, "select")
	case Constants:
		fmt.Fprintln(r.out, "Constants:")
		fmt.Fprintf(r.out, "ROW_SIZE: %d\n", engine.RowSize)
		fmt.Fprintf(r.out, "PAGE_SIZE: %d\n", engine.PageSize)
		fmt.Fprintf(r.out, "ROWS_PER_PAGE: %d\n", engine.RowsPerPage)
		fmt.Fprintf(r.out, "TABLE_MAX_PAGES: %d\n", engine.MaxPages)
		fmt.Fprintf(r.out, "TABLE_MAX_ROWS: %d\n", engine.MaxRows)
	case Exit:
		return true
	case Unknown:
		fmt.Fprintf(r.out, "Unrecognized command '%s'\n", line)
	}
	return false
}

// execute runs one statement and reports its outcome. Only fatal errors are
// returned, everything else is printed and the loop carries on.
func (r *REPL) execute(ctx context.Context, line string) error {
	aResult, err := r.db.Exec(ctx, line)
	if err != nil {
		if pydb.IsFatal(err) {
			return err
		}
		fmt.Fprintln(r.out, r.message(line, err))
		return nil
	}

	if aResult.Kind == pydb.Select {
		if err := r.printRows(ctx, aResult); err != nil {
			if pydb.IsFatal(err) {
				return err
			}
			fmt.Fprintln(r.out, r.message(line, err))
			return nil
		}
	}

	fmt.Fprintln(r.out, "Executed.")
	return nil
}

func (r *REPL) printRows(ctx context.Context, aResult pydb.Result) error {
	if r.format == FormatTable {
		util.PrintTableHeader(r.out, aResult.Columns)
		defer util.PrintTableEnd(r.out, aResult.Columns)
	}

	for aResult.Rows.Next(ctx) {
		aRow := aResult.Rows.Row()
		switch r.format {
		case FormatTable:
			util.PrintTableRow(r.out, aResult.Columns, aRow.Values())
		default:
			fmt.Fprintln(r.out, aRow.String())
		}
	}
	return aResult.Rows.Err()
}

func (r *REPL) message(line string, err error) string {
	switch {
	case errors.Is(err, parser.ErrUnrecognizedStatement):
		return fmt.Sprintf("Unrecognized keyword at start of '%s'.", line)
	case errors.Is(err, parser.ErrNegativeID):
		return "ID must be positive."
	case errors.Is(err, parser.ErrIDTooLarge):
		return "ID is too large."
	case errors.Is(err, parser.ErrStringTooLong):
		return "String is too long."
	case errors.Is(err, parser.ErrSyntax):
		return "Syntax error. Could not parse statement."
	case errors.Is(err, pydb.ErrTableFull):
		return "Error: Table full."
	default:
		return fmt.Sprintf("Error: %s.", err)
	}
}

// close flushes the table even when ctx has already been cancelled
func (r *REPL) close(ctx context.Context, err error) error {
	return multierr.Append(err, r.db.Close(context.WithoutCancel(ctx)))
}
