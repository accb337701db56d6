// Command pydb-seed fills a database file with generated rows.
package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/multierr"

	"github.com/csrgxtu/pydb"
)

var CLI struct {
	Database string `arg:"" optional:"" default:"mydb.db" help:"Database file, created when missing" type:"path"`
	Count    int    `name:"count" short:"n" default:"100" help:"Number of rows to insert"`
	LogLevel string `name:"log-level" env:"LOG_LEVEL" default:"info" enum:"debug,info,warn,error" help:"Log level"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("pydb-seed"),
		kong.Description("Insert generated rows into a pydb database"),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(run(context.Background()))
}

func run(ctx context.Context) (err error) {
	config := pydb.DefaultConnectionConfig(CLI.Database)
	if err := config.SetLogLevel(CLI.LogLevel); err != nil {
		return err
	}

	aDB, err := pydb.OpenWithConfig(ctx, config)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, aDB.Close(ctx))
	}()

	var (
		logger   = aDB.Logger().Sugar()
		nextID   = int64(aDB.NumRows()) + 1
		inserted int
	)
	for ; inserted < CLI.Count; inserted++ {
		aRow := pydb.Row{
			ID:       nextID + int64(inserted),
			Username: truncate(gofakeit.Username(), 32),
			Email:    truncate(gofakeit.Email(), 255),
		}
		if err := aDB.Insert(ctx, aRow); err != nil {
			if errors.Is(err, pydb.ErrTableFull) {
				logger.With("inserted", inserted).Warn("table is full")
				break
			}
			return fmt.Errorf("insert %s: %w", aRow, err)
		}
	}

	logger.With(
		"inserted", inserted,
		"total", aDB.NumRows(),
	).Info("seeded database")

	return nil
}

func truncate(s string, size int) string {
	s = strings.TrimSpace(s)
	if len(s) > size {
		return s[:size]
	}
	return s
}
