// Command pydb is an interactive shell over a single table database file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/csrgxtu/pydb"
	"github.com/csrgxtu/pydb/internal/repl"
)

var CLI struct {
	Database string `arg:"" optional:"" default:"mydb.db" help:"Database file, created when missing" type:"path"`
	LogLevel string `name:"log-level" env:"LOG_LEVEL" default:"warn" enum:"debug,info,warn,error" help:"Log level"`
	Format   string `name:"format" default:"tuple" enum:"tuple,table" help:"Output format for selected rows"`
	Strict   bool   `name:"strict" help:"Refuse a database file that ends with a partial row"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("pydb"),
		kong.Description("A single table record store with an interactive shell"),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(run())
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := pydb.DefaultConnectionConfig(CLI.Database)
	if err := config.SetLogLevel(CLI.LogLevel); err != nil {
		return err
	}
	config.StrictLength = CLI.Strict

	aDB, err := pydb.OpenWithConfig(ctx, config)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- repl.New(aDB, os.Stdout, repl.Format(CLI.Format)).Run(ctx, os.Stdin)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-done:
		return err
	case sig := <-sigChan:
		aDB.Logger().Sugar().With("signal", sig.String()).Info("closing database")
		cancel()
		// the loop may be blocked reading stdin, close from here
		if err := aDB.Close(context.Background()); err != nil {
			return fmt.Errorf("error closing database: %w", err)
		}
		return nil
	}
}
