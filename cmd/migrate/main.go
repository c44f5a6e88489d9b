// Command migrate applies or rolls back the embedded schema migrations.
//
//	migrate [-database-url URL] [-format plain|json] up
//	migrate [-database-url URL] down N
//	migrate [-database-url URL] version
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/jobtracker/jobtracker/internal/repository"
)

type versionOutput struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "read .env:", err)
		os.Exit(1)
	}

	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		format      = flag.String("format", "plain", "Output format for version: plain or json")
	)
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: migrate [flags] up | down N | version")
		flag.PrintDefaults()
	}
	flag.Parse()

	cmd, steps, err := parseCommand(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		flag.Usage()
		os.Exit(2)
	}
	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	m, err := repository.NewMigrator(*databaseURL, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "prepare migrations:", err)
		os.Exit(1)
	}
	defer func() { _ = m.Close() }()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down(steps)
	case "version":
		err = printVersion(os.Stdout, m, *format)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		_ = m.Close()
		os.Exit(1)
	}
}

// parseCommand validates the positional arguments.
func parseCommand(args []string) (string, int, error) {
	if len(args) == 0 {
		return "", 0, errors.New("missing command")
	}

	switch cmd := strings.ToLower(args[0]); cmd {
	case "up", "version":
		if len(args) != 1 {
			return "", 0, fmt.Errorf("%s takes no arguments", cmd)
		}
		return cmd, 0, nil
	case "down":
		if len(args) != 2 {
			return "", 0, errors.New("down requires a step count")
		}
		steps, err := strconv.Atoi(args[1])
		if err != nil || steps <= 0 {
			return "", 0, fmt.Errorf("invalid step count %q", args[1])
		}
		return cmd, steps, nil
	default:
		return "", 0, fmt.Errorf("unknown command %q", args[0])
	}
}

type versioner interface {
	Version() (uint, bool, error)
}

func printVersion(w io.Writer, m versioner, format string) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "plain":
		if dirty {
			_, err = fmt.Fprintf(w, "%d (dirty)\n", version)
		} else {
			_, err = fmt.Fprintf(w, "%d\n", version)
		}
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(versionOutput{Version: version, Dirty: dirty})
	default:
		return errors.New("invalid format; use plain or json")
	}
}
