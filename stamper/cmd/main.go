// Package main provides the stamper CLI that reads Bazel
// workspace status files and substitutes {VAR} placeholders
// in a format string or file, optionally once per row of a
// JSON array.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/submerge/stamper"
	"github.com/byte4ever/submerge/substitution"
)

type arrayFlags []string

func (af *arrayFlags) String() string {
	return strings.Join(*af, ",")
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

func run() error {
	const errCtx = "stamper"

	var stampInfoFiles arrayFlags

	var (
		output     string
		format     string
		formatFile string
		rowsFile   string
	)

	flag.Var(
		&stampInfoFiles,
		"stamp-info-file",
		"path to workspace status file (repeatable)",
	)

	flag.StringVar(
		&output, "output", "",
		"output file path (default: stdout)",
	)

	flag.StringVar(
		&formatFile, "format-file", "",
		"file containing stamp variable placeholders",
	)

	flag.StringVar(
		&format, "format", "",
		"format string containing stamp variables",
	)

	flag.StringVar(
		&rowsFile, "rows", "",
		"JSON array of objects; the format is stamped once per object",
	)

	flag.Parse()

	if formatFile != "" && format != "" {
		return fmt.Errorf(
			"%s: only one of --format or"+
				" --format-file may be specified",
			errCtx,
		)
	}

	if formatFile != "" {
		content, err := os.ReadFile( //nolint:gosec // path from CLI flag
			formatFile,
		)
		if err != nil {
			return fmt.Errorf(
				"%s: reading format file: %w",
				errCtx, err,
			)
		}

		format = string(content)
	}

	stamps, err := stamper.LoadStamps(stampInfoFiles)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	st, err := stamper.New(stamps)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	var out io.Writer = os.Stdout

	if output != "" {
		fi, err := os.Create(output) //nolint:gosec // path from CLI flag
		if err != nil {
			return fmt.Errorf(
				"%s: creating output: %w",
				errCtx, err,
			)
		}

		defer func() {
			_ = fi.Close() //nolint:errcheck // best-effort close
		}()

		out = fi
	}

	if rowsFile == "" {
		result, err := st.StampStrict(format)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if _, err := io.WriteString(out, result); err != nil {
			return fmt.Errorf(
				"%s: writing output: %w",
				errCtx, err,
			)
		}

		return nil
	}

	rows, err := loadRows(rowsFile)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	for line, err := range st.StampEach(format, rows) {
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf(
				"%s: writing output: %w",
				errCtx, err,
			)
		}
	}

	return nil
}

// loadRows decodes a JSON array of objects into
// substitution maps.
func loadRows(path string) ([]substitution.Map, error) {
	const errCtx = "loading rows"

	content, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	rows := make([]substitution.Map, 0, len(raw))

	for i, obj := range raw {
		row, err := substitution.FromJSON(obj)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", errCtx, i, err)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
