// Binary submerge_template expands templates using stamp
// info files, a substitution config file and explicit
// variable substitutions.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/byte4ever/submerge/templating"
)

// sliceFlag implements flag.Value for multi-value
// string flags (repeated --flag=val usage).
type sliceFlag []string

func (s *sliceFlag) String() string {
	if s == nil {
		return ""
	}

	return strings.Join(*s, ",")
}

func (s *sliceFlag) Set(val string) error {
	*s = append(*s, val)

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	const errCtx = "running submerge_template"

	var (
		stampInfoFile sliceFlag
		variable      sliceFlag
		imports       sliceFlag
	)

	flag.Var(
		&stampInfoFile,
		"stamp_info_file",
		"Stamp info file path (repeatable)",
	)

	flag.Var(
		&variable,
		"variable",
		"Variable in NAME=VALUE format (repeatable)",
	)

	flag.Var(
		&imports,
		"imports",
		"Import in NAME=filename format (repeatable)",
	)

	output := flag.String(
		"output", "",
		"Output file path (stdout if empty)",
	)

	tpl := flag.String(
		"template", "",
		"Input template file path (stdin if empty)",
	)

	cfgFile := flag.String(
		"config", "",
		"YAML or JSON file with delimiters and substitutions",
	)

	executable := flag.Bool(
		"executable", false,
		"Set executable bit on output file",
	)

	startTag := flag.String(
		"start_tag", "",
		"Start tag for placeholders (config file, else {{)",
	)

	endTag := flag.String(
		"end_tag", "",
		"End tag for placeholders (config file, else }})",
	)

	flag.Parse()

	en := templating.Engine{
		StartTag:       *startTag,
		EndTag:         *endTag,
		StampInfoFiles: stampInfoFile,
		ConfigFile:     *cfgFile,
	}

	if err := en.Expand(
		*tpl, *output, variable, imports, *executable,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
