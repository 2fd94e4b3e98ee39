package templating

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/byte4ever/submerge/buffer"
	"github.com/byte4ever/submerge/config"
	"github.com/byte4ever/submerge/engine"
	"github.com/byte4ever/submerge/stamper"
	"github.com/byte4ever/submerge/substitution"
)

const (
	defaultStartTag = "{{"
	defaultEndTag   = "}}"
)

// Engine expands templates using stamp info files and
// explicit variables.
type Engine struct {
	StartTag       string
	EndTag         string
	StampInfoFiles []string

	// ConfigFile optionally names a YAML or JSON config whose
	// substitutions form the base context and whose
	// delimiters apply when StartTag/EndTag are empty.
	ConfigFile string
}

// Expand reads a template, substitutes variables, and
// writes the result. If outPath is empty it writes to
// stdout. If executable is true the output file receives
// mode 0777 instead of 0666.
//
// Processing order:
//  1. Load the config file substitutions, then stamp files
//     on top of them.
//  2. For each variable NAME=VALUE, expand VALUE against
//     stamps using single-brace tags, then store as both
//     "NAME" and "variables.NAME" in context.
//  3. For each import NAME=filename, read the file, expand
//     it against context with the configured tags, then
//     expand again against stamps with single-brace tags,
//     and store as "imports.NAME" in context.
//  4. Expand the template against context. A template with
//     an unclosed placeholder is an error.
func (en *Engine) Expand(
	tplPath string,
	outPath string,
	vars []string,
	imports []string,
	executable bool,
) error {
	const errCtx = "expanding template"

	cfg, err := en.loadConfig()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	stamps, err := stamper.LoadStamps(en.StampInfoFiles)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	// Both engines draw from one pool.
	pool := buffer.NewPool()

	st, err := stamper.New(stamps, engine.WithPool(pool))
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	startTag, endTag := en.tags(cfg)

	tagged, err := engine.New(&config.Config{
		Start: startTag,
		End:   endTag,
	}, engine.WithPool(pool))
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	// Config substitutions and stamps form the base
	// context; variables and imports override them.
	ctx := substitution.Map{}
	if cfg != nil {
		ctx.Merge(cfg.Substitution)
	}

	ctx.Merge(stamps)

	if err := resolveVars(vars, st, ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := resolveImports(imports, st, tagged, ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tplContent, err := readTemplate(tplPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	set := tagged.Scan(string(tplContent))
	if err := set.Err(); err != nil {
		return fmt.Errorf("%s: %s: %w", errCtx, tplPath, err)
	}

	result, err := tagged.ReplaceMatches(set, ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	out, closer, err := openOutput(outPath, executable)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if closer != nil {
		defer closer()
	}

	if _, err := io.WriteString(out, result); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// loadConfig reads ConfigFile when set.
func (en *Engine) loadConfig() (*config.Config, error) {
	if en.ConfigFile == "" {
		return nil, nil //nolint:nilnil // no config file is not an error
	}

	return config.Load(en.ConfigFile)
}

// tags returns the configured start/end tags, falling
// back to the config file and then to double-brace
// defaults.
func (en *Engine) tags(cfg *config.Config) (string, string) {
	startTag, endTag := defaultStartTag, defaultEndTag
	if cfg != nil {
		startTag, endTag = cfg.Start, cfg.End
	}

	if en.StartTag != "" {
		startTag = en.StartTag
	}

	if en.EndTag != "" {
		endTag = en.EndTag
	}

	return startTag, endTag
}

// resolveVars processes --variable flags. Each variable
// value is expanded against stamps using single-brace
// tags, then stored as both "NAME" and "variables.NAME".
func resolveVars(
	vars []string,
	st *stamper.Stamper,
	ctx substitution.Map,
) error {
	const errCtx = "resolving variables"

	for _, vr := range vars {
		name, raw, ok := strings.Cut(vr, "=")
		if !ok {
			return fmt.Errorf(
				"%s: variable must be VAR=value, got %s",
				errCtx, vr,
			)
		}

		val, err := st.StampStrict(raw)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", errCtx, name, err)
		}

		ctx[name] = val
		ctx["variables."+name] = val
	}

	return nil
}

// resolveImports processes --imports flags. Each import
// file is read, expanded against ctx with the configured
// tags, then expanded against stamps with single-brace
// tags, and stored as "imports.NAME".
func resolveImports(
	imports []string,
	st *stamper.Stamper,
	tagged *engine.Engine,
	ctx substitution.Map,
) error {
	const errCtx = "resolving imports"

	for _, im := range imports {
		name, path, ok := strings.Cut(im, "=")
		if !ok {
			return fmt.Errorf(
				"%s: import must be NAME=filename, got %s",
				errCtx, im,
			)
		}

		content, err := os.ReadFile(path) //nolint:gosec // paths from CLI flags
		if err != nil {
			return fmt.Errorf(
				"%s: reading %s: %w",
				errCtx, path, err,
			)
		}

		// First pass: expand against context with
		// configured tags.
		set := tagged.Scan(string(content))
		if err := set.Err(); err != nil {
			return fmt.Errorf("%s: %s: %w", errCtx, path, err)
		}

		val, err := tagged.ReplaceMatches(set, ctx)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", errCtx, name, err)
		}

		// Second pass: expand against stamps with
		// single-brace tags.
		val, err = st.StampStrict(val)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", errCtx, name, err)
		}

		ctx["imports."+name] = val
	}

	return nil
}

// readTemplate reads the template from a file path. If
// tplPath is empty it reads from stdin.
func readTemplate(tplPath string) ([]byte, error) {
	const errCtx = "reading template"

	if tplPath != "" {
		content, err := os.ReadFile(tplPath) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return content, nil
	}

	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: reading stdin: %w", errCtx, err,
		)
	}

	return content, nil
}

// openOutput returns a writer for the result. When
// outPath is empty it returns stdout. The returned
// closer function must be called to finalize the file
// (may be nil for stdout).
func openOutput(
	outPath string,
	executable bool,
) (io.Writer, func(), error) {
	const errCtx = "opening output"

	if outPath == "" {
		return os.Stdout, nil, nil
	}

	var perm os.FileMode = 0o666
	if executable {
		perm = 0o777
	}

	fi, err := os.OpenFile( //nolint:gosec // paths from CLI flags
		outPath,
		os.O_RDWR|os.O_CREATE|os.O_TRUNC,
		perm,
	)
	if err != nil {
		return nil, nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return fi, func() {
		_ = fi.Close() //nolint:errcheck // best-effort close
	}, nil
}
