// Package templating expands template files using stamp info files,
// explicit NAME=VALUE variables, imported partials and an optional
// YAML or JSON substitution file. Placeholders use configurable
// delimiters (default "{{" and "}}").
//
// The Engine type holds configuration (start/end tags, stamp info
// files, config file) and expands templates via the Expand method,
// which reads a template file, applies variable substitution and
// import expansion, and writes the result.
package templating
