// Package config supplies the delimiters and substitution map an
// engine reads. Config can be assembled with Builder or loaded from a
// YAML or JSON file.
package config
