// Package engine substitutes delimited placeholders in text.
//
// An Engine is built from a config.Provider (delimiters and a default
// substitution map). Templates can be replaced in one call, or scanned
// once into a match set and replayed many times:
//
//	en, err := engine.New(cfg)
//	set := en.ScanFixed("{name} is {age}")
//	a, _ := en.ReplaceFixed(set, substitution.NewValues("John", "30"))
//	b, _ := en.ReplaceFixed(set, substitution.NewValues("Amy", "41"))
//
// Placeholders missing from the substitution source are emitted
// unchanged with their delimiters. Replacement values are never
// rescanned. A template with an unclosed placeholder produces an
// empty result on every path.
//
// An Engine is safe for concurrent use: each call acquires its own
// output buffer from the engine's pool and releases it on return.
package engine
