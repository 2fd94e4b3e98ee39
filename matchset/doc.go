// Package matchset records where placeholders occur in a template.
//
// A scan makes one forward pass over the template and produces an
// immutable set that can be replayed any number of times with
// different substitution sources. Named sets keep each placeholder's
// text (a zero-copy view into the template) for name-keyed lookup;
// Fixed sets keep only positions and lengths for positional replay.
//
// Every well-formed set ends with a sentinel entry whose start equals
// the template length. It marks "copy the remainder" and is not a
// placeholder. A template whose last start delimiter has no end
// delimiter after it produces a malformed set with no entries at all.
package matchset
