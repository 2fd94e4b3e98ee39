// Package scanner locates literal start and end delimiters in template
// text. It knows nothing about substitution values: Index finds the
// first occurrence of a needle and Delimiters carries a validated
// start/end pair of arbitrary, possibly asymmetric, length.
package scanner
