// Package chunk splits extracted document text into bounded, overlapping
// segments suitable for embedding.
//
// Splitting walks an ordered priority list of separators (newline, space,
// question mark, period, exclamation mark by default). Text is broken at
// the earliest-listed separator it contains; fragments still exceeding the
// chunk size are re-split with the remaining separators. A fragment no
// separator can shrink is emitted as-is, oversized. Fragments are then
// packed into chunks up to the size limit, with up to the configured
// overlap of trailing characters carried into the next chunk.
package chunk
