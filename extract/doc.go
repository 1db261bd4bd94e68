// Package extract turns uploaded documents into plain-text artifacts.
//
// Two operations are provided. CountUnits computes a pre-ingestion size
// metric for a single file (pages, slides, or lines) without disturbing
// the caller's stream position. Extractor.Extract processes a batch of
// files: PDFs are sent to the remote document-analysis service, text files
// are decoded directly, slide decks are walked shape by shape, and each
// successfully extracted text is written to "<base>_extracted.txt" in the
// caller-supplied directory.
//
// A single file's failure never aborts the batch; the missing-credentials
// precondition is the only condition that empties an entire call.
package extract
