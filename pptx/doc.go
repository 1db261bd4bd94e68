// Package pptx reads textual content from PowerPoint (.pptx) slide decks.
//
// A .pptx file is an OOXML zip archive; this package walks the slide parts
// directly rather than pulling in a full presentation library, since only
// slide counts and shape text are needed by the ingestion pipeline.
package pptx
