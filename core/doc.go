// Package core defines the domain types shared across the ingestion
// pipeline: uploaded file handles, content-based identifiers, the upload
// allow-list, and filename sanitization.
//
// The types here carry no behavior beyond inspection. Extraction,
// chunking, and remote calls live in their own packages and depend on
// core, never the other way around.
package core
