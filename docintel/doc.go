// Package docintel provides a client for the remote document-understanding
// service used to extract text from scanned and paged documents (PDFs).
//
// The service exposes an asynchronous "read" analysis: a document is
// submitted, the service returns an operation URL, and the client polls
// that URL until the analysis succeeds or fails. Client retries submission
// with exponential backoff and bounds the total poll time; see Config.
//
// The docintel/mock subpackage provides a test double so extraction logic
// can be exercised without the remote service.
package docintel
