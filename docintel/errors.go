package docintel

import "errors"

var (
	// ErrMissingCredentials indicates the endpoint or subscription key is absent.
	ErrMissingCredentials = errors.New("document analysis credentials are missing")

	// ErrAnalysisFailed indicates the service reported a failed analysis.
	ErrAnalysisFailed = errors.New("document analysis failed")

	// ErrPollTimeout indicates the analysis did not complete within the poll budget.
	ErrPollTimeout = errors.New("document analysis timed out")

	// ErrUnexpectedStatus indicates an HTTP status outside the expected set.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)
