package extract

import "errors"

var (
	// ErrInvalidUTF8 indicates a text file whose bytes are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

	// ErrAnalyzerNotConfigured indicates the document-analysis service
	// credentials were missing, so no remote extraction is possible.
	ErrAnalyzerNotConfigured = errors.New("document analysis service is not configured")
)
