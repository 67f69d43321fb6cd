package services

import "errors"

var (
	// ErrExtraction means the document stream could not be read as a PDF.
	// Fatal for that parse.
	ErrExtraction = errors.New("document text extraction failed")

	// ErrAnnotation means the NLP backend failed on the extracted text.
	// Fatal for that parse, not retryable.
	ErrAnnotation = errors.New("document annotation failed")

	// ErrModelUnavailable means the embedding model handle was used outside
	// its load/release lifetime.
	ErrModelUnavailable = errors.New("embedding model unavailable")
)
