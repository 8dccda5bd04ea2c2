package domain

import "errors"

var (
	// ErrTextTooShort signals query text below the minimum comparable length.
	ErrTextTooShort = errors.New("text content too short for meaningful comparison")
	// ErrMetadataRequired signals a metadata check with neither title nor description.
	ErrMetadataRequired = errors.New("title or description required")
	// ErrEmptyCorpus signals a request with no reference documents to compare against.
	ErrEmptyCorpus = errors.New("no projects provided for comparison")
	// ErrNotPDF signals an upload that is not a PDF file.
	ErrNotPDF = errors.New("file must be a PDF")
	// ErrEmptyUpload signals an upload with an empty body.
	ErrEmptyUpload = errors.New("empty file received")
	// ErrNoExtractableText signals a PDF whose text layer was empty or trivial.
	ErrNoExtractableText = errors.New("could not extract meaningful text from PDF")
	// ErrSemanticUnavailable signals that the semantic embedding capability is down.
	ErrSemanticUnavailable = errors.New("semantic model unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
