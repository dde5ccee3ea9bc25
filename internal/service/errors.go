package service

import "errors"

// Flow-level sentinel errors. Component-level ones live with the packages
// that raise them (pkg/document, pkg/llm, internal/assembler,
// internal/template). The server error middleware maps all of them to HTTP
// status codes with errors.Is.
var (
	// ErrInvalidAnswerCount rejects single-shot input that is not exactly
	// the fixed answer count.
	ErrInvalidAnswerCount = errors.New("exactly 20 answers are required")

	// ErrQuestionGeneration reports that the interview could not obtain a
	// full question list from the text-generation backend.
	ErrQuestionGeneration = errors.New("question generation failed")

	ErrSessionNotFound        = errors.New("interview session not found")
	ErrSessionAlreadyComplete = errors.New("interview session already complete")
	ErrSessionNotComplete     = errors.New("interview session not complete")
	ErrSessionConsumed        = errors.New("interview session already consumed")

	// ErrDocumentNotFound reports an unknown or expired working document id
	// on the incremental section endpoints.
	ErrDocumentNotFound = errors.New("working document not found")

	// ErrAssembly wraps the first component failure during document
	// assembly. No partial output is returned.
	ErrAssembly = errors.New("document assembly failed")
)
