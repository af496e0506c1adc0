package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a required collaborator is not configured.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedPlatform indicates no extractor is registered for a platform.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// Extraction Errors.

	// ErrArchiveRead indicates the user-supplied file could not be read.
	// It is the I/O class of failure: missing file, unreadable file or a
	// corrupt zip signature. The donation flow offers a retry for it.
	ErrArchiveRead = errors.New("archive read failed")

	// ErrCorruptArchive indicates the file is not a readable zip.
	// Adapters wrap it together with ErrArchiveRead.
	ErrCorruptArchive = errors.New("corrupt archive")

	// ErrMissingPath indicates a required section is absent from a parsed document.
	ErrMissingPath = errors.New("missing document path")

	// ErrMalformedTimestamp indicates a record timestamp could not be parsed.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// Flow Errors.

	// ErrFlowNotStarted indicates Resume was called before Start.
	ErrFlowNotStarted = errors.New("flow not started")

	// ErrFlowTerminated indicates the flow already reached a terminal state.
	ErrFlowTerminated = errors.New("flow terminated")
)
