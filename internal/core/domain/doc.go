// Package domain defines the core business entities for the donation CLI.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: a timestamped event read from a platform export
//   - Table: tabular data shown on the consent form
//   - ExtractionResult: a named table produced by one extraction step
//   - Command and Payload: the messages exchanged with the host
//   - FlowState: the states of a donation flow
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
