// Package domain defines the core entities for datimex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A document held by a container (text, audio, video, image)
//   - RawDocument: Opaque bytes before normalisation
//   - DateMatch: A date-like span found in a document's text
//   - DateAnnotation: A normalised date attached to a span
//   - View: The output collection produced by one annotation run
//   - Container: The documents and views passed through the pipeline
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
