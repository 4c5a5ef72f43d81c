// Package domain defines the core business entities for the Chrona
// help assistant.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A scraped help-centre page with metadata
//   - Image: A screenshot extracted from a help-centre page
//   - Intent: The classified goal behind a user query
//   - SupportQuery / SupportResponse: The assistant's request/response pair
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
