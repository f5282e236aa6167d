// Package domain defines the core business entities for contas.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Integration: A stored OAuth credential for a (user, workspace) scope
//   - CachedToken: A process-local copy of an access token
//   - InvoiceFields: Fields derived from an invoice email
//   - Transaction: A confirmed income or expense record
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
