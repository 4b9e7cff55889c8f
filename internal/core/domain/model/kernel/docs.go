// Package kernel provides the shared domain primitives of the fulfillment core.
//
// The package includes:
//   - UUID: a value object for entity identifiers
//   - Money: a non-negative amount with two fractional digits
//   - Actor: the authenticated caller of an operation (user id, display name, staff flag)
//   - DomainEvent: the contract for facts recorded by aggregates
//
// These primitives are immutable and safe for concurrent use.
package kernel
