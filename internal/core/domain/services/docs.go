// Package services provides domain services for work that spans more than one
// aggregate.
//
// The package includes:
//   - CheckoutPlanner: turns a cart into an ordered reservation plan and, once the
//     inventory ledger has reserved every line, into a placed order
package services
