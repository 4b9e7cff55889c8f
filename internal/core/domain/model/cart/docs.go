// Package cart provides the Cart aggregate: a per-user staging area of
// (product, quantity) lines that checkout turns into an order.
//
// Key business rules:
//   - A user owns exactly one cart, created lazily on first access
//   - At most one line per product; adding a product again replaces its quantity
//   - Line quantity is at least 1 and, at the time of the change, at most the product's stock
//   - Only active products can be added
//   - Clear is idempotent; checkout clears the cart in the same transaction that places the order
//
// The stock check made here is advisory. Checkout re-checks stock authoritatively
// through the inventory ledger.
package cart
