// Package catalog holds the inventory-relevant view of a product: its price,
// its available stock and whether it can still be sold.
//
// Product rows are owned by the external catalog. Inside the fulfillment core
// stock changes only through the inventory ledger (reserve on checkout,
// release on cancellation).
package catalog
