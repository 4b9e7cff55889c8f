// Package order provides the Order aggregate and the fulfillment state machine.
//
// The package includes:
//   - Order: the aggregate root holding the purchased lines, the total and the status
//   - Line: a purchased (product, quantity, unit price) entry with its prepared quantity
//   - Status: the state machine guarding every transition
//   - Placed and StatusChanged: domain events written to the outbox
//
// Key business rules:
//   - Lines and unit prices are captured at checkout and never change afterwards
//   - The total is the sum of line subtotals rounded half-up to two places
//   - pay and cancel are open to the owner and staff; preparation, ready-to-ship,
//     ship and the direct status override are staff only
//   - A transition from a status outside its guard set fails with
//     InvalidTransitionError and leaves the order untouched
//   - Recording preparation promotes Paid to Prepared once every line is fully
//     picked and never demotes a Prepared order
package order
