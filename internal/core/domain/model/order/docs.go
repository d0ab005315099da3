// Package order provides the Order aggregate root and its status state machine.
//
// The package includes:
//   - Order: identity, checkout snapshot (item, shipping) and lifecycle status
//   - Status: the Pending → Processing → Shipped → Success path with Failed as
//     the terminal failure state, plus the merge rules used when external
//     notifications imply a status
//   - Item and Shipping: validated snapshots captured at checkout
//
// Key business rules:
//   - No transition moves an order backward
//   - Payment notifications only decide the outcome of Pending orders
//   - Carrier notifications move orders forward or to Failed, never back
package order
