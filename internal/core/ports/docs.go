// Package ports defines the contracts between the order lifecycle core and its
// infrastructure: repositories bound to a unit of work, the carrier client,
// the store resolver and the per-order lock.
// These interfaces enable dependency inversion and testability.
package ports
