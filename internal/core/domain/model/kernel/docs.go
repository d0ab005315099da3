// Package kernel provides the shared value objects of the storefront domain:
// UUID identities and Contact snapshots used by orders, shipments and store
// shipping configuration.
//
// Values are immutable and must be built through their constructors; the
// zero value of each type fails Validate.
package kernel
