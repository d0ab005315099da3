// Package services provides domain services that span the order, payment and
// shipment aggregates without belonging to any one of them.
//
// The package includes:
//   - StatusMapper: translates payment gateway and carrier vocabularies into
//     the internal order, payment and shipment statuses
package services
