// Package shipment models the carrier order that fulfils a storefront order.
//
// A shipment is booked once per order by the lifecycle controller and then
// only follows carrier reports. Reports arrive at least once and out of
// order; ApplyCarrierUpdate keeps replays harmless and refuses moves out of
// final states, while still recording identifiers the carrier reports late.
package shipment
