// Package payment models the local record of an order's gateway payment.
//
// Payment notifications arrive at least once and in any order. The package
// keeps the record monotonic: once Paid or Failed, later notifications that
// disagree are rejected by ApplyNotification and left for the caller to log.
package payment
