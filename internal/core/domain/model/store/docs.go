// Package store holds the read-only view of a store's shipping setup.
package store
