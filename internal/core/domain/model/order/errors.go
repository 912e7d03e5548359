package order

import "errors"

// Business errors surfaced across the RPC boundary.
var (
	// ErrProductsNotFound is returned when one or more line items reference
	// products the remote catalog could not validate, or when the catalog
	// call failed entirely. The two cases are deliberately conflated: the
	// caller only learns that the order's products could not be confirmed.
	ErrProductsNotFound = errors.New("products in order were not found")
)
