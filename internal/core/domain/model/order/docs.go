// Package order contains the purchase-order aggregate: the Order root, its
// owned line items, the closed status set, and the pure totals computation
// that establishes the aggregate's stored invariants.
package order
