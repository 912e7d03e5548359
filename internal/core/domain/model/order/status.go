package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Status represents the lifecycle state of a purchase order.
//
// The set is closed (PENDING, PAID, DELIVERED, CANCELLED) but no transition
// graph is enforced: any valid status may overwrite any other, including
// "backward" moves such as DELIVERED -> PENDING. The permissiveness is the
// documented contract; a real state machine would be an explicit addition.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned to every new order.
	Pending

	// Paid indicates payment for the order has been confirmed.
	Paid

	// Delivered indicates the order reached the customer.
	Delivered

	// Cancelled indicates the order was withdrawn.
	Cancelled
)

// getStatusStrings maps every Status value to its wire token.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Paid:      "PAID",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// getValidStatusStrings maps only the statuses accepted on the wire.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "PENDING",
		Paid:      "PAID",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// StatusFromString parses a wire token into a Status. Unknown tokens fail
// with a value-is-invalid error so bad requests are rejected before any
// store access.
func StatusFromString(s string) (Status, error) {
	for status, token := range getValidStatusStrings() {
		if token == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not one of PENDING, PAID, DELIVERED, CANCELLED", s),
	)
}

// Validate checks that the Status is one of the accepted values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire token for the status, implementing fmt.Stringer.
// Invalid values print as "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
