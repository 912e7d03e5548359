// Package queries contains the read side of the CQRS split. Query handlers
// read the database directly and shape results for the RPC boundary without
// going through the aggregate repositories.
package queries

import (
	"errors"
	"fmt"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// GetOrdersQuery retrieves a page of orders, optionally filtered by status.
//
// Pages are 1-based. Requesting a page beyond the data returns an empty
// page, never an error.
type GetOrdersQuery struct {
	page   int
	limit  int
	status *order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a pagination query. A nil status means no
// filter. Page and limit must both be at least 1.
func NewGetOrdersQuery(page, limit int, status *order.Status) (GetOrdersQuery, error) {
	if page < 1 {
		return GetOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"page", fmt.Errorf("%d is less than 1", page))
	}

	if limit < 1 {
		return GetOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"limit", fmt.Errorf("%d is less than 1", limit))
	}

	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	return GetOrdersQuery{
		page:   page,
		limit:  limit,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Page returns the 1-based page number.
func (q GetOrdersQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q GetOrdersQuery) Limit() int {
	return q.limit
}

// Status returns the optional status filter, nil when absent.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}
