package queries

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"gorm.io/gorm"
)

// OrderSummary is one row of a paginated listing. Line items are not loaded
// for listings.
type OrderSummary struct {
	ID          kernel.UUID
	TotalAmount decimal.Decimal
	TotalItems  int
	Status      order.Status
	CreatedAt   time.Time
}

// PageMeta describes the position of a page within the filtered result set.
// LastPage is ceil(Total/limit) and 0 when the result set is empty.
type PageMeta struct {
	Total    int64
	Page     int
	LastPage int
}

// GetOrdersQueryResponse is the pagination envelope returned to the caller.
type GetOrdersQueryResponse struct {
	Data []OrderSummary
	Meta PageMeta
}

// GetOrdersQueryHandler pages through persisted orders. The count and the
// page select run as separate statements, so the total is only consistent
// as of the count query; that read skew is accepted.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for paginated order listings.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing query. Rows are ordered by insertion
// (created_at, then id as a tiebreaker) so pages are stable.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) (GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	countSQL := `SELECT COUNT(*) FROM orders`
	pageSQL := `
		SELECT
			id,
			total_amount,
			total_items,
			status,
			created_at
		FROM orders
	`
	var args []any
	if query.Status() != nil {
		countSQL += ` WHERE status = ?`
		pageSQL += ` WHERE status = ?`
		args = append(args, query.Status().String())
	}
	pageSQL += ` ORDER BY created_at, id OFFSET ? LIMIT ?`

	var total int64
	if err := h.db.WithContext(ctx).Raw(countSQL, args...).Scan(&total).Error; err != nil {
		return GetOrdersQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.Limit()
	rows, err := h.db.WithContext(ctx).
		Raw(pageSQL, append(args, offset, query.Limit())...).Rows()
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}
	defer rows.Close()

	data := make([]OrderSummary, 0)

	for rows.Next() {
		var (
			id          uuid.UUID
			totalAmount decimal.Decimal
			totalItems  int
			statusToken string
			createdAt   time.Time
		)

		if err = rows.Scan(&id, &totalAmount, &totalItems, &statusToken, &createdAt); err != nil {
			return GetOrdersQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetOrdersQueryResponse{}, idErr
		}

		status, statusErr := order.StatusFromString(statusToken)
		if statusErr != nil {
			return GetOrdersQueryResponse{}, statusErr
		}

		data = append(data, OrderSummary{
			ID:          orderID,
			TotalAmount: totalAmount,
			TotalItems:  totalItems,
			Status:      status,
			CreatedAt:   createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	lastPage := 0
	if total > 0 {
		lastPage = int((total + int64(query.Limit()) - 1) / int64(query.Limit()))
	}

	return GetOrdersQueryResponse{
		Data: data,
		Meta: PageMeta{
			Total:    total,
			Page:     query.Page(),
			LastPage: lastPage,
		},
	}, nil
}
