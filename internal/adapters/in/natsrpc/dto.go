package natsrpc

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/govalues/decimal"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// createOrderRequest is the payload of the create_order subject.
type createOrderRequest struct {
	Items []orderItemRequest `json:"items"`
}

type orderItemRequest struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// toDomainItems maps the wire items onto domain line items. Prices arrive as
// JSON numbers and are converted to fixed-point before any arithmetic.
func (r createOrderRequest) toDomainItems() ([]order.Item, error) {
	items := make([]order.Item, 0, len(r.Items))
	for _, dto := range r.Items {
		productID, err := kernel.UUIDFromString(dto.ProductID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("productId", err)
		}

		price, err := decimal.NewFromFloat64(dto.Price)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("price", err)
		}

		item, err := order.NewItem(productID, dto.Quantity, price)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

// findAllOrdersRequest is the payload of the find_all_orders subject.
// Missing page and limit fall back to the first page of ten rows.
type findAllOrdersRequest struct {
	Page   *int    `json:"page"`
	Limit  *int    `json:"limit"`
	Status *string `json:"status"`
}

func (r findAllOrdersRequest) toQuery() (queries.GetOrdersQuery, error) {
	page := defaultPage
	if r.Page != nil {
		page = *r.Page
	}

	limit := defaultLimit
	if r.Limit != nil {
		limit = *r.Limit
	}

	var status *order.Status
	if r.Status != nil {
		parsed, err := order.StatusFromString(*r.Status)
		if err != nil {
			return queries.GetOrdersQuery{}, err
		}
		status = &parsed
	}

	return queries.NewGetOrdersQuery(page, limit, status)
}

// findOneOrderRequest is the payload of the find_one_order subject.
type findOneOrderRequest struct {
	ID string `json:"id"`
}

func (r findOneOrderRequest) toQuery() (queries.GetOrderQuery, error) {
	id, err := kernel.UUIDFromString(r.ID)
	if err != nil {
		return queries.GetOrderQuery{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	return queries.NewGetOrderQuery(id)
}

// changeOrderStatusRequest is the payload of the change_order_status subject.
type changeOrderStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (r changeOrderStatusRequest) toCommand() (commands.ChangeOrderStatusCommand, error) {
	id, err := kernel.UUIDFromString(r.ID)
	if err != nil {
		return commands.ChangeOrderStatusCommand{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	status, err := order.StatusFromString(r.Status)
	if err != nil {
		return commands.ChangeOrderStatusCommand{}, err
	}

	return commands.NewChangeOrderStatusCommand(id, status)
}

// orderItemResponse echoes a line item back to the caller, carrying the
// product name resolved from the catalog.
type orderItemResponse struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
}

// orderResponse is the wire shape of a single order. Items are omitted on
// subjects that do not load them.
type orderResponse struct {
	ID          string              `json:"id"`
	TotalAmount float64             `json:"totalAmount"`
	TotalItems  int                 `json:"totalItems"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	Items       []orderItemResponse `json:"items,omitempty"`
}

type pageMetaResponse struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"lastPage"`
}

type findAllOrdersResponse struct {
	Data []orderResponse  `json:"data"`
	Meta pageMetaResponse `json:"meta"`
}

// errorResponse is the error envelope every subject replies with on failure.
type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func fromCreateOrderResponse(resp commands.CreateOrderResponse) orderResponse {
	items := make([]orderItemResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, orderItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			Price:     toFloat(item.UnitPrice),
			Name:      item.Name,
		})
	}

	return orderResponse{
		ID:          resp.ID.String(),
		TotalAmount: toFloat(resp.TotalAmount),
		TotalItems:  resp.TotalItems,
		Status:      resp.Status.String(),
		CreatedAt:   resp.CreatedAt,
		Items:       items,
	}
}

func fromGetOrderResponse(resp queries.GetOrderQueryResponse) orderResponse {
	items := make([]orderItemResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, orderItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			Price:     toFloat(item.UnitPrice),
			Name:      item.Name,
		})
	}

	return orderResponse{
		ID:          resp.ID.String(),
		TotalAmount: toFloat(resp.TotalAmount),
		TotalItems:  resp.TotalItems,
		Status:      resp.Status.String(),
		CreatedAt:   resp.CreatedAt,
		Items:       items,
	}
}

func fromGetOrdersResponse(resp queries.GetOrdersQueryResponse) findAllOrdersResponse {
	data := make([]orderResponse, 0, len(resp.Data))
	for _, summary := range resp.Data {
		data = append(data, orderResponse{
			ID:          summary.ID.String(),
			TotalAmount: toFloat(summary.TotalAmount),
			TotalItems:  summary.TotalItems,
			Status:      summary.Status.String(),
			CreatedAt:   summary.CreatedAt,
		})
	}

	return findAllOrdersResponse{
		Data: data,
		Meta: pageMetaResponse{
			Total:    resp.Meta.Total,
			Page:     resp.Meta.Page,
			LastPage: resp.Meta.LastPage,
		},
	}
}

func fromChangeStatusResponse(resp commands.ChangeOrderStatusResponse) orderResponse {
	return orderResponse{
		ID:          resp.ID.String(),
		TotalAmount: toFloat(resp.TotalAmount),
		TotalItems:  resp.TotalItems,
		Status:      resp.Status.String(),
		CreatedAt:   resp.CreatedAt,
	}
}

// toErrorResponse maps handler errors onto the wire error envelope.
// Unrecognized errors never leak their text to the caller.
func toErrorResponse(err error) errorResponse {
	var notFound *errs.ObjectNotFoundError

	switch {
	case errors.As(err, &notFound):
		return errorResponse{
			Status:  http.StatusNotFound,
			Message: fmt.Sprintf("Order with id %v not found", notFound.ID),
		}
	case errors.Is(err, order.ErrProductsNotFound):
		return errorResponse{
			Status:  http.StatusBadRequest,
			Message: "Products in order were not found",
		}
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorResponse{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		}
	default:
		return errorResponse{
			Status:  http.StatusInternalServerError,
			Message: "internal server error",
		}
	}
}

// errBadPayload marks an undecodable request body as a caller error.
func errBadPayload(cause error) error {
	return errs.NewValueIsInvalidErrorWithCause("payload", cause)
}

// toFloat converts a fixed-point amount to the wire's JSON number. Amounts
// stay within numeric(14,2), which float64 represents without drift at this
// scale.
func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
