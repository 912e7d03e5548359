// Package products implements the ProductValidator port against the remote
// Product service, spoken over NATS request/reply.
package products

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"

	"github.com/govalues/decimal"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// SubjectValidateProducts is the request/reply subject served by the
// Product service.
const SubjectValidateProducts = "validate_products"

// productDTO mirrors the catalog's reply entries.
type productDTO struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// errorDTO is the catalog's error envelope. A reply carrying it means the
// remote side rejected the batch (typically: some ids do not exist).
type errorDTO struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// NATSProductValidator issues batched validate_products requests.
//
// Every failure mode (connectivity, timeout, remote rejection, undecodable
// reply) folds into ports.ErrProductValidationUnavailable. The cause is
// retained for logs but callers only see the single error kind.
type NATSProductValidator struct {
	conn    *nats.Conn
	timeout time.Duration
	logger  *zap.Logger
}

// NewNATSProductValidator creates a validator client over an established
// NATS connection. The timeout bounds each remote call.
func NewNATSProductValidator(conn *nats.Conn, timeout time.Duration, logger *zap.Logger) *NATSProductValidator {
	return &NATSProductValidator{
		conn:    conn,
		timeout: timeout,
		logger:  logger,
	}
}

// Validate sends the batch of product ids and decodes the authoritative
// records. Duplicate ids are passed through as given.
func (v *NATSProductValidator) Validate(ctx context.Context, productIDs []kernel.UUID) ([]ports.Product, error) {
	ids := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		ids = append(ids, id.String())
	}

	payload, err := json.Marshal(ids)
	if err != nil {
		return nil, unavailable(err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	msg, err := v.conn.RequestWithContext(reqCtx, SubjectValidateProducts, payload)
	if err != nil {
		v.logger.Warn("validate_products request failed", zap.Error(err))
		return nil, unavailable(err)
	}

	products, err := decodeProducts(msg.Data)
	if err != nil {
		v.logger.Warn("validate_products reply rejected", zap.Error(err))
		return nil, unavailable(err)
	}

	return products, nil
}

// decodeProducts parses a reply payload. Replies are either a JSON array of
// products or an error envelope object.
func decodeProducts(data []byte) ([]ports.Product, error) {
	var dtos []productDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		var remoteErr errorDTO
		if envErr := json.Unmarshal(data, &remoteErr); envErr == nil && remoteErr.Message != "" {
			return nil, fmt.Errorf("remote rejected batch: status %d: %s", remoteErr.Status, remoteErr.Message)
		}
		return nil, fmt.Errorf("undecodable reply: %w", err)
	}

	products := make([]ports.Product, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromString(dto.ID)
		if err != nil {
			return nil, fmt.Errorf("product id %q: %w", dto.ID, err)
		}

		price, err := decimal.NewFromFloat64(dto.Price)
		if err != nil {
			return nil, fmt.Errorf("product %s price: %w", dto.ID, err)
		}

		products = append(products, ports.Product{
			ID:    id,
			Name:  dto.Name,
			Price: price,
		})
	}

	return products, nil
}

func unavailable(cause error) error {
	return fmt.Errorf("%w: %s", ports.ErrProductValidationUnavailable, cause)
}
