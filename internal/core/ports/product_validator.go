package ports

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/kernel"

	"github.com/govalues/decimal"
)

// ErrProductValidationUnavailable is the single failure mode of the
// ProductValidator port. Transport errors, timeouts, and remote-side
// rejections are all folded into it; the orchestration layer cannot and
// should not distinguish "product not found" from "catalog unreachable".
var ErrProductValidationUnavailable = errors.New("product validation unavailable")

// Product is the read-only projection of a catalog product consumed during
// validation. It is fetched fresh per call and never cached or persisted.
type Product struct {
	ID    kernel.UUID
	Name  string
	Price decimal.Decimal
}

// ProductValidator sends a batch of product identifiers to the remote
// Product service and returns the authoritative records.
//
// The returned set is not guaranteed to cover every requested id; callers
// needing per-item enrichment must verify coverage themselves.
type ProductValidator interface {
	Validate(ctx context.Context, productIDs []kernel.UUID) ([]Product, error)
}
