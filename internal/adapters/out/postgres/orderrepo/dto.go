// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// OrderDTO is the database representation of an order aggregate.
// Totals are stored as computed at creation time and trusted on read.
type OrderDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2)"`
	TotalItems  int
	Status      string    `gorm:"type:varchar(16);index"`
	CreatedAt   time.Time `gorm:"index"`
	Items       []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is the database representation of a line item. Rows are owned by
// their order: the foreign key cascades deletion, even though no delete
// operation is currently exposed.
type ItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName overrides GORM's default naming to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
// Item rows receive synthetic ids; they carry no identity in the domain.
func fromDomain(o *order.Order) OrderDTO {
	domainItems := o.Items()
	items := make([]ItemDTO, 0, len(domainItems))
	for _, item := range domainItems {
		items = append(items, ItemDTO{
			ID:        uuid.New(),
			OrderID:   o.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:          o.ID().Bytes(),
		TotalAmount: o.TotalAmount(),
		TotalItems:  o.TotalItems(),
		Status:      o.Status().String(),
		CreatedAt:   o.CreatedAt(),
		Items:       items,
	}
}

// toDomain converts a database row back into an order aggregate.
// Stored totals are restored as-is, never recomputed.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, productErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if productErr != nil {
			return nil, productErr
		}

		item, itemErr := order.NewItem(productID, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}

		items = append(items, item)
	}

	return order.RestoreOrder(id, items, dto.TotalAmount, dto.TotalItems, status, dto.CreatedAt)
}
