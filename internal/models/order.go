// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

// Order is the read-side view of a placed order. The catalog engine only
// counts completed line items for sales ranking; the order state machine
// itself lives outside this service.
type Order struct {
	BaseModel
	UserID uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	Status OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// Relationships
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	VariantID uuid.UUID `json:"variant_id" gorm:"type:uuid;not null;index"`
	Quantity  int       `json:"quantity" gorm:"default:1"`
	UnitPrice float64   `json:"unit_price" gorm:"type:decimal(10,2)"`

	// Relationships
	Order   Order   `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Variant Variant `json:"variant,omitempty" gorm:"foreignKey:VariantID"`
}
