// internal/models/variant.go
package models

import (
	"github.com/google/uuid"
)

// Option is a purchasable attribute dimension (color, size, material).
type Option struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`

	// Relationships
	Values []OptionValue `json:"values,omitempty" gorm:"foreignKey:OptionID"`
}

type OptionValue struct {
	BaseModel
	OptionID uuid.UUID `json:"option_id" gorm:"type:uuid;not null;index"`
	Value    string    `json:"value" gorm:"size:100;not null"`

	// Relationships
	Option Option `json:"option,omitempty" gorm:"foreignKey:OptionID"`
}

// Variant is one purchasable configuration of a personalizable or product.
type Variant struct {
	BaseModel
	PersonalizableID *uuid.UUID `json:"personalizable_id,omitempty" gorm:"type:uuid;index"`
	ProductID        *uuid.UUID `json:"product_id,omitempty" gorm:"type:uuid;index"`
	Price            float64    `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity         int        `json:"quantity" gorm:"default:0"`
	SKU              string     `json:"sku" gorm:"size:100;index"`

	// Relationships
	OptionValues []OptionValue `json:"option_values,omitempty" gorm:"many2many:variant_option_values"`
	Reviews      []Review      `json:"reviews,omitempty" gorm:"foreignKey:VariantID"`
	Previews     []Preview     `json:"previews,omitempty" gorm:"foreignKey:VariantID"`
}

type Review struct {
	BaseModel
	VariantID uuid.UUID `json:"variant_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
}
