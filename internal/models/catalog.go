// internal/models/catalog.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Theme is a tag-like classification shared by all catalog kinds.
type Theme struct {
	BaseModel
	Name        string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Description string `json:"description" gorm:"type:text"`
}

// Promotion is a marketing campaign designs can be attached to.
type Promotion struct {
	BaseModel
	Name     string     `json:"name" gorm:"size:255;not null"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// Event is a seasonal occasion (holidays, launches) designs can be attached to.
type Event struct {
	BaseModel
	Name     string     `json:"name" gorm:"size:255;not null"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// Design is a standalone artwork sold for use on personalizable products.
type Design struct {
	BaseModel
	Ownable
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
	BasePrice   float64        `json:"base_price" gorm:"type:decimal(10,2);not null"`
	ImagePath   string         `json:"image_path" gorm:"size:512"`
	Status      ApprovalStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Published   bool           `json:"published" gorm:"default:false;index"`
	PublishedAt *time.Time     `json:"published_at" gorm:"index"`
	IsSponsored bool           `json:"is_sponsored" gorm:"default:false"`
	ThemeID     *uuid.UUID     `json:"theme_id" gorm:"type:uuid;index"`
	PromotionID *uuid.UUID     `json:"promotion_id" gorm:"type:uuid;index"`
	EventID     *uuid.UUID     `json:"event_id" gorm:"type:uuid;index"`

	// Relationships
	Theme    *Theme           `json:"theme,omitempty" gorm:"foreignKey:ThemeID"`
	Usage    *UsageParameters `json:"usage,omitempty" gorm:"foreignKey:DesignID"`
	Previews []Preview        `json:"previews,omitempty" gorm:"foreignKey:DesignID"`
	Likes    []Like           `json:"likes,omitempty" gorm:"foreignKey:DesignID"`
}

// Personalizable is a blank product customers apply designs to.
type Personalizable struct {
	BaseModel
	Ownable
	Title                 string         `json:"title" gorm:"size:255;not null"`
	Description           string         `json:"description" gorm:"type:text"`
	Tags                  pq.StringArray `json:"tags" gorm:"type:text[]"`
	BasePrice             float64        `json:"base_price" gorm:"type:decimal(10,2);not null"`
	ImagePath             string         `json:"image_path" gorm:"size:512"`
	Status                ApprovalStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Published             bool           `json:"published" gorm:"default:false;index"`
	PublishedAt           *time.Time     `json:"published_at" gorm:"index"`
	IsSponsored           bool           `json:"is_sponsored" gorm:"default:false"`
	ThemeID               *uuid.UUID     `json:"theme_id" gorm:"type:uuid;index"`
	CategoryID            *uuid.UUID     `json:"category_id" gorm:"type:uuid;index"`
	DepartmentID          *uuid.UUID     `json:"department_id" gorm:"type:uuid;index"`
	Brand                 string         `json:"brand" gorm:"size:100;index"`
	Model                 string         `json:"model" gorm:"size:100;index"`
	PersonalizationMethod string         `json:"personalization_method" gorm:"size:100;index"`

	// Relationships
	Theme    *Theme    `json:"theme,omitempty" gorm:"foreignKey:ThemeID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Previews []Preview `json:"previews,omitempty" gorm:"foreignKey:PersonalizableID"`
	Variants []Variant `json:"variants,omitempty" gorm:"foreignKey:PersonalizableID"`
}

// Product is a finished good (a design already applied to an item).
type Product struct {
	BaseModel
	Ownable
	Title        string         `json:"title" gorm:"size:255;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Tags         pq.StringArray `json:"tags" gorm:"type:text[]"`
	BasePrice    float64        `json:"base_price" gorm:"type:decimal(10,2);not null"`
	ImagePath    string         `json:"image_path" gorm:"size:512"`
	Status       ApprovalStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Published    bool           `json:"published" gorm:"default:false;index"`
	PublishedAt  *time.Time     `json:"published_at" gorm:"index"`
	IsSponsored  bool           `json:"is_sponsored" gorm:"default:false"`
	ThemeID      *uuid.UUID     `json:"theme_id" gorm:"type:uuid;index"`
	CategoryID   *uuid.UUID     `json:"category_id" gorm:"type:uuid;index"`
	DepartmentID *uuid.UUID     `json:"department_id" gorm:"type:uuid;index"`
	Brand        string         `json:"brand" gorm:"size:100;index"`
	Model        string         `json:"model" gorm:"size:100;index"`

	// Relationships
	Theme        *Theme    `json:"theme,omitempty" gorm:"foreignKey:ThemeID"`
	Category     *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	DesignsUsed  []Design  `json:"designs_used,omitempty" gorm:"many2many:product_designs"`
	Previews     []Preview `json:"previews,omitempty" gorm:"foreignKey:ProductID"`
	Variants     []Variant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
}

// Like is a (design, user) pair, unique per pair.
type Like struct {
	BaseModel
	DesignID uuid.UUID `json:"design_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_design_user"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_design_user"`
}

// Preview is an ordered auxiliary image. Exactly one of the parent columns is
// set depending on what the preview belongs to.
type Preview struct {
	BaseModel
	DesignID         *uuid.UUID `json:"design_id,omitempty" gorm:"type:uuid;index"`
	PersonalizableID *uuid.UUID `json:"personalizable_id,omitempty" gorm:"type:uuid;index"`
	ProductID        *uuid.UUID `json:"product_id,omitempty" gorm:"type:uuid;index"`
	VariantID        *uuid.UUID `json:"variant_id,omitempty" gorm:"type:uuid;index"`
	ImagePath        string     `json:"image_path" gorm:"size:512;not null"`
	Position         int        `json:"position" gorm:"default:0"`
}
