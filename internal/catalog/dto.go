// internal/catalog/dto.go
package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/printbazaar/marketplace-backend/internal/models"
)

// PageResult is the facade's search response: one assembled page plus the
// total match count computed over the same predicate without the window.
type PageResult struct {
	Items []ItemDTO `json:"items"`
	Count int64     `json:"count"`
}

// ItemDTO is the assembled catalog entry. Raw storage paths never appear
// here; every image field carries a resolved URL.
type ItemDTO struct {
	ID              uuid.UUID    `json:"id"`
	Kind            Kind         `json:"kind"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Tags            []string     `json:"tags"`
	BasePrice       float64      `json:"base_price"`
	ImageURL        string       `json:"image_url,omitempty"`
	PublishedAt     *time.Time   `json:"published_at,omitempty"`
	PopularityCount int64        `json:"popularity_count"`
	NumReviews      int64        `json:"num_reviews,omitempty"`
	AvgRating       float64      `json:"avg_rating,omitempty"`
	Theme           *ThemeDTO    `json:"theme,omitempty"`
	Previews        []PreviewDTO `json:"previews"`
	Owner           OwnerDTO     `json:"owner"`
	Usage           *UsageDTO    `json:"usage,omitempty"`
	Variants        []VariantDTO `json:"variants,omitempty"`
	DesignsUsed     []uuid.UUID  `json:"designs_used,omitempty"`
}

type ThemeDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type PreviewDTO struct {
	ID       uuid.UUID `json:"id"`
	ImageURL string    `json:"image_url"`
	Position int       `json:"position"`
}

// OwnerDTO is the tagged union over owner kinds: exactly one of Store or
// Workshop is populated on public catalog items, matching the ownership
// invariant.
type OwnerDTO struct {
	Type     models.OwnerKind `json:"type"`
	Store    *StoreDTO        `json:"store,omitempty"`
	Workshop *WorkshopDTO     `json:"workshop,omitempty"`
	UserID   *uuid.UUID       `json:"user_id,omitempty"`
}

type StoreDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Biography string    `json:"biography,omitempty"`
	LogoURL   string    `json:"logo_url,omitempty"`
	Sponsored bool      `json:"sponsored"`
}

type WorkshopDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	LogoURL      string          `json:"logo_url,omitempty"`
	Active       bool            `json:"active"`
	Organization OrganizationDTO `json:"organization"`
}

type OrganizationDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Sponsored bool      `json:"sponsored"`
}

// UsageDTO mirrors the usage state machine: the mode discriminates, and the
// limited flag bundle is present only in limited mode.
type UsageDTO struct {
	Mode    models.UsageMode          `json:"mode"`
	Limited *models.LimitedUsageFlags `json:"limited_usage,omitempty"`
}

type VariantDTO struct {
	ID           uuid.UUID        `json:"id"`
	Price        float64          `json:"price"`
	Quantity     int              `json:"quantity"`
	SKU          string           `json:"sku,omitempty"`
	OptionValues []OptionValueDTO `json:"option_values"`
	Reviews      []ReviewDTO      `json:"reviews"`
	Previews     []PreviewDTO     `json:"previews"`
}

type OptionValueDTO struct {
	ID     uuid.UUID `json:"id"`
	Option string    `json:"option"`
	Value  string    `json:"value"`
}

type ReviewDTO struct {
	ID      uuid.UUID `json:"id"`
	Rating  int       `json:"rating"`
	Comment string    `json:"comment,omitempty"`
}
