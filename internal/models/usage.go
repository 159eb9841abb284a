// internal/models/usage.go
package models

import (
	"errors"

	"github.com/google/uuid"
)

// UsageMode names the three mutually exclusive usage states of a design.
type UsageMode string

const (
	UsageModeExclusive UsageMode = "exclusive"
	UsageModeFree      UsageMode = "free"
	UsageModeLimited   UsageMode = "limited"
)

var ErrUsageConflict = errors.New("usage parameters mix exclusive, free and limited flags")

// LimitedUsageFlags are the production methods a limited-usage design may be
// applied with. Only meaningful when the design is neither exclusive nor free.
type LimitedUsageFlags struct {
	Printing        bool `json:"printing"`
	Embroidery      bool `json:"embroidery"`
	Engraving       bool `json:"engraving"`
	Sublimation     bool `json:"sublimation"`
	ScreenPrinting  bool `json:"screen_printing"`
	Vinyl           bool `json:"vinyl"`
	DigitalProducts bool `json:"digital_products"`
}

// UsageParameters is the per-design usage state machine: exclusive, free, or
// a bundle of limited-usage flags. The constructors below are the only way a
// valid row is produced, so the groups cannot mix.
type UsageParameters struct {
	BaseModel
	DesignID uuid.UUID `json:"design_id" gorm:"type:uuid;not null;uniqueIndex"`

	Exclusive bool `json:"exclusive" gorm:"default:false"`
	Free      bool `json:"free" gorm:"default:false"`

	LimitedUsageWithPrinting        bool `json:"limited_usage_with_printing" gorm:"default:false"`
	LimitedUsageWithEmbroidery      bool `json:"limited_usage_with_embroidery" gorm:"default:false"`
	LimitedUsageWithEngraving       bool `json:"limited_usage_with_engraving" gorm:"default:false"`
	LimitedUsageWithSublimation     bool `json:"limited_usage_with_sublimation" gorm:"default:false"`
	LimitedUsageWithScreenPrinting  bool `json:"limited_usage_with_screen_printing" gorm:"default:false"`
	LimitedUsageWithVinyl           bool `json:"limited_usage_with_vinyl" gorm:"default:false"`
	LimitedUsageWithDigitalProducts bool `json:"limited_usage_with_digital_products" gorm:"default:false"`
}

// ExclusiveUsage forces every limited flag false.
func ExclusiveUsage(designID uuid.UUID) *UsageParameters {
	return &UsageParameters{DesignID: designID, Exclusive: true}
}

// FreeUsage forces every limited flag false.
func FreeUsage(designID uuid.UUID) *UsageParameters {
	return &UsageParameters{DesignID: designID, Free: true}
}

// LimitedUsage carries the given flag bundle; exclusive and free stay false.
func LimitedUsage(designID uuid.UUID, flags LimitedUsageFlags) *UsageParameters {
	return &UsageParameters{
		DesignID:                        designID,
		LimitedUsageWithPrinting:        flags.Printing,
		LimitedUsageWithEmbroidery:      flags.Embroidery,
		LimitedUsageWithEngraving:       flags.Engraving,
		LimitedUsageWithSublimation:     flags.Sublimation,
		LimitedUsageWithScreenPrinting:  flags.ScreenPrinting,
		LimitedUsageWithVinyl:           flags.Vinyl,
		LimitedUsageWithDigitalProducts: flags.DigitalProducts,
	}
}

// Mode classifies a stored row. Rows written outside the constructors may
// violate group exclusivity; those surface ErrUsageConflict.
func (u *UsageParameters) Mode() (UsageMode, error) {
	limited := u.anyLimitedFlag()
	switch {
	case u.Exclusive && !u.Free && !limited:
		return UsageModeExclusive, nil
	case u.Free && !u.Exclusive && !limited:
		return UsageModeFree, nil
	case !u.Exclusive && !u.Free:
		return UsageModeLimited, nil
	default:
		return "", ErrUsageConflict
	}
}

// Limited returns the flag bundle for DTO assembly.
func (u *UsageParameters) Limited() LimitedUsageFlags {
	return LimitedUsageFlags{
		Printing:        u.LimitedUsageWithPrinting,
		Embroidery:      u.LimitedUsageWithEmbroidery,
		Engraving:       u.LimitedUsageWithEngraving,
		Sublimation:     u.LimitedUsageWithSublimation,
		ScreenPrinting:  u.LimitedUsageWithScreenPrinting,
		Vinyl:           u.LimitedUsageWithVinyl,
		DigitalProducts: u.LimitedUsageWithDigitalProducts,
	}
}

func (u *UsageParameters) anyLimitedFlag() bool {
	return u.LimitedUsageWithPrinting ||
		u.LimitedUsageWithEmbroidery ||
		u.LimitedUsageWithEngraving ||
		u.LimitedUsageWithSublimation ||
		u.LimitedUsageWithScreenPrinting ||
		u.LimitedUsageWithVinyl ||
		u.LimitedUsageWithDigitalProducts
}
