// internal/models/owner.go
package models

import (
	"errors"

	"github.com/google/uuid"
)

// Store is a designer's storefront.
type Store struct {
	BaseModel
	DesignerID uuid.UUID `json:"designer_id" gorm:"type:uuid;not null;index"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	Biography  string    `json:"biography" gorm:"type:text"`
	LogoPath   string    `json:"logo_path" gorm:"size:512"`

	// Relationships
	Designer Designer `json:"designer,omitempty" gorm:"foreignKey:DesignerID"`
}

// Workshop belongs to an organization. Inactive workshops hide every item
// they own from the public catalog.
type Workshop struct {
	BaseModel
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	LogoPath       string    `json:"logo_path" gorm:"size:512"`
	IsActive       bool      `json:"is_active" gorm:"default:true;index"`

	// Relationships
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

// OwnerKind discriminates the Owner union.
type OwnerKind string

const (
	OwnerKindStore    OwnerKind = "store"
	OwnerKindWorkshop OwnerKind = "workshop"
	OwnerKindUser     OwnerKind = "user"
)

var (
	ErrNoOwner        = errors.New("catalog item has no owner reference")
	ErrAmbiguousOwner = errors.New("catalog item has more than one owner reference")
)

// Owner is the domain-level tagged union over the three mutually exclusive
// owner kinds. Values are only constructed through StoreOwner, WorkshopOwner
// and UserOwner, so an Owner can never reference two kinds at once.
type Owner struct {
	kind OwnerKind
	id   uuid.UUID
}

func StoreOwner(id uuid.UUID) Owner    { return Owner{kind: OwnerKindStore, id: id} }
func WorkshopOwner(id uuid.UUID) Owner { return Owner{kind: OwnerKindWorkshop, id: id} }
func UserOwner(id uuid.UUID) Owner     { return Owner{kind: OwnerKindUser, id: id} }

func (o Owner) Kind() OwnerKind { return o.kind }
func (o Owner) ID() uuid.UUID   { return o.id }

// Ownable is the persistence mapping of the Owner union: three nullable
// foreign keys of which exactly one must be set. The invariant is enforced
// here, at the only place the columns are written.
type Ownable struct {
	StoreID    *uuid.UUID `json:"store_id,omitempty" gorm:"type:uuid;index"`
	WorkshopID *uuid.UUID `json:"workshop_id,omitempty" gorm:"type:uuid;index"`
	UserID     *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`

	// Relationships
	Store    *Store    `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	Workshop *Workshop `json:"workshop,omitempty" gorm:"foreignKey:WorkshopID"`
	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// SetOwner assigns the owner reference, nulling the sibling columns so the
// exactly-one invariant holds on write.
func (ow *Ownable) SetOwner(o Owner) {
	id := o.ID()
	ow.StoreID, ow.WorkshopID, ow.UserID = nil, nil, nil
	ow.Store, ow.Workshop, ow.User = nil, nil, nil
	switch o.Kind() {
	case OwnerKindStore:
		ow.StoreID = &id
	case OwnerKindWorkshop:
		ow.WorkshopID = &id
	case OwnerKindUser:
		ow.UserID = &id
	}
}

// Owner reconstructs the tagged union from the column set. Rows that violate
// the exactly-one invariant surface ErrNoOwner or ErrAmbiguousOwner.
func (ow *Ownable) Owner() (Owner, error) {
	var owner Owner
	set := 0
	if ow.StoreID != nil {
		owner = StoreOwner(*ow.StoreID)
		set++
	}
	if ow.WorkshopID != nil {
		owner = WorkshopOwner(*ow.WorkshopID)
		set++
	}
	if ow.UserID != nil {
		owner = UserOwner(*ow.UserID)
		set++
	}
	switch set {
	case 0:
		return Owner{}, ErrNoOwner
	case 1:
		return owner, nil
	default:
		return Owner{}, ErrAmbiguousOwner
	}
}
