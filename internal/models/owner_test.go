// internal/models/owner_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOwnerNullsSiblingColumns(t *testing.T) {
	storeID := uuid.New()
	workshopID := uuid.New()

	var ow Ownable
	ow.SetOwner(StoreOwner(storeID))
	require.NotNil(t, ow.StoreID)
	assert.Equal(t, storeID, *ow.StoreID)
	assert.Nil(t, ow.WorkshopID)
	assert.Nil(t, ow.UserID)

	// Reassigning must clear the previous reference.
	ow.SetOwner(WorkshopOwner(workshopID))
	require.NotNil(t, ow.WorkshopID)
	assert.Equal(t, workshopID, *ow.WorkshopID)
	assert.Nil(t, ow.StoreID)
	assert.Nil(t, ow.UserID)
}

func TestOwnerRoundTrip(t *testing.T) {
	userID := uuid.New()

	var ow Ownable
	ow.SetOwner(UserOwner(userID))

	owner, err := ow.Owner()
	require.NoError(t, err)
	assert.Equal(t, OwnerKindUser, owner.Kind())
	assert.Equal(t, userID, owner.ID())
}

func TestOwnerWithNoReference(t *testing.T) {
	var ow Ownable
	_, err := ow.Owner()
	assert.ErrorIs(t, err, ErrNoOwner)
}

func TestOwnerWithAmbiguousReferences(t *testing.T) {
	storeID := uuid.New()
	userID := uuid.New()

	ow := Ownable{StoreID: &storeID, UserID: &userID}
	_, err := ow.Owner()
	assert.ErrorIs(t, err, ErrAmbiguousOwner)
}
