// internal/models/category_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCategory(name string, parent *uuid.UUID, status AvailabilityStatus, position int) Category {
	c := Category{
		Name:               name,
		ParentID:           parent,
		AvailabilityStatus: status,
		Position:           position,
	}
	c.ID = uuid.New()
	return c
}

func TestBuildVisibleTreePrunesHiddenSubtrees(t *testing.T) {
	root := testCategory("Apparel", nil, AvailabilityStatusAvailable, 0)
	hidden := testCategory("Archive", &root.ID, AvailabilityStatusHidden, 1)
	hiddenChild := testCategory("Old stock", &hidden.ID, AvailabilityStatusAvailable, 0)
	shirts := testCategory("Shirts", &root.ID, AvailabilityStatusAvailable, 0)

	tree := BuildVisibleTree([]Category{root, hidden, hiddenChild, shirts})

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Shirts", tree[0].Children[0].Name)
}

func TestBuildVisibleTreeDropsEmptyAvailableInterior(t *testing.T) {
	root := testCategory("Accessories", nil, AvailabilityStatusAvailable, 0)
	child := testCategory("Belts", &root.ID, AvailabilityStatusUnavailable, 0)

	// The only child is pruned, so the interior root has nothing to show.
	tree := BuildVisibleTree([]Category{root, child})
	assert.Empty(t, tree)
}

func TestBuildVisibleTreeKeepsComingSoonWithoutChildren(t *testing.T) {
	root := testCategory("Home", nil, AvailabilityStatusComingSoon, 0)
	child := testCategory("Mugs", &root.ID, AvailabilityStatusHidden, 0)

	tree := BuildVisibleTree([]Category{root, child})

	require.Len(t, tree, 1)
	assert.Equal(t, AvailabilityStatusComingSoon, tree[0].AvailabilityStatus)
	assert.Empty(t, tree[0].Children)
}

func TestBuildVisibleTreeKeepsAvailableLeaves(t *testing.T) {
	leaf := testCategory("Posters", nil, AvailabilityStatusAvailable, 0)

	tree := BuildVisibleTree([]Category{leaf})

	require.Len(t, tree, 1)
	assert.Equal(t, "Posters", tree[0].Name)
}

func TestBuildVisibleTreeOrdersByPosition(t *testing.T) {
	second := testCategory("Second", nil, AvailabilityStatusAvailable, 2)
	first := testCategory("First", nil, AvailabilityStatusAvailable, 1)

	tree := BuildVisibleTree([]Category{second, first})

	require.Len(t, tree, 2)
	assert.Equal(t, "First", tree[0].Name)
	assert.Equal(t, "Second", tree[1].Name)
}
