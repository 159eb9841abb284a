// internal/models/category.go
package models

import (
	"sort"

	"github.com/google/uuid"
)

// Department is a top-level merchandising grouping (men, women, kids, home).
type Department struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}

// Category is a self-referential tree node.
type Category struct {
	BaseModel
	Name               string             `json:"name" gorm:"size:100;not null"`
	ParentID           *uuid.UUID         `json:"parent_id,omitempty" gorm:"type:uuid;index"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status" gorm:"type:varchar(20);default:'available';index"`
	Position           int                `json:"position" gorm:"default:0"`

	// Relationships
	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

// CategoryNode is a rendered tree node containing only effectively visible
// categories.
type CategoryNode struct {
	ID                 uuid.UUID          `json:"id"`
	Name               string             `json:"name"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status"`
	Children           []CategoryNode     `json:"children,omitempty"`
}

// BuildVisibleTree renders the category forest, pruning nodes that are not
// effectively visible. Hidden and unavailable nodes are dropped with their
// subtrees. Coming-soon nodes are always visible. An available node is
// visible if it is a leaf, or if at least one descendant survived pruning.
func BuildVisibleTree(categories []Category) []CategoryNode {
	children := make(map[uuid.UUID][]Category)
	var roots []Category
	for _, c := range categories {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	var render func(c Category) (CategoryNode, bool)
	render = func(c Category) (CategoryNode, bool) {
		switch c.AvailabilityStatus {
		case AvailabilityStatusHidden, AvailabilityStatusUnavailable:
			return CategoryNode{}, false
		}

		node := CategoryNode{
			ID:                 c.ID,
			Name:               c.Name,
			AvailabilityStatus: c.AvailabilityStatus,
		}
		kids := children[c.ID]
		for _, child := range kids {
			if rendered, ok := render(child); ok {
				node.Children = append(node.Children, rendered)
			}
		}

		if c.AvailabilityStatus == AvailabilityStatusComingSoon {
			return node, true
		}
		// Available: interior nodes need at least one visible descendant.
		if len(kids) > 0 && len(node.Children) == 0 {
			return CategoryNode{}, false
		}
		return node, true
	}

	sortByPosition(roots)
	for id := range children {
		sortByPosition(children[id])
	}

	var out []CategoryNode
	for _, root := range roots {
		if node, ok := render(root); ok {
			out = append(out, node)
		}
	}
	return out
}

func sortByPosition(cats []Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].Position != cats[j].Position {
			return cats[i].Position < cats[j].Position
		}
		return cats[i].Name < cats[j].Name
	})
}
