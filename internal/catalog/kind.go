// internal/catalog/kind.go
package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/printbazaar/marketplace-backend/internal/models"
)

// Kind selects one of the three catalog surfaces. All three share the same
// engine; a descriptor parameterizes the differences.
type Kind string

const (
	KindDesigns         Kind = "designs"
	KindPersonalizables Kind = "personalizables"
	KindProducts        Kind = "products"
)

// descriptor is the declarative table driving the engine for one kind:
// which optional facets exist, how popularity is counted, and what the
// assembler nests into the response.
type descriptor struct {
	kind  Kind
	table string

	// facet families
	hasUsage     bool // free-usage facet and the usage DTO block
	hasVariants  bool // variant-level facets and nested variant DTOs
	hasCampaigns bool // promotion/event facets
	hasTaxonomy  bool // category/department/brand/model facets

	// personalization_method column exists only on personalizables
	hasPersonalizationMethod bool

	// salesRanked kinds count completed order lines; otherwise likes
	salesRanked bool
}

var descriptors = map[Kind]*descriptor{
	KindDesigns: {
		kind:         KindDesigns,
		table:        "designs",
		hasUsage:     true,
		hasCampaigns: true,
	},
	KindPersonalizables: {
		kind:                     KindPersonalizables,
		table:                    "personalizables",
		hasVariants:              true,
		hasTaxonomy:              true,
		hasPersonalizationMethod: true,
		salesRanked:              true,
	},
	KindProducts: {
		kind:        KindProducts,
		table:       "products",
		hasVariants: true,
		hasTaxonomy: true,
		salesRanked: true,
	},
}

func descriptorFor(kind Kind) (*descriptor, error) {
	d, ok := descriptors[kind]
	if !ok {
		return nil, NewValidationError("kind", fmt.Sprintf("unknown catalog kind %q", kind))
	}
	return d, nil
}

func (d *descriptor) col(name string) string {
	return d.table + "." + name
}

// newModel hands gorm a fresh model value so soft-delete scoping and table
// naming come from the mapped struct, not a raw table string.
func (d *descriptor) newModel() interface{} {
	switch d.kind {
	case KindDesigns:
		return &models.Design{}
	case KindPersonalizables:
		return &models.Personalizable{}
	default:
		return &models.Product{}
	}
}

// join clauses, keyed by the names facet builders register them under.

func (d *descriptor) workshopsJoin() (string, string) {
	return "workshops", fmt.Sprintf("LEFT JOIN workshops ON workshops.id = %s.workshop_id", d.table)
}

func (d *descriptor) storesJoin() (string, string) {
	return "stores", fmt.Sprintf("LEFT JOIN stores ON stores.id = %s.store_id", d.table)
}

func (d *descriptor) designersJoin() (string, string) {
	return "designers", "LEFT JOIN designers ON designers.id = stores.designer_id"
}

func (d *descriptor) organizationsJoin() (string, string) {
	return "organizations", "LEFT JOIN organizations ON organizations.id = workshops.organization_id"
}

func (d *descriptor) themesJoin() (string, string) {
	return "themes", fmt.Sprintf("LEFT JOIN themes ON themes.id = %s.theme_id", d.table)
}

func (d *descriptor) usageJoin() (string, string) {
	return "usage_parameters", "LEFT JOIN usage_parameters ON usage_parameters.design_id = designs.id"
}

// basePredicate is the visibility clause every public query carries: item
// approved and published, workshop owner (if any) active, regular-user-owned
// items excluded.
func (d *descriptor) basePredicate() *Predicate {
	p := NewPredicate()
	p.Join(d.workshopsJoin())
	p.Where(Cond{Column: d.col("status"), Op: OpEq, Value: "approved"})
	p.Where(Cond{Column: d.col("published"), Op: OpEq, Value: true})
	p.Where(Cond{Column: d.col("user_id"), Op: OpIsNull})
	p.Where(Or{
		Cond{Column: d.col("workshop_id"), Op: OpIsNull},
		Cond{Column: "workshops.is_active", Op: OpEq, Value: true},
	})
	return p
}

// buildPredicate translates the FilterSpec facets this kind supports into
// AND-ed clauses on top of the base visibility predicate. Absent facets
// contribute nothing.
func (d *descriptor) buildPredicate(spec *FilterSpec) *Predicate {
	p := d.basePredicate()

	if len(spec.Themes) > 0 {
		p.Where(Cond{Column: d.col("theme_id"), Op: OpIn, Value: spec.Themes})
	}
	if len(spec.Stores) > 0 {
		p.Where(Cond{Column: d.col("store_id"), Op: OpIn, Value: spec.Stores})
	}
	if len(spec.Workshops) > 0 {
		p.Where(Cond{Column: d.col("workshop_id"), Op: OpIn, Value: spec.Workshops})
	}
	if len(spec.Organizations) > 0 {
		p.Join(d.organizationsJoin())
		p.Where(Cond{Column: "workshops.organization_id", Op: OpIn, Value: spec.Organizations})
	}
	if spec.MinPrice != nil {
		p.Where(Cond{Column: d.col("base_price"), Op: OpGte, Value: *spec.MinPrice})
	}
	if spec.MaxPrice != nil {
		p.Where(Cond{Column: d.col("base_price"), Op: OpLte, Value: *spec.MaxPrice})
	}
	if spec.PublishedSince != nil {
		p.Where(Cond{Column: d.col("published_at"), Op: OpGte, Value: *spec.PublishedSince})
	}
	if len(spec.Tags) > 0 {
		p.Where(Cond{Column: d.col("tags"), Op: OpContainsAll, Value: pq.Array(spec.Tags)})
	}

	d.applySponsorship(p, spec)
	d.applySearchTerm(p, spec)

	if d.hasUsage && spec.FreeOnly {
		p.Join(d.usageJoin())
		p.Where(Cond{Column: "usage_parameters.free", Op: OpEq, Value: true})
	}
	if d.hasCampaigns {
		if len(spec.Promotions) > 0 {
			p.Where(Cond{Column: d.col("promotion_id"), Op: OpIn, Value: spec.Promotions})
		}
		if len(spec.Events) > 0 {
			p.Where(Cond{Column: d.col("event_id"), Op: OpIn, Value: spec.Events})
		}
	}
	if d.hasTaxonomy {
		if len(spec.Categories) > 0 {
			p.Where(Cond{Column: d.col("category_id"), Op: OpIn, Value: spec.Categories})
		}
		if len(spec.Departments) > 0 {
			p.Where(Cond{Column: d.col("department_id"), Op: OpIn, Value: spec.Departments})
		}
		if len(spec.Brands) > 0 {
			p.Where(Cond{Column: d.col("brand"), Op: OpIn, Value: spec.Brands})
		}
		if len(spec.Models) > 0 {
			p.Where(Cond{Column: d.col("model"), Op: OpIn, Value: spec.Models})
		}
	}
	if d.hasPersonalizationMethod && len(spec.PersonalizationMethods) > 0 {
		p.Where(Cond{Column: d.col("personalization_method"), Op: OpIn, Value: spec.PersonalizationMethods})
	}
	if d.hasVariants && len(spec.OptionValues) > 0 {
		p.Where(Raw{
			SQL: fmt.Sprintf(
				"EXISTS (SELECT 1 FROM variants v JOIN variant_option_values vov ON vov.variant_id = v.id WHERE v.%s = %s AND vov.option_value_id IN ?)",
				d.parentColumn(), d.col("id"),
			),
			Args: []interface{}{spec.OptionValues},
		})
	}

	return p
}

// applySponsorship dereferences the owner chain as join-aware clauses:
// store sponsorship lives on the designer profile, workshop sponsorship on
// the owning organization.
func (d *descriptor) applySponsorship(p *Predicate, spec *FilterSpec) {
	if spec.SponsoredStores {
		p.Join(d.storesJoin())
		p.Join(d.designersJoin())
		p.Where(Cond{Column: "designers.is_sponsored", Op: OpEq, Value: true})
	}
	if spec.SponsoredWorkshops || spec.SponsoredOrganizations {
		p.Join(d.organizationsJoin())
		p.Where(Cond{Column: "organizations.is_sponsored", Op: OpEq, Value: true})
	}
	if spec.SponsoredItems {
		p.Where(Cond{Column: d.col("is_sponsored"), Op: OpEq, Value: true})
	}
}

// applySearchTerm adds the OR-group over item text, theme text and owner
// display fields, AND-ed into the outer conjunction.
func (d *descriptor) applySearchTerm(p *Predicate, spec *FilterSpec) {
	if spec.SearchTerm == "" {
		return
	}
	pattern := "%" + spec.SearchTerm + "%"
	p.Join(d.themesJoin())
	p.Join(d.storesJoin())
	p.Join(d.organizationsJoin())
	p.Where(Or{
		Cond{Column: d.col("title"), Op: OpILike, Value: pattern},
		Cond{Column: d.col("description"), Op: OpILike, Value: pattern},
		Raw{SQL: fmt.Sprintf("array_to_string(%s, ' ') ILIKE ?", d.col("tags")), Args: []interface{}{pattern}},
		Cond{Column: "themes.name", Op: OpILike, Value: pattern},
		Cond{Column: "themes.description", Op: OpILike, Value: pattern},
		Cond{Column: "stores.name", Op: OpILike, Value: pattern},
		Cond{Column: "stores.biography", Op: OpILike, Value: pattern},
		Cond{Column: "workshops.name", Op: OpILike, Value: pattern},
		Cond{Column: "organizations.biography", Op: OpILike, Value: pattern},
	})
}

// parentColumn names the variant FK column pointing back at this kind.
func (d *descriptor) parentColumn() string {
	if d.kind == KindPersonalizables {
		return "personalizable_id"
	}
	return "product_id"
}

// ownedPredicate scopes a query to one regular user's own items with no
// public visibility gating; used by the authenticated "my items" listing.
func (d *descriptor) ownedPredicate(userID uuid.UUID) *Predicate {
	p := NewPredicate()
	p.Where(Cond{Column: d.col("user_id"), Op: OpEq, Value: userID})
	return p
}
