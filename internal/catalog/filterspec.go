// internal/catalog/filterspec.go
package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

const (
	defaultOffset = 0
	defaultLimit  = 20
	maxPageWindow = 50
	maxSearchTerm = 100
	maxFreeText   = 100

	publicationDateLayout = "2006-01-02"
)

// FilterSpec is the validated, typed form of a catalog search request.
// Offset and Limit follow the wire contract: Limit is the end position of the
// requested window, not a page size.
type FilterSpec struct {
	Offset int `validate:"gte=0"`
	Limit  int `validate:"gte=0"`

	MinPrice *int
	MaxPrice *int

	Themes        []uuid.UUID
	Stores        []uuid.UUID
	Workshops     []uuid.UUID
	Organizations []uuid.UUID
	Categories    []uuid.UUID
	Departments   []uuid.UUID
	Promotions    []uuid.UUID
	Events        []uuid.UUID
	OptionValues  []uuid.UUID

	SponsoredStores        bool
	SponsoredWorkshops     bool
	SponsoredOrganizations bool
	SponsoredItems         bool
	FreeOnly               bool

	SearchTerm string `validate:"max=100"`
	Tags       []string

	Brands                 []string
	Models                 []string
	PersonalizationMethods []string

	PublishedSince *time.Time
}

// PageSize is the number of rows the requested window spans.
func (f *FilterSpec) PageSize() int { return f.Limit - f.Offset }

// ParseFilterSpec turns the raw string-keyed parameter map into a FilterSpec,
// or a ValidationError naming the first offending field. It never touches the
// data store.
func ParseFilterSpec(raw map[string]string) (*FilterSpec, error) {
	spec := &FilterSpec{Offset: defaultOffset, Limit: defaultLimit}

	if err := parsePageWindow(raw, spec); err != nil {
		return nil, err
	}
	if err := parsePriceRange(raw, spec); err != nil {
		return nil, err
	}

	idLists := []struct {
		field string
		dst   *[]uuid.UUID
	}{
		{"themes", &spec.Themes},
		{"stores", &spec.Stores},
		{"workshops", &spec.Workshops},
		{"organizations", &spec.Organizations},
		{"categories", &spec.Categories},
		{"departments", &spec.Departments},
		{"promotions", &spec.Promotions},
		{"events", &spec.Events},
		{"option_values", &spec.OptionValues},
	}
	for _, l := range idLists {
		ids, err := parseIDList(raw, l.field)
		if err != nil {
			return nil, err
		}
		*l.dst = ids
	}

	boolFlags := []struct {
		field string
		dst   *bool
	}{
		{"sponsored_stores", &spec.SponsoredStores},
		{"sponsored_workshops", &spec.SponsoredWorkshops},
		{"sponsored_organizations", &spec.SponsoredOrganizations},
		{"sponsored_designs", &spec.SponsoredItems},
		{"sponsored_personalizables", &spec.SponsoredItems},
		{"sponsored_products", &spec.SponsoredItems},
		{"free", &spec.FreeOnly},
	}
	for _, b := range boolFlags {
		set, err := parseBoolFlag(raw, b.field)
		if err != nil {
			return nil, err
		}
		if set {
			*b.dst = true
		}
	}

	if term, ok := raw["search_term"]; ok {
		term = strings.TrimSpace(term)
		if len(term) > maxSearchTerm {
			return nil, NewValidationError("search_term", "must be at most 100 characters")
		}
		spec.SearchTerm = term
	}

	textLists := []struct {
		field string
		dst   *[]string
	}{
		{"tags", &spec.Tags},
		{"brands", &spec.Brands},
		{"models", &spec.Models},
		{"personalization_methods", &spec.PersonalizationMethods},
	}
	for _, l := range textLists {
		values, err := parseTextList(raw, l.field)
		if err != nil {
			return nil, err
		}
		*l.dst = values
	}

	if value, ok := raw["publication_date"]; ok && value != "" {
		date, err := time.Parse(publicationDateLayout, strings.TrimSpace(value))
		if err != nil {
			return nil, NewValidationError("publication_date", "must be a date in YYYY-MM-DD form")
		}
		spec.PublishedSince = &date
	}

	// Structural backstop over the assembled spec.
	if err := validate.Struct(spec); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return nil, NewValidationError(strings.ToLower(verrs[0].Field()), "is invalid")
		}
		return nil, NewValidationError("filters", "invalid filter parameters")
	}

	return spec, nil
}

func parsePageWindow(raw map[string]string, spec *FilterSpec) error {
	if value, ok := raw["offset"]; ok {
		offset, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || offset < 0 {
			return NewValidationError("offset", "must be a non-negative integer")
		}
		spec.Offset = offset
	}
	if value, ok := raw["limit"]; ok {
		limit, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || limit < 0 {
			return NewValidationError("limit", "must be a non-negative integer")
		}
		spec.Limit = limit
	}
	if spec.Offset > spec.Limit {
		return NewValidationError("offset", "must not exceed limit")
	}
	if spec.Limit-spec.Offset > maxPageWindow {
		return NewValidationError("limit", "window must span at most 50 items")
	}
	return nil
}

func parsePriceRange(raw map[string]string, spec *FilterSpec) error {
	if value, ok := raw["min_price"]; ok {
		min, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || min < 0 {
			return NewValidationError("min_price", "must be a non-negative integer")
		}
		spec.MinPrice = &min
	}
	if value, ok := raw["max_price"]; ok {
		max, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || max < 0 {
			return NewValidationError("max_price", "must be a non-negative integer")
		}
		spec.MaxPrice = &max
	}
	if spec.MinPrice != nil && spec.MaxPrice != nil && *spec.MinPrice > *spec.MaxPrice {
		return NewValidationError("min_price", "must not exceed max_price")
	}
	return nil
}

func parseIDList(raw map[string]string, field string) ([]uuid.UUID, error) {
	value, ok := raw[field]
	if !ok || strings.TrimSpace(value) == "" {
		return nil, nil
	}

	var ids []uuid.UUID
	for _, token := range strings.Split(value, ",") {
		token = strings.TrimSpace(token)
		id, err := uuid.Parse(token)
		if err != nil || id.Version() != 4 {
			return nil, NewValidationError(field, "contains a malformed identifier")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseBoolFlag accepts only the literal strings "true" and "True". Anything
// else, "false" included, is a validation error. Observed legacy behavior;
// callers omit the parameter to leave the flag unset.
func parseBoolFlag(raw map[string]string, field string) (bool, error) {
	value, ok := raw[field]
	if !ok {
		return false, nil
	}
	if value != "true" && value != "True" {
		return false, NewValidationError(field, `must be the literal "true"`)
	}
	return true, nil
}

func parseTextList(raw map[string]string, field string) ([]string, error) {
	value, ok := raw[field]
	if !ok || strings.TrimSpace(value) == "" {
		return nil, nil
	}

	var values []string
	for _, token := range strings.Split(value, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if len(token) > maxFreeText {
			return nil, NewValidationError(field, "contains a value longer than 100 characters")
		}
		values = append(values, token)
	}
	return values, nil
}
