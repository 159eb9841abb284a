// internal/catalog/assembler.go
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/printbazaar/marketplace-backend/internal/models"
)

// AssetResolver turns storage paths into client-facing URLs. One batched
// call is issued per page so resolution latency does not scale with image
// count.
type AssetResolver interface {
	ResolveBatch(ctx context.Context, paths []string) (map[string]string, error)
}

// assembler joins matched items to their owner, nested collections and
// resolved asset URLs. A single corrupt row is logged and skipped; it never
// fails the page.
type assembler struct {
	resolver AssetResolver
	log      *logrus.Logger
}

// itemData is the kind-neutral assembly input the per-kind converters
// produce from their model rows.
type itemData struct {
	id          uuid.UUID
	kind        Kind
	title       string
	description string
	tags        []string
	basePrice   float64
	imagePath   string
	publishedAt *time.Time
	status      models.ApprovalStatus
	published   bool
	theme       *models.Theme
	previews    []models.Preview
	ownable     *models.Ownable
	usage       *models.UsageParameters
	hasUsage    bool
	variants    []models.Variant
	designsUsed []uuid.UUID
}

func newAssembler(resolver AssetResolver, log *logrus.Logger) *assembler {
	return &assembler{resolver: resolver, log: log}
}

// assemblePage resolves every asset path in one batch, then builds DTOs in
// the given order. Items violating data invariants are skipped with a log
// entry; resolver failures abort the page.
func (a *assembler) assemblePage(ctx context.Context, items []itemData, metrics rankMetrics) ([]ItemDTO, error) {
	resolve, err := a.resolveAll(ctx, items)
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dto, err := a.assembleItem(item, metrics[item.id], resolve)
		if err != nil {
			a.log.WithFields(logrus.Fields{
				"kind":    item.kind,
				"item_id": item.id,
			}).WithError(err).Warn("skipping catalog item with integrity violation")
			continue
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

// assembleItem builds one DTO, or a data-integrity error if a required
// relation is missing or an exclusivity invariant is violated.
func (a *assembler) assembleItem(item itemData, rank rankedRow, resolve func(string) string) (*ItemDTO, error) {
	owner, err := a.buildOwner(item.ownable, resolve)
	if err != nil {
		return nil, err
	}

	dto := &ItemDTO{
		ID:              item.id,
		Kind:            item.kind,
		Title:           item.title,
		Description:     item.description,
		Tags:            item.tags,
		BasePrice:       item.basePrice,
		ImageURL:        resolve(item.imagePath),
		PublishedAt:     item.publishedAt,
		PopularityCount: rank.PopularityCount,
		NumReviews:      rank.NumReviews,
		AvgRating:       rank.AvgRating,
		Previews:        buildPreviews(item.previews, resolve),
		Owner:           owner,
		DesignsUsed:     item.designsUsed,
	}

	if item.theme != nil {
		dto.Theme = &ThemeDTO{ID: item.theme.ID, Name: item.theme.Name}
	}

	if item.hasUsage {
		usage, err := buildUsage(item.usage)
		if err != nil {
			return nil, err
		}
		dto.Usage = usage
	}

	for _, v := range item.variants {
		dto.Variants = append(dto.Variants, buildVariant(v, resolve))
	}

	return dto, nil
}

// buildOwner materializes the tagged union. The owner row itself must have
// been preloaded; a dangling reference is an integrity failure, not a silent
// partial block.
func (a *assembler) buildOwner(ownable *models.Ownable, resolve func(string) string) (OwnerDTO, error) {
	owner, err := ownable.Owner()
	if err != nil {
		return OwnerDTO{}, NewDataIntegrityError("owner reference invariant violated", err)
	}

	switch owner.Kind() {
	case models.OwnerKindStore:
		store := ownable.Store
		if store == nil {
			return OwnerDTO{}, NewDataIntegrityError("store owner row missing", nil)
		}
		return OwnerDTO{
			Type: models.OwnerKindStore,
			Store: &StoreDTO{
				ID:        store.ID,
				Name:      store.Name,
				Biography: store.Biography,
				LogoURL:   resolve(store.LogoPath),
				Sponsored: store.Designer.IsSponsored,
			},
		}, nil
	case models.OwnerKindWorkshop:
		workshop := ownable.Workshop
		if workshop == nil {
			return OwnerDTO{}, NewDataIntegrityError("workshop owner row missing", nil)
		}
		return OwnerDTO{
			Type: models.OwnerKindWorkshop,
			Workshop: &WorkshopDTO{
				ID:      workshop.ID,
				Name:    workshop.Name,
				LogoURL: resolve(workshop.LogoPath),
				Active:  workshop.IsActive,
				Organization: OrganizationDTO{
					ID:        workshop.Organization.ID,
					Name:      workshop.Organization.Name,
					Sponsored: workshop.Organization.IsSponsored,
				},
			},
		}, nil
	default:
		id := owner.ID()
		return OwnerDTO{Type: models.OwnerKindUser, UserID: &id}, nil
	}
}

// buildUsage mirrors the usage state machine into its tagged DTO. A design
// without a usage row, or one mixing groups, is an integrity failure.
func buildUsage(usage *models.UsageParameters) (*UsageDTO, error) {
	if usage == nil {
		return nil, NewDataIntegrityError("design missing usage parameters", nil)
	}
	mode, err := usage.Mode()
	if err != nil {
		return nil, NewDataIntegrityError("usage parameter groups mixed", err)
	}
	dto := &UsageDTO{Mode: mode}
	if mode == models.UsageModeLimited {
		flags := usage.Limited()
		dto.Limited = &flags
	}
	return dto, nil
}

func buildVariant(v models.Variant, resolve func(string) string) VariantDTO {
	dto := VariantDTO{
		ID:           v.ID,
		Price:        v.Price,
		Quantity:     v.Quantity,
		SKU:          v.SKU,
		OptionValues: make([]OptionValueDTO, 0, len(v.OptionValues)),
		Reviews:      make([]ReviewDTO, 0, len(v.Reviews)),
		Previews:     buildPreviews(v.Previews, resolve),
	}
	for _, ov := range v.OptionValues {
		dto.OptionValues = append(dto.OptionValues, OptionValueDTO{
			ID:     ov.ID,
			Option: ov.Option.Name,
			Value:  ov.Value,
		})
	}
	for _, r := range v.Reviews {
		dto.Reviews = append(dto.Reviews, ReviewDTO{ID: r.ID, Rating: r.Rating, Comment: r.Comment})
	}
	return dto
}

func buildPreviews(previews []models.Preview, resolve func(string) string) []PreviewDTO {
	out := make([]PreviewDTO, 0, len(previews))
	for _, p := range previews {
		out = append(out, PreviewDTO{ID: p.ID, ImageURL: resolve(p.ImagePath), Position: p.Position})
	}
	return out
}

// resolveAll collects every storage path the page references and issues one
// batched resolve call, returning a lookup closure.
func (a *assembler) resolveAll(ctx context.Context, items []itemData) (func(string) string, error) {
	seen := make(map[string]struct{})
	var paths []string
	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}

	for _, item := range items {
		add(item.imagePath)
		for _, p := range item.previews {
			add(p.ImagePath)
		}
		if item.ownable != nil {
			if item.ownable.Store != nil {
				add(item.ownable.Store.LogoPath)
			}
			if item.ownable.Workshop != nil {
				add(item.ownable.Workshop.LogoPath)
			}
		}
		for _, v := range item.variants {
			for _, p := range v.Previews {
				add(p.ImagePath)
			}
		}
	}

	resolved := map[string]string{}
	if len(paths) > 0 {
		var err error
		resolved, err = a.resolver.ResolveBatch(ctx, paths)
		if err != nil {
			return nil, NewUpstreamError("asset resolution failed", fmt.Errorf("resolve batch: %w", err))
		}
	}

	return func(path string) string {
		if path == "" {
			return ""
		}
		return resolved[path]
	}, nil
}
