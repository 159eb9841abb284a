// internal/catalog/facade.go
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/printbazaar/marketplace-backend/internal/models"
)

// Searcher is the engine's public surface. Handlers depend on this interface
// rather than the concrete service.
type Searcher interface {
	// Search runs a public catalog query from raw request parameters.
	Search(ctx context.Context, kind Kind, raw map[string]string) (*PageResult, error)
	// SearchOwned lists one regular user's own items, pending and
	// unpublished included.
	SearchOwned(ctx context.Context, kind Kind, userID uuid.UUID, raw map[string]string) (*PageResult, error)
	// GetByID fetches a single item under the public visibility clause.
	// A viewer sees their own regular-user items; everyone else gets
	// NotFound for them.
	GetByID(ctx context.Context, kind Kind, id uuid.UUID, viewer *uuid.UUID) (*ItemDTO, error)
}

// Service composes the parser, predicate builder, ranking and assembler for
// all three catalog kinds. It is stateless per request and issues no writes.
type Service struct {
	db           *gorm.DB
	assembler    *assembler
	log          *logrus.Logger
	queryTimeout time.Duration
}

func NewService(db *gorm.DB, resolver AssetResolver, log *logrus.Logger, queryTimeout time.Duration) *Service {
	return &Service{
		db:           db,
		assembler:    newAssembler(resolver, log),
		log:          log,
		queryTimeout: queryTimeout,
	}
}

func (s *Service) Search(ctx context.Context, kind Kind, raw map[string]string) (*PageResult, error) {
	spec, err := ParseFilterSpec(raw)
	if err != nil {
		return nil, err
	}
	d, err := descriptorFor(kind)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.runSearch(ctx, d, d.buildPredicate(spec), spec)
}

func (s *Service) SearchOwned(ctx context.Context, kind Kind, userID uuid.UUID, raw map[string]string) (*PageResult, error) {
	spec, err := ParseFilterSpec(raw)
	if err != nil {
		return nil, err
	}
	d, err := descriptorFor(kind)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.runSearch(ctx, d, d.ownedPredicate(userID), spec)
}

func (s *Service) GetByID(ctx context.Context, kind Kind, id uuid.UUID, viewer *uuid.UUID) (*ItemDTO, error) {
	d, err := descriptorFor(kind)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	items, err := s.hydrate(ctx, d, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	item, ok := items[id]
	if !ok || !s.visibleTo(item, viewer) {
		return nil, NewNotFoundError(string(d.kind))
	}

	rank, err := s.rankOne(ctx, d, id)
	if err != nil {
		return nil, err
	}

	return s.assembleOne(ctx, item, rank)
}

// assembleOne assembles a single hydrated item. The assembler skips items
// that violate data invariants, and with only one row on the page a skip
// means there is nothing left to return.
func (s *Service) assembleOne(ctx context.Context, item itemData, rank rankedRow) (*ItemDTO, error) {
	dtos, err := s.assembler.assemblePage(ctx, []itemData{item}, rankMetrics{item.id: rank})
	if err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, NewDataIntegrityError("catalog item violates data invariants", nil)
	}
	return &dtos[0], nil
}

// runSearch executes the composed query: total count over the full filtered
// set, ranked window, hydration, assembly.
func (s *Service) runSearch(ctx context.Context, d *descriptor, pred *Predicate, spec *FilterSpec) (*PageResult, error) {
	var total int64
	if err := pred.Apply(s.query(ctx, d)).Count(&total).Error; err != nil {
		return nil, wrapStoreError(err)
	}

	var rows rankedRows
	q := pred.Apply(s.query(ctx, d)).
		Select(d.rankingSelect()).
		Order(d.orderClause()).
		Limit(spec.PageSize()).
		Offset(spec.Offset)
	if err := q.Scan(&rows).Error; err != nil {
		return nil, wrapStoreError(err)
	}

	items, err := s.hydrate(ctx, d, rows.ids())
	if err != nil {
		return nil, err
	}

	// Page order comes from the ranking query; hydration returns rows in
	// storage order. Rows deleted between the two queries just drop out.
	ordered := make([]itemData, 0, len(rows))
	for _, row := range rows {
		if item, ok := items[row.ID]; ok {
			ordered = append(ordered, item)
		}
	}

	dtos, err := s.assembler.assemblePage(ctx, ordered, rows.metrics())
	if err != nil {
		return nil, err
	}
	return &PageResult{Items: dtos, Count: total}, nil
}

func (s *Service) query(ctx context.Context, d *descriptor) *gorm.DB {
	return s.db.WithContext(ctx).Model(d.newModel())
}

// rankOne computes the popularity metrics for a single item.
func (s *Service) rankOne(ctx context.Context, d *descriptor, id uuid.UUID) (rankedRow, error) {
	var row rankedRow
	err := s.query(ctx, d).
		Select(d.rankingSelect()).
		Where(d.col("id")+" = ?", id).
		Scan(&row).Error
	if err != nil {
		return rankedRow{}, wrapStoreError(err)
	}
	return row, nil
}

// hydrate loads full model rows with their nested relations for a set of
// ids and converts them to kind-neutral assembly input.
func (s *Service) hydrate(ctx context.Context, d *descriptor, ids []uuid.UUID) (map[uuid.UUID]itemData, error) {
	out := make(map[uuid.UUID]itemData, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	db := s.db.WithContext(ctx).
		Preload("Theme").
		Preload("Previews", orderPreviews).
		Preload("Store.Designer").
		Preload("Workshop.Organization").
		Where(d.col("id")+" IN ?", ids)

	switch d.kind {
	case KindDesigns:
		var rows []models.Design
		if err := db.Preload("Usage").Find(&rows).Error; err != nil {
			return nil, wrapStoreError(err)
		}
		for i := range rows {
			out[rows[i].ID] = designData(&rows[i])
		}
	case KindPersonalizables:
		var rows []models.Personalizable
		if err := preloadVariants(db).Find(&rows).Error; err != nil {
			return nil, wrapStoreError(err)
		}
		for i := range rows {
			out[rows[i].ID] = personalizableData(&rows[i])
		}
	case KindProducts:
		var rows []models.Product
		if err := preloadVariants(db).Preload("DesignsUsed").Find(&rows).Error; err != nil {
			return nil, wrapStoreError(err)
		}
		for i := range rows {
			out[rows[i].ID] = productData(&rows[i])
		}
	}
	return out, nil
}

func preloadVariants(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Variants.OptionValues.Option").
		Preload("Variants.Reviews").
		Preload("Variants.Previews", orderPreviews)
}

func orderPreviews(db *gorm.DB) *gorm.DB {
	return db.Order("previews.position ASC")
}

// visibleTo applies the base visibility clause in memory for single-item
// lookups: approved, published, active workshop, and never a regular user's
// item unless that user is the viewer.
func (s *Service) visibleTo(item itemData, viewer *uuid.UUID) bool {
	if item.ownable != nil && item.ownable.UserID != nil {
		return viewer != nil && *viewer == *item.ownable.UserID
	}
	if item.status != models.ApprovalStatusApproved || !item.published {
		return false
	}
	if item.ownable != nil && item.ownable.Workshop != nil && !item.ownable.Workshop.IsActive {
		return false
	}
	return true
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

// per-kind converters into the assembler's input shape

func designData(m *models.Design) itemData {
	return itemData{
		id:          m.ID,
		kind:        KindDesigns,
		title:       m.Title,
		description: m.Description,
		tags:        m.Tags,
		basePrice:   m.BasePrice,
		imagePath:   m.ImagePath,
		publishedAt: m.PublishedAt,
		status:      m.Status,
		published:   m.Published,
		theme:       m.Theme,
		previews:    m.Previews,
		ownable:     &m.Ownable,
		usage:       m.Usage,
		hasUsage:    true,
	}
}

func personalizableData(m *models.Personalizable) itemData {
	return itemData{
		id:          m.ID,
		kind:        KindPersonalizables,
		title:       m.Title,
		description: m.Description,
		tags:        m.Tags,
		basePrice:   m.BasePrice,
		imagePath:   m.ImagePath,
		publishedAt: m.PublishedAt,
		status:      m.Status,
		published:   m.Published,
		theme:       m.Theme,
		previews:    m.Previews,
		ownable:     &m.Ownable,
		variants:    m.Variants,
	}
}

func productData(m *models.Product) itemData {
	designIDs := make([]uuid.UUID, 0, len(m.DesignsUsed))
	for _, d := range m.DesignsUsed {
		designIDs = append(designIDs, d.ID)
	}
	return itemData{
		id:          m.ID,
		kind:        KindProducts,
		title:       m.Title,
		description: m.Description,
		tags:        m.Tags,
		basePrice:   m.BasePrice,
		imagePath:   m.ImagePath,
		publishedAt: m.PublishedAt,
		status:      m.Status,
		published:   m.Published,
		theme:       m.Theme,
		previews:    m.Previews,
		ownable:     &m.Ownable,
		variants:    m.Variants,
		designsUsed: designIDs,
	}
}
