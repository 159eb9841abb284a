// internal/catalog/assembler_test.go
package catalog

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printbazaar/marketplace-backend/internal/models"
)

type fakeResolver struct {
	calls   int
	batches [][]string
	err     error
}

func (f *fakeResolver) ResolveBatch(ctx context.Context, paths []string) (map[string]string, error) {
	f.calls++
	f.batches = append(f.batches, paths)
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]string, len(paths))
	for _, p := range paths {
		out[p] = "https://cdn.example.com/" + p
	}
	return out, nil
}

func testAssembler(resolver AssetResolver) *assembler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return newAssembler(resolver, log)
}

func storeOwnedItem(kind Kind) itemData {
	storeID := uuid.New()
	return itemData{
		id:        uuid.New(),
		kind:      kind,
		title:     "Sunset",
		basePrice: 12,
		imagePath: "designs/sunset.png",
		ownable: &models.Ownable{
			StoreID: &storeID,
			Store: &models.Store{
				Name:     "Sunset Studio",
				LogoPath: "logos/sunset.png",
				Designer: models.Designer{IsSponsored: true},
			},
		},
		usage:    models.FreeUsage(uuid.New()),
		hasUsage: kind == KindDesigns,
	}
}

func TestAssemblePageResolvesAssetsInOneBatch(t *testing.T) {
	resolver := &fakeResolver{}
	a := testAssembler(resolver)

	first := storeOwnedItem(KindDesigns)
	second := storeOwnedItem(KindDesigns)
	second.previews = []models.Preview{{ImagePath: "previews/back.png", Position: 1}}

	dtos, err := a.assemblePage(context.Background(), []itemData{first, second}, rankMetrics{})
	require.NoError(t, err)
	require.Len(t, dtos, 2)

	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, "https://cdn.example.com/designs/sunset.png", dtos[0].ImageURL)
	require.Len(t, dtos[1].Previews, 1)
	assert.Equal(t, "https://cdn.example.com/previews/back.png", dtos[1].Previews[0].ImageURL)
}

func TestAssemblePageDeduplicatesPaths(t *testing.T) {
	resolver := &fakeResolver{}
	a := testAssembler(resolver)

	first := storeOwnedItem(KindDesigns)
	second := storeOwnedItem(KindDesigns)
	second.imagePath = first.imagePath
	second.ownable = first.ownable

	_, err := a.assemblePage(context.Background(), []itemData{first, second}, rankMetrics{})
	require.NoError(t, err)
	require.Len(t, resolver.batches, 1)
	assert.ElementsMatch(t, []string{"designs/sunset.png", "logos/sunset.png"}, resolver.batches[0])
}

func TestAssemblePageSkipsIntegrityViolations(t *testing.T) {
	a := testAssembler(&fakeResolver{})

	good := storeOwnedItem(KindDesigns)
	orphan := storeOwnedItem(KindDesigns)
	orphan.ownable = &models.Ownable{} // no owner reference at all

	dtos, err := a.assemblePage(context.Background(), []itemData{orphan, good}, rankMetrics{})
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, good.id, dtos[0].ID)
}

func TestAssemblePageResolverFailureAbortsPage(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("s3 unreachable")}
	a := testAssembler(resolver)

	_, err := a.assemblePage(context.Background(), []itemData{storeOwnedItem(KindDesigns)}, rankMetrics{})
	require.Error(t, err)
	assert.Equal(t, ErrKindUpstream, KindOf(err))
}

func TestAssembleItemCarriesRankMetrics(t *testing.T) {
	a := testAssembler(&fakeResolver{})
	item := storeOwnedItem(KindProducts)
	item.hasUsage = false
	item.usage = nil

	metrics := rankMetrics{
		item.id: {ID: item.id, PopularityCount: 7, NumReviews: 3, AvgRating: 4.5},
	}

	dtos, err := a.assemblePage(context.Background(), []itemData{item}, metrics)
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, int64(7), dtos[0].PopularityCount)
	assert.Equal(t, int64(3), dtos[0].NumReviews)
	assert.Equal(t, 4.5, dtos[0].AvgRating)
}

func TestBuildOwnerStore(t *testing.T) {
	a := testAssembler(&fakeResolver{})
	item := storeOwnedItem(KindDesigns)

	dtos, err := a.assemblePage(context.Background(), []itemData{item}, rankMetrics{})
	require.NoError(t, err)
	require.Len(t, dtos, 1)

	owner := dtos[0].Owner
	assert.Equal(t, models.OwnerKindStore, owner.Type)
	require.NotNil(t, owner.Store)
	assert.Nil(t, owner.Workshop)
	assert.Nil(t, owner.UserID)
	assert.Equal(t, "Sunset Studio", owner.Store.Name)
	assert.True(t, owner.Store.Sponsored)
	assert.Equal(t, "https://cdn.example.com/logos/sunset.png", owner.Store.LogoURL)
}

func TestBuildOwnerWorkshop(t *testing.T) {
	a := testAssembler(&fakeResolver{})
	workshopID := uuid.New()
	item := itemData{
		id:   uuid.New(),
		kind: KindProducts,
		ownable: &models.Ownable{
			WorkshopID: &workshopID,
			Workshop: &models.Workshop{
				Name:         "Print Works",
				IsActive:     true,
				Organization: models.Organization{Name: "Acme", IsSponsored: true},
			},
		},
	}

	dtos, err := a.assemblePage(context.Background(), []itemData{item}, rankMetrics{})
	require.NoError(t, err)
	require.Len(t, dtos, 1)

	owner := dtos[0].Owner
	assert.Equal(t, models.OwnerKindWorkshop, owner.Type)
	require.NotNil(t, owner.Workshop)
	assert.Nil(t, owner.Store)
	assert.Equal(t, "Print Works", owner.Workshop.Name)
	assert.True(t, owner.Workshop.Organization.Sponsored)
}

func TestBuildOwnerMissingPreloadedRow(t *testing.T) {
	a := testAssembler(&fakeResolver{})
	storeID := uuid.New()
	item := itemData{
		id:      uuid.New(),
		kind:    KindDesigns,
		ownable: &models.Ownable{StoreID: &storeID}, // FK set, row not loaded
		usage:   models.FreeUsage(uuid.New()),
	}
	item.hasUsage = true

	dtos, err := a.assemblePage(context.Background(), []itemData{item}, rankMetrics{})
	require.NoError(t, err)
	assert.Empty(t, dtos)
}

func TestBuildUsageModes(t *testing.T) {
	a := testAssembler(&fakeResolver{})

	item := storeOwnedItem(KindDesigns)
	item.usage = models.LimitedUsage(uuid.New(), models.LimitedUsageFlags{Printing: true})

	dtos, err := a.assemblePage(context.Background(), []itemData{item}, rankMetrics{})
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	require.NotNil(t, dtos[0].Usage)
	assert.Equal(t, models.UsageModeLimited, dtos[0].Usage.Mode)
	require.NotNil(t, dtos[0].Usage.Limited)
	assert.True(t, dtos[0].Usage.Limited.Printing)
}

func TestBuildUsageMissingRowSkipsItem(t *testing.T) {
	a := testAssembler(&fakeResolver{})
	item := storeOwnedItem(KindDesigns)
	item.usage = nil

	dtos, err := a.assemblePage(context.Background(), []itemData{item}, rankMetrics{})
	require.NoError(t, err)
	assert.Empty(t, dtos)
}

func TestBuildUsageConflictSkipsItem(t *testing.T) {
	a := testAssembler(&fakeResolver{})
	item := storeOwnedItem(KindDesigns)
	item.usage = &models.UsageParameters{Exclusive: true, Free: true}

	dtos, err := a.assemblePage(context.Background(), []itemData{item}, rankMetrics{})
	require.NoError(t, err)
	assert.Empty(t, dtos)
}

func TestBuildVariantNesting(t *testing.T) {
	a := testAssembler(&fakeResolver{})
	item := storeOwnedItem(KindPersonalizables)
	item.hasUsage = false
	item.usage = nil
	item.variants = []models.Variant{{
		Price:    19.5,
		Quantity: 4,
		SKU:      "TS-RED-M",
		OptionValues: []models.OptionValue{
			{Value: "Red", Option: models.Option{Name: "Color"}},
		},
		Reviews:  []models.Review{{Rating: 5, Comment: "great"}},
		Previews: []models.Preview{{ImagePath: "previews/red.png"}},
	}}

	dtos, err := a.assemblePage(context.Background(), []itemData{item}, rankMetrics{})
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	require.Len(t, dtos[0].Variants, 1)

	v := dtos[0].Variants[0]
	assert.Equal(t, "TS-RED-M", v.SKU)
	require.Len(t, v.OptionValues, 1)
	assert.Equal(t, "Color", v.OptionValues[0].Option)
	assert.Equal(t, "Red", v.OptionValues[0].Value)
	require.Len(t, v.Reviews, 1)
	assert.Equal(t, 5, v.Reviews[0].Rating)
	require.Len(t, v.Previews, 1)
	assert.Equal(t, "https://cdn.example.com/previews/red.png", v.Previews[0].ImageURL)
}

func TestAssemblePageNoPathsSkipsResolver(t *testing.T) {
	resolver := &fakeResolver{}
	a := testAssembler(resolver)

	userID := uuid.New()
	item := itemData{
		id:      uuid.New(),
		kind:    KindProducts,
		ownable: &models.Ownable{UserID: &userID},
	}

	dtos, err := a.assemblePage(context.Background(), []itemData{item}, rankMetrics{})
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, 0, resolver.calls)
	assert.Equal(t, models.OwnerKindUser, dtos[0].Owner.Type)
	require.NotNil(t, dtos[0].Owner.UserID)
	assert.Equal(t, userID, *dtos[0].Owner.UserID)
}
