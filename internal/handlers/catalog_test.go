// internal/handlers/catalog_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printbazaar/marketplace-backend/internal/catalog"
)

type fakeSearcher struct {
	lastKind   catalog.Kind
	lastRaw    map[string]string
	lastUserID uuid.UUID
	lastViewer *uuid.UUID
	lastID     uuid.UUID

	result *catalog.PageResult
	item   *catalog.ItemDTO
	err    error
}

func (f *fakeSearcher) Search(ctx context.Context, kind catalog.Kind, raw map[string]string) (*catalog.PageResult, error) {
	f.lastKind, f.lastRaw = kind, raw
	return f.result, f.err
}

func (f *fakeSearcher) SearchOwned(ctx context.Context, kind catalog.Kind, userID uuid.UUID, raw map[string]string) (*catalog.PageResult, error) {
	f.lastKind, f.lastUserID, f.lastRaw = kind, userID, raw
	return f.result, f.err
}

func (f *fakeSearcher) GetByID(ctx context.Context, kind catalog.Kind, id uuid.UUID, viewer *uuid.UUID) (*catalog.ItemDTO, error) {
	f.lastKind, f.lastID, f.lastViewer = kind, id, viewer
	return f.item, f.err
}

func setupCatalogRouter(searcher catalog.Searcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCatalogHandler(searcher)

	r := gin.New()
	r.GET("/v1/designs", h.SearchDesigns)
	r.GET("/v1/designs/:id", h.GetDesign)
	r.GET("/v1/products", h.SearchProducts)
	r.GET("/v1/products/mine", func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-Test-User"))
		h.MyProducts(c)
	})
	return r
}

func TestSearchPassesQueryParameters(t *testing.T) {
	searcher := &fakeSearcher{result: &catalog.PageResult{Items: []catalog.ItemDTO{}, Count: 0}}
	r := setupCatalogRouter(searcher)

	req, _ := http.NewRequest("GET", "/v1/designs?limit=30&search_term=floral", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, catalog.KindDesigns, searcher.lastKind)
	assert.Equal(t, "30", searcher.lastRaw["limit"])
	assert.Equal(t, "floral", searcher.lastRaw["search_term"])

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response["success"].(bool))
}

func TestSearchValidationErrorMapsTo400(t *testing.T) {
	searcher := &fakeSearcher{err: catalog.NewValidationError("min_price", "must not exceed max_price")}
	r := setupCatalogRouter(searcher)

	req, _ := http.NewRequest("GET", "/v1/designs?min_price=50&max_price=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errBody := response["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
	assert.Equal(t, "min_price", errBody["details"].(map[string]interface{})["field"])
}

func TestSearchTimeoutMapsTo504(t *testing.T) {
	searcher := &fakeSearcher{err: catalog.NewTimeoutError(nil)}
	r := setupCatalogRouter(searcher)

	req, _ := http.NewRequest("GET", "/v1/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestGetItemRejectsMalformedID(t *testing.T) {
	searcher := &fakeSearcher{}
	r := setupCatalogRouter(searcher)

	req, _ := http.NewRequest("GET", "/v1/designs/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetItemNotFoundMapsTo404(t *testing.T) {
	searcher := &fakeSearcher{err: catalog.NewNotFoundError("designs")}
	r := setupCatalogRouter(searcher)

	id := uuid.New()
	req, _ := http.NewRequest("GET", "/v1/designs/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, id, searcher.lastID)
	assert.Nil(t, searcher.lastViewer)
}

func TestGetItemPassesViewerContext(t *testing.T) {
	searcher := &fakeSearcher{item: &catalog.ItemDTO{}}
	gin.SetMode(gin.TestMode)
	h := NewCatalogHandler(searcher)

	viewer := uuid.New()
	r := gin.New()
	r.GET("/v1/designs/:id", func(c *gin.Context) {
		c.Set("user_id", viewer.String())
		h.GetDesign(c)
	})

	req, _ := http.NewRequest("GET", "/v1/designs/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, searcher.lastViewer)
	assert.Equal(t, viewer, *searcher.lastViewer)
}

func TestMyItemsRequiresUserContext(t *testing.T) {
	searcher := &fakeSearcher{result: &catalog.PageResult{}}
	r := setupCatalogRouter(searcher)

	// Empty user id in context parses as missing.
	req, _ := http.NewRequest("GET", "/v1/products/mine", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	userID := uuid.New()
	req, _ = http.NewRequest("GET", "/v1/products/mine", nil)
	req.Header.Set("X-Test-User", userID.String())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, searcher.lastUserID)
	assert.Equal(t, catalog.KindProducts, searcher.lastKind)
}
