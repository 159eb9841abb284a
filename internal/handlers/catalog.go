// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/printbazaar/marketplace-backend/internal/catalog"
	"github.com/printbazaar/marketplace-backend/internal/utils"
)

// CatalogHandler exposes the catalog query engine over HTTP. It owns no
// query semantics; everything past parameter extraction is the engine's.
type CatalogHandler struct {
	service catalog.Searcher
}

func NewCatalogHandler(service catalog.Searcher) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) SearchDesigns(c *gin.Context) {
	h.search(c, catalog.KindDesigns)
}

func (h *CatalogHandler) SearchPersonalizables(c *gin.Context) {
	h.search(c, catalog.KindPersonalizables)
}

func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	h.search(c, catalog.KindProducts)
}

func (h *CatalogHandler) GetDesign(c *gin.Context) {
	h.getByID(c, catalog.KindDesigns)
}

func (h *CatalogHandler) GetPersonalizable(c *gin.Context) {
	h.getByID(c, catalog.KindPersonalizables)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	h.getByID(c, catalog.KindProducts)
}

func (h *CatalogHandler) MyDesigns(c *gin.Context) {
	h.searchOwned(c, catalog.KindDesigns)
}

func (h *CatalogHandler) MyPersonalizables(c *gin.Context) {
	h.searchOwned(c, catalog.KindPersonalizables)
}

func (h *CatalogHandler) MyProducts(c *gin.Context) {
	h.searchOwned(c, catalog.KindProducts)
}

func (h *CatalogHandler) search(c *gin.Context, kind catalog.Kind) {
	result, err := h.service.Search(c.Request.Context(), kind, rawParams(c))
	if err != nil {
		utils.CatalogErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, result)
}

func (h *CatalogHandler) searchOwned(c *gin.Context, kind catalog.Kind) {
	userID, ok := viewerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	result, err := h.service.SearchOwned(c.Request.Context(), kind, *userID, rawParams(c))
	if err != nil {
		utils.CatalogErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, result)
}

func (h *CatalogHandler) getByID(c *gin.Context, kind catalog.Kind) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid item ID", nil)
		return
	}

	viewer, _ := viewerID(c)
	item, err := h.service.GetByID(c.Request.Context(), kind, id, viewer)
	if err != nil {
		utils.CatalogErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, item)
}

// rawParams flattens the query string to the single-valued map the engine
// parses. Repeated parameters keep the first value.
func rawParams(c *gin.Context) map[string]string {
	raw := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			raw[key] = values[0]
		}
	}
	return raw
}

func viewerID(c *gin.Context) (*uuid.UUID, bool) {
	userIDStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, false
	}
	return &userID, true
}
