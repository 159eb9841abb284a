// internal/handlers/category.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/printbazaar/marketplace-backend/internal/services"
	"github.com/printbazaar/marketplace-backend/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GetCategoryTree returns the visible category forest for storefront
// navigation.
func (h *CategoryHandler) GetCategoryTree(c *gin.Context) {
	tree, err := h.categoryService.VisibleTree(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load categories")
		return
	}
	utils.SuccessResponse(c, tree)
}
