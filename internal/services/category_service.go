// internal/services/category_service.go
package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/printbazaar/marketplace-backend/internal/models"
)

// CategoryService renders the storefront category tree.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// VisibleTree loads the full category set and prunes it down to the
// effectively visible forest.
func (s *CategoryService) VisibleTree(ctx context.Context) ([]models.CategoryNode, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return models.BuildVisibleTree(categories), nil
}
