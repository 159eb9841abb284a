// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/printbazaar/marketplace-backend/internal/config"
	"github.com/printbazaar/marketplace-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		}
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable UUID generation for primary key defaults
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"pgcrypto\"").Error; err != nil {
		return fmt.Errorf("failed to create pgcrypto extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Designer{},
		&models.Organization{},
		&models.Store{},
		&models.Workshop{},
		&models.Department{},
		&models.Category{},
		&models.Theme{},
		&models.Promotion{},
		&models.Event{},
		&models.Design{},
		&models.UsageParameters{},
		&models.Personalizable{},
		&models.Product{},
		&models.Option{},
		&models.OptionValue{},
		&models.Variant{},
		&models.Review{},
		&models.Preview{},
		&models.Like{},
		&models.Order{},
		&models.OrderItem{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Catalog visibility indexes
		"CREATE INDEX IF NOT EXISTS idx_designs_status_published ON designs(status, published)",
		"CREATE INDEX IF NOT EXISTS idx_personalizables_status_published ON personalizables(status, published)",
		"CREATE INDEX IF NOT EXISTS idx_products_status_published ON products(status, published)",

		// Owner lookups
		"CREATE INDEX IF NOT EXISTS idx_designs_store ON designs(store_id)",
		"CREATE INDEX IF NOT EXISTS idx_designs_workshop ON designs(workshop_id)",
		"CREATE INDEX IF NOT EXISTS idx_designs_user ON designs(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_personalizables_workshop ON personalizables(workshop_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_workshop ON products(workshop_id)",

		// Taxonomy filters
		"CREATE INDEX IF NOT EXISTS idx_personalizables_category ON personalizables(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_personalizables_department ON personalizables(department_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_department ON products(department_id)",

		// Popularity subqueries
		"CREATE INDEX IF NOT EXISTS idx_likes_design ON likes(design_id)",
		"CREATE INDEX IF NOT EXISTS idx_variants_personalizable ON variants(personalizable_id)",
		"CREATE INDEX IF NOT EXISTS idx_variants_product ON variants(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_variant ON order_items(variant_id)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_variant ON reviews(variant_id)",

		// Previews in position order
		"CREATE INDEX IF NOT EXISTS idx_previews_design_position ON previews(design_id, position)",

		// Full-text search indexes
		"CREATE INDEX IF NOT EXISTS idx_designs_search ON designs USING GIN(to_tsvector('english', title || ' ' || description))",
		"CREATE INDEX IF NOT EXISTS idx_personalizables_search ON personalizables USING GIN(to_tsvector('english', title || ' ' || description))",
		"CREATE INDEX IF NOT EXISTS idx_products_search ON products USING GIN(to_tsvector('english', title || ' ' || description))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}
