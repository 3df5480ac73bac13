package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/graficaerp/backend/internal/domain/catalog"
	"github.com/graficaerp/backend/internal/domain/inventory"
	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/infrastructure/persistence/models"
)

// GormStockMovementRepository implements inventory.Repository using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// FindByProduct finds the movement history of a product, newest first
func (r *GormStockMovementRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.StockMovementModel{}).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movementModels []models.StockMovementModel
	if err := query.Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&movementModels).Error; err != nil {
		return nil, 0, err
	}

	movements := make([]inventory.StockMovement, len(movementModels))
	for i := range movementModels {
		movements[i] = *movementModels[i].ToDomain()
	}
	return movements, total, nil
}

// Save stores the movement and the adjusted product in one transaction
func (r *GormStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement, product *catalog.Product) error {
	movementModel := models.StockMovementModelFromDomain(movement)
	productModel := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(movementModel).Error; err != nil {
			return err
		}
		return tx.Save(productModel).Error
	})
}

var _ inventory.Repository = (*GormStockMovementRepository)(nil)
