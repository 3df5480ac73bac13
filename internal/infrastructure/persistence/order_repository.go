package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/graficaerp/backend/internal/domain/orders"
	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements orders.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })
}

// FindByID finds an order by ID within a tenant, items and history included
func (r *GormOrderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*orders.Order, error) {
	var model models.OrderModel
	if err := r.preloaded(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an order by its human number within a tenant
func (r *GormOrderRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*orders.Order, error) {
	var model models.OrderModel
	if err := r.preloaded(ctx).
		Where("tenant_id = ? AND number = ?", tenantID, number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPublicToken finds an order by its tracking token. The token is
// globally unique, so no tenant scoping applies here.
func (r *GormOrderRepository) FindByPublicToken(ctx context.Context, token string) (*orders.Order, error) {
	var model models.OrderModel
	if err := r.preloaded(ctx).
		Where("public_token = ?", token).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds orders for a tenant with pagination and search
func (r *GormOrderRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]orders.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR customer_name ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orderModels []models.OrderModel
	if err := applyPagination(query, filter).
		Preload("Items").
		Preload("History").
		Find(&orderModels).Error; err != nil {
		return nil, 0, err
	}

	return toDomainOrders(orderModels), total, nil
}

// FindByStatus finds orders in one lifecycle status for a tenant
func (r *GormOrderRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status orders.OrderStatus, filter shared.Filter) ([]orders.Order, error) {
	var orderModels []models.OrderModel
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("tenant_id = ? AND status = ?", tenantID, status)
	if err := applyPagination(query, filter).
		Preload("Items").
		Preload("History").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(orderModels), nil
}

// FindOpen finds every non-terminal order for a tenant, oldest first. The
// kanban board and dashboard read this.
func (r *GormOrderRepository) FindOpen(ctx context.Context, tenantID uuid.UUID) ([]orders.Order, error) {
	var orderModels []models.OrderModel
	if err := r.preloaded(ctx).
		Where("tenant_id = ? AND status NOT IN ?", tenantID, []orders.OrderStatus{orders.StatusEntregue, orders.StatusCancelado}).
		Order("created_at ASC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(orderModels), nil
}

// Save persists the whole aggregate. Items and history rows are replaced so
// removed lines do not linger.
func (r *GormOrderRepository) Save(ctx context.Context, order *orders.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", model.ID).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", model.ID).Delete(&models.StatusChangeModel{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error
	})
}

// Delete removes an order within a tenant. Items and history cascade.
func (r *GormOrderRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OrderModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// NextNumber produces the next sequential order number for a tenant. Counting
// cancelled orders too keeps numbers from being reused.
func (r *GormOrderRepository) NextNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Unscoped().
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("PED-%04d", count+1), nil
}

func toDomainOrders(orderModels []models.OrderModel) []orders.Order {
	result := make([]orders.Order, len(orderModels))
	for i := range orderModels {
		result[i] = *orderModels[i].ToDomain()
	}
	return result
}

var _ orders.Repository = (*GormOrderRepository)(nil)
