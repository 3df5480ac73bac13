package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/graficaerp/backend/internal/domain/finance"
	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/infrastructure/persistence/models"
)

// GormEntryRepository implements finance.EntryRepository using GORM
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// FindByID finds a financial entry by ID within a tenant
func (r *GormEntryRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.FinancialEntry, error) {
	var model models.FinancialEntryModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod finds entries whose entry date falls inside [from, to]
func (r *GormEntryRepository) FindByPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time, filter shared.Filter) ([]finance.FinancialEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FinancialEntryModel{}).
		Where("tenant_id = ? AND entry_date >= ? AND entry_date <= ?", tenantID, from, to)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("category ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	paged := query.Order("entry_date ASC, created_at ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit())

	var entryModels []models.FinancialEntryModel
	if err := paged.Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]finance.FinancialEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}
	return entries, total, nil
}

// FindByPayment finds the ledger entry generated by an order payment
func (r *GormEntryRepository) FindByPayment(ctx context.Context, tenantID, paymentID uuid.UUID) (*finance.FinancialEntry, error) {
	var model models.FinancialEntryModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND payment_id = ?", tenantID, paymentID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a financial entry
func (r *GormEntryRepository) Save(ctx context.Context, entry *finance.FinancialEntry) error {
	model := models.FinancialEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a financial entry within a tenant
func (r *GormEntryRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FinancialEntryModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// TotalsByPeriod sums receitas and despesas over a period in one query
func (r *GormEntryRepository) TotalsByPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (finance.CashFlowTotals, error) {
	var row struct {
		Receitas decimal.NullDecimal
		Despesas decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.FinancialEntryModel{}).
		Select(
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS receitas, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS despesas",
			finance.EntryReceita, finance.EntryDespesa,
		).
		Where("tenant_id = ? AND entry_date >= ? AND entry_date <= ?", tenantID, from, to).
		Scan(&row).Error
	if err != nil {
		return finance.CashFlowTotals{}, err
	}

	totals := finance.CashFlowTotals{
		Receitas: row.Receitas.Decimal,
		Despesas: row.Despesas.Decimal,
	}
	totals.Saldo = totals.Receitas.Sub(totals.Despesas)
	return totals, nil
}

var _ finance.EntryRepository = (*GormEntryRepository)(nil)
