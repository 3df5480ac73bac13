package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/catalog"
	"github.com/graficaerp/backend/internal/domain/finance"
	"github.com/graficaerp/backend/internal/domain/orders"
)

// StatusCount is one kanban column total on the dashboard
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// LowStockProduct flags a product under its minimum stock
type LowStockProduct struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	MinimumStock  decimal.Decimal `json:"minimum_stock"`
}

// Dashboard is the owner's home screen summary
type Dashboard struct {
	OpenOrders     int               `json:"open_orders"`
	OrdersByStatus []StatusCount     `json:"orders_by_status"`
	Receivables    decimal.Decimal   `json:"receivables"`
	MonthReceitas  decimal.Decimal   `json:"month_receitas"`
	MonthDespesas  decimal.Decimal   `json:"month_despesas"`
	MonthSaldo     decimal.Decimal   `json:"month_saldo"`
	LowStock       []LowStockProduct `json:"low_stock"`
}

// ReportService assembles the dashboard from the other modules' repositories
type ReportService struct {
	orderRepo   orders.Repository
	entryRepo   finance.EntryRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	orderRepo orders.Repository,
	entryRepo finance.EntryRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		orderRepo:   orderRepo,
		entryRepo:   entryRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Dashboard builds the summary for the current month. Receivables sum the
// remaining balance of every open order.
func (s *ReportService) Dashboard(ctx context.Context, tenantID uuid.UUID) (*Dashboard, error) {
	open, err := s.orderRepo.FindOpen(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	counts := make(map[orders.OrderStatus]int)
	receivables := decimal.Zero
	for i := range open {
		counts[open[i].Status]++
		receivables = receivables.Add(open[i].RemainingAmount())
	}

	byStatus := make([]StatusCount, 0)
	for _, status := range orders.AllStatuses() {
		if status.IsTerminal() {
			continue
		}
		byStatus = append(byStatus, StatusCount{Status: string(status), Count: counts[status]})
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	totals, err := s.entryRepo.TotalsByPeriod(ctx, tenantID, monthStart, now)
	if err != nil {
		return nil, err
	}

	low, err := s.productRepo.FindBelowMinimum(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	lowStock := make([]LowStockProduct, len(low))
	for i := range low {
		lowStock[i] = LowStockProduct{
			ProductID:     low[i].ID,
			Code:          low[i].Code,
			Name:          low[i].Name,
			StockQuantity: low[i].StockQuantity,
			MinimumStock:  low[i].MinimumStock,
		}
	}

	return &Dashboard{
		OpenOrders:     len(open),
		OrdersByStatus: byStatus,
		Receivables:    receivables,
		MonthReceitas:  totals.Receitas,
		MonthDespesas:  totals.Despesas,
		MonthSaldo:     totals.Saldo,
		LowStock:       lowStock,
	}, nil
}
