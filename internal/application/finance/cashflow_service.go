package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/finance"
	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/domain/shared/valueobject"
)

// CashFlowService manages the manual ledger and the period report
type CashFlowService struct {
	entryRepo finance.EntryRepository
	logger    *zap.Logger
}

// NewCashFlowService creates a new CashFlowService
func NewCashFlowService(entryRepo finance.EntryRepository, logger *zap.Logger) *CashFlowService {
	return &CashFlowService{
		entryRepo: entryRepo,
		logger:    logger,
	}
}

// CreateEntry records a manual receita or despesa
func (s *CashFlowService) CreateEntry(ctx context.Context, tenantID uuid.UUID, req CreateEntryRequest) (*EntryResponse, error) {
	entryDate := time.Now()
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}

	entry, err := finance.NewFinancialEntry(tenantID, finance.EntryType(req.Type), req.Category,
		req.Description, valueobject.NewMoneyBRL(req.Amount), entryDate)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	resp := ToEntryResponse(entry)
	return &resp, nil
}

// UpdateEntry modifies a manual entry. Entries produced by order payments
// are read-only; cancel the payment instead.
func (s *CashFlowService) UpdateEntry(ctx context.Context, tenantID, entryID uuid.UUID, req UpdateEntryRequest) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.PaymentID != nil {
		return nil, shared.NewDomainError("ENTRY_READONLY", "Entries created by order payments cannot be edited")
	}

	if req.Category != nil {
		if *req.Category == "" {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
		}
		entry.Category = *req.Category
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Entry amount must be positive")
		}
		entry.Amount = *req.Amount
	}
	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}
	entry.Touch()

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	resp := ToEntryResponse(entry)
	return &resp, nil
}

// DeleteEntry removes a manual entry
func (s *CashFlowService) DeleteEntry(ctx context.Context, tenantID, entryID uuid.UUID) error {
	entry, err := s.entryRepo.FindByID(ctx, tenantID, entryID)
	if err != nil {
		return err
	}
	if entry.PaymentID != nil {
		return shared.NewDomainError("ENTRY_READONLY", "Entries created by order payments cannot be deleted")
	}
	return s.entryRepo.Delete(ctx, tenantID, entryID)
}

// Report returns the ledger for a period with receitas, despesas and saldo
func (s *CashFlowService) Report(ctx context.Context, tenantID uuid.UUID, from, to time.Time, filter shared.Filter) (*CashFlowReport, error) {
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end cannot precede its start")
	}

	entries, total, err := s.entryRepo.FindByPeriod(ctx, tenantID, from, to, filter)
	if err != nil {
		return nil, err
	}

	totals, err := s.entryRepo.TotalsByPeriod(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([]EntryResponse, len(entries))
	for i := range entries {
		rows[i] = ToEntryResponse(&entries[i])
	}

	return &CashFlowReport{
		From:     from,
		To:       to,
		Entries:  rows,
		Total:    total,
		Receitas: totals.Receitas,
		Despesas: totals.Despesas,
		Saldo:    totals.Saldo,
	}, nil
}
