package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	financeapp "github.com/graficaerp/backend/internal/application/finance"
	"github.com/graficaerp/backend/internal/interfaces/http/dto"
)

const dateLayout = "2006-01-02"

// CashFlowHandler handles the cash-flow ledger endpoints
type CashFlowHandler struct {
	BaseHandler
	cashFlowService *financeapp.CashFlowService
}

// NewCashFlowHandler creates a new CashFlowHandler
func NewCashFlowHandler(cashFlowService *financeapp.CashFlowService) *CashFlowHandler {
	return &CashFlowHandler{cashFlowService: cashFlowService}
}

// CreateEntry records a manual receita or despesa
func (h *CashFlowHandler) CreateEntry(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid entry payload: "+bindingMessage(err))
		return
	}

	entry, err := h.cashFlowService.CreateEntry(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// UpdateEntry modifies a manual entry. Entries generated from payments are
// read only.
func (h *CashFlowHandler) UpdateEntry(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	entryID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid entry id")
		return
	}

	var req financeapp.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid entry payload: "+bindingMessage(err))
		return
	}

	entry, err := h.cashFlowService.UpdateEntry(c.Request.Context(), tenantID, entryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// DeleteEntry removes a manual entry
func (h *CashFlowHandler) DeleteEntry(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	entryID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid entry id")
		return
	}

	if err := h.cashFlowService.DeleteEntry(c.Request.Context(), tenantID, entryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Report returns the ledger for a period with its totals. Without from/to
// query parameters the current month is reported.
func (h *CashFlowHandler) Report(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	from, to, err := parsePeriod(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+bindingMessage(err))
		return
	}

	report, err := h.cashFlowService.Report(c.Request.Context(), tenantID, from, to, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

func parsePeriod(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidDate("from")
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidDate("to")
		}
		// include the whole end day
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return from, to, nil
}

type invalidDateError struct{ field string }

func (e invalidDateError) Error() string {
	return "Invalid " + e.field + " date, expected YYYY-MM-DD"
}

func errInvalidDate(field string) error {
	return invalidDateError{field: field}
}
