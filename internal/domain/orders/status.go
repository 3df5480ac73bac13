package orders

// OrderStatus represents a kanban column in the order lifecycle
type OrderStatus string

const (
	StatusOrcamento  OrderStatus = "orcamento"
	StatusAprovado   OrderStatus = "aprovado"
	StatusProducao   OrderStatus = "producao"
	StatusAcabamento OrderStatus = "acabamento"
	StatusPronto     OrderStatus = "pronto"
	StatusEntregue   OrderStatus = "entregue"
	StatusCancelado  OrderStatus = "cancelado"
)

// statusSuccessors is the fixed map from each status to its allowed successors.
// A requested transition is accepted only when the target is listed here, or
// when the target equals the current status (no-op).
var statusSuccessors = map[OrderStatus][]OrderStatus{
	StatusOrcamento:  {StatusAprovado, StatusCancelado},
	StatusAprovado:   {StatusProducao, StatusCancelado},
	StatusProducao:   {StatusAcabamento, StatusPronto, StatusCancelado},
	StatusAcabamento: {StatusPronto, StatusCancelado},
	StatusPronto:     {StatusEntregue},
	StatusEntregue:   {},
	StatusCancelado:  {},
}

// AllStatuses lists every order status in kanban order
func AllStatuses() []OrderStatus {
	return []OrderStatus{
		StatusOrcamento,
		StatusAprovado,
		StatusProducao,
		StatusAcabamento,
		StatusPronto,
		StatusEntregue,
		StatusCancelado,
	}
}

// IsValid checks if the status is a known OrderStatus
func (s OrderStatus) IsValid() bool {
	_, ok := statusSuccessors[s]
	return ok
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if target == s {
		return true
	}
	for _, next := range statusSuccessors[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Successors returns a copy of the allowed successor statuses
func (s OrderStatus) Successors() []OrderStatus {
	next := statusSuccessors[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// IsTerminal returns true when no further transition is allowed
func (s OrderStatus) IsTerminal() bool {
	return len(statusSuccessors[s]) == 0 && s.IsValid()
}

// IsProduction returns true for the statuses tracked on the production board
func (s OrderStatus) IsProduction() bool {
	return s == StatusProducao || s == StatusAcabamento || s == StatusPronto
}
