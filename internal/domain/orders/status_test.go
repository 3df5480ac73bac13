package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		StatusOrcamento:  {StatusAprovado, StatusCancelado},
		StatusAprovado:   {StatusProducao, StatusCancelado},
		StatusProducao:   {StatusAcabamento, StatusPronto, StatusCancelado},
		StatusAcabamento: {StatusPronto, StatusCancelado},
		StatusPronto:     {StatusEntregue},
		StatusEntregue:   {},
		StatusCancelado:  {},
	}

	t.Run("accepts exactly the listed successors plus same status", func(t *testing.T) {
		for _, from := range AllStatuses() {
			allowedSet := map[OrderStatus]bool{from: true}
			for _, to := range allowed[from] {
				allowedSet[to] = true
			}
			for _, to := range AllStatuses() {
				got := from.CanTransitionTo(to)
				assert.Equal(t, allowedSet[to], got, "%s -> %s", from, to)
			}
		}
	})

	t.Run("same status is always allowed", func(t *testing.T) {
		for _, s := range AllStatuses() {
			assert.True(t, s.CanTransitionTo(s), "%s -> %s", s, s)
		}
	})

	t.Run("terminal statuses have no successors", func(t *testing.T) {
		assert.True(t, StatusEntregue.IsTerminal())
		assert.True(t, StatusCancelado.IsTerminal())
		assert.False(t, StatusPronto.IsTerminal())
		assert.Empty(t, StatusEntregue.Successors())
		assert.Empty(t, StatusCancelado.Successors())
	})

	t.Run("entregue cannot be cancelled", func(t *testing.T) {
		assert.False(t, StatusEntregue.CanTransitionTo(StatusCancelado))
	})

	t.Run("pronto cannot go back to producao", func(t *testing.T) {
		assert.False(t, StatusPronto.CanTransitionTo(StatusProducao))
	})

	t.Run("producao may skip acabamento", func(t *testing.T) {
		assert.True(t, StatusProducao.CanTransitionTo(StatusPronto))
	})
}

func TestIsValid(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, s.IsValid(), "%s", s)
	}
	assert.False(t, OrderStatus("finalizado").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestIsProduction(t *testing.T) {
	assert.True(t, StatusProducao.IsProduction())
	assert.True(t, StatusAcabamento.IsProduction())
	assert.True(t, StatusPronto.IsProduction())
	assert.False(t, StatusOrcamento.IsProduction())
	assert.False(t, StatusEntregue.IsProduction())
}
