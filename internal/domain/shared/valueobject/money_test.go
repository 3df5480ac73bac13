package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyArithmetic(t *testing.T) {
	t.Run("add and subtract same currency", func(t *testing.T) {
		a := NewMoneyBRLFromFloat(60.00)
		b := NewMoneyBRLFromFloat(40.00)

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(100.00)))

		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromFloat(20.00)))
	})

	t.Run("mixed currencies are rejected", func(t *testing.T) {
		a := NewMoneyBRLFromFloat(10)
		b, err := NewMoney(decimal.NewFromInt(10), USD)
		require.NoError(t, err)

		_, err = a.Add(b)
		require.Error(t, err)
		_, err = a.Subtract(b)
		require.Error(t, err)
	})

	t.Run("clamp non-negative", func(t *testing.T) {
		neg := NewMoneyBRLFromFloat(-5.00)
		assert.True(t, neg.ClampNonNegative().IsZero())

		pos := NewMoneyBRLFromFloat(5.00)
		assert.True(t, pos.ClampNonNegative().Equals(pos))
	})
}

func TestMoneyParsing(t *testing.T) {
	t.Run("from string", func(t *testing.T) {
		m, err := NewMoneyBRLFromString("123.45")
		require.NoError(t, err)
		assert.Equal(t, "123.45 BRL", m.String())

		_, err = NewMoneyBRLFromString("abc")
		require.Error(t, err)
	})

	t.Run("json round trip defaults currency", func(t *testing.T) {
		var m Money
		require.NoError(t, json.Unmarshal([]byte(`{"amount":"99.90"}`), &m))
		assert.Equal(t, DefaultCurrency, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(99.90)))

		data, err := json.Marshal(m)
		require.NoError(t, err)
		assert.JSONEq(t, `{"amount":"99.9","currency":"BRL"}`, string(data))
	})
}

func TestMoneyScan(t *testing.T) {
	t.Run("scans string and bytes", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("10.50"))
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(10.50)))
		assert.Equal(t, DefaultCurrency, m.Currency())

		var b Money
		require.NoError(t, b.Scan([]byte("3.25")))
		assert.True(t, b.Amount().Equal(decimal.NewFromFloat(3.25)))
	})

	t.Run("nil scans to zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("value stores the bare amount", func(t *testing.T) {
		v, err := NewMoneyBRLFromFloat(10.5).Value()
		require.NoError(t, err)
		assert.Equal(t, "10.5", v)
	})
}
