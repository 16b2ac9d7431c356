package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOrderItemSubtotal(t *testing.T) {
	it := OrderItem{UnitPrice: dec("59.99"), Quantity: 3}
	assert.True(t, it.ItemSubtotal().Equal(dec("179.97")))
}

func TestOrderComputeTotalsOntario(t *testing.T) {
	o := &Order{
		Province: Ontario,
		Items: []OrderItem{
			{UnitPrice: dec("59.99"), Quantity: 2},
			{UnitPrice: dec("29.99"), Quantity: 1},
		},
	}
	o.ComputeTotals()

	assert.True(t, o.Subtotal.Equal(dec("149.97")), "subtotal %s", o.Subtotal)
	// 149.97 * 0.13 = 19.4961, rounded to 19.50
	assert.True(t, o.Tax.Equal(dec("19.50")), "tax %s", o.Tax)
	assert.True(t, o.Total.Equal(dec("169.47")), "total %s", o.Total)
	require.NoError(t, o.Validate())
}

func TestOrderComputeTotalsQuebecRounding(t *testing.T) {
	o := &Order{
		Province: Quebec,
		Items:    []OrderItem{{UnitPrice: dec("10.00"), Quantity: 1}},
	}
	o.ComputeTotals()

	// 10.00 * 0.14975 = 1.4975, rounded to 1.50
	assert.True(t, o.Tax.Equal(dec("1.50")), "tax %s", o.Tax)
	assert.True(t, o.Total.Equal(dec("11.50")), "total %s", o.Total)
	require.NoError(t, o.Validate())
}

func TestOrderComputeTotalsNoItems(t *testing.T) {
	o := &Order{Province: Alberta}
	o.ComputeTotals()
	assert.True(t, o.Subtotal.IsZero())
	assert.True(t, o.Tax.IsZero())
	assert.True(t, o.Total.IsZero())
}

func TestOrderValidateRejectsInconsistentTotal(t *testing.T) {
	o := &Order{
		Subtotal: dec("100.00"),
		Tax:      dec("13.00"),
		Total:    dec("120.00"),
	}
	err := o.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not equal")
}

func TestOrderValidateRejectsNegativeAmounts(t *testing.T) {
	o := &Order{
		Subtotal: dec("-1.00"),
		Tax:      dec("0.00"),
		Total:    dec("-1.00"),
	}
	assert.Error(t, o.Validate())
}
