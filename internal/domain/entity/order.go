package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a placed storefront order. Monetary amounts carry two decimal
// digits and must satisfy Total == Subtotal + Tax.
type Order struct {
	ID                int64
	UserID            int64
	OrderDate         time.Time
	Status            OrderStatus
	Subtotal          decimal.Decimal
	Tax               decimal.Decimal
	Total             decimal.Decimal
	FirstName         string
	LastName          string
	Email             string
	Address           string
	City              string
	Province          Province
	PostalCode        string
	PaymentMethod     string
	EstimatedDelivery time.Time
	Items             []OrderItem
}

// OrderItem is one line of an order. Title and UnitPrice are copied from the
// game at purchase time so later catalog edits don't rewrite order history.
type OrderItem struct {
	ID        int64
	OrderID   int64
	GameID    int64
	Title     string
	UnitPrice decimal.Decimal
	Quantity  int
}

// ItemSubtotal is the line total (unit price times quantity).
func (i OrderItem) ItemSubtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ComputeTotals derives Subtotal from the line items, applies the shipping
// province's tax rate, and sets Total = Subtotal + Tax, all rounded to two
// decimal digits.
func (o *Order) ComputeTotals() {
	sub := decimal.Zero
	for _, it := range o.Items {
		sub = sub.Add(it.ItemSubtotal())
	}
	o.Subtotal = sub.Round(2)
	o.Tax = o.Subtotal.Mul(o.Province.TaxRate()).Round(2)
	o.Total = o.Subtotal.Add(o.Tax)
}

// Validate checks the financial invariant: non-negative amounts and
// Total == Subtotal + Tax.
func (o *Order) Validate() error {
	if o.Subtotal.IsNegative() || o.Tax.IsNegative() || o.Total.IsNegative() {
		return fmt.Errorf("order amounts must be non-negative")
	}
	if !o.Total.Equal(o.Subtotal.Add(o.Tax)) {
		return fmt.Errorf("order total %s does not equal subtotal %s plus tax %s",
			o.Total, o.Subtotal, o.Tax)
	}
	return nil
}
