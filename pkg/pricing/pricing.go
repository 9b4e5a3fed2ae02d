// Package pricing computes order totals. All arithmetic is decimal
// fixed-point; totals are persisted and displayed verbatim, so binary float
// rounding drift is not acceptable.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/example/wingkiosk/pkg/models"
)

var (
	// TaxRate is applied to every order subtotal.
	TaxRate = decimal.RequireFromString("0.12")

	// PricePerHead is the flat unlimited rate per person.
	PricePerHead = decimal.NewFromInt(377)
)

// MaxLineQuantity caps a single à-la-carte line. Enforced by the ordering
// service, not here; ComputeTotals stays a pure function.
const MaxLineQuantity = 5

type LineItem struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals prices a cart. À-la-carte orders sum their lines. Unlimited
// orders with a positive person count charge per head and ignore cart
// quantities; without one they degrade to summing lines, a legacy
// compatibility case.
func ComputeTotals(orderType models.OrderType, items []LineItem, personCount int) Totals {
	var subtotal decimal.Decimal
	if orderType == models.Unlimited && personCount > 0 {
		subtotal = PricePerHead.Mul(decimal.NewFromInt(int64(personCount)))
	} else {
		for _, it := range items {
			subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}

	tax := subtotal.Mul(TaxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
