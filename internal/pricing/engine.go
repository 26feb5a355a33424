package pricing

import (
	"fmt"

	"github.com/next1store/marketoo-down/internal/cart"
	"github.com/next1store/marketoo-down/pkg/enums"
	"github.com/shopspring/decimal"
)

const (
	// DefaultDiscountPercent is the bank-transfer discount.
	DefaultDiscountPercent = 10
	// minorUnits is the number of decimal places money is kept to.
	minorUnits = 2
)

// visibleDiscountEpsilon hides near-zero discounts produced by rounding.
var visibleDiscountEpsilon = decimal.New(1, -minorUnits)

// PricedLine is a cart line resolved against the catalog.
type PricedLine struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Totals is derived on demand from the cart and never cached across mutations.
type Totals struct {
	Lines         []PricedLine        `json:"lines"`
	Orphaned      []string            `json:"orphaned,omitempty"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Discount      decimal.Decimal     `json:"discount"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
}

// DiscountVisible reports whether the discount row should be displayed.
func (t Totals) DiscountVisible() bool {
	return t.Discount.GreaterThan(visibleDiscountEpsilon)
}

// Engine computes subtotal, discount and total.
type Engine struct {
	rate decimal.Decimal
}

// NewEngine builds an engine granting discountPercent off for bank transfers.
func NewEngine(discountPercent int) (*Engine, error) {
	if discountPercent < 0 || discountPercent > 100 {
		return nil, fmt.Errorf("discount percent must be between 0 and 100, got %d", discountPercent)
	}
	return &Engine{rate: decimal.New(int64(discountPercent), -2)}, nil
}

// Rate returns the discount as a fraction (0.10 for 10%).
func (e *Engine) Rate() decimal.Decimal {
	return e.rate
}

// Percent returns the discount as a whole-number percentage.
func (e *Engine) Percent() int {
	return int(e.rate.Shift(2).IntPart())
}

// Compute prices lines against products. Lines whose product no longer
// resolves contribute zero and are listed in Orphaned.
func (e *Engine) Compute(lines []cart.Line, products cart.ProductSource, method enums.PaymentMethod) Totals {
	totals := Totals{
		Lines:         make([]PricedLine, 0, len(lines)),
		Subtotal:      decimal.Zero,
		Discount:      decimal.Zero,
		PaymentMethod: method,
	}

	for _, line := range lines {
		product, ok := products.Product(line.ProductID)
		if !ok {
			totals.Orphaned = append(totals.Orphaned, line.ProductID)
			continue
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		totals.Lines = append(totals.Lines, PricedLine{
			ProductID: product.ID,
			Title:     product.Title,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
		totals.Subtotal = totals.Subtotal.Add(lineTotal)
	}

	if method.EarnsDiscount() {
		totals.Discount = totals.Subtotal.Mul(e.rate).Round(minorUnits)
	}
	totals.Total = totals.Subtotal.Sub(totals.Discount)
	return totals
}
