package cart

import (
	"fmt"
	"math"

	"github.com/next1store/marketoo-down/internal/catalog"
	pkgerrors "github.com/next1store/marketoo-down/pkg/errors"
)

// ProductSource resolves products at the moment of each mutation so the
// ledger never relies on a cached inventory bound.
type ProductSource interface {
	Product(id string) (catalog.Product, bool)
}

// Line is one cart entry.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Result describes the outcome of a mutation.
type Result struct {
	Line    Line    `json:"line"`
	Changed bool    `json:"changed"`
	Notices Notices `json:"notices,omitempty"`
}

// Ledger maps product identifiers to requested quantities, at most one line
// per product, in insertion order. It is not safe for concurrent use.
type Ledger struct {
	source ProductSource
	lines  []Line
	index  map[string]int
}

// NewLedger builds an empty ledger bound to the product source.
func NewLedger(source ProductSource) (*Ledger, error) {
	if source == nil {
		return nil, fmt.Errorf("product source required")
	}
	return &Ledger{
		source: source,
		index:  map[string]int{},
	}, nil
}

// Add increments (or creates) the line for productID by quantity, clamping the
// result to current inventory. Unknown or sold-out products leave the cart
// untouched and yield an unavailable notice. A non-positive quantity is a
// caller error.
func (l *Ledger) Add(productID string, quantity int) (Result, error) {
	if quantity <= 0 {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive").WithDetails(map[string]any{
			"product_id": productID,
			"quantity":   quantity,
		})
	}

	product, ok := l.source.Product(productID)
	if !ok || !product.Available() {
		return Result{Notices: Notices{unavailableNotice(productID, quantity, product.Inventory)}}, nil
	}

	requested := quantity
	idx, exists := l.index[productID]
	if exists {
		requested = saturatingAdd(l.lines[idx].Quantity, quantity)
	}

	applied, notices := clampQuantity(productID, requested, product.Inventory)
	if exists {
		l.lines[idx].Quantity = applied
	} else {
		l.index[productID] = len(l.lines)
		l.lines = append(l.lines, Line{ProductID: productID, Quantity: applied})
	}

	return Result{
		Line:    Line{ProductID: productID, Quantity: applied},
		Changed: true,
		Notices: notices,
	}, nil
}

// SetQuantity replaces the quantity of an existing line, clamped to
// [1, inventory]. Missing lines are a no-op. A line whose product sold out is
// removed; a line whose product vanished is left for pricing to ignore.
func (l *Ledger) SetQuantity(productID string, quantity int) Result {
	idx, exists := l.index[productID]
	if !exists {
		return Result{}
	}
	current := l.lines[idx]

	product, ok := l.source.Product(productID)
	if !ok {
		return Result{Line: current, Notices: Notices{orphanedNotice(productID, current.Quantity)}}
	}
	if !product.Available() {
		l.removeAt(idx)
		return Result{Changed: true, Notices: Notices{unavailableNotice(productID, quantity, product.Inventory)}}
	}

	applied, notices := clampQuantity(productID, quantity, product.Inventory)
	l.lines[idx].Quantity = applied
	return Result{
		Line:    l.lines[idx],
		Changed: applied != current.Quantity,
		Notices: notices,
	}
}

// Remove deletes the line unconditionally and reports whether one existed.
func (l *Ledger) Remove(productID string) bool {
	idx, exists := l.index[productID]
	if !exists {
		return false
	}
	l.removeAt(idx)
	return true
}

// Reconcile re-checks every line against current inventory: lines above
// inventory are clamped, sold-out lines are removed and orphaned lines are
// reported.
func (l *Ledger) Reconcile() Notices {
	notices := Notices{}
	for i := 0; i < len(l.lines); {
		line := l.lines[i]
		product, ok := l.source.Product(line.ProductID)
		switch {
		case !ok:
			notices = appendNotice(notices, orphanedNotice(line.ProductID, line.Quantity))
		case !product.Available():
			notices = appendNotice(notices, unavailableNotice(line.ProductID, line.Quantity, product.Inventory))
			l.removeAt(i)
			continue
		case line.Quantity > product.Inventory:
			applied, clamped := clampQuantity(line.ProductID, line.Quantity, product.Inventory)
			l.lines[i].Quantity = applied
			notices = append(notices, clamped...)
		}
		i++
	}
	return notices
}

// Lines returns a copy of the cart in insertion order.
func (l *Ledger) Lines() []Line {
	return append([]Line{}, l.lines...)
}

// Quantity returns the quantity of the line for productID, or zero.
func (l *Ledger) Quantity(productID string) int {
	idx, exists := l.index[productID]
	if !exists {
		return 0
	}
	return l.lines[idx].Quantity
}

// TotalQuantity sums every line; used for cart badge counts.
func (l *Ledger) TotalQuantity() int {
	total := 0
	for _, line := range l.lines {
		total += line.Quantity
	}
	return total
}

func (l *Ledger) Len() int {
	return len(l.lines)
}

func (l *Ledger) IsEmpty() bool {
	return len(l.lines) == 0
}

// Clear empties the cart, e.g. after an order is confirmed.
func (l *Ledger) Clear() {
	l.lines = nil
	l.index = map[string]int{}
}

func (l *Ledger) removeAt(idx int) {
	l.lines = append(l.lines[:idx], l.lines[idx+1:]...)
	l.reindex()
}

func (l *Ledger) reindex() {
	l.index = make(map[string]int, len(l.lines))
	for i, line := range l.lines {
		l.index[line.ProductID] = i
	}
}

// saturatingAdd sums two non-negative quantities, pinning at math.MaxInt.
func saturatingAdd(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}
