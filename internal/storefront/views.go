package storefront

import (
	"github.com/next1store/marketoo-down/internal/cart"
	"github.com/next1store/marketoo-down/internal/catalog"
	"github.com/next1store/marketoo-down/internal/order"
	"github.com/next1store/marketoo-down/internal/pricing"
	"github.com/next1store/marketoo-down/internal/query"
	"github.com/next1store/marketoo-down/pkg/enums"
	"github.com/next1store/marketoo-down/pkg/pagination"
)

// ProductCard is a product as shown in the catalog grid.
type ProductCard struct {
	Product      catalog.Product `json:"product"`
	Badges       catalog.Badges  `json:"badges"`
	CanAdd       bool            `json:"can_add"`
	CartQuantity int             `json:"cart_quantity"`
}

// BrowseView is the current catalog page under the active criteria.
type BrowseView struct {
	Criteria query.Criteria               `json:"criteria"`
	Page     pagination.Page[ProductCard] `json:"page"`
}

// ProductView is the quick view of a single product.
type ProductView struct {
	Card    ProductCard       `json:"card"`
	Related []catalog.Product `json:"related"`
}

// CartView is the cart drawer state.
type CartView struct {
	Totals          pricing.Totals      `json:"totals"`
	ItemCount       int                 `json:"item_count"`
	PaymentMethod   enums.PaymentMethod `json:"payment_method"`
	PaymentLabel    string              `json:"payment_label"`
	CheckoutAllowed bool                `json:"checkout_allowed"`
	Notices         cart.Notices        `json:"notices,omitempty"`
}

// CartUpdate is the outcome of a cart mutation together with the refreshed cart.
type CartUpdate struct {
	Result cart.Result `json:"result"`
	Cart   CartView    `json:"cart"`
}

// OrderResult is what the presentation layer shows after an order action.
type OrderResult struct {
	Action  enums.OrderAction `json:"action"`
	Summary order.Summary     `json:"summary"`
	Text    string            `json:"text"`
	Link    string            `json:"link,omitempty"`
	Message string            `json:"message,omitempty"`
	Cart    CartView          `json:"cart"`
}
