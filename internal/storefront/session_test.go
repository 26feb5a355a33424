package storefront

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"github.com/next1store/marketoo-down/internal/catalog"
	"github.com/next1store/marketoo-down/internal/order"
	"github.com/next1store/marketoo-down/internal/recent"
	"github.com/next1store/marketoo-down/internal/recommend"
	"github.com/next1store/marketoo-down/pkg/enums"
	pkgerrors "github.com/next1store/marketoo-down/pkg/errors"
	"github.com/next1store/marketoo-down/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shipping = order.ShippingDetails{
	Name:    "سالم",
	Phone:   "0912345678",
	City:    "بنغازي",
	Address: "شارع جمال عبد الناصر",
}

func loadCatalog(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.LoadFiles(
		filepath.Join("..", "catalog", "testdata", "products.json"),
		filepath.Join("..", "catalog", "testdata", "collections.json"),
	)
	require.NoError(t, err)
	return store
}

func newTestSession(t *testing.T, mutate func(*Options)) *Session {
	t.Helper()
	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	session, err := NewSession(Deps{
		Catalog: loadCatalog(t),
		Sampler: recommend.NewSampler(rand.NewPCG(1, 2)),
	}, opts)
	require.NoError(t, err)
	return session
}

func pageIDs(view BrowseView) []string {
	ids := make([]string, 0, len(view.Page.Items))
	for _, card := range view.Page.Items {
		ids = append(ids, card.Product.ID)
	}
	return ids
}

func TestNewSessionRequiresCatalog(t *testing.T) {
	_, err := NewSession(Deps{}, DefaultOptions())
	require.Error(t, err)

	_, err = NewSession(Deps{Catalog: loadCatalog(t)}, Options{DiscountPercent: 150})
	require.Error(t, err)
}

func TestBrowseDefaultsToFeaturedCatalog(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t, nil)
	require.NotEmpty(t, session.ID())

	view := session.Browse(ctx)
	assert.Equal(t, []string{"prod-001", "prod-002", "prod-003", "prod-004", "prod-005", "prod-006"}, pageIDs(view))
	assert.Equal(t, 1, view.Page.TotalPages)
	assert.False(t, view.Page.ShowControls())

	soldOut := view.Page.Items[2]
	assert.True(t, soldOut.Badges.OutOfStock)
	assert.False(t, soldOut.CanAdd)
	assert.True(t, view.Page.Items[0].Badges.OnSale)
}

func TestCriteriaChangesResetPage(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t, func(o *Options) { o.PageSize = 2 })

	view := session.SetPage(ctx, 2)
	assert.Equal(t, []string{"prod-003", "prod-004"}, pageIDs(view))
	assert.Equal(t, 3, view.Page.TotalPages)
	assert.True(t, view.Page.ShowControls())

	view, err := session.SetSort(ctx, enums.SortKeyPriceAsc)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Page.Index)
	assert.Equal(t, []string{"prod-006", "prod-001"}, pageIDs(view))

	session.SetPage(ctx, 3)
	view = session.SetSearch(ctx, "تكنولوجيا")
	assert.Equal(t, 1, session.PageIndex())
	assert.Equal(t, []string{"prod-002", "prod-005"}, pageIDs(view))

	session.SetPage(ctx, 2)
	view, err = session.SetCollection(ctx, "skincare")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Page.Index)
	assert.Empty(t, view.Page.Items, "search still applies inside the collection")

	view = session.SetSearch(ctx, "  ")
	assert.Equal(t, []string{"prod-001", "prod-003"}, pageIDs(view))

	view = session.SetPage(ctx, -4)
	assert.Equal(t, 1, view.Page.Index)
}

func TestBrowseSortsByPriceDescending(t *testing.T) {
	session := newTestSession(t, nil)
	view, err := session.SetSort(context.Background(), enums.SortKeyPriceDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"prod-004", "prod-005", "prod-002", "prod-003", "prod-001", "prod-006"}, pageIDs(view))
}

func TestInvalidCriteriaRejected(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t, nil)

	_, err := session.SetCollection(ctx, "garden")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = session.SetSort(ctx, enums.SortKey("random"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	view, err := session.SetCollection(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, view.Page.Items, 6)
}

func TestCollectionsAlphabetical(t *testing.T) {
	session := newTestSession(t, nil)

	featured := session.Collections(false)
	require.Len(t, featured, 4)
	assert.Equal(t, "electronics", featured[0].Handle)

	alpha := session.Collections(true)
	handles := make([]string, 0, len(alpha))
	for _, c := range alpha {
		handles = append(handles, c.Handle)
	}
	assert.Equal(t, []string{"electronics", "skincare", "books", "home-office"}, handles)
}

func TestCartClampsAndReportsNotices(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t, nil)

	update, err := session.AddToCart(ctx, "prod-005", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, update.Result.Line.Quantity)
	assert.True(t, update.Result.Notices.Has(enums.NoticeTypeQuantityClamped))
	assert.Equal(t, 3, update.Cart.ItemCount)

	update, err = session.AddToCart(ctx, "prod-003", 1)
	require.NoError(t, err)
	assert.True(t, update.Result.Notices.Has(enums.NoticeTypeUnavailable))
	assert.Equal(t, 3, update.Cart.ItemCount)

	_, err = session.AddToCart(ctx, "prod-001", 0)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	update = session.SetQuantity(ctx, "prod-005", 0)
	assert.Equal(t, 1, update.Result.Line.Quantity)
	assert.True(t, update.Result.Notices.Has(enums.NoticeTypeQuantityClamped))

	cartView := session.Remove(ctx, "prod-005")
	assert.Equal(t, 0, cartView.ItemCount)
	assert.False(t, cartView.CheckoutAllowed)
	assert.True(t, cartView.Totals.Total.IsZero())
}

func TestBankTransferDiscount(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t, nil)

	_, err := session.AddToCart(ctx, "prod-006", 2)
	require.NoError(t, err)
	_, err = session.AddToCart(ctx, "prod-001", 1)
	require.NoError(t, err)

	view := session.Cart(ctx)
	assert.Equal(t, enums.PaymentMethodCashOnDelivery, view.PaymentMethod)
	assert.True(t, view.Totals.Discount.IsZero())
	assert.Equal(t, "185.50", view.Totals.Total.StringFixed(2))

	view, err = session.SetPaymentMethod(ctx, enums.PaymentMethodBankTransfer)
	require.NoError(t, err)
	assert.Equal(t, "185.50", view.Totals.Subtotal.StringFixed(2))
	assert.Equal(t, "18.55", view.Totals.Discount.StringFixed(2))
	assert.Equal(t, "166.95", view.Totals.Total.StringFixed(2))
	assert.Equal(t, "حوالة مصرفية (خصم 10%)", view.PaymentLabel)

	_, err = session.SetPaymentMethod(ctx, enums.PaymentMethod("card"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestPlaceOrderActions(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	session, err := NewSession(Deps{
		Catalog: loadCatalog(t),
		Metrics: metrics.NewStorefrontMetrics(reg),
	}, DefaultOptions())
	require.NoError(t, err)

	_, err = session.Checkout(ctx)
	require.Error(t, err, "empty cart cannot check out")

	_, err = session.AddToCart(ctx, "prod-002", 1)
	require.NoError(t, err)

	prompt, err := session.Checkout(ctx)
	require.NoError(t, err)
	assert.Contains(t, prompt, "450.00 د.ل")

	_, err = session.PlaceOrder(ctx, enums.OrderActionConfirm, order.ShippingDetails{Name: "سالم"})
	require.Error(t, err)
	assert.Equal(t, 1, session.Cart(ctx).ItemCount, "failed validation keeps the cart")

	result, err := session.PlaceOrder(ctx, enums.OrderActionMessage, shipping)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Link, "https://wa.me/218945890862?text="))
	assert.Contains(t, result.Text, "*المجموع الكلي: 450.00 د.ل*")
	assert.Equal(t, 1, result.Cart.ItemCount, "messaging keeps the cart")

	result, err = session.PlaceOrder(ctx, enums.OrderActionConfirm, shipping)
	require.NoError(t, err)
	assert.Equal(t, order.ConfirmationMessage, result.Message)
	assert.Empty(t, result.Link)
	assert.Equal(t, 0, result.Cart.ItemCount, "confirmation empties the cart")
	assert.Equal(t, "450.00", result.Summary.Total.StringFixed(2))

	_, err = session.PlaceOrder(ctx, enums.OrderAction("fax"), shipping)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	orders := 0.0
	for _, mf := range mfs {
		if mf.GetName() == "marketoo_orders_total" {
			for _, m := range mf.GetMetric() {
				orders += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, orders)
}

func TestViewProductRecordsAndRelates(t *testing.T) {
	ctx := context.Background()
	store := recent.NewMemoryStore()
	catalogStore := loadCatalog(t)
	session, err := NewSession(Deps{
		Catalog: catalogStore,
		Tracker: recent.NewTracker(store, recent.DefaultMax, nil, nil),
		Sampler: recommend.NewSampler(rand.NewPCG(9, 9)),
	}, DefaultOptions())
	require.NoError(t, err)

	view, err := session.ViewProduct(ctx, "prod-002")
	require.NoError(t, err)
	require.Len(t, view.Related, 1)
	assert.Equal(t, "prod-005", view.Related[0].ID)

	for _, id := range []string{"prod-001", "prod-004", "prod-006", "prod-003", "prod-001"} {
		_, err := session.ViewProduct(ctx, id)
		require.NoError(t, err)
	}

	recentProducts := session.RecentlyViewed()
	ids := make([]string, 0, len(recentProducts))
	for _, p := range recentProducts {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"prod-001", "prod-003", "prod-006", "prod-004"}, ids)

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"prod-001", "prod-003", "prod-006", "prod-004", "prod-002"}, persisted)

	_, err = session.ViewProduct(ctx, "prod-999")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestCardShowsCartQuantity(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t, nil)
	_, err := session.AddToCart(ctx, "prod-001", 2)
	require.NoError(t, err)

	view, err := session.ViewProduct(ctx, "prod-001")
	require.NoError(t, err)
	assert.Equal(t, 2, view.Card.CartQuantity)
	assert.Len(t, view.Related, 1, "the only other skincare product is sold out but still related")
}
