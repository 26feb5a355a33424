package storefront

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/next1store/marketoo-down/internal/cart"
	"github.com/next1store/marketoo-down/internal/catalog"
	"github.com/next1store/marketoo-down/internal/order"
	"github.com/next1store/marketoo-down/internal/pricing"
	"github.com/next1store/marketoo-down/internal/query"
	"github.com/next1store/marketoo-down/internal/recent"
	"github.com/next1store/marketoo-down/internal/recommend"
	"github.com/next1store/marketoo-down/pkg/config"
	"github.com/next1store/marketoo-down/pkg/enums"
	pkgerrors "github.com/next1store/marketoo-down/pkg/errors"
	"github.com/next1store/marketoo-down/pkg/logger"
	"github.com/next1store/marketoo-down/pkg/metrics"
	"github.com/next1store/marketoo-down/pkg/pagination"
)

// Options holds the presentation constants of a session.
type Options struct {
	PageSize        int
	RelatedCount    int
	RecentDisplay   int
	DiscountPercent int
	SortLocale      string
	CurrencySymbol  string
	SummaryHeading  string
	MessagingPhone  string
}

// DefaultOptions mirrors the storefront defaults.
func DefaultOptions() Options {
	return Options{
		PageSize:        pagination.DefaultPageSize,
		RelatedCount:    recommend.DefaultCount,
		RecentDisplay:   recent.DefaultDisplay,
		DiscountPercent: pricing.DefaultDiscountPercent,
		SortLocale:      query.DefaultLocale,
		CurrencySymbol:  enums.CurrencyLYD.Symbol(),
		SummaryHeading:  order.DefaultHeading,
		MessagingPhone:  order.DefaultMessagingPhone,
	}
}

// OptionsFromConfig maps loaded configuration onto session options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		PageSize:        cfg.Storefront.PageSize,
		RelatedCount:    cfg.Storefront.RelatedCount,
		RecentDisplay:   cfg.Storefront.RecentDisplay,
		DiscountPercent: cfg.Storefront.BankDiscountPct,
		SortLocale:      cfg.Storefront.SortLocale,
		CurrencySymbol:  cfg.Storefront.Symbol(),
		SummaryHeading:  cfg.Order.SummaryHeading,
		MessagingPhone:  cfg.Order.MessagingPhone,
	}
}

// Deps are the collaborators a session is built from.
type Deps struct {
	Catalog *catalog.Store
	Tracker *recent.Tracker
	Sampler *recommend.Sampler
	Logger  *logger.Logger
	Metrics *metrics.StorefrontMetrics
}

// Session is the explicit state of one visitor. Every mutation goes through
// the cart ledger or the query criteria and returns the derived state to render.
// It is not safe for concurrent use.
type Session struct {
	id       string
	opts     Options
	catalog  *catalog.Store
	pipeline *query.Pipeline
	criteria query.Criteria
	page     int
	ledger   *cart.Ledger
	payment  enums.PaymentMethod
	engine   *pricing.Engine
	orders   *order.Builder
	tracker  *recent.Tracker
	sampler  *recommend.Sampler
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
	format   pricing.Formatter
}

// NewSession starts a session with an empty cart on page 1 of the whole catalog.
func NewSession(deps Deps, opts Options) (*Session, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	ledger, err := cart.NewLedger(deps.Catalog)
	if err != nil {
		return nil, err
	}
	engine, err := pricing.NewEngine(opts.DiscountPercent)
	if err != nil {
		return nil, err
	}
	if opts.PageSize <= 0 {
		opts.PageSize = pagination.DefaultPageSize
	}
	if opts.RelatedCount < 0 {
		opts.RelatedCount = recommend.DefaultCount
	}
	if opts.RecentDisplay < 0 {
		opts.RecentDisplay = recent.DefaultDisplay
	}
	logg := deps.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	tracker := deps.Tracker
	if tracker == nil {
		tracker = recent.NewTracker(nil, recent.DefaultMax, logg, deps.Metrics)
	}
	sampler := deps.Sampler
	if sampler == nil {
		sampler = recommend.NewSampler(nil)
	}
	format := pricing.Formatter{Symbol: opts.CurrencySymbol}
	orders := order.NewBuilder(order.Options{
		Heading:         opts.SummaryHeading,
		MessagingPhone:  opts.MessagingPhone,
		DiscountPercent: engine.Percent(),
		Formatter:       format,
	})

	return &Session{
		id:       uuid.NewString(),
		opts:     opts,
		catalog:  deps.Catalog,
		pipeline: query.NewPipeline(opts.SortLocale),
		criteria: query.DefaultCriteria(),
		page:     1,
		ledger:   ledger,
		payment:  enums.PaymentMethodCashOnDelivery,
		engine:   engine,
		orders:   orders,
		tracker:  tracker,
		sampler:  sampler,
		logg:     logg,
		metrics:  deps.Metrics,
		format:   format,
	}, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Criteria() query.Criteria {
	return s.criteria
}

func (s *Session) PageIndex() int {
	return s.page
}

func (s *Session) Formatter() pricing.Formatter {
	return s.format
}

// Context attaches the session id to ctx for logging.
func (s *Session) Context(ctx context.Context) context.Context {
	return s.logg.WithSessionID(ctx, s.id)
}

// SetCollection filters by a collection handle, or "all". Unknown handles are rejected.
func (s *Session) SetCollection(ctx context.Context, handle string) (BrowseView, error) {
	handle = strings.TrimSpace(handle)
	if handle != "" && handle != query.AllCollections {
		if _, ok := s.catalog.Collection(handle); !ok {
			return BrowseView{}, pkgerrors.New(pkgerrors.CodeNotFound, "collection not found").
				WithDetails(map[string]any{"collection": handle})
		}
	}
	next := s.criteria
	next.Collection = handle
	return s.applyCriteria(ctx, next), nil
}

// SetSearch filters by free text; blank text clears the search.
func (s *Session) SetSearch(ctx context.Context, text string) BrowseView {
	next := s.criteria
	next.Search = text
	return s.applyCriteria(ctx, next)
}

func (s *Session) SetSort(ctx context.Context, key enums.SortKey) (BrowseView, error) {
	if !key.IsValid() {
		return BrowseView{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid sort key").
			WithDetails(map[string]any{"sort": key})
	}
	next := s.criteria
	next.Sort = key
	return s.applyCriteria(ctx, next), nil
}

// SetPage moves to a 1-based page; indices below 1 clamp to the first page.
func (s *Session) SetPage(ctx context.Context, index int) BrowseView {
	s.page = pagination.NormalizeIndex(index)
	return s.Browse(ctx)
}

// Browse runs the pipeline over the catalog and returns the current page.
func (s *Session) Browse(ctx context.Context) BrowseView {
	results := s.pipeline.Run(s.catalog.Products(), s.criteria)
	s.metrics.ObserveQueryResults(s.criteria.Sort.String(), len(results))
	s.logg.Debug(s.logg.WithFields(ctx, map[string]any{
		"collection": s.criteria.Collection,
		"search":     s.criteria.Search,
		"sort":       s.criteria.Sort.String(),
		"page":       s.page,
		"results":    len(results),
	}), "catalog query")

	cards := make([]ProductCard, 0, len(results))
	for _, p := range results {
		cards = append(cards, s.card(p))
	}
	return BrowseView{
		Criteria: s.criteria,
		Page:     pagination.Paginate(cards, s.opts.PageSize, s.page),
	}
}

// applyCriteria installs new criteria; any change to the query output resets to page 1.
func (s *Session) applyCriteria(ctx context.Context, next query.Criteria) BrowseView {
	s.criteria = next.Normalized()
	s.page = 1
	return s.Browse(ctx)
}

// Collections lists collections, optionally in alphabetical order.
func (s *Session) Collections(alpha bool) []catalog.Collection {
	return s.pipeline.SortCollections(s.catalog.Collections(), alpha)
}

// ViewProduct opens the quick view: the view is recorded and related products sampled.
func (s *Session) ViewProduct(ctx context.Context, productID string) (ProductView, error) {
	product, ok := s.catalog.Product(productID)
	if !ok {
		return ProductView{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"product_id": productID})
	}
	s.tracker.RecordView(s.logg.WithProductID(ctx, productID), product.ID)
	return ProductView{
		Card:    s.card(product),
		Related: s.sampler.RelatedTo(product, s.catalog.Products(), s.opts.RelatedCount),
	}, nil
}

// RecentlyViewed resolves the recently viewed list for display.
func (s *Session) RecentlyViewed() []catalog.Product {
	return s.tracker.RecentList(s.catalog, s.opts.RecentDisplay)
}

func (s *Session) AddToCart(ctx context.Context, productID string, quantity int) (CartUpdate, error) {
	result, err := s.ledger.Add(productID, quantity)
	if err != nil {
		return CartUpdate{}, err
	}
	s.recordNotices(ctx, result.Notices)
	return CartUpdate{Result: result, Cart: s.Cart(ctx)}, nil
}

func (s *Session) SetQuantity(ctx context.Context, productID string, quantity int) CartUpdate {
	result := s.ledger.SetQuantity(productID, quantity)
	s.recordNotices(ctx, result.Notices)
	return CartUpdate{Result: result, Cart: s.Cart(ctx)}
}

func (s *Session) Remove(ctx context.Context, productID string) CartView {
	s.ledger.Remove(productID)
	return s.Cart(ctx)
}

func (s *Session) SetPaymentMethod(ctx context.Context, method enums.PaymentMethod) (CartView, error) {
	if !method.IsValid() {
		return CartView{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method").
			WithDetails(map[string]any{"payment_method": method})
	}
	s.payment = method
	return s.Cart(ctx), nil
}

// Cart reconciles the ledger against current inventory and recomputes totals.
func (s *Session) Cart(ctx context.Context) CartView {
	notices := s.ledger.Reconcile()
	s.recordNotices(ctx, notices)

	totals := s.engine.Compute(s.ledger.Lines(), s.catalog, s.payment)
	return CartView{
		Totals:          totals,
		ItemCount:       s.ledger.TotalQuantity(),
		PaymentMethod:   s.payment,
		PaymentLabel:    order.PaymentLabel(s.payment, s.engine.Percent()),
		CheckoutAllowed: len(totals.Lines) > 0,
		Notices:         notices,
	}
}

// Checkout returns the prompt shown above the shipping form.
func (s *Session) Checkout(ctx context.Context) (string, error) {
	view := s.Cart(ctx)
	if !view.CheckoutAllowed {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	return s.orders.CheckoutPrompt(view.Totals), nil
}

// PlaceOrder builds the order summary. Confirm empties the cart; message
// returns the deep link and keeps the cart.
func (s *Session) PlaceOrder(ctx context.Context, action enums.OrderAction, shipping order.ShippingDetails) (OrderResult, error) {
	if !action.IsValid() {
		return OrderResult{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid order action").
			WithDetails(map[string]any{"action": action})
	}
	view := s.Cart(ctx)
	summary, err := s.orders.Build(view.Totals, shipping)
	if err != nil {
		return OrderResult{}, err
	}

	result := OrderResult{
		Action:  action,
		Summary: summary,
		Text:    s.orders.Render(summary),
	}
	switch action {
	case enums.OrderActionConfirm:
		result.Message = order.ConfirmationMessage
		s.ledger.Clear()
	case enums.OrderActionMessage:
		result.Link = s.orders.DeepLink(result.Text)
	}
	result.Cart = s.Cart(ctx)

	s.metrics.IncOrder(action.String())
	ctx = s.logg.WithFields(ctx, map[string]any{
		"action":         action.String(),
		"payment_method": summary.PaymentMethod.String(),
		"total":          summary.Total.StringFixed(2),
	})
	s.logg.Info(ctx, "order summary produced")
	return result, nil
}

func (s *Session) card(p catalog.Product) ProductCard {
	return ProductCard{
		Product:      p,
		Badges:       p.Badges(),
		CanAdd:       p.Available(),
		CartQuantity: s.ledger.Quantity(p.ID),
	}
}

func (s *Session) recordNotices(ctx context.Context, notices cart.Notices) {
	for _, n := range notices {
		s.metrics.IncNotice(n.Type.String())
		noticeCtx := s.logg.WithFields(ctx, map[string]any{
			"product_id": n.ProductID,
			"notice":     n.Type.String(),
			"requested":  n.Requested,
			"applied":    n.Applied,
		})
		s.logg.Info(noticeCtx, n.Message)
	}
}
