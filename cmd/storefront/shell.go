package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/next1store/marketoo-down/internal/cart"
	"github.com/next1store/marketoo-down/internal/catalog"
	"github.com/next1store/marketoo-down/internal/order"
	"github.com/next1store/marketoo-down/internal/storefront"
	"github.com/next1store/marketoo-down/pkg/enums"
	pkgerrors "github.com/next1store/marketoo-down/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const helpText = `commands:
  browse                      show the current catalog page
  collections [alpha]         list collections
  collection <handle|all>     filter by collection
  search [text]               filter by text, blank clears
  sort <key>                  featured, price-asc, price-desc, alpha
  page <n>                    go to page n
  view <id>                   quick view a product
  recent                      recently viewed products
  add <id> [qty]              add to cart
  qty <id> <n>                set a cart line quantity
  remove <id>                 remove a cart line
  cart                        show the cart
  pay <cod|bank>              choose the payment method
  checkout                    show the checkout prompt
  order <confirm|message>     enter shipping details and place the order
  stats                       session counters
  quit`

type flusher interface {
	Flush() error
}

// shell is the terminal presentation layer: it parses commands, calls the
// session and renders whatever state the session returns.
type shell struct {
	session  *storefront.Session
	in       *bufio.Scanner
	out      io.Writer
	gatherer prometheus.Gatherer
}

func newShell(session *storefront.Session, in io.Reader, out io.Writer, gatherer prometheus.Gatherer) *shell {
	return &shell{
		session:  session,
		in:       bufio.NewScanner(in),
		out:      out,
		gatherer: gatherer,
	}
}

// Run reads commands until quit or end of input.
func (s *shell) Run(ctx context.Context) error {
	s.renderBrowse(s.session.Browse(ctx))
	for {
		s.printf("> ")
		if err := s.flush(); err != nil {
			return err
		}
		if !s.in.Scan() {
			return s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return s.flush()
		}
		if err := s.dispatch(ctx, line); err != nil {
			s.renderError(err)
		}
	}
}

func (s *shell) dispatch(ctx context.Context, line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch cmd {
	case "help":
		s.printf("%s\n", helpText)
	case "browse":
		s.renderBrowse(s.session.Browse(ctx))
	case "collections":
		s.renderCollections(s.session.Collections(rest == "alpha"))
	case "collection":
		view, err := s.session.SetCollection(ctx, rest)
		if err != nil {
			return err
		}
		s.renderBrowse(view)
	case "search":
		s.renderBrowse(s.session.SetSearch(ctx, rest))
	case "sort":
		key, err := enums.ParseSortKey(rest)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse sort key")
		}
		view, err := s.session.SetSort(ctx, key)
		if err != nil {
			return err
		}
		s.renderBrowse(view)
	case "page":
		n, err := intArg(args, 0)
		if err != nil {
			return err
		}
		s.renderBrowse(s.session.SetPage(ctx, n))
	case "view":
		view, err := s.session.ViewProduct(ctx, rest)
		if err != nil {
			return err
		}
		s.renderProduct(view)
	case "recent":
		s.renderRecent(s.session.RecentlyViewed())
	case "add":
		if len(args) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "usage: add <id> [qty]")
		}
		qty := 1
		if len(args) > 1 {
			n, err := intArg(args, 1)
			if err != nil {
				return err
			}
			qty = n
		}
		update, err := s.session.AddToCart(ctx, args[0], qty)
		if err != nil {
			return err
		}
		s.renderNotices(update.Result.Notices)
		s.printf("cart: %d item(s)\n", update.Cart.ItemCount)
	case "qty":
		if len(args) < 2 {
			return pkgerrors.New(pkgerrors.CodeValidation, "usage: qty <id> <n>")
		}
		n, err := intArg(args, 1)
		if err != nil {
			return err
		}
		update := s.session.SetQuantity(ctx, args[0], n)
		s.renderNotices(update.Result.Notices)
		s.renderCart(update.Cart)
	case "remove":
		s.renderCart(s.session.Remove(ctx, rest))
	case "cart":
		s.renderCart(s.session.Cart(ctx))
	case "pay":
		method, err := enums.ParsePaymentMethod(rest)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse payment method")
		}
		view, err := s.session.SetPaymentMethod(ctx, method)
		if err != nil {
			return err
		}
		s.renderCart(view)
	case "checkout":
		prompt, err := s.session.Checkout(ctx)
		if err != nil {
			return err
		}
		s.printf("%s\n", prompt)
	case "order":
		action, err := enums.ParseOrderAction(rest)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse order action")
		}
		if _, err := s.session.Checkout(ctx); err != nil {
			return err
		}
		result, err := s.session.PlaceOrder(ctx, action, s.readShipping())
		if err != nil {
			return err
		}
		s.renderOrder(result)
	case "stats":
		return s.renderStats()
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown command %q, try help", cmd))
	}
	return nil
}

func (s *shell) readShipping() order.ShippingDetails {
	return order.ShippingDetails{
		Name:    s.ask("الاسم"),
		Phone:   s.ask("الهاتف"),
		City:    s.ask("المدينة"),
		Address: s.ask("العنوان"),
		Notes:   s.ask("ملاحظات (اختياري)"),
	}
}

func (s *shell) ask(label string) string {
	s.printf("%s: ", label)
	_ = s.flush()
	if !s.in.Scan() {
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

func (s *shell) renderBrowse(view storefront.BrowseView) {
	c := view.Criteria
	s.printf("collection=%s search=%q sort=%s\n", c.Collection, c.Search, c.Sort)
	if len(view.Page.Items) == 0 {
		s.printf("لا توجد منتجات مطابقة.\n")
	}
	for _, card := range view.Page.Items {
		s.printf("%s\n", s.cardLine(card))
	}
	if view.Page.ShowControls() {
		s.printf("page %d/%d (%d products)\n", view.Page.Index, view.Page.TotalPages, view.Page.TotalItems)
	}
}

func (s *shell) cardLine(card storefront.ProductCard) string {
	format := s.session.Formatter()
	p := card.Product
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s | %s | %s", p.ID, p.Title, p.Vendor, format.Format(p.Price))
	if card.Badges.OnSale {
		fmt.Fprintf(&b, " (%s)", format.Format(*p.CompareAtPrice))
	}
	for _, badge := range card.Badges.List() {
		b.WriteString(" | " + badge.Label())
		if badge == enums.ProductBadgeLowStock {
			fmt.Fprintf(&b, " (%d)", p.Inventory)
		}
	}
	if card.CartQuantity > 0 {
		fmt.Fprintf(&b, " | in cart: %d", card.CartQuantity)
	}
	return b.String()
}

func (s *shell) renderCollections(collections []catalog.Collection) {
	for _, c := range collections {
		s.printf("%s: %s\n", c.Handle, c.Title)
	}
}

func (s *shell) renderProduct(view storefront.ProductView) {
	s.printf("%s\n%s\n", s.cardLine(view.Card), view.Card.Product.Description)
	if len(view.Related) == 0 {
		return
	}
	s.printf("related:\n")
	for _, p := range view.Related {
		s.printf("  [%s] %s\n", p.ID, p.Title)
	}
}

func (s *shell) renderRecent(products []catalog.Product) {
	if len(products) == 0 {
		s.printf("no recently viewed products\n")
		return
	}
	for _, p := range products {
		s.printf("[%s] %s\n", p.ID, p.Title)
	}
}

func (s *shell) renderNotices(notices cart.Notices) {
	for _, n := range notices {
		s.printf("! %s: %s\n", n.Type, n.Message)
	}
}

func (s *shell) renderCart(view storefront.CartView) {
	s.renderNotices(view.Notices)
	if len(view.Totals.Lines) == 0 {
		s.printf("سلة المشتريات فارغة.\n")
		return
	}
	format := s.session.Formatter()
	for _, line := range view.Totals.Lines {
		s.printf("[%s] %s (%s) × %d = %s\n", line.ProductID, line.Title,
			format.Format(line.UnitPrice), line.Quantity, format.Format(line.LineTotal))
	}
	s.printf("الإجمالي الفرعي: %s\n", format.Format(view.Totals.Subtotal))
	if view.Totals.DiscountVisible() {
		s.printf("الخصم: %s\n", format.FormatDiscount(view.Totals.Discount))
	}
	s.printf("المجموع الكلي: %s\n", format.Format(view.Totals.Total))
	s.printf("طريقة الدفع: %s\n", view.PaymentLabel)
}

func (s *shell) renderOrder(result storefront.OrderResult) {
	if result.Message != "" {
		s.printf("%s\n\n", result.Message)
	}
	s.printf("%s", result.Text)
	if result.Link != "" {
		s.printf("%s\n", result.Link)
	}
}

func (s *shell) renderStats() error {
	families, err := s.gatherer.Gather()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "gather metrics")
	}
	lines := make([]string, 0)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				value = float64(m.GetHistogram().GetSampleCount())
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), value))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		s.printf("%s\n", line)
	}
	return nil
}

func (s *shell) renderError(err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		s.printf("error: %v\n", err)
		return
	}
	msg := typed.Message()
	if cause := typed.Unwrap(); cause != nil {
		msg += ": " + cause.Error()
	}
	s.printf("error: %s: %s\n", pkgerrors.MetadataFor(typed.Code()).PublicMessage, msg)
}

func (s *shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *shell) flush() error {
	if f, ok := s.out.(flusher); ok {
		return f.Flush()
	}
	return nil
}

func intArg(args []string, idx int) (int, error) {
	if idx >= len(args) {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "missing number")
	}
	n, err := strconv.Atoi(args[idx])
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid number")
	}
	return n, nil
}
