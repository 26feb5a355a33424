package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/next1store/marketoo-down/internal/pricing"
	"github.com/next1store/marketoo-down/pkg/enums"
	pkgerrors "github.com/next1store/marketoo-down/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	DefaultHeading        = "*ملخص طلب Marketoo*"
	DefaultMessagingPhone = "218945890862"

	// ConfirmationMessage is shown after a confirmed order.
	ConfirmationMessage = "تم تأكيد الطلب بنجاح. سيتم التواصل معكم عبر الهاتف."

	separator       = "------------------------"
	messagingOrigin = "https://wa.me/"
)

// Summary is the structured order handed to the messaging channel.
type Summary struct {
	Lines           []pricing.PricedLine `json:"lines"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	Discount        decimal.Decimal      `json:"discount"`
	DiscountVisible bool                 `json:"discount_visible"`
	Total           decimal.Decimal      `json:"total"`
	PaymentMethod   enums.PaymentMethod  `json:"payment_method"`
	PaymentLabel    string               `json:"payment_label"`
	Shipping        ShippingDetails      `json:"shipping"`
}

// Options configures a Builder.
type Options struct {
	Heading         string
	MessagingPhone  string
	DiscountPercent int
	Formatter       pricing.Formatter
}

// Builder turns priced totals and shipping details into order summaries.
type Builder struct {
	heading         string
	phone           string
	discountPercent int
	formatter       pricing.Formatter
}

func NewBuilder(opts Options) *Builder {
	if strings.TrimSpace(opts.Heading) == "" {
		opts.Heading = DefaultHeading
	}
	if strings.TrimSpace(opts.MessagingPhone) == "" {
		opts.MessagingPhone = DefaultMessagingPhone
	}
	return &Builder{
		heading:         opts.Heading,
		phone:           digitsOnly(opts.MessagingPhone),
		discountPercent: opts.DiscountPercent,
		formatter:       opts.Formatter,
	}
}

// PaymentLabel is the display label for a payment method.
func PaymentLabel(method enums.PaymentMethod, discountPercent int) string {
	if method.EarnsDiscount() {
		return fmt.Sprintf("حوالة مصرفية (خصم %d%%)", discountPercent)
	}
	return "الدفع عند الاستلام"
}

// Build validates shipping and assembles the summary. An empty cart cannot be ordered.
func (b *Builder) Build(totals pricing.Totals, shipping ShippingDetails) (Summary, error) {
	if len(totals.Lines) == 0 {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if err := shipping.Validate(); err != nil {
		return Summary{}, err
	}
	return Summary{
		Lines:           totals.Lines,
		Subtotal:        totals.Subtotal,
		Discount:        totals.Discount,
		DiscountVisible: totals.DiscountVisible(),
		Total:           totals.Total,
		PaymentMethod:   totals.PaymentMethod,
		PaymentLabel:    PaymentLabel(totals.PaymentMethod, b.discountPercent),
		Shipping:        shipping.Normalized(),
	}, nil
}

// CheckoutPrompt is the text shown when the checkout form opens.
func (b *Builder) CheckoutPrompt(totals pricing.Totals) string {
	return fmt.Sprintf("إجمالي طلبك هو %s، وطريقة الدفع المختارة هي: %s. يرجى إدخال بيانات الشحن لتأكيد الطلب.",
		b.formatter.Format(totals.Total), PaymentLabel(totals.PaymentMethod, b.discountPercent))
}

// Render produces the plain-text summary.
func (b *Builder) Render(s Summary) string {
	var sb strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&sb, format, args...)
		sb.WriteByte('\n')
	}

	line("%s", b.heading)
	line(separator)
	for _, l := range s.Lines {
		line("%s (%s) × %d", l.Title, b.formatter.Format(l.UnitPrice), l.Quantity)
	}
	line(separator)
	line("الإجمالي الفرعي: %s", b.formatter.Format(s.Subtotal))
	if s.DiscountVisible {
		line("الخصم (%d%%): %s", b.discountPercent, b.formatter.FormatDiscount(s.Discount))
	}
	line("*المجموع الكلي: %s*", b.formatter.Format(s.Total))
	line("طريقة الدفع: %s", s.PaymentLabel)
	line(separator)
	line("*بيانات الشحن:*")
	line("الاسم: %s", s.Shipping.Name)
	line("الهاتف: %s", s.Shipping.Phone)
	line("العنوان: %s, %s", s.Shipping.City, s.Shipping.Address)
	if s.Shipping.Notes != "" {
		line("ملاحظات: %s", s.Shipping.Notes)
	}
	return sb.String()
}

// DeepLink builds the messaging link carrying text, escaped like encodeURIComponent.
func (b *Builder) DeepLink(text string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return messagingOrigin + b.phone + "?text=" + escaped
}

func digitsOnly(value string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
}
