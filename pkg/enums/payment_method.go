package enums

import (
	"fmt"
	"strings"
)

// PaymentMethod describes how a visitor intends to settle an order.
type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "cod"
	PaymentMethodBankTransfer   PaymentMethod = "bank"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCashOnDelivery,
	PaymentMethodBankTransfer,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// EarnsDiscount reports whether the method qualifies for the transfer discount.
func (p PaymentMethod) EarnsDiscount() bool {
	return p == PaymentMethodBankTransfer
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
