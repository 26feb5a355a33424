package enums

import "fmt"

// OrderAction is what the visitor does with a finished order summary.
type OrderAction string

const (
	OrderActionConfirm OrderAction = "confirm"
	OrderActionMessage OrderAction = "message"
)

var validOrderActions = []OrderAction{
	OrderActionConfirm,
	OrderActionMessage,
}

func (o OrderAction) String() string {
	return string(o)
}

func (o OrderAction) IsValid() bool {
	for _, candidate := range validOrderActions {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderAction converts raw input into an OrderAction.
func ParseOrderAction(value string) (OrderAction, error) {
	for _, candidate := range validOrderActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order action %q", value)
}
