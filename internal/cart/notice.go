package cart

import (
	"fmt"

	"github.com/next1store/marketoo-down/pkg/enums"
)

// Notice is a non-fatal advisory produced by a cart mutation.
type Notice struct {
	Type      enums.NoticeType `json:"type"`
	ProductID string           `json:"product_id"`
	Requested int              `json:"requested"`
	Applied   int              `json:"applied"`
	Available int              `json:"available"`
	Message   string           `json:"message"`
}

// Notices is the ordered list of advisories from one operation.
type Notices []Notice

// Has reports whether any notice of the given type is present.
func (n Notices) Has(noticeType enums.NoticeType) bool {
	for _, notice := range n {
		if notice.Type == noticeType {
			return true
		}
	}
	return false
}

func appendNotice(notices Notices, notice Notice) Notices {
	return append(notices, notice)
}

func unavailableNotice(productID string, requested, available int) Notice {
	msg := "product is not available"
	if available <= 0 {
		msg = "product is out of stock"
	}
	return Notice{
		Type:      enums.NoticeTypeUnavailable,
		ProductID: productID,
		Requested: requested,
		Available: available,
		Message:   msg,
	}
}

func orphanedNotice(productID string, quantity int) Notice {
	return Notice{
		Type:      enums.NoticeTypeOrphanedLine,
		ProductID: productID,
		Requested: quantity,
		Message:   "product no longer exists in the catalog",
	}
}

// clampQuantity bounds requested to [1, available] and reports a notice when
// the applied value differs from the request.
func clampQuantity(productID string, requested, available int) (int, Notices) {
	applied := requested
	notices := Notices{}

	if applied < 1 {
		applied = 1
		notices = appendNotice(notices, Notice{
			Type:      enums.NoticeTypeQuantityClamped,
			ProductID: productID,
			Requested: requested,
			Applied:   applied,
			Available: available,
			Message:   "quantity raised to the minimum of 1",
		})
	}
	if applied > available {
		applied = available
		notices = appendNotice(notices, Notice{
			Type:      enums.NoticeTypeQuantityClamped,
			ProductID: productID,
			Requested: requested,
			Applied:   applied,
			Available: available,
			Message:   fmt.Sprintf("quantity reduced to available inventory (%d)", available),
		})
	}
	return applied, notices
}
