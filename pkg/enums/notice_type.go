package enums

import "fmt"

// NoticeType enumerates the advisory conditions reported by cart mutations.
type NoticeType string

const (
	NoticeTypeUnavailable     NoticeType = "unavailable"
	NoticeTypeQuantityClamped NoticeType = "quantity_clamped"
	NoticeTypeOrphanedLine    NoticeType = "orphaned_line"
)

var validNoticeTypes = []NoticeType{
	NoticeTypeUnavailable,
	NoticeTypeQuantityClamped,
	NoticeTypeOrphanedLine,
}

// String implements fmt.Stringer.
func (n NoticeType) String() string {
	return string(n)
}

// IsValid reports whether the value is known.
func (n NoticeType) IsValid() bool {
	for _, candidate := range validNoticeTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNoticeType converts raw input into a NoticeType.
func ParseNoticeType(value string) (NoticeType, error) {
	for _, candidate := range validNoticeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notice type %q", value)
}
