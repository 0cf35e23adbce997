package invoice

import (
	"strconv"
	"strings"
)

// ItemType discriminates the four kinds of line item an invoice or
// statement can carry.
type ItemType int

const (
	// ItemTypeProduct is a standard product line. Legacy payloads omit
	// the type entirely, which decodes to zero and is treated the same.
	ItemTypeProduct ItemType = 1
	// ItemTypeTask is a billed task line.
	ItemTypeTask ItemType = 2
	// ItemTypePayment is a statement payment record.
	ItemTypePayment ItemType = 3
	// ItemTypeAging is a statement aging bucket record.
	ItemTypeAging ItemType = 4
)

// IsTask reports whether the line is a task line. Anything that is not
// explicitly a task counts as a standard line for table placement.
func (t ItemType) IsTask() bool { return t == ItemTypeTask }

// UnmarshalJSON accepts both numeric and string-encoded type codes.
func (t *ItemType) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*t = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		*t = 0
		return nil
	}
	*t = ItemType(v)
	return nil
}
