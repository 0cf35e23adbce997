package invoice

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GBR-422777/invoiceninja/internal/domain/shared/valueobject"
)

// Numeric is a monetary or quantity field parsed permissively: JSON
// numbers, numeric strings, empty strings and null all decode, with
// anything unparseable treated as zero. Invoice payloads are loosely
// typed and a bad cost must never abort a render.
type Numeric struct {
	decimal.Decimal
}

// NewNumeric wraps a decimal as a Numeric.
func NewNumeric(d decimal.Decimal) Numeric {
	return Numeric{Decimal: d}
}

// NumericFromString parses s permissively (see valueobject.ParseDecimal).
func NumericFromString(s string) Numeric {
	return Numeric{Decimal: valueobject.ParseDecimal(s)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		n.Decimal = decimal.Zero
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			n.Decimal = decimal.Zero
			return nil
		}
		n.Decimal = valueobject.ParseDecimal(s)
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		n.Decimal = decimal.Zero
		return nil
	}
	n.Decimal = d
	return nil
}

// Flag is a permissive boolean. The upstream data model stores most of
// its switches as the strings "0"/"1", but true/false and bare numbers
// also appear.
type Flag bool

// Bool returns the flag as a plain bool.
func (f Flag) Bool() bool {
	return bool(f)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	switch strings.ToLower(s) {
	case "", "null", "0", "false":
		*f = false
		return nil
	case "true":
		*f = true
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*f = v != 0
		return nil
	}
	*f = false
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}
