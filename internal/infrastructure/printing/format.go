package printing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GBR-422777/invoiceninja/internal/domain/invoice"
)

// MoneyFormatter formats amounts using the account's currency
// configuration.
type MoneyFormatter struct {
	symbol string
	code   string
	swap   bool
}

// NewMoneyFormatter creates a formatter for the invoice's account.
// A nil account formats with the dollar symbol.
func NewMoneyFormatter(account *invoice.Account) *MoneyFormatter {
	f := &MoneyFormatter{symbol: "$", code: "USD"}
	if account != nil {
		if account.CurrencySymbol != "" {
			f.symbol = account.CurrencySymbol
		} else if account.CurrencyCode != "" {
			f.symbol = ""
		}
		if account.CurrencyCode != "" {
			f.code = account.CurrencyCode
		}
		f.swap = account.SwapCurrencySymbol.Bool()
	}
	return f
}

// Format renders an amount with two decimals and the currency marker
func (f *MoneyFormatter) Format(d decimal.Decimal) string {
	return f.FormatPrecision(d, 2)
}

// FormatPrecision renders an amount at the given precision with the
// currency marker
func (f *MoneyFormatter) FormatPrecision(d decimal.Decimal, precision int32) string {
	number := f.FormatBare(d, precision)
	if f.symbol == "" {
		return number + " " + f.code
	}
	if f.swap {
		return number + " " + f.symbol
	}
	return f.symbol + number
}

// FormatBare renders an amount with thousand separators and no
// currency marker. Used for quantities.
func (f *MoneyFormatter) FormatBare(d decimal.Decimal, precision int32) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	parts := strings.Split(d.StringFixed(precision), ".")
	intPart := parts[0]
	decPart := ""
	if len(parts) > 1 {
		decPart = parts[1]
	}

	var result strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}

	if decPart == "" {
		return sign + result.String()
	}
	return sign + result.String() + "." + decPart
}

// FormatAddress joins city, state and postal code for display. With
// swap set the postal code leads, the way many European countries
// write addresses.
func FormatAddress(city, state, zip string, swap bool) string {
	var str string
	if swap {
		if zip != "" {
			str += zip + " "
		}
		str += city
		if city != "" && state != "" {
			str += ", "
		} else if city != "" {
			str += " "
		}
		str += state
	} else {
		str += city
		if city != "" && state != "" {
			str += ", "
		} else if state != "" {
			str += " "
		}
		str += state + " " + zip
	}
	return strings.TrimSpace(str)
}

// ConcatStrings joins the non-empty arguments, separating the first
// pair with a comma and the rest with spaces.
func ConcatStrings(args ...string) string {
	var data []string
	for _, s := range args {
		if s != "" {
			data = append(data, s)
		}
	}
	var out strings.Builder
	for i, s := range data {
		out.WriteString(s)
		if i == 0 && len(data) > 1 {
			out.WriteString(", ")
		} else if i < len(data)-1 {
			out.WriteString(" ")
		}
	}
	return out.String()
}
