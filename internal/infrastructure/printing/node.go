package printing

import (
	"encoding/json"
	"strconv"
	"strings"
)

// BorderRuleKind discriminates the table layout rule variants
type BorderRuleKind int

const (
	// RuleNone always yields zero
	RuleNone BorderRuleKind = iota
	// RuleAmount yields a constant amount for every index
	RuleAmount
	// RuleFirstAndLast yields the amount on the first and last line only
	RuleFirstAndLast
	// RuleNotFirst yields the amount everywhere except the first line
	RuleNotFirst
	// RuleNotFirstAndLastColumn yields the amount on inner columns only
	RuleNotFirstAndLastColumn
)

// BorderRule is a table layout rule parsed from its token form once at
// resolve time. Apply evaluates it the way the painting renderer would:
// i is the line or column index, count the number of body rows or
// column widths.
type BorderRule struct {
	Kind   BorderRuleKind
	Amount float64

	token string
}

// Apply evaluates the rule for line/column index i out of count
func (r BorderRule) Apply(i, count int) float64 {
	switch r.Kind {
	case RuleAmount:
		return r.Amount
	case RuleFirstAndLast:
		if i == 0 || i == count {
			return r.Amount
		}
		return 0
	case RuleNotFirst:
		if i == 0 {
			return 0
		}
		return r.Amount
	case RuleNotFirstAndLastColumn:
		if i == 0 || i == count {
			return 0
		}
		return r.Amount
	default:
		return 0
	}
}

// MarshalJSON re-emits the original token so resolved trees stay wire
// compatible with painting renderers that expect the token form.
func (r BorderRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.token)
}

// ParseBorderRule parses a layout token into a BorderRule. The second
// return value is false when the string is not a layout token.
func ParseBorderRule(s string) (BorderRule, bool) {
	if !strings.HasPrefix(s, "$") {
		return BorderRule{}, false
	}

	token, arg, _ := strings.Cut(s, ":")
	amount, _ := strconv.ParseFloat(arg, 64)

	switch token {
	case "$none":
		return BorderRule{Kind: RuleNone, token: s}, true
	case "$amount":
		return BorderRule{Kind: RuleAmount, Amount: amount, token: s}, true
	case "$firstAndLast":
		return BorderRule{Kind: RuleFirstAndLast, Amount: amount, token: s}, true
	case "$notFirst":
		return BorderRule{Kind: RuleNotFirst, Amount: amount, token: s}, true
	case "$notFirstAndLastColumn":
		return BorderRule{Kind: RuleNotFirstAndLastColumn, Amount: amount, token: s}, true
	}
	return BorderRule{}, false
}

// HeaderFooterRule gates a header or footer block by page. The body is
// emitted on the first (or last) page unless AllPages is set. When
// SubstitutePageTokens is set the renderer replaces $pageNumber and
// $pageCount in the body per page.
type HeaderFooterRule struct {
	Body                 any  `json:"body"`
	AllPages             bool `json:"allPages"`
	LastPage             bool `json:"lastPage,omitempty"`
	SubstitutePageTokens bool `json:"substitutePageTokens"`
}

// BackgroundRule gates a page background. Without AllPages the
// background paints on the first page only.
type BackgroundRule struct {
	Body     any  `json:"body"`
	AllPages bool `json:"allPages"`
}

// DeepClone returns a structurally independent copy of a decoded JSON
// tree. Maps, slices and scalars are supported; anything else is
// returned as is.
func DeepClone(v any) any {
	switch val := v.(type) {
	case map[string]any:
		clone := make(map[string]any, len(val))
		for k, item := range val {
			clone[k] = DeepClone(item)
		}
		return clone
	case []any:
		clone := make([]any, len(val))
		for i, item := range val {
			clone[i] = DeepClone(item)
		}
		return clone
	default:
		return v
	}
}

// SubstitutePageTokens replaces $pageNumber and $pageCount in every
// string of a cloned tree. Used by renderers that know the final page
// count; the resolver itself leaves the tokens intact.
func SubstitutePageTokens(v any, pageNumber, pageCount int) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = SubstitutePageTokens(item, pageNumber, pageCount)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = SubstitutePageTokens(item, pageNumber, pageCount)
		}
		return out
	case string:
		s := strings.ReplaceAll(val, "$pageNumber", strconv.Itoa(pageNumber))
		return strings.ReplaceAll(s, "$pageCount", strconv.Itoa(pageCount))
	default:
		return v
	}
}
