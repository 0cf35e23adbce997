package printing

import (
	"strings"

	"go.uber.org/zap"

	"github.com/GBR-422777/invoiceninja/internal/domain/invoice"
)

// Options carries the presentation settings that are not part of the
// invoice payload: fonts, colors and artwork loaded by the caller.
type Options struct {
	BodyFont       string
	HeaderFont     string
	FontSize       int
	PrimaryColor   string
	SecondaryColor string

	// Base64 data URIs. Empty values fall back to a blank image so
	// image nodes in designs never dangle.
	AccountLogo       string
	AccountBackground string
}

// DefaultOptions returns the standard presentation settings
func DefaultOptions() Options {
	return Options{
		BodyFont:   "Roboto",
		HeaderFont: "Roboto",
		FontSize:   9,
	}
}

// blankImage is a 1x1 transparent PNG used wherever a design expects
// an image the account did not supply.
const blankImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVQYV2NgYAAAAAMAAWgmWQ0AAAAASUVORK5CYII="

// Context bundles everything the fragment builders and the resolver
// need for one render. It is built once per render and read-only after.
type Context struct {
	Invoice *invoice.Derived
	Labels  *Dictionary
	Money   *MoneyFormatter
	Options Options

	log *zap.Logger
}

// NewContext creates a render context for a calculated invoice
func NewContext(derived *invoice.Derived, labels *Dictionary, opts Options, log *zap.Logger) *Context {
	if labels == nil {
		labels = DefaultDictionary()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Context{
		Invoice: derived,
		Labels:  labels,
		Money:   NewMoneyFormatter(derived.Account),
		Options: opts,
		log:     log,
	}
}

// Account is a nil-safe accessor for the invoice's account
func (c *Context) Account() *invoice.Account {
	return c.Invoice.Account
}

// Client is a nil-safe accessor for the invoice's client
func (c *Context) Client() *invoice.Client {
	return c.Invoice.Client
}

// Contact returns the invoice's primary contact
func (c *Context) Contact() *invoice.Contact {
	return c.Invoice.PrimaryContact()
}

// EntityType returns the display name of the document kind
func (c *Context) EntityType() string {
	inv := c.Invoice
	switch {
	case inv.IsDeliveryNote.Bool():
		return c.Labels.Label("delivery_note")
	case inv.IsStatement.Bool():
		return c.Labels.Label("statement")
	case inv.IsQuote.Bool():
		return c.Labels.Label("quote")
	case inv.BalanceAmount.IsNegative():
		return c.Labels.Label("credit_note")
	default:
		return c.Labels.Label("invoice")
	}
}

// Logo returns the account logo or a blank image
func (c *Context) Logo() string {
	if c.Options.AccountLogo != "" {
		return c.Options.AccountLogo
	}
	return blankImage
}

// Background returns the background artwork or a blank image
func (c *Context) Background() string {
	if c.Options.AccountBackground != "" {
		return c.Options.AccountBackground
	}
	return blankImage
}

// snakeToCamel converts snake_case field names to the camelCase style
// tags designs use.
func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}

// camelToSnake converts camelCase placeholder names back to the
// snake_case field paths the data model uses.
func camelToSnake(s string) string {
	var out strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			out.WriteByte('_')
			out.WriteRune(r + ('a' - 'A'))
		} else {
			out.WriteRune(r)
		}
	}
	return out.String()
}
