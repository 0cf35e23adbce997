package printing

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GBR-422777/invoiceninja/internal/domain/shared/valueobject"
)

// resolver substitutes one invoice's data into a parsed design tree.
// It runs three passes the way the legacy templates expect: fragment
// nodes first, then label placeholders, then raw value placeholders.
type resolver struct {
	c         *Context
	fragments map[string]any
	data      map[string]any
}

// labelPattern matches a whole-string label placeholder:
// $taxInvoiceLabelUC, $dueDateLabel:, $poNumberLabel:? and so on.
// The optional suffixes request uppercasing, a trailing colon, and
// blanking the label when the backing value is empty.
var labelPattern = regexp.MustCompile(`^\$(\w*?)Label(UC)?(:)?(\?)?$`)

// valuePattern matches value placeholders embedded in text.
var valuePattern = regexp.MustCompile(`\$[a-zA-Z][a-zA-Z0-9_.]*`)

// reservedTokens are layout and color tokens the value pass must leave
// for the token handlers.
var reservedTokens = map[string]bool{
	"$none":                  true,
	"$firstAndLast":          true,
	"$notFirstAndLastColumn": true,
	"$notFirst":              true,
	"$amount":                true,
	"$primaryColor":          true,
	"$secondaryColor":        true,
	"$pageNumber":            true,
	"$pageCount":             true,
}

// moneyFields are value placeholders formatted as amounts.
var moneyFields = map[string]bool{
	"amount":              true,
	"partial":             true,
	"client.balance":      true,
	"client.paid_to_date": true,
}

// Resolve parses a design and substitutes the invoice into it. The
// returned tree is independent of the design content; callers may
// mutate it freely.
func Resolve(c *Context, designContent string) (map[string]any, error) {
	var tree map[string]any
	if err := json.Unmarshal([]byte(designContent), &tree); err != nil {
		return nil, NewRenderError(ErrCodeMalformedTemplate, "design is not valid JSON", err)
	}

	applyTableEdits(c, tree)

	r := &resolver{
		c:         c,
		fragments: buildFragments(c, designContent),
		data:      invoiceData(c),
	}

	resolved, ok := r.walk(tree).(map[string]any)
	if !ok {
		return nil, NewRenderError(ErrCodeMalformedTemplate, "design root is not an object", nil)
	}
	return resolved, nil
}

// applyTableEdits rewrites the design's content list for documents the
// single product table cannot carry: invoices mixing products and
// tasks get the table duplicated, task-only invoices get the table
// retargeted, and statements swap the table and its totals for the
// statement stack.
func applyTableEdits(c *Context, tree map[string]any) {
	inv := c.Invoice

	switch {
	case inv.HasTasks && inv.HasSecondTable:
		content, ok := tree["content"].([]any)
		if !ok {
			return
		}
		idx := findLineItemsTable(content)
		if idx < 0 {
			c.log.Warn("design has no line items table, skipping task table")
			return
		}
		clone := retargetTaskTable(DeepClone(content[idx]))
		content = append(content[:idx+1], append([]any{clone}, content[idx+1:]...)...)
		tree["content"] = content

	case inv.HasTasks:
		retargetTaskTable(tree)

	case inv.IsStatement.Bool():
		content, ok := tree["content"].([]any)
		if !ok {
			return
		}
		idx := findLineItemsTable(content)
		if idx < 0 {
			c.log.Warn("design has no line items table, skipping statement swap")
			return
		}
		// the table and the totals block that follows it make way for
		// the statement stack
		end := idx + 2
		if end > len(content) {
			end = len(content)
		}
		content = append(content[:idx], append([]any{any("$statementDetails")}, content[end:]...)...)
		tree["content"] = content
	}
}

// findLineItemsTable locates the content element whose table body is
// the line items placeholder.
func findLineItemsTable(content []any) int {
	for i, entry := range content {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		table, ok := item["table"].(map[string]any)
		if !ok {
			continue
		}
		if body, ok := table["body"].(string); ok && body == "$invoiceLineItems" {
			return i
		}
	}
	return -1
}

// retargetTaskTable points a line-items subtree at the task fragments.
func retargetTaskTable(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = retargetTaskTable(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = retargetTaskTable(item)
		}
		return val
	case string:
		switch val {
		case "$invoiceLineItems":
			return "$taskLineItems"
		case "$invoiceLineItemColumns":
			return "$taskLineItemColumns"
		}
		return val
	default:
		return v
	}
}

// buildFragments assembles every fragment a design placeholder can
// reference. Heights are derived from row counts so fixed-position
// designs can reserve space.
func buildFragments(c *Context, designContent string) map[string]any {
	inv := c.Invoice
	account := c.Account()

	accountName := account.Name
	if accountName == "" {
		accountName = " "
	}
	invoiceNumber := inv.InvoiceNumber
	if inv.IsStatement.Bool() {
		invoiceNumber = ""
	} else if invoiceNumber == "" {
		invoiceNumber = " "
	}

	entityTaxType := c.Labels.Label("tax_invoice")
	if inv.IsStatement.Bool() {
		entityTaxType = c.Labels.Label("statement")
	} else if inv.IsQuote.Bool() {
		entityTaxType = c.Labels.Label("tax_quote")
	}

	details := InvoiceDetails(c)
	subtotals := Subtotals(c, false)

	return map[string]any{
		"accountName":            accountName,
		"accountLogo":            c.Logo(),
		"accountBackground":      c.Background(),
		"accountDetails":         AccountDetails(c),
		"accountAddress":         AccountAddress(c),
		"invoiceDetails":         details,
		"invoiceDetailsHeight":   len(details)*16 + 16,
		"invoiceLineItems":       InvoiceLines(c, false),
		"invoiceLineItemColumns": InvoiceColumns(c, designContent, false),
		"taskLineItems":          InvoiceLines(c, true),
		"taskLineItemColumns":    InvoiceColumns(c, designContent, true),
		"invoiceDocuments":       InvoiceDocuments(c),
		"clientDetails":          ClientDetails(c),
		"statementDetails":       StatementDetails(c),
		"notesAndTerms":          NotesAndTerms(c),
		"subtotals":              subtotals,
		"subtotalsHeight":        len(subtotals)*16 + 16,
		"subtotalsWithoutBalance": Subtotals(c, true),
		"subtotalsBalance":        SubtotalsBalance(c),
		"balanceDue":              c.Money.Format(inv.BalanceAmount),
		"invoiceTotal":            c.Money.Format(inv.Amount.Decimal),
		"invoiceFooter":           InvoiceFooterText(c),
		"invoiceNumber":           invoiceNumber,
		"entityType":              c.EntityType(),
		"entityTypeUC":            c.Labels.Upper(c.EntityType()),
		"entityTaxType":           entityTaxType,
		"fontSize":                c.Options.FontSize,
		"fontSizeLarger":          c.Options.FontSize + 1,
		"fontSizeLargest":         c.Options.FontSize + 2,
		"fontSizeSmaller":         c.Options.FontSize - 1,
		"bodyFont":                c.Options.BodyFont,
		"headerFont":              c.Options.HeaderFont,
		"signature":               Signature(c),
		"signatureBase64":         SignatureImage(c),
		"signatureDate":           SignatureDate(c),
	}
}

// invoiceData flattens the invoice into a generic map for descendant
// path lookups by the value pass.
func invoiceData(c *Context) map[string]any {
	raw, err := json.Marshal(c.Invoice.Invoice)
	if err != nil {
		return map[string]any{}
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return map[string]any{}
	}
	return data
}

func (r *resolver) walk(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = r.walk(item)
		}
		return val
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				// conditional width entries disappear with their column
				if s == "$quantityWidth" {
					if width, ok := QuantityWidth(r.c); ok {
						out = append(out, width)
					}
					continue
				}
				if s == "$taxWidth" {
					if width, ok := TaxWidth(r.c); ok {
						out = append(out, width)
					}
					continue
				}
			}
			out = append(out, r.walk(item))
		}
		return out
	case string:
		return r.resolveString(val)
	default:
		return v
	}
}

func (r *resolver) resolveString(s string) any {
	if !strings.Contains(s, "$") {
		return s
	}

	// layout and color tokens
	if rule, ok := ParseBorderRule(s); ok {
		return rule
	}
	if color, ok := r.resolveColor(s); ok {
		return color
	}

	// whole-string fragments replace the node, preserving structure
	if strings.HasPrefix(s, "$") {
		if fragment, ok := r.fragments[s[1:]]; ok {
			return fragment
		}
	}

	if label, ok := r.resolveLabel(s); ok {
		return label
	}
	return r.resolveValues(s)
}

// resolveColor handles $primaryColor:<fallback> and
// $secondaryColor:<fallback> tokens.
func (r *resolver) resolveColor(s string) (string, bool) {
	token, fallback, found := strings.Cut(s, ":")
	if !found {
		return "", false
	}
	switch token {
	case "$primaryColor":
		if r.c.Options.PrimaryColor != "" {
			return r.c.Options.PrimaryColor, true
		}
		return fallback, true
	case "$secondaryColor":
		if r.c.Options.SecondaryColor != "" {
			return r.c.Options.SecondaryColor, true
		}
		return fallback, true
	}
	return "", false
}

// resolveLabel substitutes a whole-string label placeholder, applying
// the document-kind remaps: quotes ask for valid-until instead of a
// due date, statements and credits retitle the invoice headings, and
// delivery notes collapse every heading to their own.
func (r *resolver) resolveLabel(s string) (string, bool) {
	m := labelPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	field := camelToSnake(m[1])
	inv := r.c.Invoice

	// a trailing ? blanks the label when the backing value is empty
	if m[4] == "?" && r.lookup(field) == "" {
		return " ", true
	}

	if inv.Partial.Sign() > 0 && field == "balance_due" {
		field = "partial_due"
	} else if inv.IsQuote.Bool() {
		if field == "due_date" {
			field = "valid_until"
		} else {
			field = strings.Replace(field, "invoice", "quote", 1)
		}
	}

	if inv.IsStatement.Bool() {
		switch field {
		case "your_invoice":
			field = "your_statement"
		case "invoice_issued_to":
			field = "statement_issued_to"
		case "invoice_to":
			field = "statement_to"
		}
	} else if inv.IsDeliveryNote.Bool() {
		field = "delivery_note"
	} else if inv.BalanceAmount.IsNegative() {
		switch field {
		case "your_invoice":
			field = "your_credit"
		case "invoice_issued_to":
			field = "credit_issued_to"
		case "invoice_to":
			field = "credit_to"
		}
	}

	label := r.c.Labels.Label(field)
	if m[2] == "UC" {
		label = r.c.Labels.Upper(label)
	}
	if m[3] == ":" {
		label += ":"
	}
	return label, true
}

// resolveValues substitutes every value placeholder embedded in a
// string. Page tokens stay for renderers that know the page count.
func (r *resolver) resolveValues(s string) string {
	return valuePattern.ReplaceAllStringFunc(s, func(match string) string {
		token, _, _ := strings.Cut(match, ":")
		if reservedTokens[token] {
			return match
		}

		field := strings.TrimPrefix(match, "$invoice.")
		field = strings.TrimPrefix(field, "$")
		// legacy placeholders carried a Value suffix
		field = strings.TrimSuffix(field, "Value")
		if field == "" {
			return match
		}
		field = camelToSnake(field)

		switch {
		case field == "footer":
			field = "invoice_footer"
		case match == "$account.phone":
			field = "account.work_phone"
		}

		value := r.lookup(field)
		if value == "" {
			value = " "
		}
		if moneyFields[field] {
			value = r.c.Money.Format(valueobject.ParseDecimal(value))
		}
		return value
	})
}

// lookup resolves a dotted path against the flattened invoice data.
func (r *resolver) lookup(path string) string {
	var current any = r.data
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = obj[part]
	}
	return stringify(current)
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return decimal.NewFromFloat(val).String()
	case bool:
		if val {
			return "true"
		}
		return ""
	case nil:
		return ""
	default:
		return ""
	}
}
