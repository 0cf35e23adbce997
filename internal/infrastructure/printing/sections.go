package printing

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GBR-422777/invoiceninja/internal/domain/invoice"
	"github.com/GBR-422777/invoiceninja/internal/domain/shared/valueobject"
)

// defaultAccountFields1 through defaultClientFields are the hardcoded
// field layouts used when the account has no layout of its own.
var (
	defaultAccountFields1 = []string{
		"account.company_name",
		"account.id_number",
		"account.vat_number",
		"account.website",
		"account.email",
		"account.phone",
	}
	defaultAccountFields2 = []string{
		"account.address1",
		"account.address2",
		"account.city_state_postal",
		"account.country",
		"account.custom_value1",
		"account.custom_value2",
	}
	defaultInvoiceFields = []string{
		"invoice.invoice_number",
		"invoice.po_number",
		"invoice.invoice_date",
		"invoice.due_date",
		"invoice.balance_due",
		"invoice.partial_due",
		"invoice.custom_text_value1",
		"invoice.custom_text_value2",
	}
	defaultClientFields = []string{
		"client.client_name",
		"client.id_number",
		"client.vat_number",
		"client.address1",
		"client.address2",
		"client.city_state_postal",
		"client.country",
		"client.email",
		"client.custom_value1",
		"client.custom_value2",
		"contact.custom_value1",
		"contact.custom_value2",
	}
)

// layoutFields returns the account's configured field list for one
// section, or the default list. Custom layouts require the invoice
// settings plan gate.
func layoutFields(c *Context, pick func(invoice.FieldLayout) []string, defaults []string) []string {
	if c.Invoice.Features.InvoiceSettings && c.Account().InvoiceFields != "" {
		if fields := pick(c.Account().Layout()); len(fields) > 0 {
			return fields
		}
	}
	return defaults
}

func renderFieldList(c *Context, fields []string, twoColumn bool) []any {
	data := make([]any, 0, len(fields))
	for _, field := range fields {
		if value := RenderField(c, field, twoColumn); value != nil {
			data = append(data, value)
		}
	}
	return data
}

// AccountDetails builds the company identity block.
func AccountDetails(c *Context) []any {
	fields := layoutFields(c, func(l invoice.FieldLayout) []string { return l.AccountFields1 }, defaultAccountFields1)
	return prepareDataList(renderFieldList(c, fields, false), "accountDetails")
}

// AccountAddress builds the company address block.
func AccountAddress(c *Context) []any {
	fields := layoutFields(c, func(l invoice.FieldLayout) []string { return l.AccountFields2 }, defaultAccountFields2)
	return prepareDataList(renderFieldList(c, fields, false), "accountAddress")
}

// InvoiceDetails builds the label/value block of document numbers,
// dates and amounts.
func InvoiceDetails(c *Context) []any {
	fields := layoutFields(c, func(l invoice.FieldLayout) []string { return l.InvoiceFields }, defaultInvoiceFields)
	pairs := make([][]any, 0, len(fields))
	for _, field := range fields {
		if value, ok := RenderField(c, field, true).([]any); ok {
			pairs = append(pairs, value)
		}
	}
	return prepareDataPairs(pairs, "invoiceDetails")
}

// ClientDetails builds the billed-party block.
func ClientDetails(c *Context) []any {
	fields := layoutFields(c, func(l invoice.FieldLayout) []string { return l.ClientFields }, defaultClientFields)
	return prepareDataList(renderFieldList(c, fields, false), "clientDetails")
}

// ProductFields returns the column field list for the line-item table.
// The account layout wins when configured; otherwise the defaults
// apply, with task tables swapping in service/rate/hours.
func ProductFields(c *Context, isTasks bool) []string {
	layout := c.Account().Layout()
	if isTasks && len(layout.TaskFields) > 0 {
		return layout.TaskFields
	}
	if !isTasks && len(layout.ProductFields) > 0 {
		return layout.ProductFields
	}

	fields := []string{
		"product.item",
		"product.description",
		"product.custom_value1",
		"product.custom_value2",
		"product.unit_cost",
		"product.quantity",
		"product.tax",
		"product.line_total",
	}
	if isTasks {
		fields[0] = "product.service"
		fields[4] = "product.rate"
		fields[5] = "product.hours"
	}

	// legacy 'hide quantity' setting
	if c.Account().HideQuantity.Bool() && !isTasks {
		fields = append(fields[:5], fields[6:]...)
	}
	return fields
}

// deliveryNoteSkipColumns never appear on delivery notes.
var deliveryNoteSkipColumns = map[string]bool{
	"product.unit_cost":  true,
	"product.rate":       true,
	"product.tax":        true,
	"product.line_total": true,
	"product.discount":   true,
}

// shortProductField strips the "product." prefix.
func shortProductField(field string) string {
	if i := strings.Index(field, "."); i >= 0 {
		return field[i+1:]
	}
	return field
}

// columnHidden reports whether a line-item column is dropped because
// no item carries data for it.
func columnHidden(inv *invoice.Derived, field string) bool {
	switch field {
	case "custom_value1":
		return !inv.HasCustomItemValue1
	case "custom_value2":
		return !inv.HasCustomItemValue2
	case "tax":
		return !inv.HasItemTaxes
	case "discount":
		return !inv.HasItemDiscounts
	}
	return false
}

// InvoiceLines builds the line-item table grid: a header row plus one
// row per shown item. With isSecondTable set only task lines are
// included; otherwise task lines are excluded.
func InvoiceLines(c *Context, isSecondTable bool) []any {
	inv := c.Invoice
	account := c.Account()
	isTasks := isSecondTable || (inv.HasTasks && !inv.HasStandard)
	fields := ProductFields(c, isTasks)

	headerStyles := []any{"tableHeader"}
	if isSecondTable && inv.HasStandard {
		headerStyles = append(headerStyles, "secondTableHeader")
	}

	header := make([]any, 0, len(fields))
	for i, field := range fields {
		if inv.IsDeliveryNote.Bool() && deliveryNoteSkipColumns[field] {
			continue
		}
		short := shortProductField(field)
		if columnHidden(inv, short) {
			continue
		}

		value := c.Labels.Label(short)
		switch short {
		case "custom_value1":
			value = invoice.CustomLabel(account.CustomFields.Product1)
		case "custom_value2":
			value = invoice.CustomLabel(account.CustomFields.Product2)
		}

		styles := append(append([]any{}, headerStyles...), snakeToCamel(short), snakeToCamel(short)+"TableHeader")
		if short == "unit_cost" || short == "rate" || short == "hours" {
			styles = append(styles, "cost")
		}
		if i == 0 {
			styles = append(styles, "firstColumn")
		} else if i == len(fields)-1 {
			styles = append(styles, "lastColumn")
		}
		header = append(header, map[string]any{"text": value, "style": styles})
	}

	grid := [][]any{header}
	shownItem := false

	for i := range inv.Items {
		item := &inv.Items[i]

		if isTasks != item.TypeID.IsTask() {
			continue
		}

		// show at most one blank line
		if item.IsBlank() {
			if shownItem {
				continue
			}
		}
		shownItem = true

		cost := " "
		if !item.Cost.IsZero() {
			cost = c.Money.FormatPrecision(item.Cost.Decimal, valueobject.Precision(item.Cost.Decimal))
		}
		qty := " "
		if !item.Qty.IsZero() {
			qty = c.Money.FormatBare(item.Qty.Decimal, valueobject.Precision(item.Qty.Decimal))
		}
		discount := valueobject.RoundToTwo(item.Discount.Decimal)

		lineTotal := invoice.LineTotal(inv.Invoice, item)
		if account.IncludeItemTaxesInline.Bool() {
			// both taxes apply to the pre-tax line total
			base := lineTotal
			if !item.TaxRate1.IsZero() {
				lineTotal = lineTotal.Add(valueobject.RoundToTwo(base.Mul(item.TaxRate1.Decimal).Div(hundredDec)))
			}
			if !item.TaxRate2.IsZero() {
				lineTotal = lineTotal.Add(valueobject.RoundToTwo(base.Mul(item.TaxRate2.Decimal).Div(hundredDec)))
			}
		}
		lineTotalText := " "
		if !lineTotal.IsZero() {
			lineTotalText = c.Money.Format(lineTotal)
		}

		rowStyle := "odd"
		if len(grid)%2 == 0 {
			rowStyle = "even"
		}

		row := make([]any, 0, len(fields))
		for j, field := range fields {
			if inv.IsDeliveryNote.Bool() && deliveryNoteSkipColumns[field] {
				continue
			}
			short := shortProductField(field)
			if columnHidden(inv, short) {
				continue
			}

			styles := []any{snakeToCamel(short), rowStyle}
			var value string
			switch short {
			case "item", "service":
				value = item.ProductKey
				styles = append(styles, "productKey")
			case "description":
				value = item.Notes
			case "unit_cost", "rate":
				value = cost
				styles = append(styles, "cost")
			case "quantity", "hours":
				value = qty
				if short == "hours" {
					styles = append(styles, "cost")
				}
			case "custom_value1":
				value = item.CustomValue1
			case "custom_value2":
				value = item.CustomValue2
			case "discount":
				if !discount.IsZero() {
					if inv.IsAmountDiscount.Bool() {
						value = c.Money.Format(discount)
					} else {
						value = discount.String() + "%"
					}
				}
			case "tax":
				value = taxCell(item)
			case "line_total":
				value = lineTotalText
			}

			if j == 0 {
				styles = append(styles, "firstColumn")
			} else if j == len(fields)-1 {
				styles = append(styles, "lastColumn")
			}
			if value == "" {
				value = " "
			}
			row = append(row, map[string]any{"text": value, "style": styles})
		}
		grid = append(grid, row)
	}

	return prepareDataTable(grid, "invoiceItems")
}

// taxCell formats the per-line tax rates column: a leading space, then
// each named rate as a percentage, double-spaced apart.
func taxCell(item *invoice.InvoiceItem) string {
	value := " "
	if item.TaxName1 != "" {
		value += rateString(item.TaxRate1.Decimal) + "%"
	}
	if item.TaxName2 != "" {
		if item.TaxName1 != "" {
			value += "  "
		}
		value += rateString(item.TaxRate2.Decimal) + "%"
	}
	return value
}

func rateString(rate decimal.Decimal) string {
	if rate.IsZero() {
		return "0"
	}
	return rate.String()
}

var hundredDec = decimal.NewFromInt(100)

// InvoiceColumns derives the table column widths from the shown
// fields. The raw design content is consulted for a zero page margin,
// which widens the outer columns of edge-to-edge designs.
func InvoiceColumns(c *Context, designContent string, isTasks bool) []any {
	inv := c.Invoice
	fields := ProductFields(c, isTasks)
	hasDescription := false
	for _, f := range fields {
		if f == "product.description" {
			hasDescription = true
		}
	}
	hasPadding := !strings.Contains(designContent, `"pageMargins":[0`) &&
		!strings.Contains(designContent, `"pageMargins": [0`)

	columns := make([]any, 0, len(fields))
	for i, field := range fields {
		if inv.IsDeliveryNote.Bool() {
			switch field {
			case "product.unit_cost", "product.rate", "product.tax", "product.line_total":
				continue
			}
		}

		width := 0
		switch field {
		case "product.custom_value1":
			if !inv.HasCustomItemValue1 {
				continue
			}
			width = 10
		case "product.custom_value2":
			if !inv.HasCustomItemValue2 {
				continue
			}
			width = 10
		case "product.tax":
			if !inv.HasItemTaxes {
				continue
			}
			width = 15
		case "product.discount":
			if !inv.HasItemDiscounts {
				continue
			}
			width = 15
		case "product.description":
			width = 0
		default:
			width = 14
		}

		if width == 0 {
			columns = append(columns, "*")
			continue
		}
		// edge-to-edge designs get wider outer columns
		if !hasPadding && (i == 0 || i == len(fields)-1) {
			width += 8
		}
		if !hasDescription {
			columns = append(columns, "*")
		} else {
			columns = append(columns, strconv.Itoa(width)+"%")
		}
	}
	return columns
}

// QuantityWidth returns the conditional width entry for the quantity
// column. The second return is false when the column is hidden and the
// entry must be removed from the design's width array.
func QuantityWidth(c *Context) (string, bool) {
	for _, f := range ProductFields(c, false) {
		if f == "product.quantity" {
			return "14%", true
		}
	}
	return "", false
}

// TaxWidth returns the conditional width entry for the tax column.
func TaxWidth(c *Context) (string, bool) {
	if !c.Invoice.HasItemTaxes {
		return "", false
	}
	for _, f := range ProductFields(c, false) {
		if f == "product.tax" {
			return "14%", true
		}
	}
	return "", false
}

func subtotalRow(label, amount string, labelStyles, valueStyles []any) []any {
	return []any{
		map[string]any{"text": label, "style": labelStyles},
		map[string]any{"text": amount, "style": valueStyles},
	}
}

// Subtotals builds the label/amount rows of the totals block, in the
// fixed order subtotal, discount, inclusive surcharges, item taxes,
// document taxes, exclusive surcharges, paid to date, balance due and
// partial due. With hideBalance the balance rows are elided unless a
// partial is requested.
func Subtotals(c *Context, hideBalance bool) []any {
	inv := c.Invoice
	if inv.IsDeliveryNote.Bool() {
		return []any{}
	}
	account := c.Account()

	var data [][]any
	push := func(label, amount, tag string) {
		data = append(data, subtotalRow(label, amount,
			[]any{"subtotalsLabel", tag + "Label"},
			[]any{"subtotals", tag}))
	}

	push(c.Labels.Label("subtotal"), c.Money.Format(inv.SubtotalAmount), "subtotal")

	if !inv.DiscountAmount.IsZero() {
		push(c.Labels.Label("discount"), c.Money.Format(inv.DiscountAmount), "discount")
	}

	// the raw configured label, the a|b split applies to fields only
	custom1Label := account.CustomFields.Invoice1
	if custom1Label == "" {
		custom1Label = c.Labels.Label("surcharge")
	}
	custom2Label := account.CustomFields.Invoice2
	if custom2Label == "" {
		custom2Label = c.Labels.Label("surcharge")
	}

	if !inv.CustomValue1.IsZero() && inv.CustomTaxes1.Bool() {
		push(custom1Label, c.Money.Format(inv.CustomValue1.Decimal), "customTax1")
	}
	if !inv.CustomValue2.IsZero() && inv.CustomTaxes2.Bool() {
		push(custom2Label, c.Money.Format(inv.CustomValue2.Decimal), "customTax2")
	}

	for _, agg := range inv.ItemTaxes {
		label := agg.Name + " " + rateString(agg.Rate) + "%"
		push(label, c.Money.Format(agg.Amount), "tax")
	}

	if !inv.TaxRate1.IsZero() || inv.TaxName1 != "" {
		label := inv.TaxName1 + " " + rateString(inv.TaxRate1.Decimal) + "%"
		push(label, c.Money.Format(inv.TaxAmount1), "tax1")
	}
	if !inv.TaxRate2.IsZero() || inv.TaxName2 != "" {
		label := inv.TaxName2 + " " + rateString(inv.TaxRate2.Decimal) + "%"
		push(label, c.Money.Format(inv.TaxAmount2), "tax2")
	}

	if !inv.CustomValue1.IsZero() && !inv.CustomTaxes1.Bool() {
		push(custom1Label, c.Money.Format(inv.CustomValue1.Decimal), "custom1")
	}
	if !inv.CustomValue2.IsZero() && !inv.CustomTaxes2.Bool() {
		push(custom2Label, c.Money.Format(inv.CustomValue2.Decimal), "custom2")
	}

	paid := inv.PaidToDate()
	if !inv.IsQuote.Bool() && !inv.BalanceAmount.IsNegative() &&
		(!account.HidePaidToDate.Bool() || !paid.IsZero()) {
		push(c.Labels.Label("paid_to_date"), c.Money.Format(paid), "paidToDate")
	}

	isPartial := inv.IsPartial()

	if !hideBalance || isPartial {
		label := c.Labels.Label("balance_due")
		if inv.IsQuote.Bool() || inv.BalanceAmount.IsNegative() {
			label = c.Labels.Label("total")
		}
		labelStyles := []any{"subtotalsLabel", "subtotalsBalanceDueLabel"}
		valueStyles := []any{"subtotals", "subtotalsBalanceDue"}
		if isPartial {
			labelStyles = labelStyles[:1]
			valueStyles = valueStyles[:1]
		}
		data = append(data, subtotalRow(label, c.Money.Format(inv.TotalAmount), labelStyles, valueStyles))
	}

	if !hideBalance && isPartial {
		data = append(data, subtotalRow(c.Labels.Label("partial_due"), c.Money.Format(inv.BalanceAmount),
			[]any{"subtotalsLabel", "subtotalsBalanceDueLabel"},
			[]any{"subtotals", "subtotalsBalanceDue"}))
	}

	return prepareDataPairs(data, "subtotals")
}

// SubtotalsBalance builds the single balance-due row used by designs
// that show the balance apart from the totals block.
func SubtotalsBalance(c *Context) []any {
	inv := c.Invoice
	if inv.IsDeliveryNote.Bool() {
		return []any{[]any{}}
	}

	label := c.Labels.Label("balance_due")
	if inv.IsPartial() {
		label = c.Labels.Label("partial_due")
	} else if inv.IsQuote.Bool() || inv.BalanceAmount.IsNegative() {
		label = c.Labels.Label("total")
	}
	return []any{subtotalRow(label, c.Money.Format(inv.BalanceAmount),
		[]any{"subtotalsLabel", "subtotalsBalanceDueLabel"},
		[]any{"subtotals", "subtotalsBalanceDue"})}
}

// NotesAndTerms builds the public notes and terms block.
func NotesAndTerms(c *Context) []any {
	inv := c.Invoice
	var data []any

	if inv.PublicNotes != "" {
		data = append(data,
			map[string]any{"stack": []any{
				map[string]any{"text": inv.PublicNotes, "style": []any{"notes"}},
			}},
			map[string]any{"text": " "},
		)
	}
	if inv.Terms != "" {
		data = append(data,
			map[string]any{"text": c.Labels.Label("terms"), "style": []any{"termsLabel"}},
			map[string]any{"stack": []any{
				map[string]any{"text": inv.Terms, "style": []any{"terms"}},
			}},
		)
	}
	return prepareDataList(data, "notesAndTerms")
}

// InvoiceDocuments builds the embedded attachment grid, three images
// per row. Returns an empty list when embedding is off or no document
// carries image data.
func InvoiceDocuments(c *Context) any {
	inv := c.Invoice
	if !c.Account().InvoiceEmbedDocuments.Bool() {
		return []any{}
	}

	var stack []any
	var row map[string]any
	count := 0

	addDoc := func(doc *invoice.Document) {
		if doc.Base64 == "" {
			return
		}
		if count%3 == 0 {
			row = map[string]any{"columns": []any{}}
			stack = append(stack, row)
		}
		row["columns"] = append(row["columns"].([]any), map[string]any{
			"stack": []any{map[string]any{
				"image": doc.Base64,
				"style": "invoiceDocument",
				"fit":   []any{150, 150},
			}},
			"width": 175,
		})
		count++
	}

	for i := range inv.Documents {
		addDoc(&inv.Documents[i])
	}
	for i := range inv.Expenses {
		for j := range inv.Expenses[i].Documents {
			addDoc(&inv.Expenses[i].Documents[j])
		}
	}

	if len(stack) == 0 {
		return []any{}
	}
	return map[string]any{"stack": stack}
}

// Signature builds the client signature block, or an empty string when
// no signed invitation exists.
func Signature(c *Context) any {
	invitation := c.Invoice.SignedInvitation()
	if invitation == nil {
		return ""
	}
	return map[string]any{
		"stack": []any{
			map[string]any{
				"image":  SignatureImage(c),
				"margin": []any{200, 10, 0, 0},
			},
			map[string]any{
				"canvas": []any{map[string]any{
					"type":      "line",
					"x1":        200,
					"y1":        -25,
					"x2":        504,
					"y2":        -25,
					"lineWidth": 1,
					"lineColor": "#888888",
				}},
			},
			map[string]any{
				"text":   []any{c.Labels.Label("date"), ": ", SignatureDate(c)},
				"margin": []any{200, -20, 0, 0},
			},
		},
	}
}

// SignatureImage returns the signature as a data URI, or a blank image.
func SignatureImage(c *Context) string {
	if invitation := c.Invoice.SignedInvitation(); invitation != nil {
		return invitation.SignatureBase64
	}
	return blankImage
}

// SignatureDate returns the date the signature was captured.
func SignatureDate(c *Context) string {
	if invitation := c.Invoice.SignedInvitation(); invitation != nil {
		return formatDate(invitation.SignatureDate)
	}
	return ""
}

// InvoiceFooterText returns the footer, truncated on legacy designs
// without the invoice settings plan gate.
func InvoiceFooterText(c *Context) string {
	inv := c.Invoice
	footer := inv.Footer
	if !inv.Features.InvoiceSettings && inv.DesignID == 3 {
		if footer == "" {
			return " "
		}
		if len(footer) > 200 {
			return footer[:200]
		}
		return footer
	}
	if footer == "" {
		return " "
	}
	return footer
}
