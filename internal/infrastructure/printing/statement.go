package printing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GBR-422777/invoiceninja/internal/domain/invoice"
)

// layoutRule parses a layout token so fragment-built tables carry the
// same BorderRule values the resolver produces for design-authored
// tokens.
func layoutRule(token string) any {
	if rule, ok := ParseBorderRule(token); ok {
		return rule
	}
	return token
}

// statementTable returns the scaffold every statement sub-table sits
// in: zebra lines, no vertical rules, generous cell padding.
func statementTable(widths []any, body []any) map[string]any {
	return map[string]any{
		"style":  "invoiceLineItemsTable",
		"margin": []any{0, 20, 0, 16},
		"table": map[string]any{
			"headerRows": 1,
			"widths":     widths,
			"body":       body,
		},
		"layout": map[string]any{
			"hLineWidth":    layoutRule("$notFirst:.5"),
			"vLineWidth":    layoutRule("$none"),
			"hLineColor":    "#D8D8D8",
			"paddingLeft":   layoutRule("$amount:8"),
			"paddingRight":  layoutRule("$amount:8"),
			"paddingTop":    layoutRule("$amount:14"),
			"paddingBottom": layoutRule("$amount:14"),
		},
	}
}

// statementSummary returns the right-aligned one-row summary shown
// under a statement sub-table.
func statementSummary(label, amount string) map[string]any {
	return map[string]any{
		"columns": []any{
			map[string]any{"text": " ", "width": "60%"},
			map[string]any{
				"table": map[string]any{
					"widths": []any{"*", "40%"},
					"body": []any{[]any{
						map[string]any{"text": label, "style": []any{"subtotalsLabel", "subtotalsBalanceDueLabel"}},
						map[string]any{"text": amount, "style": []any{"subtotals", "subtotalsBalanceDue", "noWrap"}},
					}},
				},
				"margin": []any{0, 0, 0, 16},
				"layout": map[string]any{
					"hLineWidth":    layoutRule("$none"),
					"vLineWidth":    layoutRule("$none"),
					"paddingLeft":   layoutRule("$amount:34"),
					"paddingRight":  layoutRule("$amount:8"),
					"paddingTop":    layoutRule("$amount:4"),
					"paddingBottom": layoutRule("$amount:4"),
				},
			},
		},
	}
}

// StatementDetails builds the statement body: the open-invoice table
// and balance, then payments and the amount paid when present, then
// the aging buckets when present. Returns nil for non-statements.
func StatementDetails(c *Context) any {
	inv := c.Invoice
	if !inv.IsStatement.Bool() {
		return nil
	}

	hasPayments := false
	hasAging := false
	paymentTotal := decimal.Zero
	for i := range inv.Items {
		item := &inv.Items[i]
		switch item.TypeID {
		case invoice.ItemTypePayment:
			paymentTotal = paymentTotal.Add(item.Cost.Decimal)
			hasPayments = true
		case invoice.ItemTypeAging:
			hasAging = true
		}
	}

	stack := []any{
		statementTable(
			[]any{"22%", "22%", "22%", "17%", "17%"},
			prepareDataTable(statementInvoices(c), "invoiceItems"),
		),
		statementSummary(c.Labels.Label("balance_due"), c.Money.Format(inv.BalanceAmount)),
	}

	if hasPayments {
		stack = append(stack,
			statementTable(
				[]any{"22%", "22%", "39%", "17%"},
				prepareDataTable(statementPayments(c), "invoiceItems"),
			),
			statementSummary(c.Labels.Label("amount_paid"), c.Money.Format(paymentTotal)),
		)
	}

	if hasAging {
		stack = append(stack, statementTable(
			[]any{"20%", "20%", "20%", "20%", "20%"},
			prepareDataTable(statementAging(c), "invoiceItems"),
		))
	}

	return map[string]any{"stack": stack}
}

func statementHeaderCell(c *Context, label string, styles ...any) map[string]any {
	return map[string]any{
		"text":  c.Labels.Label(label),
		"style": append([]any{"tableHeader"}, styles...),
	}
}

// statementInvoices lists the statement's open invoices: number,
// dates stored in the custom value slots, total stored in the notes,
// balance in the cost.
func statementInvoices(c *Context) [][]any {
	grid := [][]any{{
		statementHeaderCell(c, "invoice_number", "itemTableHeader", "firstColumn"),
		statementHeaderCell(c, "invoice_date", "invoiceDateTableHeader"),
		statementHeaderCell(c, "due_date", "dueDateTableHeader"),
		statementHeaderCell(c, "total", "totalTableHeader"),
		statementHeaderCell(c, "balance", "balanceTableHeader", "lastColumn"),
	}}

	counter := 0
	for i := range c.Invoice.Items {
		item := &c.Invoice.Items[i]
		if item.TypeID != invoice.ItemTypeProduct {
			continue
		}
		rowStyle := "even"
		if counter%2 == 0 {
			rowStyle = "odd"
		}
		counter++
		grid = append(grid, []any{
			map[string]any{"text": item.ProductKey, "style": []any{"invoiceNumber", "productKey", rowStyle, "firstColumn"}},
			map[string]any{"text": formatDate(item.CustomValue1), "style": []any{"invoiceDate", rowStyle}},
			map[string]any{"text": formatDate(item.CustomValue2), "style": []any{"dueDate", rowStyle}},
			map[string]any{"text": c.Money.Format(invoice.NumericFromString(item.Notes).Decimal), "style": []any{"subtotals", rowStyle}},
			map[string]any{"text": c.Money.Format(item.Cost.Decimal), "style": []any{"lineTotal", rowStyle, "lastColumn"}},
		})
	}
	return grid
}

// statementPayments lists payments: number, date, method, amount.
func statementPayments(c *Context) [][]any {
	grid := [][]any{{
		statementHeaderCell(c, "invoice_number", "itemTableHeader", "firstColumn"),
		statementHeaderCell(c, "payment_date", "invoiceDateTableHeader"),
		statementHeaderCell(c, "method", "dueDateTableHeader"),
		statementHeaderCell(c, "amount", "balanceTableHeader", "lastColumn"),
	}}

	counter := 0
	for i := range c.Invoice.Items {
		item := &c.Invoice.Items[i]
		if item.TypeID != invoice.ItemTypePayment {
			continue
		}
		rowStyle := "even"
		if counter%2 == 0 {
			rowStyle = "odd"
		}
		counter++
		method := item.CustomValue2
		if method == "" {
			method = " "
		}
		grid = append(grid, []any{
			map[string]any{"text": item.ProductKey, "style": []any{"invoiceNumber", "productKey", rowStyle, "firstColumn"}},
			map[string]any{"text": formatDate(item.CustomValue1), "style": []any{"invoiceDate", rowStyle}},
			map[string]any{"text": method, "style": []any{"dueDate", rowStyle}},
			map[string]any{"text": c.Money.Format(item.Cost.Decimal), "style": []any{"lineTotal", rowStyle, "lastColumn"}},
		})
	}
	return grid
}

// statementAging lists the aging buckets, one amount per column.
func statementAging(c *Context) [][]any {
	grid := [][]any{{
		map[string]any{"text": "0 - 30", "style": []any{"tableHeader", "alignRight", "firstColumn"}},
		map[string]any{"text": "30 - 60", "style": []any{"tableHeader", "alignRight"}},
		map[string]any{"text": "60 - 90", "style": []any{"tableHeader", "alignRight"}},
		map[string]any{"text": "90 - 120", "style": []any{"tableHeader", "alignRight"}},
		map[string]any{"text": "120+", "style": []any{"tableHeader", "alignRight", "lastColumn"}},
	}}

	money := func(s string) string {
		return c.Money.Format(invoice.NumericFromString(s).Decimal)
	}
	for i := range c.Invoice.Items {
		item := &c.Invoice.Items[i]
		if item.TypeID != invoice.ItemTypeAging {
			continue
		}
		grid = append(grid, []any{
			map[string]any{"text": money(item.ProductKey), "style": []any{"subtotals", "odd", "firstColumn"}},
			map[string]any{"text": money(item.Notes), "style": []any{"subtotals", "odd"}},
			map[string]any{"text": money(item.CustomValue1), "style": []any{"subtotals", "odd"}},
			map[string]any{"text": money(item.CustomValue2), "style": []any{"subtotals", "odd"}},
			map[string]any{"text": c.Money.Format(item.Cost.Decimal), "style": []any{"subtotals", "odd", "lastColumn"}},
		})
	}
	return grid
}

// formatDate renders an ISO date for display. Zero dates and anything
// unparseable stay out of the output.
func formatDate(s string) string {
	if s == "" || s == "0000-00-00" {
		return " "
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		// datetime values keep their date part
		if t, err = time.Parse("2006-01-02 15:04:05", s); err != nil {
			return s
		}
	}
	return t.Format("Jan 2, 2006")
}
