package printing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GBR-422777/invoiceninja/internal/domain/invoice"
)

const testDesign = `{
	"content": [
		{"text": "$entityTypeUC", "style": ["header"]},
		{"columns": ["$accountDetails", "$accountAddress"]},
		{"text": "$invoiceNumber"},
		{
			"style": "invoiceLineItemsTable",
			"table": {
				"headerRows": 1,
				"widths": "$invoiceLineItemColumns",
				"body": "$invoiceLineItems"
			},
			"layout": {
				"hLineWidth": "$notFirst:.5",
				"vLineWidth": "$none",
				"paddingTop": "$amount:14"
			}
		},
		{"table": {"widths": ["*", "40%"], "body": "$subtotals"}},
		{"text": "$notesAndTerms"}
	],
	"footer": {"columns": [{"text": "$invoiceFooter"}]},
	"defaultStyle": {"fontSize": "$fontSize"},
	"styles": {"header": {"fontSize": "$fontSizeLargest", "color": "$primaryColor:#403d3d"}}
}`

func resolveTest(t *testing.T, inv *invoice.Invoice, design string) map[string]any {
	t.Helper()
	c := testContext(inv)
	tree, err := Resolve(c, design)
	require.NoError(t, err)
	return tree
}

func TestResolveFragments(t *testing.T) {
	tree := resolveTest(t, testInvoice(), testDesign)
	content := tree["content"].([]any)

	assert.Equal(t, "INVOICE", content[0].(map[string]any)["text"])
	assert.Equal(t, "0001", content[2].(map[string]any)["text"])

	table := content[3].(map[string]any)["table"].(map[string]any)
	body := table["body"].([]any)
	require.NotEmpty(t, body)
	assert.Len(t, table["widths"], len(body[0].([]any)))
}

func TestResolveScalarFragmentsKeepTheirType(t *testing.T) {
	tree := resolveTest(t, testInvoice(), testDesign)
	assert.Equal(t, 9, tree["defaultStyle"].(map[string]any)["fontSize"])

	styles := tree["styles"].(map[string]any)["header"].(map[string]any)
	assert.Equal(t, 11, styles["fontSize"])
}

func TestResolveColorTokens(t *testing.T) {
	tree := resolveTest(t, testInvoice(), testDesign)
	styles := tree["styles"].(map[string]any)["header"].(map[string]any)
	assert.Equal(t, "#403d3d", styles["color"])

	inv := testInvoice()
	c := testContext(inv)
	c.Options.PrimaryColor = "#336699"
	tree, err := Resolve(c, testDesign)
	require.NoError(t, err)
	styles = tree["styles"].(map[string]any)["header"].(map[string]any)
	assert.Equal(t, "#336699", styles["color"])
}

func TestResolveBorderRules(t *testing.T) {
	tree := resolveTest(t, testInvoice(), testDesign)
	layout := tree["content"].([]any)[3].(map[string]any)["layout"].(map[string]any)

	rule, ok := layout["hLineWidth"].(BorderRule)
	require.True(t, ok)
	assert.Equal(t, RuleNotFirst, rule.Kind)
	assert.Equal(t, 0.0, rule.Apply(0, 5))
	assert.Equal(t, 0.5, rule.Apply(1, 5))

	rule = layout["vLineWidth"].(BorderRule)
	assert.Equal(t, RuleNone, rule.Kind)

	rule = layout["paddingTop"].(BorderRule)
	assert.Equal(t, 14.0, rule.Apply(3, 5))

	// rules re-serialize as their original tokens
	data, err := json.Marshal(layout["hLineWidth"])
	require.NoError(t, err)
	assert.Equal(t, `"$notFirst:.5"`, string(data))
}

func TestResolveLabelPlaceholders(t *testing.T) {
	design := `{"content": [
		{"text": "$invoiceNumberLabel"},
		{"text": "$dueDateLabelUC"},
		{"text": "$balanceDueLabel:"},
		{"text": "$poNumberLabel?"}
	]}`

	tree := resolveTest(t, testInvoice(), design)
	content := tree["content"].([]any)
	assert.Equal(t, "Invoice Number", content[0].(map[string]any)["text"])
	assert.Equal(t, "DUE DATE", content[1].(map[string]any)["text"])
	assert.Equal(t, "Balance Due:", content[2].(map[string]any)["text"])
	// the optional marker blanks labels without a backing value
	assert.Equal(t, " ", content[3].(map[string]any)["text"])
}

func TestResolveLabelRemapsForQuotes(t *testing.T) {
	design := `{"content": [
		{"text": "$invoiceNumberLabel"},
		{"text": "$dueDateLabel"}
	]}`

	inv := testInvoice()
	inv.IsQuote = true
	tree := resolveTest(t, inv, design)
	content := tree["content"].([]any)
	assert.Equal(t, "Quote Number", content[0].(map[string]any)["text"])
	assert.Equal(t, "Valid Until", content[1].(map[string]any)["text"])
}

func TestResolveLabelRemapsForPartial(t *testing.T) {
	design := `{"content": [{"text": "$balanceDueLabel"}]}`

	inv := testInvoice()
	inv.Partial = num("40")
	tree := resolveTest(t, inv, design)
	assert.Equal(t, "Partial Due", tree["content"].([]any)[0].(map[string]any)["text"])
}

func TestResolveValuePlaceholders(t *testing.T) {
	design := `{"content": [
		{"text": "PO: $poNumber"},
		{"text": "$client.balance"},
		{"text": "Page $pageNumber of $pageCount"}
	]}`

	inv := testInvoice()
	inv.PONumber = "PO-77"
	inv.Client.Balance = num("250")
	tree := resolveTest(t, inv, design)
	content := tree["content"].([]any)

	assert.Equal(t, "PO: PO-77", content[0].(map[string]any)["text"])
	assert.Equal(t, "$250.00", content[1].(map[string]any)["text"])
	// page tokens survive for renderers that know the page count
	assert.Equal(t, "Page $pageNumber of $pageCount", content[2].(map[string]any)["text"])
}

func TestResolveConditionalWidths(t *testing.T) {
	design := `{"content": [{"table": {"widths": ["*", "$quantityWidth", "$taxWidth", "14%"], "body": []}}]}`

	tree := resolveTest(t, testInvoice(), design)
	widths := tree["content"].([]any)[0].(map[string]any)["table"].(map[string]any)["widths"].([]any)
	// quantity shown, taxes hidden
	assert.Equal(t, []any{"*", "14%", "14%"}, widths)
}

func TestResolveTaskTableDuplication(t *testing.T) {
	inv := testInvoice()
	inv.Items = append(inv.Items, invoice.InvoiceItem{
		ProductKey: "Design work",
		Cost:       num("80"),
		Qty:        num("1"),
		TypeID:     invoice.ItemTypeTask,
	})

	tree := resolveTest(t, inv, testDesign)
	content := tree["content"].([]any)
	// one element longer than the source design
	assert.Len(t, content, 7)

	products := content[3].(map[string]any)["table"].(map[string]any)["body"].([]any)
	tasks := content[4].(map[string]any)["table"].(map[string]any)["body"].([]any)
	assert.Equal(t, "Widget", cellTexts(t, products[1])[0])
	assert.Equal(t, "Design work", cellTexts(t, tasks[1])[0])
}

func TestResolveTaskOnlyInvoiceRetargetsTable(t *testing.T) {
	inv := testInvoice()
	inv.Items = []invoice.InvoiceItem{{
		ProductKey: "Design work",
		Cost:       num("80"),
		Qty:        num("1"),
		TypeID:     invoice.ItemTypeTask,
	}}

	tree := resolveTest(t, inv, testDesign)
	content := tree["content"].([]any)
	assert.Len(t, content, 6)

	body := content[3].(map[string]any)["table"].(map[string]any)["body"].([]any)
	assert.Equal(t, "Design work", cellTexts(t, body[1])[0])
	assert.Equal(t, "Service", cellTexts(t, body[0])[0])
}

func TestResolveStatementSwap(t *testing.T) {
	tree := resolveTest(t, statementInvoice(), testDesign)
	content := tree["content"].([]any)
	// the line items table and the totals block collapse into one stack
	assert.Len(t, content, 5)

	stack, ok := content[3].(map[string]any)["stack"].([]any)
	require.True(t, ok, "expected the statement stack at the table position")
	assert.NotEmpty(t, stack)
}

func TestResolveMalformedDesign(t *testing.T) {
	c := testContext(testInvoice())
	_, err := Resolve(c, "{not json")
	require.Error(t, err)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeMalformedTemplate, renderErr.Code)
}

func TestResolveDoesNotMutateInvoice(t *testing.T) {
	inv := testInvoice()
	before, err := json.Marshal(inv)
	require.NoError(t, err)

	resolveTest(t, inv, testDesign)

	after, err := json.Marshal(inv)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestResolveOutputSerializes(t *testing.T) {
	tree := resolveTest(t, testInvoice(), testDesign)
	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
	// no unresolved fragment nodes survive
	assert.NotContains(t, string(data), `"$invoiceLineItems"`)
}
