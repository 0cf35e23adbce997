package printing

import (
	"strings"

	"go.uber.org/zap"

	"github.com/GBR-422777/invoiceninja/internal/domain/invoice"
)

// fieldValue is the outcome of resolving one detail field: display
// value, optional label, and the base style tag for theming.
type fieldValue struct {
	label    string
	hasLabel bool
	value    string
}

type fieldFunc func(c *Context) (fieldValue, bool)

// deliveryNoteSkipped lists detail fields that never render on
// delivery notes.
var deliveryNoteSkipped = map[string]bool{
	"invoice.due_date":    true,
	"invoice.balance_due": true,
	"invoice.partial_due": true,
}

// fieldRegistry maps field paths to their business rules. Each entry
// is independently testable; RenderField only adds the shared
// label/style handling.
var fieldRegistry = map[string]fieldFunc{
	"client.client_name": func(c *Context) (fieldValue, bool) {
		name := c.Client().DisplayName(c.Contact())
		if name == "" {
			name = " "
		}
		return fieldValue{value: name}, true
	},
	"client.contact_name": func(c *Context) (fieldValue, bool) {
		contact := c.Contact()
		if contact == nil || (contact.FirstName == "" && contact.LastName == "") {
			return fieldValue{}, false
		}
		return fieldValue{value: strings.TrimSpace(contact.FirstName + " " + contact.LastName)}, true
	},
	"client.id_number": func(c *Context) (fieldValue, bool) {
		return labeled(c, "id_number", c.Client().IDNumber)
	},
	"client.vat_number": func(c *Context) (fieldValue, bool) {
		return labeled(c, "vat_number", c.Client().VATNumber)
	},
	"client.address1": func(c *Context) (fieldValue, bool) {
		client := c.Client()
		if shipping(c.Invoice) {
			return fieldValue{value: client.ShippingAddress1}, client.ShippingAddress1 != ""
		}
		return fieldValue{value: client.Address1}, client.Address1 != ""
	},
	"client.address2": func(c *Context) (fieldValue, bool) {
		client := c.Client()
		if shipping(c.Invoice) {
			return fieldValue{value: client.ShippingAddress2}, client.ShippingAddress2 != ""
		}
		return fieldValue{value: client.Address2}, client.Address2 != ""
	},
	"client.city_state_postal": func(c *Context) (fieldValue, bool) {
		client := c.Client()
		var v string
		if shipping(c.Invoice) {
			if client.ShippingCity != "" || client.ShippingState != "" || client.ShippingPostalCode != "" {
				swap := client.ShippingCountry != nil && client.ShippingCountry.SwapPostalCode.Bool()
				v = FormatAddress(client.ShippingCity, client.ShippingState, client.ShippingPostalCode, swap)
			}
		} else if client.City != "" || client.State != "" || client.PostalCode != "" {
			swap := client.Country != nil && client.Country.SwapPostalCode.Bool()
			v = FormatAddress(client.City, client.State, client.PostalCode, swap)
		}
		return fieldValue{value: v}, v != ""
	},
	"client.postal_city_state": func(c *Context) (fieldValue, bool) {
		client := c.Client()
		var v string
		if shipping(c.Invoice) {
			if client.ShippingCity != "" || client.ShippingState != "" || client.ShippingPostalCode != "" {
				v = FormatAddress(client.ShippingCity, client.ShippingState, client.ShippingPostalCode, true)
			}
		} else if client.City != "" || client.State != "" || client.PostalCode != "" {
			v = FormatAddress(client.City, client.State, client.PostalCode, true)
		}
		return fieldValue{value: v}, v != ""
	},
	"client.country": func(c *Context) (fieldValue, bool) {
		client := c.Client()
		country := client.Country
		if shipping(c.Invoice) {
			country = client.ShippingCountry
		}
		if country == nil || country.Name == "" {
			return fieldValue{}, false
		}
		return fieldValue{value: country.Name}, true
	},
	"client.website": func(c *Context) (fieldValue, bool) {
		return fieldValue{value: c.Client().Website}, c.Client().Website != ""
	},
	"client.email": func(c *Context) (fieldValue, bool) {
		contact := c.Contact()
		if contact == nil {
			return fieldValue{}, false
		}
		// skip when the email doubles as the client name
		if contact.Email == c.Client().DisplayName(contact) {
			return fieldValue{}, false
		}
		return fieldValue{value: contact.Email}, contact.Email != ""
	},
	"client.phone": func(c *Context) (fieldValue, bool) {
		contact := c.Contact()
		if contact == nil || contact.Phone == "" {
			return fieldValue{}, false
		}
		return fieldValue{value: contact.Phone}, true
	},
	"client.work_phone": func(c *Context) (fieldValue, bool) {
		return fieldValue{value: c.Client().WorkPhone}, c.Client().WorkPhone != ""
	},
	"client.custom_value1": func(c *Context) (fieldValue, bool) {
		return custom(c.Account().CustomFields.Client1, c.Client().CustomValue1)
	},
	"client.custom_value2": func(c *Context) (fieldValue, bool) {
		return custom(c.Account().CustomFields.Client2, c.Client().CustomValue2)
	},
	"contact.custom_value1": func(c *Context) (fieldValue, bool) {
		contact := c.Contact()
		if contact == nil {
			return fieldValue{}, false
		}
		return custom(c.Account().CustomFields.Contact1, contact.CustomValue1)
	},
	"contact.custom_value2": func(c *Context) (fieldValue, bool) {
		contact := c.Contact()
		if contact == nil {
			return fieldValue{}, false
		}
		return custom(c.Account().CustomFields.Contact2, contact.CustomValue2)
	},

	"account.company_name": func(c *Context) (fieldValue, bool) {
		return fieldValue{value: c.Account().Name + " "}, true
	},
	"account.id_number": func(c *Context) (fieldValue, bool) {
		return labeled(c, "id_number", c.Account().IDNumber)
	},
	"account.vat_number": func(c *Context) (fieldValue, bool) {
		return labeled(c, "vat_number", c.Account().VATNumber)
	},
	"account.website": func(c *Context) (fieldValue, bool) {
		return fieldValue{value: c.Account().Website}, c.Account().Website != ""
	},
	"account.email": func(c *Context) (fieldValue, bool) {
		return fieldValue{value: c.Account().WorkEmail}, c.Account().WorkEmail != ""
	},
	"account.phone": func(c *Context) (fieldValue, bool) {
		return fieldValue{value: c.Account().WorkPhone}, c.Account().WorkPhone != ""
	},
	"account.address1": func(c *Context) (fieldValue, bool) {
		return fieldValue{value: c.Account().Address1}, c.Account().Address1 != ""
	},
	"account.address2": func(c *Context) (fieldValue, bool) {
		return fieldValue{value: c.Account().Address2}, c.Account().Address2 != ""
	},
	"account.city_state_postal": func(c *Context) (fieldValue, bool) {
		account := c.Account()
		if account.City == "" && account.State == "" && account.PostalCode == "" {
			return fieldValue{}, false
		}
		swap := account.Country != nil && account.Country.SwapPostalCode.Bool()
		return fieldValue{value: FormatAddress(account.City, account.State, account.PostalCode, swap)}, true
	},
	"account.postal_city_state": func(c *Context) (fieldValue, bool) {
		account := c.Account()
		if account.City == "" && account.State == "" && account.PostalCode == "" {
			return fieldValue{}, false
		}
		return fieldValue{value: FormatAddress(account.City, account.State, account.PostalCode, true)}, true
	},
	"account.country": func(c *Context) (fieldValue, bool) {
		if c.Account().Country == nil {
			return fieldValue{}, false
		}
		return fieldValue{value: c.Account().Country.Name}, c.Account().Country.Name != ""
	},
	"account.custom_value1": func(c *Context) (fieldValue, bool) {
		account := c.Account()
		if account.CustomFields.Account1 == "" || account.CustomValue1 == "" {
			return fieldValue{}, false
		}
		return fieldValue{label: account.CustomFields.Account1, hasLabel: true, value: account.CustomValue1}, true
	},
	"account.custom_value2": func(c *Context) (fieldValue, bool) {
		account := c.Account()
		if account.CustomFields.Account2 == "" || account.CustomValue2 == "" {
			return fieldValue{}, false
		}
		return fieldValue{label: account.CustomFields.Account2, hasLabel: true, value: account.CustomValue2}, true
	},

	"invoice.invoice_number": func(c *Context) (fieldValue, bool) {
		inv := c.Invoice
		if inv.IsStatement.Bool() {
			return fieldValue{}, false
		}
		label := "invoice_number"
		if inv.IsQuote.Bool() {
			label = "quote_number"
		} else if inv.BalanceAmount.IsNegative() {
			label = "credit_number"
		}
		return fieldValue{label: c.Labels.Label(label), hasLabel: true, value: inv.InvoiceNumber}, inv.InvoiceNumber != ""
	},
	"invoice.po_number": func(c *Context) (fieldValue, bool) {
		return fieldValue{value: c.Invoice.PONumber}, c.Invoice.PONumber != ""
	},
	"invoice.invoice_date": func(c *Context) (fieldValue, bool) {
		inv := c.Invoice
		label := "invoice_date"
		switch {
		case inv.IsStatement.Bool():
			label = "statement_date"
		case inv.IsQuote.Bool():
			label = "quote_date"
		case inv.BalanceAmount.IsNegative():
			label = "credit_date"
		}
		return fieldValue{label: c.Labels.Label(label), hasLabel: true, value: inv.InvoiceDate}, inv.InvoiceDate != ""
	},
	"invoice.due_date": func(c *Context) (fieldValue, bool) {
		inv := c.Invoice
		label := "due_date"
		if inv.IsQuote.Bool() {
			label = "valid_until"
		}
		value := inv.DueDate
		if inv.PartialDueDate != "" {
			value = inv.PartialDueDate
		}
		return fieldValue{label: c.Labels.Label(label), hasLabel: true, value: value}, value != ""
	},
	"invoice.custom_text_value1": func(c *Context) (fieldValue, bool) {
		inv := c.Invoice
		if inv.CustomTextValue1 == "" || c.Account().CustomFields.InvoiceText1 == "" {
			return fieldValue{}, false
		}
		label := invoice.CustomLabel(c.Account().CustomFields.InvoiceText1)
		return fieldValue{label: label, hasLabel: true, value: inv.CustomTextValue1}, true
	},
	"invoice.custom_text_value2": func(c *Context) (fieldValue, bool) {
		inv := c.Invoice
		if inv.CustomTextValue2 == "" || c.Account().CustomFields.InvoiceText2 == "" {
			return fieldValue{}, false
		}
		label := invoice.CustomLabel(c.Account().CustomFields.InvoiceText2)
		return fieldValue{label: label, hasLabel: true, value: inv.CustomTextValue2}, true
	},
	"invoice.balance_due": func(c *Context) (fieldValue, bool) {
		inv := c.Invoice
		label := "balance_due"
		if inv.IsQuote.Bool() || inv.BalanceAmount.IsNegative() {
			label = "total"
		}
		return fieldValue{label: c.Labels.Label(label), hasLabel: true, value: c.Money.Format(inv.TotalAmount)}, true
	},
	"invoice.partial_due": func(c *Context) (fieldValue, bool) {
		inv := c.Invoice
		if !inv.IsPartial() {
			return fieldValue{}, false
		}
		return fieldValue{label: c.Labels.Label("partial_due"), hasLabel: true, value: c.Money.Format(inv.BalanceAmount)}, true
	},
	"invoice.invoice_total": func(c *Context) (fieldValue, bool) {
		inv := c.Invoice
		if inv.IsStatement.Bool() || inv.IsQuote.Bool() || inv.BalanceAmount.IsNegative() {
			return fieldValue{}, false
		}
		return fieldValue{value: c.Money.Format(inv.Amount.Decimal)}, true
	},
	"invoice.outstanding": func(c *Context) (fieldValue, bool) {
		inv := c.Invoice
		if inv.IsStatement.Bool() || inv.IsQuote.Bool() {
			return fieldValue{}, false
		}
		return fieldValue{value: c.Money.Format(c.Client().Balance.Decimal)}, true
	},

	".blank": func(c *Context) (fieldValue, bool) {
		return fieldValue{value: " "}, true
	},
}

// labeled builds a field value. The dictionary label is attached only
// when the label set carries the field's _orig marker.
func labeled(c *Context, labelField, value string) (fieldValue, bool) {
	if value == "" {
		return fieldValue{}, false
	}
	fv := fieldValue{value: value}
	if c.Labels.Has(labelField + "_orig") {
		fv.label = c.Labels.Label(labelField)
		fv.hasLabel = true
	}
	return fv, true
}

// custom builds a field value for a custom field slot; hidden unless
// both the account label and the value are set.
func custom(labelCfg, value string) (fieldValue, bool) {
	if labelCfg == "" || value == "" {
		return fieldValue{}, false
	}
	return fieldValue{label: invoice.CustomLabel(labelCfg), hasLabel: true, value: value}, true
}

// shipping reports whether delivery notes should prefer the client's
// shipping address.
func shipping(inv *invoice.Derived) bool {
	return inv.IsDeliveryNote.Bool() && inv.Client != nil && inv.Client.ShippingAddress1 != ""
}

// RenderField resolves one detail field into a list node, or a
// label/value pair when twoColumn is set. It returns nil when the
// field has nothing to show.
func RenderField(c *Context, field string, twoColumn bool) any {
	if c.Invoice.IsDeliveryNote.Bool() && deliveryNoteSkipped[field] {
		return nil
	}
	if c.Client() == nil {
		return nil
	}

	fn, ok := fieldRegistry[field]
	if !ok {
		c.log.Debug("unknown detail field", zap.String("field", field))
		return nil
	}
	fv, ok := fn(c)
	if !ok || fv.value == "" {
		return nil
	}

	shortField := field
	if i := lastDot(field); i >= 0 {
		shortField = field[i+1:]
	}
	// company_name keeps the historic accountName style tag
	if shortField == "company_name" {
		shortField = "account_name"
	}
	style := snakeToCamel(shortField)

	if twoColumn {
		label := fv.label
		if !fv.hasLabel && c.Labels.Has(shortField) {
			label = c.Labels.Label(shortField)
		}
		return []any{
			map[string]any{"text": label, "style": []any{style + "Label"}},
			map[string]any{"text": fv.value, "style": []any{style}},
		}
	}

	value := fv.value
	if fv.hasLabel && fv.label != "" {
		value = fv.label + ": " + value
	}
	return map[string]any{"text": value, "style": []any{style}}
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}
