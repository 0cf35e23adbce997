package invoice

import (
	"github.com/GBR-422777/invoiceninja/internal/domain/shared"
)

// InvoiceItem is one row of an invoice: a product, a task, or for
// statements a payment or aging-bucket record. Items are read-only
// inputs to the amount calculator.
type InvoiceItem struct {
	ProductKey   string   `json:"product_key"`
	Notes        string   `json:"notes"`
	Cost         Numeric  `json:"cost"`
	Qty          Numeric  `json:"qty"`
	Discount     Numeric  `json:"discount"`
	TaxName1     string   `json:"tax_name1"`
	TaxRate1     Numeric  `json:"tax_rate1"`
	TaxName2     string   `json:"tax_name2"`
	TaxRate2     Numeric  `json:"tax_rate2"`
	CustomValue1 string   `json:"custom_value1"`
	CustomValue2 string   `json:"custom_value2"`
	TypeID       ItemType `json:"invoice_item_type_id"`
}

// IsBlank reports whether the row carries no content at all. Blank rows
// are excluded from the task/standard classification and at most one is
// shown in the rendered table.
func (it *InvoiceItem) IsBlank() bool {
	return it.Notes == "" && it.ProductKey == "" && it.Cost.IsZero()
}

// Features mirrors the plan gates that affect rendering.
type Features struct {
	InvoiceSettings        bool `json:"invoice_settings"`
	CustomizeInvoiceDesign bool `json:"customize_invoice_design"`
	RemoveCreatedBy        bool `json:"remove_created_by"`
}

// Document is an attachment that may be embedded into the rendered
// invoice as an inline image.
type Document struct {
	PublicID string `json:"public_id"`
	Name     string `json:"name"`
	Base64   string `json:"base64"`
}

// Expense carries documents attached through an expense record.
type Expense struct {
	Documents []Document `json:"documents"`
}

// Invitation holds a client signature captured for the invoice.
type Invitation struct {
	SignatureBase64 string `json:"signature_base64"`
	SignatureDate   string `json:"signature_date"`
}

// Invoice is the raw invoice record as loaded by the caller. It doubles
// as the quote, credit note, delivery note and statement record,
// discriminated by the Is* flags and the sign of the computed balance.
type Invoice struct {
	InvoiceNumber  string `json:"invoice_number"`
	PONumber       string `json:"po_number"`
	InvoiceDate    string `json:"invoice_date"`
	DueDate        string `json:"due_date"`
	PartialDueDate string `json:"partial_due_date"`

	Items []InvoiceItem `json:"invoice_items"`

	Discount         Numeric `json:"discount"`
	IsAmountDiscount Flag    `json:"is_amount_discount"`

	CustomValue1     Numeric `json:"custom_value1"`
	CustomValue2     Numeric `json:"custom_value2"`
	CustomTaxes1     Flag    `json:"custom_taxes1"`
	CustomTaxes2     Flag    `json:"custom_taxes2"`
	CustomTextValue1 string  `json:"custom_text_value1"`
	CustomTextValue2 string  `json:"custom_text_value2"`

	TaxName1 string  `json:"tax_name1"`
	TaxRate1 Numeric `json:"tax_rate1"`
	TaxName2 string  `json:"tax_name2"`
	TaxRate2 Numeric `json:"tax_rate2"`

	// Amount and Balance reflect previously recorded state; the freshly
	// computed total is re-based against their delta so that edits to a
	// partially paid invoice preserve applied payments.
	Amount  Numeric `json:"amount"`
	Balance Numeric `json:"balance"`
	Partial Numeric `json:"partial"`

	PublicNotes string `json:"public_notes"`
	Terms       string `json:"terms"`
	Footer      string `json:"invoice_footer"`
	Watermark   string `json:"watermark"`

	IsQuote        Flag `json:"is_quote"`
	IsStatement    Flag `json:"is_statement"`
	IsDeliveryNote Flag `json:"is_delivery_note"`

	DesignID int `json:"invoice_design_id"`

	Documents   []Document   `json:"documents"`
	Expenses    []Expense    `json:"expenses"`
	Invitations []Invitation `json:"invitations"`

	Features Features `json:"features"`

	Account *Account `json:"account"`
	Client  *Client  `json:"client"`
	Contact *Contact `json:"contact"`
}

// Validate reports the only fatal input conditions: a missing line
// items array or a missing account bundle. Everything else degrades to
// a best-effort render.
func (inv *Invoice) Validate() error {
	if inv.Items == nil {
		return shared.ErrMissingLineItems
	}
	if inv.Account == nil {
		return shared.ErrMissingAccount
	}
	return nil
}

// PrimaryContact returns the explicit contact, falling back to the
// client's first contact.
func (inv *Invoice) PrimaryContact() *Contact {
	if inv.Contact != nil {
		return inv.Contact
	}
	if inv.Client != nil && len(inv.Client.Contacts) > 0 {
		return &inv.Client.Contacts[0]
	}
	return nil
}

// SignedInvitation returns the first invitation carrying a signature,
// or nil when signatures are disabled or none exists.
func (inv *Invoice) SignedInvitation() *Invitation {
	if inv.Account == nil || !inv.Account.SignatureOnPDF.Bool() {
		return nil
	}
	for i := range inv.Invitations {
		if inv.Invitations[i].SignatureBase64 != "" {
			return &inv.Invitations[i]
		}
	}
	return nil
}
