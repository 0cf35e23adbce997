package invoice

import (
	"encoding/json"
	"strings"
)

// Country carries the subset of country configuration the renderer
// needs: the display name and whether the postal code precedes the city.
type Country struct {
	Name           string `json:"name"`
	SwapPostalCode Flag   `json:"swap_postal_code"`
}

// CustomFields holds the account's user-defined field labels. A label
// of the form "Label|Options" keeps only the part before the pipe.
type CustomFields struct {
	Account1     string `json:"account1"`
	Account2     string `json:"account2"`
	Client1      string `json:"client1"`
	Client2      string `json:"client2"`
	Contact1     string `json:"contact1"`
	Contact2     string `json:"contact2"`
	Product1     string `json:"product1"`
	Product2     string `json:"product2"`
	Invoice1     string `json:"invoice1"`
	Invoice2     string `json:"invoice2"`
	InvoiceText1 string `json:"invoice_text1"`
	InvoiceText2 string `json:"invoice_text2"`
}

// CustomLabel strips the value options from a custom field label.
func CustomLabel(value string) string {
	if i := strings.Index(value, "|"); i > 0 {
		return value[:i]
	}
	return value
}

// FieldLayout is the account's configured ordering of fields per
// document section. Empty lists fall back to hardcoded defaults.
type FieldLayout struct {
	AccountFields1 []string `json:"account_fields1"`
	AccountFields2 []string `json:"account_fields2"`
	InvoiceFields  []string `json:"invoice_fields"`
	ClientFields   []string `json:"client_fields"`
	ProductFields  []string `json:"product_fields"`
	TaskFields     []string `json:"task_fields"`
}

// Account is the issuing company's configuration and identity record.
type Account struct {
	Name       string `json:"name"`
	IDNumber   string `json:"id_number"`
	VATNumber  string `json:"vat_number"`
	Website    string `json:"website"`
	WorkEmail  string `json:"work_email"`
	WorkPhone  string `json:"work_phone"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`

	Country *Country `json:"country"`

	CustomValue1 string       `json:"custom_value1"`
	CustomValue2 string       `json:"custom_value2"`
	CustomFields CustomFields `json:"custom_fields"`

	// InvoiceFields is the raw JSON field-layout configuration; see
	// FieldLayout. Kept as a string because it is stored that way.
	InvoiceFields string `json:"invoice_fields"`

	InclusiveTaxes         Flag `json:"inclusive_taxes"`
	HideQuantity           Flag `json:"hide_quantity"`
	HidePaidToDate         Flag `json:"hide_paid_to_date"`
	IncludeItemTaxesInline Flag `json:"include_item_taxes_inline"`
	InvoiceEmbedDocuments  Flag `json:"invoice_embed_documents"`
	SignatureOnPDF         Flag `json:"signature_on_pdf"`
	AllPagesHeader         Flag `json:"all_pages_header"`
	AllPagesFooter         Flag `json:"all_pages_footer"`

	PageSize string `json:"page_size"`

	CurrencyCode       string `json:"currency_code"`
	CurrencySymbol     string `json:"currency_symbol"`
	SwapCurrencySymbol Flag   `json:"swap_currency_symbol"`

	// Logo and background are data URIs or renderer virtual-file paths.
	Logo            string `json:"logo"`
	BackgroundImage string `json:"background_image"`

	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
}

// Layout parses the account's field-layout configuration. Malformed or
// absent configuration yields the zero layout, which selects defaults.
func (a *Account) Layout() FieldLayout {
	var layout FieldLayout
	if a == nil || a.InvoiceFields == "" {
		return layout
	}
	// best effort: a broken config falls back to the defaults
	_ = json.Unmarshal([]byte(a.InvoiceFields), &layout)
	return layout
}

// Client is the billed party.
type Client struct {
	Name       string `json:"name"`
	IDNumber   string `json:"id_number"`
	VATNumber  string `json:"vat_number"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`

	Country *Country `json:"country"`

	ShippingAddress1   string   `json:"shipping_address1"`
	ShippingAddress2   string   `json:"shipping_address2"`
	ShippingCity       string   `json:"shipping_city"`
	ShippingState      string   `json:"shipping_state"`
	ShippingPostalCode string   `json:"shipping_postal_code"`
	ShippingCountry    *Country `json:"shipping_country"`

	Website   string `json:"website"`
	WorkPhone string `json:"work_phone"`

	Balance    Numeric `json:"balance"`
	PaidToDate Numeric `json:"paid_to_date"`

	CustomValue1 string `json:"custom_value1"`
	CustomValue2 string `json:"custom_value2"`

	Contacts []Contact `json:"contacts"`
}

// DisplayName prefers the client name, then the contact name, then the
// contact email.
func (c *Client) DisplayName(contact *Contact) string {
	if c != nil && c.Name != "" {
		return c.Name
	}
	if contact != nil {
		if contact.FirstName != "" || contact.LastName != "" {
			return strings.TrimSpace(contact.FirstName + " " + contact.LastName)
		}
		return contact.Email
	}
	return ""
}

// Contact is a person at the client.
type Contact struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	CustomValue1 string `json:"custom_value1"`
	CustomValue2 string `json:"custom_value2"`
}
