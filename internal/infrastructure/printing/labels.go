package printing

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Dictionary maps label fields to display text. Designs reference
// labels through $<field>Label tokens; fragments look labels up
// directly.
type Dictionary struct {
	labels map[string]string
	upper  cases.Caser
}

// NewDictionary creates a dictionary over the given label map
func NewDictionary(labels map[string]string) *Dictionary {
	return &Dictionary{
		labels: labels,
		upper:  cases.Upper(language.English),
	}
}

// DefaultDictionary returns the built-in English labels
func DefaultDictionary() *Dictionary {
	return NewDictionary(englishLabels)
}

// Label returns the display text for a field. Missing labels resolve
// to a single space so table cells keep their shape.
func (d *Dictionary) Label(field string) string {
	if label, ok := d.labels[field]; ok {
		return label
	}
	return " "
}

// Has reports whether the field has an explicit label
func (d *Dictionary) Has(field string) bool {
	_, ok := d.labels[field]
	return ok
}

// Upper uppercases a label with Unicode-correct casing
func (d *Dictionary) Upper(label string) string {
	return d.upper.String(label)
}

var englishLabels = map[string]string{
	"invoice":             "Invoice",
	"quote":               "Quote",
	"statement":           "Statement",
	"credit_note":         "Credit Note",
	"delivery_note":       "Delivery Note",
	"tax_invoice":         "Tax Invoice",
	"tax_quote":           "Tax Quote",
	"invoice_number":      "Invoice Number",
	"quote_number":        "Quote Number",
	"credit_number":       "Credit Number",
	"invoice_date":        "Invoice Date",
	"quote_date":          "Quote Date",
	"credit_date":         "Credit Date",
	"statement_date":      "Statement Date",
	"payment_date":        "Payment Date",
	"due_date":            "Due Date",
	"valid_until":         "Valid Until",
	"po_number":           "PO Number",
	"balance":             "Balance",
	"balance_due":         "Balance Due",
	"partial_due":         "Partial Due",
	"outstanding":         "Outstanding",
	"total":               "Total",
	"invoice_total":       "Invoice Total",
	"quote_total":         "Quote Total",
	"subtotal":            "Subtotal",
	"discount":            "Discount",
	"surcharge":           "Surcharge",
	"paid_to_date":        "Paid to Date",
	"amount":              "Amount",
	"amount_due":          "Amount Due",
	"amount_paid":         "Amount Paid",
	"method":              "Method",
	"terms":               "Terms",
	"date":                "Date",
	"item":                "Item",
	"service":             "Service",
	"description":         "Description",
	"unit_cost":           "Unit Cost",
	"rate":                "Rate",
	"hours":               "Hours",
	"quantity":            "Quantity",
	"tax":                 "Tax",
	"line_total":          "Line Total",
	"id_number":           "ID Number",
	"vat_number":          "VAT Number",
	"website":             "Website",
	"phone":               "Phone",
	"email":               "Email",
	"client_name":         "Client Name",
	"contact_name":        "Contact Name",
	"address1":            "Street",
	"address2":            "Apt/Suite",
	"city_state_postal":   "City/State/Postal",
	"postal_city_state":   "Postal/City/State",
	"country":             "Country",
	"your_invoice":        "Your Invoice",
	"your_quote":          "Your Quote",
	"your_statement":      "Your Statement",
	"your_credit":         "Your Credit",
	"invoice_to":          "Invoice To",
	"quote_to":            "Quote To",
	"statement_to":        "Statement To",
	"credit_to":           "Credit To",
	"invoice_issued_to":   "Invoice issued to",
	"quote_issued_to":     "Quote issued to",
	"statement_issued_to": "Statement issued to",
	"credit_issued_to":    "Credit issued to",
	"details":             "Details",
	"invoice_no":          "Invoice No.",
	"quote_no":            "Quote No.",
	"from":                "From",
	"to":                  "To",
	"documents_header":    "Documents",
}
