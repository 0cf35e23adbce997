// Package printing contains the Printing bounded context.
// This context owns invoice designs (placeholder-bearing document
// definition templates for invoices, quotes, credits, statements and
// delivery notes) and the render jobs that turn a design plus invoice
// data into a resolved document definition.
package printing
