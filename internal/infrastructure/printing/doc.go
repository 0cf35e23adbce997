// Package printing implements the document definition engine. It takes
// an invoice design (a JSON document definition carrying placeholder
// tokens) together with calculated invoice data and produces a fully
// resolved definition tree ready for a painting renderer.
package printing
