package printing

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/GBR-422777/invoiceninja/internal/domain/invoice"
	designs "github.com/GBR-422777/invoiceninja/internal/domain/printing"
)

// brandingImage is the renderer virtual-file path of the created-by
// mark appended to footers on unbranded plans.
const brandingImage = "images/created_by.png"

// Builder turns an invoice and a design into a complete document
// definition ready for a painting renderer.
type Builder struct {
	labels *Dictionary
	log    *zap.Logger
}

// NewBuilder creates a document builder.
func NewBuilder(labels *Dictionary, log *zap.Logger) *Builder {
	if labels == nil {
		labels = DefaultDictionary()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{labels: labels, log: log}
}

// Build validates the invoice, derives its amounts and resolves the
// design into a document definition. The input invoice is only read.
func (b *Builder) Build(inv *invoice.Invoice, designContent string, opts Options) (map[string]any, error) {
	if err := inv.Validate(); err != nil {
		return nil, NewRenderError(ErrCodeMissingData, "invoice cannot be rendered", err)
	}

	derived := invoice.CalculateAmounts(inv)
	c := NewContext(derived, b.labels, opts, b.log)

	tree, err := Resolve(c, designContent)
	if err != nil {
		return nil, err
	}

	b.applyHeaderFooter(c, tree)
	applyStyles(tree)
	applyPageSize(c, tree)
	applyWatermark(c, tree)
	applyDefaultFont(c, tree)
	applyBackground(c, tree)

	return tree, nil
}

// BuildJSON builds the document definition and serializes it.
func (b *Builder) BuildJSON(inv *invoice.Invoice, designContent string, opts Options) ([]byte, error) {
	tree, err := b.Build(inv, designContent, opts)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "document definition is not serializable", err)
	}
	return data, nil
}

// applyHeaderFooter gates the header to the first page and the footer
// to the last, appends the created-by mark, and wires per-page token
// substitution. Plans without design customization keep the header and
// footer as plain nodes on every page.
func (b *Builder) applyHeaderFooter(c *Context, tree map[string]any) {
	inv := c.Invoice
	account := c.Account()

	if !inv.Features.RemoveCreatedBy {
		if footer, ok := tree["footer"]; ok {
			tree["footer"] = appendBranding(footer)
		}
	}

	if !inv.Features.CustomizeInvoiceDesign {
		return
	}

	if header, ok := tree["header"]; ok {
		tree["header"] = HeaderFooterRule{
			Body:                 header,
			AllPages:             account.AllPagesHeader.Bool(),
			SubstitutePageTokens: inv.Features.RemoveCreatedBy,
		}
	}
	if footer, ok := tree["footer"]; ok {
		tree["footer"] = HeaderFooterRule{
			Body:                 footer,
			AllPages:             account.AllPagesFooter.Bool(),
			LastPage:             true,
			SubstitutePageTokens: inv.Features.RemoveCreatedBy,
		}
	}
}

// appendBranding attaches the created-by mark to a footer node. The
// mark joins an existing columns node when one exists, otherwise it is
// appended to the footer list.
func appendBranding(footer any) any {
	mark := func(margin []any, alignment string) map[string]any {
		return map[string]any{
			"image":     brandingImage,
			"alignment": alignment,
			"width":     130,
			"margin":    margin,
		}
	}

	switch f := footer.(type) {
	case map[string]any:
		if columns, ok := f["columns"].([]any); ok {
			f["columns"] = append(columns, mark([]any{0, 0, 0, 0}, "right"))
		}
		return f
	case []any:
		foundColumns := false
		for _, entry := range f {
			item, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			columns, ok := item["columns"].([]any)
			if !ok {
				continue
			}
			foundColumns = true
			if first, ok := columns[0].(map[string]any); ok {
				if stack, ok := first["stack"].([]any); ok {
					first["stack"] = append(stack, mark([]any{40, 6, 0, 0}, "left"))
					continue
				}
			}
			item["columns"] = append(columns, mark([]any{0, -40, 20, 0}, "right"))
		}
		if !foundColumns {
			f = append(f, mark([]any{0, 0, 10, 10}, "right"))
		}
		return f
	default:
		return footer
	}
}

// applyStyles registers the styles section builders tag onto nodes.
func applyStyles(tree map[string]any) {
	styles, ok := tree["styles"].(map[string]any)
	if !ok {
		styles = map[string]any{}
	}
	styles["noWrap"] = map[string]any{"noWrap": true}
	styles["discount"] = map[string]any{"alignment": "right"}
	styles["alignRight"] = map[string]any{"alignment": "right"}
	tree["styles"] = styles
}

func applyPageSize(c *Context, tree map[string]any) {
	tree["pageSize"] = string(designs.ParsePageSize(c.Account().PageSize))
}

func applyWatermark(c *Context, tree map[string]any) {
	if c.Invoice.Watermark == "" {
		return
	}
	tree["watermark"] = map[string]any{
		"text":    c.Invoice.Watermark,
		"color":   "black",
		"opacity": 0.04,
	}
}

func applyDefaultFont(c *Context, tree map[string]any) {
	style, ok := tree["defaultStyle"].(map[string]any)
	if !ok {
		tree["defaultStyle"] = map[string]any{"font": c.Options.BodyFont}
		return
	}
	if _, ok := style["font"]; !ok {
		style["font"] = c.Options.BodyFont
	}
}

// applyBackground gates the page background to the first page unless
// the artwork asks for all pages. Without artwork the background is
// cleared so renderers do not paint the blank placeholder.
func applyBackground(c *Context, tree map[string]any) {
	if c.Options.AccountBackground == "" {
		tree["background"] = false
		return
	}

	body, ok := tree["background"].([]any)
	if !ok || len(body) == 0 {
		body = []any{map[string]any{
			"image":     c.Options.AccountBackground,
			"alignment": "center",
		}}
	}
	allPages := false
	if first, ok := body[0].(map[string]any); ok {
		allPages = first["pages"] == "all"
	}
	tree["background"] = BackgroundRule{Body: body, AllPages: allPages}
}
