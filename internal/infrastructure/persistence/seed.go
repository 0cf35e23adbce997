package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/GBR-422777/invoiceninja/internal/domain/printing"
	"github.com/GBR-422777/invoiceninja/internal/domain/shared"
)

// DefaultDesignName is the name of the built-in design seeded on startup.
const DefaultDesignName = "Clean"

// CleanDesignContent is the built-in document definition. Placeholder
// tokens are substituted per document at render time.
const CleanDesignContent = `{
  "content": [
    {
      "columns": [
        {"image": "$accountLogo", "fit": [120, 80]},
        {"stack": "$accountDetails", "margin": [7, 0, 0, 0]},
        {"stack": "$accountAddress"}
      ],
      "margin": [0, 0, 0, 30]
    },
    {
      "columns": [
        {
          "stack": [
            {"text": "$invoiceToLabel:", "style": "clientDetailsLabel"},
            {"stack": "$clientDetails"}
          ]
        },
        {
          "table": {
            "widths": ["*", "40%"],
            "body": "$invoiceDetails"
          },
          "layout": {
            "hLineWidth": "$none",
            "vLineWidth": "$none",
            "paddingLeft": "$amount:8",
            "paddingRight": "$amount:8"
          }
        }
      ],
      "margin": [0, 0, 0, 30]
    },
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
        "hLineColor": "#D8D8D8",
        "paddingLeft": "$amount:8",
        "paddingRight": "$amount:8",
        "paddingTop": "$amount:14",
        "paddingBottom": "$amount:14"
      }
    },
    {
      "columns": [
        {"stack": "$notesAndTerms", "width": "*"},
        {
          "table": {
            "widths": ["*", "40%"],
            "body": "$subtotals"
          },
          "layout": {
            "hLineWidth": "$none",
            "vLineWidth": "$none",
            "paddingLeft": "$amount:8",
            "paddingRight": "$amount:8",
            "paddingTop": "$amount:4",
            "paddingBottom": "$amount:4"
          },
          "width": 220
        }
      ]
    },
    "$invoiceDocuments",
    "$signature"
  ],
  "footer": {
    "body": [
      {"text": "$invoiceFooter", "alignment": "left", "margin": [40, 0, 40, 0]}
    ],
    "allPages": true,
    "substitutePageTokens": true
  },
  "header": {
    "body": [
      {
        "columns": [
          {"text": "$entityTypeUC", "style": "entityTypeLabel"},
          {"text": "$invoiceNumber", "style": "invoiceNumber"}
        ],
        "margin": [40, 20, 40, 0]
      }
    ],
    "allPages": false,
    "substitutePageTokens": false
  },
  "defaultStyle": {
    "font": "$bodyFont",
    "fontSize": "$fontSize",
    "margin": [8, 4, 8, 4]
  },
  "styles": {
    "entityTypeLabel": {
      "font": "$headerFont",
      "fontSize": "$fontSizeLargest",
      "bold": true,
      "color": "$primaryColor:#37a3c6"
    },
    "invoiceNumber": {
      "fontSize": "$fontSizeLarger",
      "bold": true,
      "alignment": "right"
    },
    "accountName": {
      "bold": true,
      "color": "$primaryColor:#37a3c6"
    },
    "clientDetailsLabel": {
      "fontSize": "$fontSizeSmaller",
      "color": "$secondaryColor:#999999",
      "margin": [0, 0, 0, 4]
    },
    "tableHeader": {
      "bold": true,
      "fontSize": "$fontSizeSmaller",
      "color": "$primaryColor:#37a3c6"
    },
    "costTableHeader": {"alignment": "right"},
    "quantityTableHeader": {"alignment": "right"},
    "lineTotalTableHeader": {"alignment": "right"},
    "cost": {"alignment": "right"},
    "quantity": {"alignment": "right"},
    "tax": {"alignment": "right"},
    "lineTotal": {"alignment": "right"},
    "productKey": {"color": "$primaryColor:#37a3c6"},
    "subtotals": {"alignment": "right"},
    "subtotalsLabel": {"alignment": "right", "color": "#666666"},
    "subtotalsBalanceDueLabel": {"fontSize": "$fontSizeLarger"},
    "subtotalsBalanceDue": {
      "fontSize": "$fontSizeLarger",
      "bold": true,
      "color": "$primaryColor:#37a3c6"
    },
    "termsLabel": {"bold": true, "margin": [0, 0, 0, 4]},
    "terms": {"margin": [0, 0, 20, 0]},
    "notes": {"margin": [0, 0, 20, 0]},
    "invoiceLineItemsTable": {"margin": [0, 0, 0, 16]},
    "invoiceDocument": {"margin": [0, 10, 10, 10]}
  },
  "pageMargins": [40, 60, 40, 50]
}`

// EnsureDefaultDesign seeds the built-in design when no default exists.
// Safe to call on every startup.
func EnsureDefaultDesign(ctx context.Context, repo printing.DesignRepository) (*printing.InvoiceDesign, error) {
	existing, err := repo.FindDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up default design: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	// the design may exist without the default flag, promote it instead
	// of inserting a duplicate name
	design, err := repo.FindByName(ctx, DefaultDesignName)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up seeded design: %w", err)
	}
	if design != nil {
		if err := design.SetAsDefault(); err != nil {
			return nil, err
		}
		if err := repo.Save(ctx, design); err != nil {
			return nil, fmt.Errorf("failed to promote seeded design: %w", err)
		}
		return design, nil
	}

	design, err = printing.NewInvoiceDesign(DefaultDesignName, CleanDesignContent)
	if err != nil {
		return nil, err
	}
	if err := design.SetAsDefault(); err != nil {
		return nil, err
	}
	if err := repo.Save(ctx, design); err != nil {
		return nil, fmt.Errorf("failed to seed default design: %w", err)
	}
	return design, nil
}
