package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/GBR-422777/invoiceninja/internal/domain/shared/valueobject"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// TaxAggregate is one named tax accumulated across line items. Two
// lines carrying the same name and rate fold into a single aggregate.
type TaxAggregate struct {
	Name   string
	Rate   decimal.Decimal
	Amount decimal.Decimal
}

// Key identifies the aggregate: same name and rate, same bucket.
func (t TaxAggregate) Key() string {
	return t.Name + t.Rate.String()
}

// Derived is the invoice plus every amount the renderer needs. It is
// created once per render by CalculateAmounts and never mutated after.
type Derived struct {
	*Invoice

	SubtotalAmount decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount1     decimal.Decimal
	TaxAmount2     decimal.Decimal

	// ItemTaxes preserves first-seen order so the subtotals block lists
	// taxes in the order they appear while scanning items.
	ItemTaxes []TaxAggregate

	TotalAmount   decimal.Decimal
	BalanceAmount decimal.Decimal

	HasTasks       bool
	HasStandard    bool
	HasSecondTable bool

	HasItemTaxes        bool
	HasItemDiscounts    bool
	HasCustomItemValue1 bool
	HasCustomItemValue2 bool
}

// PaidToDate is the previously applied payment amount.
func (d *Derived) PaidToDate() decimal.Decimal {
	return d.Amount.Sub(d.Balance.Decimal)
}

// IsPartial reports whether a nonzero partial payment is requested.
func (d *Derived) IsPartial() bool {
	return !d.Partial.IsZero()
}

// IsCredit reports whether the document renders as a credit note.
func (d *Derived) IsCredit() bool {
	return d.BalanceAmount.IsNegative()
}

// LineTotal computes one line's discounted total: cost times quantity
// at significant precision, minus the line discount (an absolute amount
// or a percentage, per the invoice-wide flag). The subtotal pass, the
// tax pass and the rendered line-item table all use this single helper
// so the computations cannot drift apart.
func LineTotal(inv *Invoice, item *InvoiceItem) decimal.Decimal {
	total := valueobject.RoundSignificant(item.Cost.Mul(item.Qty.Decimal))
	discount := valueobject.RoundToTwo(item.Discount.Decimal)
	if !discount.IsZero() {
		if inv.IsAmountDiscount.Bool() {
			total = total.Sub(discount)
		} else {
			total = total.Sub(valueobject.RoundSignificant(total.Mul(discount).Div(hundred)))
		}
	}
	return valueobject.RoundSignificant(total)
}

// inclusiveTax backs the tax amount out of a tax-inclusive total;
// exclusiveTax adds it on top. Both round to two decimals.
func inclusiveTax(total, rate decimal.Decimal) decimal.Decimal {
	divisor := one.Add(rate.Div(hundred))
	return valueobject.RoundToTwo(total.Sub(total.Div(divisor)))
}

func exclusiveTax(total, rate decimal.Decimal) decimal.Decimal {
	return valueobject.RoundToTwo(total.Mul(rate).Div(hundred))
}

// CalculateAmounts derives every computed amount from the raw invoice.
// Pure: the input invoice is only read.
//
// Ordering matters. The subtotal pass fixes the running subtotal the
// document discount is applied to; the tax pass prorates that discount
// per line before computing the two per-line taxes; document-level
// taxes apply to the discounted total; finally the total is re-based
// against the recorded amount/balance delta so prior payments survive
// an edit.
func CalculateAmounts(inv *Invoice) *Derived {
	d := &Derived{Invoice: inv}

	// subtotal pass
	subtotal := decimal.Zero
	for i := range inv.Items {
		item := &inv.Items[i]
		lt := valueobject.RoundToTwo(LineTotal(inv, item))
		if !lt.IsZero() {
			subtotal = valueobject.RoundToTwo(subtotal.Add(lt))
		}
		if item.IsBlank() {
			continue
		}
		if item.TypeID.IsTask() {
			d.HasTasks = true
		} else {
			d.HasStandard = true
		}
	}
	d.SubtotalAmount = subtotal
	d.HasSecondTable = d.HasTasks && d.HasStandard

	// tax pass
	index := make(map[string]int)
	addTax := func(name string, rate, amount decimal.Decimal) {
		d.HasItemTaxes = true
		agg := TaxAggregate{Name: name, Rate: rate, Amount: amount}
		if i, ok := index[agg.Key()]; ok {
			d.ItemTaxes[i].Amount = d.ItemTaxes[i].Amount.Add(amount)
			return
		}
		index[agg.Key()] = len(d.ItemTaxes)
		d.ItemTaxes = append(d.ItemTaxes, agg)
	}

	for i := range inv.Items {
		item := &inv.Items[i]

		if inv.Features.InvoiceSettings {
			if item.CustomValue1 != "" {
				d.HasCustomItemValue1 = true
			}
			if item.CustomValue2 != "" {
				d.HasCustomItemValue2 = true
			}
		}
		if !valueobject.RoundToTwo(item.Discount.Decimal).IsZero() {
			d.HasItemDiscounts = true
		}

		lt := LineTotal(inv, item)

		// prorate the document discount across lines before taxing
		if !inv.Discount.IsZero() {
			discount := valueobject.RoundToTwo(inv.Discount.Decimal)
			if inv.IsAmountDiscount.Bool() {
				if !subtotal.IsZero() {
					share := lt.Div(subtotal).Mul(discount)
					lt = lt.Sub(valueobject.RoundSignificant(share))
				}
			} else {
				lt = lt.Sub(valueobject.RoundSignificant(lt.Mul(discount).Div(hundred)))
			}
		}

		for _, tax := range []struct {
			name string
			rate decimal.Decimal
		}{
			{item.TaxName1, item.TaxRate1.Decimal},
			{item.TaxName2, item.TaxRate2.Decimal},
		} {
			if tax.rate.IsZero() && tax.name == "" {
				continue
			}
			amount := decimal.Zero
			if !tax.rate.IsZero() {
				if inv.Account != nil && inv.Account.InclusiveTaxes.Bool() {
					amount = inclusiveTax(lt, tax.rate)
				} else {
					amount = exclusiveTax(lt, tax.rate)
				}
			}
			// a zero amount with a name still aggregates, at zero
			if !amount.IsZero() || tax.name != "" {
				addTax(tax.name, tax.rate, amount)
			}
		}
	}

	// document discount
	total := subtotal
	discount := decimal.Zero
	if !inv.Discount.IsZero() {
		if inv.IsAmountDiscount.Bool() {
			discount = valueobject.RoundToTwo(inv.Discount.Decimal)
		} else {
			discount = valueobject.RoundToTwo(total.Mul(valueobject.RoundToTwo(inv.Discount.Decimal)).Div(hundred))
		}
		total = total.Sub(discount)
	}
	d.DiscountAmount = discount

	// tax-inclusive custom fields join the total before document taxes
	if !inv.CustomValue1.IsZero() && inv.CustomTaxes1.Bool() {
		total = total.Add(valueobject.RoundToTwo(inv.CustomValue1.Decimal))
	}
	if !inv.CustomValue2.IsZero() && inv.CustomTaxes2.Bool() {
		total = total.Add(valueobject.RoundToTwo(inv.CustomValue2.Decimal))
	}

	// document-level taxes
	rate1, rate2 := inv.TaxRate1.Decimal, inv.TaxRate2.Decimal
	if inv.Account != nil && inv.Account.InclusiveTaxes.Bool() {
		d.TaxAmount1 = inclusiveTax(total, rate1)
		d.TaxAmount2 = inclusiveTax(total, rate2)
	} else {
		d.TaxAmount1 = exclusiveTax(total, rate1)
		d.TaxAmount2 = exclusiveTax(total, rate2)
		total = total.Add(d.TaxAmount1).Add(d.TaxAmount2)
		for _, agg := range d.ItemTaxes {
			total = total.Add(agg.Amount)
		}
	}

	// tax-exclusive custom fields join after
	if !inv.CustomValue1.IsZero() && !inv.CustomTaxes1.Bool() {
		total = total.Add(valueobject.RoundToTwo(inv.CustomValue1.Decimal))
	}
	if !inv.CustomValue2.IsZero() && !inv.CustomTaxes2.Bool() {
		total = total.Add(valueobject.RoundToTwo(inv.CustomValue2.Decimal))
	}

	// re-base against recorded payment state
	paid := valueobject.RoundToTwo(inv.Amount.Decimal).Sub(valueobject.RoundToTwo(inv.Balance.Decimal))
	d.TotalAmount = valueobject.RoundToTwo(valueobject.RoundToTwo(total).Sub(paid))

	if !inv.Partial.IsZero() {
		d.BalanceAmount = valueobject.RoundToTwo(inv.Partial.Decimal)
	} else {
		d.BalanceAmount = d.TotalAmount
	}

	return d
}
