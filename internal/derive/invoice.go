package derive

import (
	"fmt"

	"github.com/nurpe/bill-studio/internal/model"
	"github.com/nurpe/bill-studio/internal/money"
)

const (
	// GSTInclusiveDivisor strips the combined 18% GST from an MRP-based line.
	GSTInclusiveDivisor = 1.18
	// ComponentRate is the rate of each of the two equal GST components.
	ComponentRate = 0.09
	// Tolerance is the allowed drift between related totals.
	Tolerance = 0.01
)

type InvoiceResult struct {
	Totals      model.Totals
	AmountWords string
}

// TaxableAmount is the tax-exclusive base of one line.
func TaxableAmount(item model.LineItem) float64 {
	lineTotal := item.MRP*float64(item.Qty) - item.Discount
	return money.Round(lineTotal/GSTInclusiveDivisor, 2)
}

// Invoice recomputes every derived value of doc in place and returns the
// totals. Each stage is rounded before it feeds the next one.
func Invoice(doc *model.InvoiceDocument) InvoiceResult {
	sum := 0.0
	for i := range doc.Items {
		doc.Items[i].TaxableAmount = TaxableAmount(doc.Items[i])
		sum += doc.Items[i].TaxableAmount
	}

	totalTaxable := money.Round(sum, 2)
	cgst := money.Round(totalTaxable*ComponentRate, 2)
	sgst := money.Round(totalTaxable*ComponentRate, 2)
	totals := model.Totals{
		TotalTaxable: totalTaxable,
		CGST:         cgst,
		SGST:         sgst,
		TotalAmount:  money.Round(totalTaxable+cgst+sgst, 2),
	}

	doc.Totals = totals
	doc.AmountWords = money.Words(totals.TotalAmount)
	return InvoiceResult{Totals: totals, AmountWords: doc.AmountWords}
}

type Mismatch struct {
	Check    string  `json:"check"`
	Expected float64 `json:"expected"`
	Actual   float64 `json:"actual"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s mismatch: expected %s, got %s", m.Check, money.Format(m.Expected), money.Format(m.Actual))
}

// ValidateInvoice cross-checks the cached totals against the items. It never
// fails; callers decide how loudly to report the returned mismatches.
func ValidateInvoice(doc *model.InvoiceDocument) []Mismatch {
	itemsSum := 0.0
	for _, item := range doc.Items {
		itemsSum += item.TaxableAmount
	}
	t := doc.Totals

	var out []Mismatch
	if !money.Within(itemsSum, t.TotalTaxable, Tolerance) {
		out = append(out, Mismatch{Check: "taxable amount", Expected: t.TotalTaxable, Actual: itemsSum})
	}
	if sum := t.TotalTaxable + t.CGST + t.SGST; !money.Within(sum, t.TotalAmount, Tolerance) {
		out = append(out, Mismatch{Check: "total amount", Expected: t.TotalAmount, Actual: sum})
	}
	return out
}
