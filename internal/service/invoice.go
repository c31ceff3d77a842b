package service

import (
	"fmt"

	"github.com/nurpe/bill-studio/internal/derive"
	"github.com/nurpe/bill-studio/internal/model"
	"github.com/nurpe/bill-studio/internal/money"
)

const (
	defaultPlanDetails = "New Plan"
	defaultSAC         = "998422"
)

type InvoiceView struct {
	Document    *model.InvoiceDocument `json:"document"`
	Totals      model.Totals           `json:"totals"`
	AmountWords string                 `json:"amountWords"`
	Warnings    []string               `json:"warnings"`
}

type AddressInput struct {
	Line1 *string `json:"line1"`
	Line2 *string `json:"line2"`
}

// InvoiceFieldsInput carries a partial update; nil fields are left alone.
type InvoiceFieldsInput struct {
	CompanyName     *string       `json:"companyName"`
	CompanyAddress  *AddressInput `json:"companyAddress"`
	InvoiceNo       *string       `json:"invoiceNo"`
	PanNo           *string       `json:"panNo"`
	OrderRef        *string       `json:"orderRef"`
	ModeOfPayment   *string       `json:"modeOfPayment"`
	InvoiceDateTime *string       `json:"invoiceDateTime"`
	GSTNo           *string       `json:"gstNo"`
	PaymentRef      *string       `json:"paymentRef"`
	CustomerName    *string       `json:"customerName"`
	JioNumber       *string       `json:"jioNumber"`
	PlaceOfSupply   *string       `json:"placeOfSupply"`
	CustomerAddress *AddressInput `json:"customerAddress"`
}

type ItemInput struct {
	PlanDetails *string  `json:"planDetails"`
	SAC         *string  `json:"sac"`
	Qty         *int     `json:"qty"`
	MRP         *float64 `json:"mrp"`
	Discount    *float64 `json:"discount"`
}

// Invoice derives the telecom invoice and returns a copy of it.
func (w *Workspace) Invoice() InvoiceView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.invoiceViewLocked()
}

func (w *Workspace) UpdateInvoice(input InvoiceFieldsInput) InvoiceView {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc := w.invoice
	setString(&doc.CompanyName, input.CompanyName)
	setAddress(&doc.CompanyAddress, input.CompanyAddress)
	setString(&doc.InvoiceNo, input.InvoiceNo)
	setString(&doc.PanNo, input.PanNo)
	setString(&doc.OrderRef, input.OrderRef)
	setString(&doc.ModeOfPayment, input.ModeOfPayment)
	setString(&doc.InvoiceDateTime, input.InvoiceDateTime)
	setString(&doc.GSTNo, input.GSTNo)
	setString(&doc.PaymentRef, input.PaymentRef)
	setString(&doc.CustomerName, input.CustomerName)
	setString(&doc.JioNumber, input.JioNumber)
	setString(&doc.PlaceOfSupply, input.PlaceOfSupply)
	setAddress(&doc.CustomerAddress, input.CustomerAddress)

	return w.invoiceViewLocked()
}

// AddItem appends a line numbered one past the current item count. Fields
// not given take the new-plan defaults.
func (w *Workspace) AddItem(input ItemInput) (InvoiceView, error) {
	item := model.LineItem{PlanDetails: defaultPlanDetails, SAC: defaultSAC, Qty: 1}
	applyItem(&item, input)
	if err := validateItem(item); err != nil {
		return InvoiceView{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	item.SrNo = len(w.invoice.Items) + 1
	next := w.invoice.Clone()
	next.Items = append(next.Items, item)
	if err := checkTotals(next); err != nil {
		return InvoiceView{}, err
	}
	w.invoice.Items = next.Items
	return w.invoiceViewLocked(), nil
}

func (w *Workspace) UpdateItem(index int, input ItemInput) (InvoiceView, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if index < 0 || index >= len(w.invoice.Items) {
		return InvoiceView{}, fmt.Errorf("%w: item %d", ErrNotFound, index)
	}
	item := w.invoice.Items[index]
	applyItem(&item, input)
	if err := validateItem(item); err != nil {
		return InvoiceView{}, err
	}
	next := w.invoice.Clone()
	next.Items[index] = item
	if err := checkTotals(next); err != nil {
		return InvoiceView{}, err
	}
	w.invoice.Items[index] = item
	return w.invoiceViewLocked(), nil
}

// RemoveItem deletes the line at index. Remaining serial numbers are kept
// as they were unless renumbering on delete is enabled.
func (w *Workspace) RemoveItem(index int) (InvoiceView, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	items := w.invoice.Items
	if index < 0 || index >= len(items) {
		return InvoiceView{}, fmt.Errorf("%w: item %d", ErrNotFound, index)
	}
	w.invoice.Items = append(items[:index:index], items[index+1:]...)
	if w.opts.RenumberOnDelete {
		for i := range w.invoice.Items {
			w.invoice.Items[i].SrNo = i + 1
		}
	}
	return w.invoiceViewLocked(), nil
}

func (w *Workspace) invoiceViewLocked() InvoiceView {
	res := derive.Invoice(w.invoice)
	mismatches := derive.ValidateInvoice(w.invoice)

	warnings := make([]string, 0, len(mismatches))
	for _, m := range mismatches {
		w.log.Warn().
			Str("check", m.Check).
			Float64("expected", m.Expected).
			Float64("actual", m.Actual).
			Msg("invoice totals mismatch")
		warnings = append(warnings, m.String())
	}

	return InvoiceView{
		Document:    w.invoice.Clone(),
		Totals:      res.Totals,
		AmountWords: res.AmountWords,
		Warnings:    warnings,
	}
}

func applyItem(item *model.LineItem, input ItemInput) {
	setString(&item.PlanDetails, input.PlanDetails)
	setString(&item.SAC, input.SAC)
	if input.Qty != nil {
		item.Qty = *input.Qty
	}
	if input.MRP != nil {
		item.MRP = *input.MRP
	}
	if input.Discount != nil {
		item.Discount = *input.Discount
	}
}

func validateItem(item model.LineItem) error {
	switch {
	case !money.Finite(item.MRP) || !money.Finite(item.Discount):
		return fmt.Errorf("%w: mrp and discount must be finite", ErrInvalidInput)
	case !money.Finite(item.MRP*float64(item.Qty) - item.Discount):
		return fmt.Errorf("%w: line total is out of range", ErrInvalidInput)
	case item.Qty < 1:
		return fmt.Errorf("%w: qty must be a positive integer", ErrInvalidInput)
	case item.MRP < 0:
		return fmt.Errorf("%w: mrp must not be negative", ErrInvalidInput)
	case item.Discount < 0:
		return fmt.Errorf("%w: discount must not be negative", ErrInvalidInput)
	}
	return nil
}

// checkTotals derives doc, which must be a copy, and rejects it when any
// total leaves the representable range.
func checkTotals(doc *model.InvoiceDocument) error {
	t := derive.Invoice(doc).Totals
	for _, v := range []float64{t.TotalTaxable, t.CGST, t.SGST, t.TotalAmount} {
		if !money.Finite(v) {
			return fmt.Errorf("%w: invoice total is out of range", ErrInvalidInput)
		}
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setAddress(dst *model.Address, v *AddressInput) {
	if v == nil {
		return
	}
	setString(&dst.Line1, v.Line1)
	setString(&dst.Line2, v.Line2)
}
