package render

import (
	"strconv"

	"github.com/nurpe/bill-studio/internal/derive"
	"github.com/nurpe/bill-studio/internal/model"
	"github.com/nurpe/bill-studio/internal/money"
)

var invoiceColumns = []Column{
	{Title: "Sr. No.", Weight: 0.07},
	{Title: "Plan Details", Weight: 0.33},
	{Title: "SAC", Weight: 0.1},
	{Title: "Qty", Weight: 0.08, Right: true},
	{Title: "MRP/Unit", Weight: 0.14, Right: true},
	{Title: "Discount", Weight: 0.13, Right: true},
	{Title: "Taxable Amount", Weight: 0.15, Right: true},
}

// InvoiceSheet paints a derived telecom invoice. The item table ends with
// the taxable total, both GST components, the grand total and the total in
// words, in that order.
func InvoiceSheet(doc *model.InvoiceDocument, res derive.InvoiceResult) Sheet {
	sheet := Sheet{
		Mode:  model.ModeTelecom,
		Title: "Tax Invoice",
		Sections: []Section{
			{
				Title: "Company",
				Fields: []Field{
					{ID: "companyName", Label: "Name", Value: doc.CompanyName},
					{ID: "companyAddress", Label: "Address", Value: joinAddress(doc.CompanyAddress, ", ")},
				},
			},
			{
				Title: "Invoice Details",
				Fields: []Field{
					{ID: "invoiceNo", Label: "Invoice No", Value: doc.InvoiceNo},
					{ID: "panNo", Label: "PAN", Value: doc.PanNo},
					{ID: "orderRef", Label: "Order Ref", Value: doc.OrderRef},
					{ID: "modeOfPayment", Label: "Mode of Payment", Value: doc.ModeOfPayment},
					{ID: "invoiceDateTime", Label: "Date & Time", Value: doc.InvoiceDateTime},
					{ID: "gstNo", Label: "GSTIN", Value: doc.GSTNo},
					{ID: "paymentRef", Label: "Payment Ref", Value: doc.PaymentRef},
				},
			},
			{
				Title: "Customer",
				Fields: []Field{
					{ID: "customerName", Label: "Name", Value: doc.CustomerName},
					{ID: "jioNumber", Label: "Number", Value: doc.JioNumber},
					{ID: "placeOfSupply", Label: "Place of Supply", Value: doc.PlaceOfSupply},
					{ID: "address", Label: "Address", Value: joinAddress(doc.CustomerAddress, ", ")},
				},
			},
		},
	}

	table := &Table{ID: "itemsBody", Columns: invoiceColumns}
	for _, item := range doc.Items {
		table.Rows = append(table.Rows, Row{Cells: []string{
			strconv.Itoa(item.SrNo),
			item.PlanDetails,
			item.SAC,
			strconv.Itoa(item.Qty),
			money.Format(item.MRP),
			money.Format(item.Discount),
			money.Format(item.TaxableAmount),
		}})
	}
	appendTotals(table, res)
	sheet.Table = table
	return sheet
}

func appendTotals(table *Table, res derive.InvoiceResult) {
	span := len(table.Columns) - 1
	table.AppendSummary("totalTaxable", "Total Taxable Amount", money.Format(res.Totals.TotalTaxable), span)
	table.AppendSummary("cgst", "CGST (9%)", money.Format(res.Totals.CGST), span)
	table.AppendSummary("sgst", "SGST (9%)", money.Format(res.Totals.SGST), span)
	table.AppendSummary("totalAmount", "Total Amount", money.Format(res.Totals.TotalAmount), span)
	table.AppendSummary("amountWords", "Total Amount (in words)", res.AmountWords, 2)
}

func joinAddress(a model.Address, sep string) string {
	switch {
	case a.Line1 == "":
		return a.Line2
	case a.Line2 == "":
		return a.Line1
	default:
		return a.Line1 + sep + a.Line2
	}
}
