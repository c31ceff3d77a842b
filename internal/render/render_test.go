package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/bill-studio/internal/derive"
	"github.com/nurpe/bill-studio/internal/model"
)

func sampleInvoice() *model.InvoiceDocument {
	return &model.InvoiceDocument{
		CompanyName:     "Skyline Telecom Services Pvt Ltd",
		CompanyAddress:  model.Address{Line1: "5th Floor, Tower B", Line2: "Navi Mumbai 400701"},
		InvoiceNo:       "INV-2025-0042",
		CustomerAddress: model.Address{Line1: "12 MG Road"},
		Items: []model.LineItem{
			{SrNo: 1, PlanDetails: "Annual Plan", SAC: "998422", Qty: 1, MRP: 3999},
			{SrNo: 3, PlanDetails: "Data Add-on", SAC: "998422", Qty: 2, MRP: 499, Discount: 50},
		},
	}
}

func TestInvoiceSheetAppendsSummaryAfterItems(t *testing.T) {
	doc := sampleInvoice()
	sheet := InvoiceSheet(doc, derive.Invoice(doc))

	require.NotNil(t, sheet.Table)
	rows := sheet.Table.Rows
	require.Len(t, rows, 7)

	assert.False(t, rows[0].Summary)
	assert.Equal(t, []string{"1", "Annual Plan", "998422", "1", "3999.00", "0.00", "3388.98"}, rows[0].Cells)
	assert.Equal(t, "3", rows[1].Cells[0])

	labels := []string{}
	for _, row := range rows[2:] {
		assert.True(t, row.Summary)
		labels = append(labels, row.Cells[0])
	}
	assert.Equal(t, []string{"Total Taxable Amount", "CGST (9%)", "SGST (9%)", "Total Amount", "Total Amount (in words)"}, labels)
	assert.Equal(t, "4946.99", rows[5].Cells[1])
	assert.Equal(t, 6, rows[2].Span)
	assert.Equal(t, 2, rows[6].Span)
}

func TestInvoiceSheetFieldsAddressable(t *testing.T) {
	doc := sampleInvoice()
	sheet := InvoiceSheet(doc, derive.Invoice(doc))

	v, ok := sheet.Lookup("invoiceNo")
	require.True(t, ok)
	assert.Equal(t, "INV-2025-0042", v)

	v, _ = sheet.Lookup("companyAddress")
	assert.Equal(t, "5th Floor, Tower B, Navi Mumbai 400701", v)
	v, _ = sheet.Lookup("address")
	assert.Equal(t, "12 MG Road", v)
	v, _ = sheet.Lookup("totalAmount")
	assert.Equal(t, "4946.99", v)

	assert.True(t, sheet.set("orderRef", "ORD-9"))
	v, _ = sheet.Lookup("orderRef")
	assert.Equal(t, "ORD-9", v)
	assert.True(t, sheet.set("cgst", "1.00"))
	v, _ = sheet.Lookup("cgst")
	assert.Equal(t, "1.00", v)
	assert.False(t, sheet.set("missing", "x"))
}

func TestInvoiceSheetPrintsTotalsOnce(t *testing.T) {
	doc := sampleInvoice()
	sheet := InvoiceSheet(doc, derive.Invoice(doc))

	assert.Empty(t, sheet.Footer)
	seen := map[string]int{}
	for _, row := range sheet.Table.Rows {
		if row.Summary {
			seen[row.ID]++
		}
	}
	assert.Equal(t, map[string]int{"totalTaxable": 1, "cgst": 1, "sgst": 1, "totalAmount": 1, "amountWords": 1}, seen)

	v, ok := sheet.Lookup("amountWords")
	require.True(t, ok)
	assert.Equal(t, doc.AmountWords, v)
}

func TestFuelSheetFormatsVolume(t *testing.T) {
	doc := derive.Fuel(&model.FuelBillDocument{InvNo: "234603424L318053", Rate: 101.23, Amount: 4000, Date: "14/08/2025", Time: "09:41"})
	sheet := FuelSheet(doc)

	v, _ := sheet.Lookup("dispFuelVolume")
	assert.Equal(t, "39.51", v)
	v, _ = sheet.Lookup("dispFuelRate")
	assert.Equal(t, "101.23", v)
	v, _ = sheet.Lookup("dispFuelPrintTime")
	assert.Equal(t, "14/08/2025 09:41", v)
	assert.Nil(t, sheet.Table)
	assert.False(t, sheet.Empty())
}

func TestEmptySheet(t *testing.T) {
	var nilSheet *Sheet
	assert.True(t, nilSheet.Empty())
	assert.True(t, (&Sheet{Table: &Table{}}).Empty())
}
