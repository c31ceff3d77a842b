package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/bill-studio/internal/derive"
	"github.com/nurpe/bill-studio/internal/model"
	"github.com/nurpe/bill-studio/internal/render"
)

func TestGenerateInvoice(t *testing.T) {
	doc := &model.InvoiceDocument{
		CompanyName: "Skyline Telecom Services Pvt Ltd",
		InvoiceNo:   "INV-7",
		Items:       []model.LineItem{{SrNo: 1, PlanDetails: "Annual Plan", SAC: "998422", Qty: 1, MRP: 3999}},
	}
	sheet := render.InvoiceSheet(doc, derive.Invoice(doc))

	out, err := NewGenerator().Generate(&sheet)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestGenerateFuelReceipt(t *testing.T) {
	sheet := render.FuelSheet(&model.FuelBillDocument{StationName: "Highway Fuels", InvNo: "234603424L318053", Rate: 101.23, Amount: 4000})

	out, err := NewGenerator().Generate(&sheet)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestGenerateEmpty(t *testing.T) {
	_, err := NewGenerator().Generate(&render.Sheet{})
	assert.ErrorIs(t, err, ErrEmptySheet)
}

func TestSafeValue(t *testing.T) {
	assert.Equal(t, "-", safeValue("  "))
	assert.Equal(t, "x", safeValue("x"))
}
