package bundle

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invoiceYAML = `
companyName: Skyline Telecom Services Pvt Ltd
companyAddress:
  line1: 5th Floor, Tower B
  line2: Navi Mumbai 400701
invoiceNo: INV-2025-0042
gstNo: 27AABCS1234F1Z5
jioNumber: "9876543210"
customerAddress:
  line1: 12 MG Road
  line2: Pune 411001
items:
  - srNo: 1
    planDetails: Annual Plan
    sac: "998422"
    qty: 1
    mrp: 3999
    discount: 0
  - srNo: 2
    planDetails: Data Add-on
    sac: "998422"
    qty: 2
    mrp: 499.5
    discount: 50
`

const fuelJSON = `{
  "stationName": "Highway Fuels",
  "stationAddress": {"line1": "NH 48", "line2": "Vadodara"},
  "invNo": "234603424L318053",
  "rate": 101.23,
  "amount": 4000,
  "vehicleNo": "Not Entered",
  "date": "14/08/2025",
  "time": "09:41"
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadInvoice(t *testing.T) {
	doc := LoadInvoice(writeFile(t, "invoice.yaml", invoiceYAML), zerolog.Nop())

	assert.Equal(t, "Skyline Telecom Services Pvt Ltd", doc.CompanyName)
	assert.Equal(t, "Navi Mumbai 400701", doc.CompanyAddress.Line2)
	assert.Equal(t, "9876543210", doc.JioNumber)
	assert.Equal(t, "Pune 411001", doc.CustomerAddress.Line2)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, 2, doc.Items[1].SrNo)
	assert.Equal(t, "Data Add-on", doc.Items[1].PlanDetails)
	assert.Equal(t, 2, doc.Items[1].Qty)
	assert.Equal(t, 499.5, doc.Items[1].MRP)
	assert.Equal(t, 50.0, doc.Items[1].Discount)
}

func TestLoadFuel(t *testing.T) {
	doc := LoadFuel(writeFile(t, "fuel.json", fuelJSON), zerolog.Nop())

	assert.Equal(t, "Highway Fuels", doc.StationName)
	assert.Equal(t, "Vadodara", doc.StationAddress.Line2)
	assert.Equal(t, 101.23, doc.Rate)
	assert.Equal(t, 4000.0, doc.Amount)
	assert.Equal(t, "Not Entered", doc.VehicleNo)
}

func TestMissingBundleFallsBackWithWarning(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	inv := LoadInvoice(filepath.Join(t.TempDir(), "missing.yaml"), log)
	fuel := LoadFuel("", log)

	assert.NotNil(t, inv.Items)
	assert.Empty(t, inv.Items)
	assert.Empty(t, inv.CompanyName)
	assert.Equal(t, 0.0, fuel.Rate)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "invoice data not loaded")
	assert.Contains(t, buf.String(), "fuel data not loaded")
}

func TestMalformedBundleFallsBack(t *testing.T) {
	doc := LoadInvoice(writeFile(t, "broken.yaml", "items: [\n  - : :"), zerolog.Nop())
	assert.Empty(t, doc.Items)
	assert.Empty(t, doc.CompanyName)
}
