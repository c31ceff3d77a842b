package render

import (
	"strings"

	"github.com/nurpe/bill-studio/internal/model"
	"github.com/nurpe/bill-studio/internal/money"
)

// FuelSheet paints a fuel receipt. Volume is shown with two decimals
// whatever precision is stored.
func FuelSheet(doc *model.FuelBillDocument) Sheet {
	return Sheet{
		Mode:  model.ModeFuel,
		Title: "Fuel Receipt",
		Sections: []Section{
			{
				Title: doc.StationName,
				Fields: []Field{
					{ID: "dispFuelStationName", Label: "Station", Value: doc.StationName},
					{ID: "dispFuelStationAddr", Label: "Address", Value: joinAddress(doc.StationAddress, " ")},
					{ID: "dispFuelTel", Label: "Tel. No", Value: doc.TelNo},
				},
			},
			{
				Title: "Transaction",
				Fields: []Field{
					{ID: "dispFuelInvNo", Label: "Invoice No", Value: doc.InvNo},
					{ID: "dispFuelLocalId", Label: "Local ID", Value: doc.LocalID},
					{ID: "dispFuelFipNo", Label: "FIP No", Value: doc.FipNo},
					{ID: "dispFuelNozzleNo", Label: "Nozzle No", Value: doc.NozzleNo},
					{ID: "dispFuelProduct", Label: "Product", Value: doc.Product},
					{ID: "dispFuelDensity", Label: "Density", Value: doc.Density},
					{ID: "dispFuelRate", Label: "Rate (Rs/L)", Value: money.Format(doc.Rate)},
					{ID: "dispFuelAmount", Label: "Amount (Rs)", Value: money.Format(doc.Amount)},
					{ID: "dispFuelVolume", Label: "Volume (L)", Value: money.Format(doc.Volume)},
				},
			},
			{
				Title: "Customer",
				Fields: []Field{
					{ID: "dispFuelVehicleNo", Label: "Vehicle No", Value: doc.VehicleNo},
					{ID: "dispFuelMobileNo", Label: "Mobile No", Value: doc.MobileNo},
					{ID: "dispFuelDate", Label: "Date", Value: doc.Date},
					{ID: "dispFuelTime", Label: "Time", Value: doc.Time},
				},
			},
			{
				Title: "Registration",
				Fields: []Field{
					{ID: "dispFuelCst", Label: "CST No", Value: doc.CSTNo},
					{ID: "dispFuelLst", Label: "LST No", Value: doc.LSTNo},
					{ID: "dispFuelVat", Label: "VAT No", Value: doc.VATNo},
				},
			},
		},
		Footer: []Field{
			{ID: "dispFuelPrintTime", Label: "Printed on", Value: strings.TrimSpace(doc.Date + " " + doc.Time)},
		},
	}
}
