package derive

import (
	"github.com/nurpe/bill-studio/internal/model"
	"github.com/nurpe/bill-studio/internal/money"
)

// Fuel derives the dispensed volume from rate and amount. The stored volume
// keeps full precision; only rendering trims it to two decimals.
func Fuel(doc *model.FuelBillDocument) *model.FuelBillDocument {
	if doc.Rate > 0 {
		doc.Volume = doc.Amount / doc.Rate
	} else {
		doc.Volume = 0
	}
	return doc
}

// BatchVolume is the volume stored by generated bills, rounded to two
// decimals at generation time.
func BatchVolume(amount, rate float64) float64 {
	if rate <= 0 {
		return 0
	}
	return money.Round(amount/rate, 2)
}
