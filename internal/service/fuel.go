package service

import (
	"fmt"

	"github.com/nurpe/bill-studio/internal/batch"
	"github.com/nurpe/bill-studio/internal/derive"
	"github.com/nurpe/bill-studio/internal/model"
	"github.com/nurpe/bill-studio/internal/money"
)

type FuelView struct {
	Document     *model.FuelBillDocument `json:"document"`
	VolumeText   string                  `json:"volumeText"`
	BatchRunning bool                    `json:"batchRunning"`
}

type FuelFieldsInput struct {
	StationName    *string       `json:"stationName"`
	StationAddress *AddressInput `json:"stationAddress"`
	TelNo          *string       `json:"telNo"`
	InvNo          *string       `json:"invNo"`
	LocalID        *string       `json:"localId"`
	FipNo          *string       `json:"fipNo"`
	NozzleNo       *string       `json:"nozzleNo"`
	Product        *string       `json:"product"`
	Density        *string       `json:"density"`
	Rate           *float64      `json:"rate"`
	Amount         *float64      `json:"amount"`
	VehicleNo      *string       `json:"vehicleNo"`
	MobileNo       *string       `json:"mobileNo"`
	Date           *string       `json:"date"`
	Time           *string       `json:"time"`
	CSTNo          *string       `json:"cstNo"`
	LSTNo          *string       `json:"lstNo"`
	VATNo          *string       `json:"vatNo"`
}

func (w *Workspace) Fuel() FuelView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fuelViewLocked()
}

// UpdateFuel applies a partial update. Volume is re-derived only when the
// rate or amount changes; other edits leave it as it was.
func (w *Workspace) UpdateFuel(input FuelFieldsInput) (FuelView, error) {
	for _, v := range []*float64{input.Rate, input.Amount} {
		if v != nil && (*v < 0 || !money.Finite(*v)) {
			return FuelView{}, fmt.Errorf("%w: rate and amount must be finite and not negative", ErrInvalidInput)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.batching {
		return FuelView{}, ErrBatchRunning
	}

	if input.Rate != nil || input.Amount != nil {
		next := w.fuel.Clone()
		if input.Rate != nil {
			next.Rate = *input.Rate
		}
		if input.Amount != nil {
			next.Amount = *input.Amount
		}
		if !money.Finite(derive.Fuel(next).Volume) {
			return FuelView{}, fmt.Errorf("%w: volume is out of range for this rate and amount", ErrInvalidInput)
		}
	}

	doc := w.fuel
	setString(&doc.StationName, input.StationName)
	setAddress(&doc.StationAddress, input.StationAddress)
	setString(&doc.TelNo, input.TelNo)
	setString(&doc.InvNo, input.InvNo)
	setString(&doc.LocalID, input.LocalID)
	setString(&doc.FipNo, input.FipNo)
	setString(&doc.NozzleNo, input.NozzleNo)
	setString(&doc.Product, input.Product)
	setString(&doc.Density, input.Density)
	setString(&doc.VehicleNo, input.VehicleNo)
	setString(&doc.MobileNo, input.MobileNo)
	setString(&doc.Date, input.Date)
	setString(&doc.Time, input.Time)
	setString(&doc.CSTNo, input.CSTNo)
	setString(&doc.LSTNo, input.LSTNo)
	setString(&doc.VATNo, input.VATNo)

	if input.Rate != nil || input.Amount != nil {
		if input.Rate != nil {
			doc.Rate = *input.Rate
		}
		if input.Amount != nil {
			doc.Amount = *input.Amount
		}
		derive.Fuel(doc)
	}
	return w.fuelViewLocked(), nil
}

// GenerateFuelInvoiceNo replaces the bill number with a fresh random one.
func (w *Workspace) GenerateFuelInvoiceNo() (FuelView, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.batching {
		return FuelView{}, ErrBatchRunning
	}
	w.fuel.InvNo = batch.InvoiceNumber(w.rnd)
	return w.fuelViewLocked(), nil
}

func (w *Workspace) fuelViewLocked() FuelView {
	return FuelView{
		Document:     w.fuel.Clone(),
		VolumeText:   money.Format(w.fuel.Volume),
		BatchRunning: w.batching,
	}
}
