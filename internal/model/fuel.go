package model

type FuelBillDocument struct {
	StationName    string  `json:"stationName" mapstructure:"stationName"`
	StationAddress Address `json:"stationAddress" mapstructure:"stationAddress"`
	TelNo          string  `json:"telNo" mapstructure:"telNo"`

	InvNo    string `json:"invNo" mapstructure:"invNo"`
	LocalID  string `json:"localId" mapstructure:"localId"`
	FipNo    string `json:"fipNo" mapstructure:"fipNo"`
	NozzleNo string `json:"nozzleNo" mapstructure:"nozzleNo"`

	Product string `json:"product" mapstructure:"product"`
	Density string `json:"density" mapstructure:"density"`

	Rate   float64 `json:"rate" mapstructure:"rate"`
	Amount float64 `json:"amount" mapstructure:"amount"`
	Volume float64 `json:"volume" mapstructure:"volume"`

	VehicleNo string `json:"vehicleNo" mapstructure:"vehicleNo"`
	MobileNo  string `json:"mobileNo" mapstructure:"mobileNo"`

	Date string `json:"date" mapstructure:"date"`
	Time string `json:"time" mapstructure:"time"`

	CSTNo string `json:"cstNo" mapstructure:"cstNo"`
	LSTNo string `json:"lstNo" mapstructure:"lstNo"`
	VATNo string `json:"vatNo" mapstructure:"vatNo"`
}

func (d *FuelBillDocument) Clone() *FuelBillDocument {
	if d == nil {
		return nil
	}
	out := *d
	return &out
}

func NewFuelBillDocument() *FuelBillDocument {
	return &FuelBillDocument{}
}
