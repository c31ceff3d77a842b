package model

type Address struct {
	Line1 string `json:"line1" mapstructure:"line1"`
	Line2 string `json:"line2" mapstructure:"line2"`
}

type LineItem struct {
	SrNo          int     `json:"srNo" mapstructure:"srNo"`
	PlanDetails   string  `json:"planDetails" mapstructure:"planDetails"`
	SAC           string  `json:"sac" mapstructure:"sac"`
	Qty           int     `json:"qty" mapstructure:"qty"`
	MRP           float64 `json:"mrp" mapstructure:"mrp"`
	Discount      float64 `json:"discount" mapstructure:"discount"`
	TaxableAmount float64 `json:"taxableAmount" mapstructure:"-"`
}

// Totals is recomputed from the line items on every derivation.
type Totals struct {
	TotalTaxable float64 `json:"totalTaxable"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	TotalAmount  float64 `json:"totalAmount"`
}

type InvoiceDocument struct {
	CompanyName     string  `json:"companyName" mapstructure:"companyName"`
	CompanyAddress  Address `json:"companyAddress" mapstructure:"companyAddress"`
	InvoiceNo       string  `json:"invoiceNo" mapstructure:"invoiceNo"`
	PanNo           string  `json:"panNo" mapstructure:"panNo"`
	OrderRef        string  `json:"orderRef" mapstructure:"orderRef"`
	ModeOfPayment   string  `json:"modeOfPayment" mapstructure:"modeOfPayment"`
	InvoiceDateTime string  `json:"invoiceDateTime" mapstructure:"invoiceDateTime"`
	GSTNo           string  `json:"gstNo" mapstructure:"gstNo"`
	PaymentRef      string  `json:"paymentRef" mapstructure:"paymentRef"`
	CustomerName    string  `json:"customerName" mapstructure:"customerName"`
	JioNumber       string  `json:"jioNumber" mapstructure:"jioNumber"`
	PlaceOfSupply   string  `json:"placeOfSupply" mapstructure:"placeOfSupply"`
	CustomerAddress Address `json:"customerAddress" mapstructure:"customerAddress"`

	Items []LineItem `json:"items" mapstructure:"items"`

	Totals      Totals `json:"totals" mapstructure:"-"`
	AmountWords string `json:"amountWords" mapstructure:"-"`
}

// Clone returns a copy that shares no item storage with d.
func (d *InvoiceDocument) Clone() *InvoiceDocument {
	if d == nil {
		return nil
	}
	out := *d
	out.Items = append([]LineItem(nil), d.Items...)
	return &out
}

func NewInvoiceDocument() *InvoiceDocument {
	return &InvoiceDocument{Items: []LineItem{}}
}
