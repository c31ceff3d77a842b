package batch

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/nurpe/bill-studio/internal/derive"
	"github.com/nurpe/bill-studio/internal/model"
	"github.com/nurpe/bill-studio/internal/money"
)

var rateFractions = []float64{0.25, 0.50, 0.75}

const (
	firstHour   = 6
	hourWindow  = 16
	nozzleCount = 8
	densityMin  = 700
	densitySpan = 61
)

// Randomizer fills fuel bills with plausible random values. It is not safe
// for concurrent use; the batch loop owns one instance per run.
type Randomizer struct {
	rnd *rand.Rand
	loc *time.Location
}

func NewRandomizer(rnd *rand.Rand, loc *time.Location) *Randomizer {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Randomizer{rnd: rnd, loc: loc}
}

// Fill overwrites the generated fields of doc. Station, product and customer
// fields are left as the operator entered them.
func (r *Randomizer) Fill(doc *model.FuelBillDocument, bounds model.BatchBounds) {
	doc.Date = r.Date(bounds.From, bounds.To)
	doc.Time = r.Time()
	doc.InvNo = InvoiceNumber(r.rnd)
	doc.NozzleNo = fmt.Sprintf("%02d", 1+r.rnd.Intn(nozzleCount))
	doc.Density = strconv.Itoa(densityMin + r.rnd.Intn(densitySpan))
	doc.Rate = r.Rate(bounds.RateMin, bounds.RateMax)
	doc.Amount = r.Amount(bounds.AmountMin, bounds.AmountMax)
	doc.Volume = derive.BatchVolume(doc.Amount, doc.Rate)
}

// Date picks an instant in [from, to] and formats its calendar day as
// DD/MM/YYYY in the randomizer's location.
func (r *Randomizer) Date(from, to time.Time) string {
	if to.Before(from) {
		from, to = to, from
	}
	span := to.Sub(from)
	instant := from
	if span > 0 {
		instant = from.Add(time.Duration(r.rnd.Int63n(int64(span) + 1)))
	}
	return instant.In(r.loc).Format("02/01/2006")
}

// Time picks a minute between 06:00 and 21:59.
func (r *Randomizer) Time() string {
	hour := firstHour + r.rnd.Intn(hourWindow)
	minute := r.rnd.Intn(60)
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// Rate draws a whole part from [min, max) and adds a quarter fraction. A
// result outside the bounds is reflected back by one unit with the same
// fraction, and clamped if the range is narrower than that.
func (r *Randomizer) Rate(min, max float64) float64 {
	upper := math.Max(min+1, max)
	whole := math.Floor(min + r.rnd.Float64()*(upper-min))
	fraction := rateFractions[r.rnd.Intn(len(rateFractions))]

	rate := whole + fraction
	if rate < min {
		rate = min + fraction
	}
	if rate > max {
		rate = whole - 1 + fraction
	}
	return clamp(rate, min, max)
}

// Amount draws uniformly from [min, max] and keeps two decimals.
func (r *Randomizer) Amount(min, max float64) float64 {
	amount := money.Round(min+r.rnd.Float64()*(max-min), 2)
	return clamp(amount, min, max)
}

// InvoiceNumber produces the pump's receipt number format, 9 digits, the
// letter L, then 6 digits.
func InvoiceNumber(rnd *rand.Rand) string {
	p1 := 100000000 + rnd.Intn(900000000)
	p2 := 100000 + rnd.Intn(900000)
	return fmt.Sprintf("%dL%d", p1, p2)
}

// ParseCount reads the requested batch size from the leading integer of
// raw, so "5.0" and "3 bills" read as 5 and 3. No leading digits, or a
// value below one, reports ok=false.
func ParseCount(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
