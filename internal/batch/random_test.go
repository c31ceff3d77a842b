package batch

import (
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/bill-studio/internal/model"
)

func testBounds() model.BatchBounds {
	return model.BatchBounds{
		From:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		To:        time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		RateMin:   100,
		RateMax:   106,
		AmountMin: 500,
		AmountMax: 4500,
	}
}

func TestFillWithinBounds(t *testing.T) {
	r := NewRandomizer(rand.New(rand.NewSource(7)), time.UTC)
	bounds := testBounds()
	invNo := regexp.MustCompile(`^[1-9]\d{8}L[1-9]\d{5}$`)
	clock := regexp.MustCompile(`^(0[6-9]|1\d|2[01]):[0-5]\d$`)

	for i := 0; i < 2000; i++ {
		doc := &model.FuelBillDocument{StationName: "Highway Fuels"}
		r.Fill(doc, bounds)

		require.GreaterOrEqual(t, doc.Rate, bounds.RateMin)
		require.LessOrEqual(t, doc.Rate, bounds.RateMax)
		require.GreaterOrEqual(t, doc.Amount, bounds.AmountMin)
		require.LessOrEqual(t, doc.Amount, bounds.AmountMax)

		frac := doc.Rate - math.Floor(doc.Rate)
		assert.Contains(t, []float64{0.25, 0.5, 0.75}, frac)

		assert.Regexp(t, invNo, doc.InvNo)
		assert.Regexp(t, clock, doc.Time)

		nozzle, err := strconv.Atoi(doc.NozzleNo)
		require.NoError(t, err)
		assert.Len(t, doc.NozzleNo, 2)
		assert.True(t, nozzle >= 1 && nozzle <= 8)

		density, err := strconv.Atoi(doc.Density)
		require.NoError(t, err)
		assert.True(t, density >= 700 && density <= 760)

		day, err := time.Parse("02/01/2006", doc.Date)
		require.NoError(t, err)
		assert.False(t, day.Before(bounds.From))
		assert.False(t, day.After(bounds.To))

		assert.Equal(t, "Highway Fuels", doc.StationName)
		assert.InDelta(t, doc.Amount/doc.Rate, doc.Volume, 0.005)
	}
}

func TestRateNarrowRangeStaysInBounds(t *testing.T) {
	r := NewRandomizer(rand.New(rand.NewSource(11)), time.UTC)
	ranges := [][2]float64{{100, 100.5}, {100.5, 101}, {99.9, 100.1}, {100, 100}, {95.3, 97.8}}
	for _, rg := range ranges {
		for i := 0; i < 500; i++ {
			rate := r.Rate(rg[0], rg[1])
			require.GreaterOrEqual(t, rate, rg[0], "range %v", rg)
			require.LessOrEqual(t, rate, rg[1], "range %v", rg)
		}
	}
}

func TestAmountTwoDecimals(t *testing.T) {
	r := NewRandomizer(rand.New(rand.NewSource(3)), time.UTC)
	for i := 0; i < 500; i++ {
		a := r.Amount(100, 200)
		assert.InDelta(t, math.Round(a*100)/100, a, 1e-9)
	}
}

func TestDateSameDay(t *testing.T) {
	r := NewRandomizer(rand.New(rand.NewSource(1)), time.UTC)
	day := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "09/03/2025", r.Date(day, day))
}

func TestParseCount(t *testing.T) {
	cases := map[string]struct {
		n  int
		ok bool
	}{
		"5":       {5, true},
		" 12 ":    {12, true},
		"0":       {0, false},
		"-1":      {0, false},
		"abc":     {0, false},
		"":        {0, false},
		"2.5":     {2, true},
		"5.0":     {5, true},
		"3 bills": {3, true},
		"+4":      {4, true},
		"0.9":     {0, false},
		"-":       {0, false},
		"x3":      {0, false},
	}
	for in, want := range cases {
		n, ok := ParseCount(in)
		assert.Equal(t, want.ok, ok, in)
		assert.Equal(t, want.n, n, in)
	}
}
