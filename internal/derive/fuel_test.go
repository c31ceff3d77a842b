package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nurpe/bill-studio/internal/model"
)

func TestFuelVolumeKeepsPrecision(t *testing.T) {
	doc := &model.FuelBillDocument{Rate: 101.23, Amount: 4000}
	Fuel(doc)
	assert.InDelta(t, 39.51398, doc.Volume, 0.00001)
	assert.NotEqual(t, 39.51, doc.Volume)
}

func TestFuelZeroRate(t *testing.T) {
	doc := &model.FuelBillDocument{Rate: 0, Amount: 4000, Volume: 12}
	assert.Equal(t, 0.0, Fuel(doc).Volume)

	doc.Rate = -5
	assert.Equal(t, 0.0, Fuel(doc).Volume)
}

func TestBatchVolumeRounds(t *testing.T) {
	assert.Equal(t, 39.51, BatchVolume(4000, 101.23))
	assert.Equal(t, 0.0, BatchVolume(4000, 0))
}
