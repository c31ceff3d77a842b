package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/bill-studio/internal/model"
)

func TestGenerateManifest(t *testing.T) {
	id := uuid.New()
	manifest := model.BatchManifest{
		ID:        id,
		StartedAt: time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC),
		Bounds: model.BatchBounds{
			From:    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			To:      time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			RateMin: 100, RateMax: 106, AmountMin: 500, AmountMax: 4500,
		},
		Entries: []model.BatchEntry{
			{Index: 1, FileName: "fuel-bill-111111111L111111.png", Bill: model.FuelBillDocument{InvNo: "111111111L111111", Rate: 101.25, Amount: 1000, Volume: 9.88}},
			{Index: 2, FileName: "fuel-bill-222222222L222222.png", Bill: model.FuelBillDocument{InvNo: "222222222L222222", Rate: 102.5, Amount: 2000.5, Volume: 19.52}},
		},
	}

	content, err := NewGenerator().Generate(manifest)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{summarySheet, billsSheet}, file.GetSheetList())

	v, err := file.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, id.String(), v)
	v, _ = file.GetCellValue(summarySheet, "B4")
	assert.Equal(t, "2025-07-01", v)
	v, _ = file.GetCellValue(summarySheet, "B10")
	assert.Equal(t, "2", v)

	rows, err := file.GetRows(billsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Invoice No", rows[0][1])
	assert.Equal(t, "222222222L222222", rows[2][1])
	assert.Equal(t, "fuel-bill-222222222L222222.png", rows[2][9])
}
