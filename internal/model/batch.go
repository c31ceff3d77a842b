package model

import (
	"time"

	"github.com/google/uuid"
)

type BatchBounds struct {
	From      time.Time
	To        time.Time
	RateMin   float64
	RateMax   float64
	AmountMin float64
	AmountMax float64
}

// BatchEntry records one generated fuel bill and the file it was exported to.
type BatchEntry struct {
	Index    int
	FileName string
	Bill     FuelBillDocument
}

type BatchManifest struct {
	ID         uuid.UUID
	Bounds     BatchBounds
	StartedAt  time.Time
	FinishedAt time.Time
	Entries    []BatchEntry
}
