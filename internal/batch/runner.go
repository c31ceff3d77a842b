package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/bill-studio/internal/model"
)

// Pacing holds the pauses around each export. Settle gives the render target
// time to finish painting; Throttle spaces out consecutive files.
type Pacing struct {
	Settle   time.Duration
	Throttle time.Duration
}

// Exporter renders and stores one bill, returning the file name it used.
type Exporter interface {
	Export(ctx context.Context, doc model.FuelBillDocument) (string, error)
}

type ExporterFunc func(ctx context.Context, doc model.FuelBillDocument) (string, error)

func (f ExporterFunc) Export(ctx context.Context, doc model.FuelBillDocument) (string, error) {
	return f(ctx, doc)
}

// Progress is told about each iteration before its export starts.
type Progress func(current, total int)

type SleepFunc func(ctx context.Context, d time.Duration) error

type Runner struct {
	rand   *Randomizer
	pacing Pacing
	sleep  SleepFunc
	log    zerolog.Logger
}

func NewRunner(rand *Randomizer, pacing Pacing, log zerolog.Logger) *Runner {
	return &Runner{rand: rand, pacing: pacing, sleep: Sleep, log: log}
}

// WithSleep swaps the pause implementation, mainly for tests.
func (r *Runner) WithSleep(sleep SleepFunc) *Runner {
	r.sleep = sleep
	return r
}

// Run generates count bills one after another into doc, exporting each
// before the next is generated. The first export error stops the run; the
// entries produced so far are returned with it. A count below one does
// nothing.
//
// doc is mutated in place. mutate, if set, wraps each write so the caller can
// hold its own lock around it.
func (r *Runner) Run(
	ctx context.Context,
	doc *model.FuelBillDocument,
	count int,
	bounds model.BatchBounds,
	exporter Exporter,
	progress Progress,
	mutate func(func()),
) ([]model.BatchEntry, error) {
	if count < 1 {
		return nil, nil
	}
	if mutate == nil {
		mutate = func(fn func()) { fn() }
	}

	entries := make([]model.BatchEntry, 0, count)
	for i := 0; i < count; i++ {
		var snapshot model.FuelBillDocument
		mutate(func() {
			r.rand.Fill(doc, bounds)
			snapshot = *doc
		})
		if progress != nil {
			progress(i+1, count)
		}

		if err := r.sleep(ctx, r.pacing.Settle); err != nil {
			return entries, err
		}

		name, err := exporter.Export(ctx, snapshot)
		if err != nil {
			r.log.Error().Err(err).Int("iteration", i+1).Int("count", count).Msg("batch export failed")
			return entries, fmt.Errorf("bill %d of %d (%s): %w", i+1, count, snapshot.InvNo, err)
		}
		entries = append(entries, model.BatchEntry{Index: i + 1, FileName: name, Bill: snapshot})
		r.log.Debug().Int("iteration", i+1).Str("file", name).Msg("bill exported")

		if err := r.sleep(ctx, r.pacing.Throttle); err != nil {
			return entries, err
		}
	}
	return entries, nil
}

// Sleep pauses for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
