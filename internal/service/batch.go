package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/bill-studio/internal/batch"
	"github.com/nurpe/bill-studio/internal/export"
	"github.com/nurpe/bill-studio/internal/model"
	"github.com/nurpe/bill-studio/internal/money"
	"github.com/nurpe/bill-studio/internal/render"
)

// BatchInput mirrors the batch form. Count is the raw text the operator
// typed; bounds left nil fall back to the configured defaults.
type BatchInput struct {
	Count     string
	From      *time.Time
	To        *time.Time
	RateMin   *float64
	RateMax   *float64
	AmountMin *float64
	AmountMax *float64
}

type BatchTicket struct {
	ID     uuid.UUID         `json:"batchId"`
	Count  int               `json:"count"`
	Bounds model.BatchBounds `json:"-"`
}

type BatchResult struct {
	ID       uuid.UUID          `json:"batchId"`
	Count    int                `json:"count"`
	Files    []string           `json:"files"`
	Manifest string             `json:"manifest,omitempty"`
	Entries  []model.BatchEntry `json:"-"`
}

// StartBatch validates the request and runs the batch in the background.
// An unusable count starts nothing and returns a nil ticket without error.
func (w *Workspace) StartBatch(ctx context.Context, input BatchInput) (*BatchTicket, error) {
	ticket, err := w.prepareBatch(input)
	if err != nil || ticket == nil {
		return nil, err
	}

	go func() {
		defer w.releaseBatch()
		if _, err := w.executeBatch(ctx, ticket); err != nil {
			w.log.Error().Err(err).Str("batch_id", ticket.ID.String()).Msg("batch aborted")
		}
	}()
	return ticket, nil
}

// RunBatch is the blocking form of StartBatch.
func (w *Workspace) RunBatch(ctx context.Context, input BatchInput) (*BatchResult, error) {
	ticket, err := w.prepareBatch(input)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return &BatchResult{}, nil
	}
	defer w.releaseBatch()
	return w.executeBatch(ctx, ticket)
}

func (w *Workspace) prepareBatch(input BatchInput) (*BatchTicket, error) {
	count, ok := batch.ParseCount(input.Count)
	if !ok {
		w.log.Debug().Str("count", input.Count).Msg("batch request ignored")
		return nil, nil
	}
	bounds, err := w.resolveBounds(input)
	if err != nil {
		return nil, err
	}
	if w.runner == nil || w.sink == nil || w.capturers[export.FormatPNG] == nil {
		return nil, fmt.Errorf("%w: batch export is not configured", ErrExportFailed)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.batching {
		return nil, ErrBatchRunning
	}
	w.batching = true
	return &BatchTicket{ID: uuid.New(), Count: count, Bounds: bounds}, nil
}

func (w *Workspace) releaseBatch() {
	w.mu.Lock()
	w.batching = false
	w.mu.Unlock()
}

func (w *Workspace) executeBatch(ctx context.Context, ticket *BatchTicket) (*BatchResult, error) {
	log := w.log.With().Str("batch_id", ticket.ID.String()).Logger()
	started := w.opts.Now()
	log.Info().Int("count", ticket.Count).Msg("batch started")
	w.notifier.Notify(BatchEvent{Type: BatchStarted, BatchID: ticket.ID, Total: ticket.Count})

	capturer := w.capturers[export.FormatPNG]
	exporter := batch.ExporterFunc(func(ctx context.Context, doc model.FuelBillDocument) (string, error) {
		sheet := render.FuelSheet(&doc)
		content, err := capturer.Capture(&sheet)
		if err != nil {
			return "", err
		}
		name := export.FileName(model.ModeFuel, doc.InvNo, export.FormatPNG)
		if err := w.sink.Save(ctx, name, content); err != nil {
			return "", err
		}
		return name, nil
	})
	progress := func(current, total int) {
		w.notifier.Notify(BatchEvent{Type: BatchProgress, BatchID: ticket.ID, Current: current, Total: total})
	}

	entries, err := w.runner.Run(ctx, w.fuel, ticket.Count, ticket.Bounds, exporter, progress, w.withLock)
	result := &BatchResult{ID: ticket.ID, Count: ticket.Count, Entries: entries, Files: fileNames(entries)}
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", ErrExportFailed, err)
		}
		w.notifier.Notify(BatchEvent{Type: BatchFailed, BatchID: ticket.ID, Current: len(entries), Total: ticket.Count, Message: err.Error()})
		return result, err
	}

	if w.manifest != nil {
		name, err := w.saveManifest(ctx, ticket, started, entries)
		if err != nil {
			err = fmt.Errorf("%w: manifest: %w", ErrExportFailed, err)
			w.notifier.Notify(BatchEvent{Type: BatchFailed, BatchID: ticket.ID, Current: len(entries), Total: ticket.Count, Message: err.Error()})
			return result, err
		}
		result.Manifest = name
	}

	log.Info().Int("count", len(entries)).Dur("took", w.opts.Now().Sub(started)).Msg("batch completed")
	w.notifier.Notify(BatchEvent{Type: BatchCompleted, BatchID: ticket.ID, Current: len(entries), Total: ticket.Count, Files: result.Files})
	return result, nil
}

func (w *Workspace) saveManifest(ctx context.Context, ticket *BatchTicket, started time.Time, entries []model.BatchEntry) (string, error) {
	content, err := w.manifest.Generate(model.BatchManifest{
		ID:         ticket.ID,
		Bounds:     ticket.Bounds,
		StartedAt:  started,
		FinishedAt: w.opts.Now(),
		Entries:    entries,
	})
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("fuel-batch-%s.xlsx", ticket.ID)
	if err := w.sink.Save(ctx, name, content); err != nil {
		return "", err
	}
	return name, nil
}

// resolveBounds fills omitted bounds: the last three months up to today, and
// the configured rate and amount ranges.
func (w *Workspace) resolveBounds(input BatchInput) (model.BatchBounds, error) {
	d := w.opts.Batch
	now := w.opts.Now().In(d.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, d.Location)

	b := model.BatchBounds{
		To:        today,
		From:      today.AddDate(0, -3, 0),
		RateMin:   d.RateMin,
		RateMax:   d.RateMax,
		AmountMin: d.AmountMin,
		AmountMax: d.AmountMax,
	}
	if input.From != nil {
		b.From = *input.From
	}
	if input.To != nil {
		b.To = *input.To
	}
	if input.RateMin != nil {
		b.RateMin = *input.RateMin
	}
	if input.RateMax != nil {
		b.RateMax = *input.RateMax
	}
	if input.AmountMin != nil {
		b.AmountMin = *input.AmountMin
	}
	if input.AmountMax != nil {
		b.AmountMax = *input.AmountMax
	}

	for _, v := range []float64{b.RateMin, b.RateMax, b.AmountMin, b.AmountMax} {
		if !money.Finite(v) {
			return b, fmt.Errorf("%w: rate and amount bounds must be finite", ErrInvalidInput)
		}
	}

	switch {
	case b.From.After(b.To):
		return b, fmt.Errorf("%w: from date must not be after to date", ErrInvalidInput)
	case b.RateMin <= 0 || b.RateMax < b.RateMin:
		return b, fmt.Errorf("%w: rate range must satisfy 0 < min <= max", ErrInvalidInput)
	case b.AmountMin < 0 || b.AmountMax < b.AmountMin:
		return b, fmt.Errorf("%w: amount range must satisfy 0 <= min <= max", ErrInvalidInput)
	case !money.Finite(b.AmountMax / b.RateMin):
		return b, fmt.Errorf("%w: volume is out of range for these bounds", ErrInvalidInput)
	}
	return b, nil
}

func fileNames(entries []model.BatchEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.FileName)
	}
	return names
}
