package service

import (
	"context"
	"fmt"

	"github.com/nurpe/bill-studio/internal/derive"
	"github.com/nurpe/bill-studio/internal/export"
	"github.com/nurpe/bill-studio/internal/model"
	"github.com/nurpe/bill-studio/internal/render"
)

type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Export captures the document of the current mode.
func (w *Workspace) Export(ctx context.Context, format export.Format) (*ExportResult, error) {
	return w.ExportMode(ctx, "", format)
}

// ExportMode captures the document of the given mode, or of the current
// mode when mode is empty.
func (w *Workspace) ExportMode(ctx context.Context, mode model.Mode, format export.Format) (*ExportResult, error) {
	capturer, ok := w.capturers[format]
	if !ok {
		return nil, fmt.Errorf("%w: format %q is not available", ErrInvalidInput, format)
	}
	if mode != "" && !mode.Valid() {
		return nil, fmt.Errorf("%w: mode %q", ErrInvalidInput, mode)
	}

	var (
		sheet render.Sheet
		name  string
	)
	w.withLock(func() {
		if mode == "" {
			mode = w.mode
		}
		sheet, name = w.sheetLocked(mode, format)
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := capturer.Capture(&sheet)
	if err != nil {
		w.log.Error().Err(err).Str("file", name).Msg("capture failed")
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	w.log.Info().Str("file", name).Int("bytes", len(content)).Msg("document exported")
	return &ExportResult{FileName: name, ContentType: format.ContentType(), Content: content}, nil
}

// Save exports like ExportMode and stores the result in the sink.
func (w *Workspace) Save(ctx context.Context, mode model.Mode, format export.Format) (string, error) {
	if w.sink == nil {
		return "", fmt.Errorf("%w: no export sink configured", ErrExportFailed)
	}
	res, err := w.ExportMode(ctx, mode, format)
	if err != nil {
		return "", err
	}
	if err := w.sink.Save(ctx, res.FileName, res.Content); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return res.FileName, nil
}

func (w *Workspace) sheetLocked(mode model.Mode, format export.Format) (render.Sheet, string) {
	if mode == model.ModeFuel {
		return render.FuelSheet(w.fuel.Clone()), export.FileName(model.ModeFuel, w.fuel.InvNo, format)
	}
	view := w.invoiceViewLocked()
	res := derive.InvoiceResult{Totals: view.Totals, AmountWords: view.AmountWords}
	return render.InvoiceSheet(view.Document, res), export.FileName(model.ModeTelecom, view.Document.InvoiceNo, format)
}
