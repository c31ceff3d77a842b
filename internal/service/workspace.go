package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/bill-studio/internal/batch"
	"github.com/nurpe/bill-studio/internal/export"
	"github.com/nurpe/bill-studio/internal/model"
)

// ManifestGenerator builds the spreadsheet written after a successful batch.
type ManifestGenerator interface {
	Generate(manifest model.BatchManifest) ([]byte, error)
}

type Dependencies struct {
	Invoice  *model.InvoiceDocument
	Fuel     *model.FuelBillDocument
	PNG      export.SheetCapturer
	PDF      export.SheetCapturer
	Sink     export.Sink
	Manifest ManifestGenerator
	Runner   *batch.Runner
	Notifier Notifier
}

type BatchDefaults struct {
	RateMin   float64
	RateMax   float64
	AmountMin float64
	AmountMax float64
	Location  *time.Location
}

type Options struct {
	RenumberOnDelete bool
	Batch            BatchDefaults
	Now              func() time.Time
	Rand             *rand.Rand
}

// Workspace owns the two editable documents and everything that reads or
// writes them. One mutex guards all document state; the batch flag stands in
// for the disabled "generate" button while a run is in progress.
type Workspace struct {
	mu       sync.Mutex
	invoice  *model.InvoiceDocument
	fuel     *model.FuelBillDocument
	mode     model.Mode
	batching bool
	rnd      *rand.Rand

	capturers map[export.Format]export.SheetCapturer
	sink      export.Sink
	manifest  ManifestGenerator
	runner    *batch.Runner
	notifier  Notifier

	opts Options
	log  zerolog.Logger
}

func NewWorkspace(deps Dependencies, opts Options, log zerolog.Logger) *Workspace {
	if deps.Invoice == nil {
		deps.Invoice = model.NewInvoiceDocument()
	}
	if deps.Fuel == nil {
		deps.Fuel = model.NewFuelBillDocument()
	}
	if deps.Notifier == nil {
		deps.Notifier = NotifierFunc(func(BatchEvent) {})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Batch.Location == nil {
		opts.Batch.Location = time.UTC
	}

	capturers := map[export.Format]export.SheetCapturer{}
	if deps.PNG != nil {
		capturers[export.FormatPNG] = deps.PNG
	}
	if deps.PDF != nil {
		capturers[export.FormatPDF] = deps.PDF
	}

	return &Workspace{
		invoice:   deps.Invoice,
		fuel:      deps.Fuel,
		mode:      model.ModeTelecom,
		rnd:       opts.Rand,
		capturers: capturers,
		sink:      deps.Sink,
		manifest:  deps.Manifest,
		runner:    deps.Runner,
		notifier:  deps.Notifier,
		opts:      opts,
		log:       log,
	}
}

func (w *Workspace) Mode() model.Mode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mode
}

// SetMode switches which document is the visible one. The documents
// themselves are untouched.
func (w *Workspace) SetMode(mode model.Mode) error {
	if !mode.Valid() {
		return ErrInvalidInput
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.mode = mode
	return nil
}

func (w *Workspace) BatchRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.batching
}

func (w *Workspace) withLock(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn()
}
