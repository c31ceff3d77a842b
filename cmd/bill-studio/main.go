package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/nurpe/bill-studio/internal/auth"
	"github.com/nurpe/bill-studio/internal/batch"
	"github.com/nurpe/bill-studio/internal/bundle"
	"github.com/nurpe/bill-studio/internal/config"
	"github.com/nurpe/bill-studio/internal/excel"
	"github.com/nurpe/bill-studio/internal/export"
	httphandler "github.com/nurpe/bill-studio/internal/http"
	"github.com/nurpe/bill-studio/internal/http/middleware"
	"github.com/nurpe/bill-studio/internal/http/ws"
	"github.com/nurpe/bill-studio/internal/logger"
	"github.com/nurpe/bill-studio/internal/model"
	"github.com/nurpe/bill-studio/internal/pdf"
	"github.com/nurpe/bill-studio/internal/raster"
	"github.com/nurpe/bill-studio/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "bill-studio",
		Usage: "edit, derive and export telecom invoices and fuel bills",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:  "render",
				Usage: "export one document into the export directory",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mode", Value: string(model.ModeTelecom), Usage: "telecom or fuel"},
					&cli.StringFlag{Name: "format", Value: string(export.FormatPNG), Usage: "png or pdf"},
				},
				Action: render,
			},
			{
				Name:  "batch",
				Usage: "generate and export randomized fuel bills",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "count", Required: true},
					&cli.TimestampFlag{Name: "from", Layout: "2006-01-02"},
					&cli.TimestampFlag{Name: "to", Layout: "2006-01-02"},
					&cli.Float64Flag{Name: "rate-min"},
					&cli.Float64Flag{Name: "rate-max"},
					&cli.Float64Flag{Name: "amount-min"},
					&cli.Float64Flag{Name: "amount-max"},
				},
				Action: runBatch,
			},
			{
				Name:  "token",
				Usage: "issue an access token for the API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "subject", Required: true},
					&cli.StringFlag{Name: "role", Value: model.RoleOperator, Usage: "operator or viewer"},
					&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour},
				},
				Action: issueToken,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "bill-studio: %v\n", err)
		os.Exit(1)
	}
}

type wiring struct {
	cfg       *config.Config
	log       zerolog.Logger
	workspace *service.Workspace
	parser    *auth.Parser
}

func setup(notifier service.Notifier) (*wiring, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(cfg.Environment)

	capturer, err := raster.NewCapturer(raster.Options{
		Scale:      cfg.Export.Scale,
		Padding:    cfg.Export.Padding,
		Background: raster.DefaultOptions().Background,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init image capturer: %w", err)
	}
	pdfGenerator := pdf.NewGenerator()

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	runner := batch.NewRunner(
		batch.NewRandomizer(rand.New(rand.NewSource(rnd.Int63())), cfg.Batch.Location),
		batch.Pacing{Settle: cfg.Batch.SettleDelay, Throttle: cfg.Batch.ThrottleDelay},
		log,
	)

	workspace := service.NewWorkspace(service.Dependencies{
		Invoice:  bundle.LoadInvoice(cfg.Data.InvoicePath, log),
		Fuel:     bundle.LoadFuel(cfg.Data.FuelPath, log),
		PNG:      capturer,
		PDF:      export.SheetCapturerFunc(pdfGenerator.Generate),
		Sink:     export.DirSink{Dir: cfg.Export.Dir},
		Manifest: excel.NewGenerator(),
		Runner:   runner,
		Notifier: notifier,
	}, service.Options{
		RenumberOnDelete: cfg.Invoice.RenumberOnDelete,
		Batch: service.BatchDefaults{
			RateMin:   cfg.Batch.RateMin,
			RateMax:   cfg.Batch.RateMax,
			AmountMin: cfg.Batch.AmountMin,
			AmountMax: cfg.Batch.AmountMax,
			Location:  cfg.Batch.Location,
		},
		Rand: rnd,
	}, log)

	var parser *auth.Parser
	if cfg.Auth.Enabled() {
		parser = auth.NewParser(cfg.Auth.AccessSecret)
	}
	return &wiring{cfg: cfg, log: log, workspace: workspace, parser: parser}, nil
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var hub *ws.Hub
	a, err := setup(service.NotifierFunc(func(e service.BatchEvent) {
		if hub != nil {
			hub.Publish(e)
		}
	}))
	if err != nil {
		return err
	}
	log := a.log

	hub = ws.NewHub(log)
	go hub.Run(ctx)

	if a.parser == nil {
		log.Warn().Msg("JWT_ACCESS_SECRET is empty, API is unauthenticated")
	}
	handler := httphandler.NewHandler(a.workspace, hub, a.parser, log)
	router := httphandler.NewRouter(handler, middleware.Auth(a.parser), a.cfg.Environment, a.cfg.HTTP.CORSOrigins)

	addr := fmt.Sprintf("%s:%d", a.cfg.HTTP.Host, a.cfg.HTTP.Port)
	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting bill studio")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func render(c *cli.Context) error {
	a, err := setup(nil)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	mode := model.Mode(c.String("mode"))
	if !mode.Valid() {
		return fmt.Errorf("unknown mode %q", mode)
	}

	name, err := a.workspace.Save(c.Context, mode, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, filepath.Join(a.cfg.Export.Dir, name))
	return nil
}

func runBatch(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(service.NotifierFunc(func(e service.BatchEvent) {
		if e.Type == service.BatchProgress {
			fmt.Fprintf(c.App.ErrWriter, "\r%d/%d", e.Current, e.Total)
		}
	}))
	if err != nil {
		return err
	}

	input := service.BatchInput{
		Count: c.String("count"),
		From:  c.Timestamp("from"),
		To:    c.Timestamp("to"),
	}
	for name, dst := range map[string]**float64{
		"rate-min":   &input.RateMin,
		"rate-max":   &input.RateMax,
		"amount-min": &input.AmountMin,
		"amount-max": &input.AmountMax,
	} {
		if c.IsSet(name) {
			v := c.Float64(name)
			*dst = &v
		}
	}

	res, err := a.workspace.RunBatch(ctx, input)
	fmt.Fprintln(c.App.ErrWriter)
	if err != nil {
		if res != nil {
			return fmt.Errorf("%d of %d bills exported: %w", len(res.Entries), res.Count, err)
		}
		return err
	}
	if res.Count == 0 {
		a.log.Warn().Str("count", input.Count).Msg("nothing to generate")
		return nil
	}
	for _, name := range res.Files {
		fmt.Fprintln(c.App.Writer, filepath.Join(a.cfg.Export.Dir, name))
	}
	if res.Manifest != "" {
		fmt.Fprintln(c.App.Writer, filepath.Join(a.cfg.Export.Dir, res.Manifest))
	}
	return nil
}

func issueToken(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Auth.Enabled() {
		return errors.New("JWT_ACCESS_SECRET is not set")
	}

	now := time.Now()
	token, err := auth.NewParser(cfg.Auth.AccessSecret).Issue(c.String("subject"), c.String("role"), jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.Duration("ttl"))),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, token)
	return nil
}
