package application

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/eugenenazirov/schoolbag/internal/bag"
	"github.com/eugenenazirov/schoolbag/internal/config"
	"github.com/eugenenazirov/schoolbag/internal/console"
	"github.com/eugenenazirov/schoolbag/internal/i18n"
	"github.com/eugenenazirov/schoolbag/internal/manifest"
	"github.com/eugenenazirov/schoolbag/internal/opener"
	"github.com/eugenenazirov/schoolbag/internal/report"
	"github.com/eugenenazirov/schoolbag/internal/student"
)

// App encapsulates the application dependencies.
type App struct {
	cfg      config.Config
	catalog  *i18n.Catalog
	store    report.Store
	storeSet bool
	viewer   opener.Opener
	opener   opener.Opener
	console  *console.Console
	logger   *zap.Logger
}

// Option configures App behaviour.
type Option func(*App)

// WithOpener overrides the viewer used to open exported reports (nil disables
// opening). It is still rate limited by the configured open interval.
func WithOpener(op opener.Opener) Option {
	return func(a *App) {
		a.viewer = op
	}
}

// WithStore overrides the report store. Every session then saves to it.
func WithStore(store report.Store) Option {
	return func(a *App) {
		a.store = store
		a.storeSet = true
	}
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, out io.Writer, opts ...Option) (*App, error) {
	catalog, err := i18n.Load(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	var store report.Store = report.NewFileStore(cfg.OutputFile)
	if cfg.DryRun {
		store = report.NewMemoryStore()
	}

	app := &App{
		cfg:     cfg,
		catalog: catalog,
		store:   store,
		viewer:  opener.NewSystem(),
		console: console.New(out, catalog),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(app)
	}

	// one limiter for the whole process, shared by every session
	if cfg.OpenAfterExport && app.viewer != nil {
		app.opener = opener.NewThrottled(app.viewer, cfg.OpenInterval)
	}
	return app, nil
}

// RunAll runs each session in order and stops at the first failure. With more
// than one file-backed session, session n writes to report.SessionPath.
func (a *App) RunAll(ctx context.Context, sessions []manifest.Manifest) ([]student.ExportResult, error) {
	results := make([]student.ExportResult, 0, len(sessions))
	for i, m := range sessions {
		result, err := a.run(ctx, m, a.sessionStore(i+1))
		if err != nil {
			return results, fmt.Errorf("session %d (%s): %w", i+1, m.Student, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// Run packs the manifest's items for its student, unpacks the listed names,
// prints the bag and exports the report.
func (a *App) Run(ctx context.Context, m manifest.Manifest) (student.ExportResult, error) {
	return a.run(ctx, m, a.store)
}

func (a *App) sessionStore(n int) report.Store {
	if n <= 1 || a.storeSet || a.cfg.DryRun {
		return a.store
	}
	return report.NewFileStore(report.SessionPath(a.cfg.OutputFile, n))
}

func (a *App) run(ctx context.Context, m manifest.Manifest, store report.Store) (student.ExportResult, error) {
	s, err := student.New(m.Student,
		bag.WithCapacity(a.cfg.MaxItems),
		bag.WithMandatory(a.cfg.MandatoryItems...),
		bag.WithCatalog(a.catalog),
	)
	if err != nil {
		return student.ExportResult{}, fmt.Errorf("failed to create student: %w", err)
	}

	a.logger.Info("packing started",
		zap.String("student", s.Name()),
		zap.Int("items", len(m.Items)),
		zap.Int("capacity", a.cfg.MaxItems),
	)

	for _, entry := range m.Items {
		item := bag.NewItem(entry.Name, entry.Weight)
		err := s.Pack(item)
		a.console.Packed(item, err)
		if err != nil {
			a.logger.Warn("item rejected", zap.String("item", entry.Name), zap.Error(err))
		}
	}

	for _, name := range m.Unpack {
		item := s.Bag().Find(name)
		removed := item != nil && s.Unpack(item)
		a.console.Unpacked(name, removed)
	}

	a.console.Mandatory(s.Bag().CheckMandatory())
	s.ShowBag(a.console)

	result, err := s.Export(ctx, store, a.opener)
	if err != nil {
		return result, fmt.Errorf("failed to export report: %w", err)
	}
	switch {
	case errors.Is(result.OpenErr, opener.ErrThrottled):
		a.logger.Info("viewer launch skipped", zap.String("location", result.Location), zap.Duration("interval", a.cfg.OpenInterval))
	case result.OpenErr != nil:
		a.logger.Warn("could not open report", zap.String("location", result.Location), zap.Error(result.OpenErr))
	}
	a.console.Exported(result.Location, result.Opened, result.OpenErr)

	a.logger.Info("report exported",
		zap.String("location", result.Location),
		zap.Int("total_weight", s.Bag().CurrentWeight()),
		zap.Stringer("tier", s.Bag().Status().Tier()),
	)
	return result, nil
}

// Inspect prints a previously exported report.
func (a *App) Inspect(path string) error {
	r, err := report.NewFileStore(path).Load()
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}
	a.console.Report(r)
	return nil
}

// Store returns the report store exports are written to.
func (a *App) Store() report.Store {
	return a.store
}
