// Command fundingreport renders the dashboard views to files: one CSV per
// table, a workbook with every startup and investor, and the PNG charts.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"fundingpulse/internal/config"
	apperrors "fundingpulse/internal/errors"
	"fundingpulse/internal/exporter"
	"fundingpulse/internal/infrastructure"
	"fundingpulse/internal/services"
	"fundingpulse/internal/validation"
	"fundingpulse/pkg/contracts"
	"fundingpulse/pkg/contracts/domain"
)

// options are the parsed command line flags
type options struct {
	configFile string
	dataPath   string
	datePolicy string
	outDir     string
	startup    string
	investor   string
	trend      string
	workers    int
	version    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("Report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("fundingreport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configFile, "config", "", "YAML config file (defaults to config.yaml or configs/config.yaml)")
	fs.StringVar(&opts.dataPath, "data", "", "funding dataset (.csv or .xlsx); overrides the configured path")
	fs.StringVar(&opts.datePolicy, "date-policy", "", "handling of unparseable dates: fail or skip")
	fs.StringVar(&opts.outDir, "out", "", "output directory (defaults to the reports directory)")
	fs.StringVar(&opts.startup, "startup", "", "also export the drill-down of this startup")
	fs.StringVar(&opts.investor, "investor", "", "also export the drill-down of this investor key")
	fs.StringVar(&opts.trend, "trend", string(domain.TrendCount), "month-on-month trend measure: count or amount")
	fs.IntVar(&opts.workers, "workers", 4, "maximum concurrent renderers")
	fs.BoolVar(&opts.version, "version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if !domain.TrendMode(opts.trend).Valid() {
		return opts, fmt.Errorf("invalid -trend %q: want %s or %s", opts.trend, domain.TrendCount, domain.TrendAmount)
	}
	switch opts.datePolicy {
	case "", config.DatePolicyFail, config.DatePolicySkip:
	default:
		return opts, fmt.Errorf("invalid -date-policy %q: want %s or %s", opts.datePolicy, config.DatePolicyFail, config.DatePolicySkip)
	}
	if opts.workers < 1 {
		opts.workers = 1
	}
	return opts, nil
}

func loadConfig(opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.LoadFrom(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.dataPath != "" {
		if cfg.Dataset.Path, err = filepath.Abs(opts.dataPath); err != nil {
			return nil, fmt.Errorf("failed to resolve -data: %w", err)
		}
	}
	if opts.datePolicy != "" {
		cfg.Dataset.DatePolicy = opts.datePolicy
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return nil
	}
	ctx = infrastructure.EnsureTraceID(ctx)

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := infrastructure.NewLogger(stderr, cfg.Logging.Level)
	validator := validation.NewFileValidator(logger)

	if err := validator.ValidateDatasetSource(cfg.GetDatasetPath()); err != nil {
		return err
	}

	ds, loadTime, err := services.LoadDataset(ctx, cfg.Dataset, cfg.GetDatasetPath(), nil, logger)
	if err != nil {
		return err
	}
	svc := services.NewDashboardService(ds, loadTime, nil, nil, logger)

	outDir := opts.outDir
	if outDir == "" {
		outDir = cfg.GetPaths().ReportsDir
	}
	if outDir, err = filepath.Abs(outDir); err != nil {
		return fmt.Errorf("failed to resolve output directory: %w", err)
	}
	paths := &config.Paths{
		BaseDir:    outDir,
		ReportsDir: outDir,
		ChartsDir:  filepath.Join(outDir, "charts"),
	}
	if err := validator.ValidateOutputDirectory(paths.ChartsDir); err != nil {
		return err
	}

	r := &reportRun{
		svc:      svc,
		csv:      exporter.NewCSVWriter(paths, logger),
		workbook: exporter.NewWorkbookWriter(logger),
		charts:   exporter.NewChartRenderer(logger),
		paths:    paths,
		logger:   logger,
	}

	if err := r.render(ctx, opts); err != nil {
		return err
	}

	files := r.written()
	for _, f := range files {
		fmt.Fprintln(stdout, f)
	}
	charts, err := validator.CountFiles(paths.ChartsDir, "*.png")
	if err != nil {
		logger.WarnContext(ctx, "Failed to count rendered charts",
			slog.String("dir", paths.ChartsDir),
			slog.String("error", err.Error()))
	}
	logger.InfoContext(ctx, "Report generation complete",
		slog.String("out", outDir),
		slog.Int("files", len(files)),
		slog.Int("charts", charts))
	return nil
}

// reportRun renders every output of one invocation
type reportRun struct {
	svc      *services.DashboardService
	csv      *exporter.CSVWriter
	workbook *exporter.WorkbookWriter
	charts   *exporter.ChartRenderer
	paths    *config.Paths
	logger   *slog.Logger

	mu    sync.Mutex
	files []string
}

func (r *reportRun) record(paths ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = append(r.files, paths...)
}

func (r *reportRun) written() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	files := append([]string(nil), r.files...)
	sort.Strings(files)
	return files
}

// render builds the requested views, then writes every output concurrently.
// All outputs only read the views.
func (r *reportRun) render(ctx context.Context, opts options) error {
	overall, err := r.svc.Overall(ctx, domain.TrendMode(opts.trend))
	if err != nil {
		return err
	}

	var (
		startup  *domain.StartupReport
		investor *domain.InvestorReport
	)
	if opts.startup != "" {
		s, err := r.svc.Startup(ctx, opts.startup)
		if err != nil {
			return err
		}
		startup = &s
	}
	if opts.investor != "" {
		i, err := r.svc.Investor(ctx, opts.investor)
		if err != nil {
			return err
		}
		investor = &i
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers)

	g.Go(func() error {
		files, err := r.csv.WriteOverall(overall)
		r.record(files...)
		return err
	})
	for _, chart := range exporter.OverallCharts {
		g.Go(func() error {
			return r.writeChart(gctx, "overall_"+chart, func(w io.Writer) error {
				return r.charts.RenderOverall(w, chart, overall)
			})
		})
	}

	if startup != nil {
		g.Go(func() error {
			files, err := r.csv.WriteStartup(*startup)
			r.record(files...)
			return err
		})
		for _, chart := range exporter.StartupCharts {
			g.Go(func() error {
				return r.writeChart(gctx, "startup_"+exporter.Slug(startup.Name)+"_"+chart, func(w io.Writer) error {
					return r.charts.RenderStartup(w, chart, *startup)
				})
			})
		}
	}

	if investor != nil {
		g.Go(func() error {
			files, err := r.csv.WriteInvestor(*investor)
			r.record(files...)
			return err
		})
		for _, chart := range exporter.InvestorCharts {
			g.Go(func() error {
				return r.writeChart(gctx, "investor_"+exporter.Slug(investor.Investor)+"_"+chart, func(w io.Writer) error {
					return r.charts.RenderInvestor(w, chart, *investor)
				})
			})
		}
	}

	g.Go(func() error {
		return r.writeWorkbook(gctx, overall)
	})

	return g.Wait()
}

// writeWorkbook writes every startup and investor drill-down into one workbook
func (r *reportRun) writeWorkbook(ctx context.Context, overall domain.OverallReport) error {
	names, err := r.svc.StartupNames(ctx)
	if err != nil {
		return err
	}
	startups := make([]domain.StartupReport, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := r.svc.Startup(ctx, name)
		if err != nil {
			return err
		}
		startups = append(startups, s)
	}

	keys, err := r.svc.InvestorKeys(ctx)
	if err != nil {
		return err
	}
	investors := make([]domain.InvestorReport, 0, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		i, err := r.svc.Investor(ctx, key)
		if err != nil {
			return err
		}
		investors = append(investors, i)
	}

	path := r.paths.GetReportPath("funding_dashboard.xlsx")
	if err := r.workbook.Write(path, overall, startups, investors); err != nil {
		return err
	}
	r.record(path)
	return nil
}

func (r *reportRun) writeChart(ctx context.Context, name string, draw func(io.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := r.paths.GetChartPath(name + ".png")
	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create chart file", err).WithContext("path", path)
	}
	if err := draw(f); err != nil {
		f.Close()
		return apperrors.NewRenderError("failed to render chart", err).WithContext("chart", name)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("chart %s: %w", name, err)
	}

	r.record(path)
	return nil
}
