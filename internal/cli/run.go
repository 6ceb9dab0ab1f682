package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/hupe1980/glassgen"
	"github.com/hupe1980/glassgen/blobstore"
	"github.com/hupe1980/glassgen/export"
	"github.com/hupe1980/glassgen/internal/compress"
	"github.com/hupe1980/glassgen/internal/config"
	"github.com/hupe1980/glassgen/promcollector"
)

type runOptions struct {
	metricsAddr string
	count       int
	seed        int64
	csv         string
	sqlite      string
}

func newRunCmd(root *RootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sample, evaluate and screen compositions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)

			ctx, cancel := commandContext(cmd, root)
			defer cancel()
			return runPipeline(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")
	f.IntVarP(&opts.count, "count", "n", 0, "override the number of sampled compositions")
	f.Int64Var(&opts.seed, "seed", 0, "override the sampler seed")
	f.StringVar(&opts.csv, "csv", "", "override the CSV export blob name")
	f.StringVar(&opts.sqlite, "sqlite", "", "override the SQLite export path")
	return cmd
}

// apply copies the flags the user set onto cfg.
func (o *runOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("metrics-addr") {
		cfg.Metrics.Addr = o.metricsAddr
	}
	if f.Changed("count") {
		cfg.Sampler.Count = o.count
	}
	if f.Changed("seed") {
		cfg.Sampler.Seed = o.seed
	}
	if f.Changed("csv") {
		cfg.Export.CSV = o.csv
	}
	if f.Changed("sqlite") {
		cfg.Export.SQLite = o.sqlite
	}
}

// runPipeline executes one screening run and exports the result.
func runPipeline(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	logger := newLogger(cfg.Log, stderr)

	store, err := OpenStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	setup, err := Resolve(ctx, cfg, store, logger)
	if err != nil {
		return err
	}

	optFns := []glassgen.Option{glassgen.WithLogger(logger)}
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		pc, err := promcollector.New(reg)
		if err != nil {
			return err
		}
		optFns = append(optFns, glassgen.WithMetricsCollector(pc))
		stop, err := serveMetrics(cfg.Metrics.Addr, reg, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	p, err := glassgen.New(setup.Pipeline, optFns...)
	if err != nil {
		return err
	}
	report, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if err := exportResult(ctx, cfg.Export, store, report); err != nil {
		return err
	}
	return printSummary(stdout, report)
}

// exportResult writes the screened rows to every configured writer.
func exportResult(ctx context.Context, cfg config.ExportConfig, store blobstore.BlobStore, report *glassgen.Report) error {
	if cfg.CSV == "" && cfg.SQLite == "" {
		return nil
	}
	table, err := export.FromResult(report.Result, cfg.Columns)
	if err != nil {
		return err
	}

	if cfg.CSV != "" {
		ct, err := compress.ParseType(cfg.Compression)
		if err != nil {
			return err
		}
		w := export.NewCSVWriter(store, cfg.CSV, export.WithCompression(ct), export.WithPrecision(cfg.Precision))
		if err := w.Write(ctx, table); err != nil {
			return fmt.Errorf("export csv %s: %w", cfg.CSV, err)
		}
	}

	if cfg.SQLite != "" {
		w, err := export.OpenSQLite(cfg.SQLite, cfg.Table)
		if err != nil {
			return err
		}
		werr := w.Write(ctx, table)
		if err := errors.Join(werr, w.Close()); err != nil {
			return fmt.Errorf("export sqlite %s: %w", cfg.SQLite, err)
		}
	}
	return nil
}

func printSummary(w io.Writer, r *glassgen.Report) error {
	res := r.Result
	ratio := 0.0
	if res.Total > 0 {
		ratio = float64(res.Len()) / float64(res.Total)
	}
	if _, err := fmt.Fprintf(w, "screened %d of %d compositions (%.4f%%)\n", res.Len(), res.Total, 100*ratio); err != nil {
		return err
	}
	for _, ws := range res.Windows {
		if _, err := fmt.Fprintf(w, "  %-24s passed %d\n", ws.Window.String(), ws.Passed); err != nil {
			return err
		}
	}
	for _, t := range r.Timings {
		if _, err := fmt.Fprintf(w, "  %-10s %s\n", t.Stage, t.Duration.Round(time.Microsecond)); err != nil {
			return err
		}
	}
	return nil
}

// serveMetrics exposes reg on addr until the returned stop func is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *glassgen.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
