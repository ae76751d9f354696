// Command regnet enumerates the Boolean functions over a regulatory
// network's (activator, repressor) configurations, keeps the monotonic
// ones, and writes them as a CSV table and a PNG heat-map.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dd0wney/regnet-monotone/pkg/config"
	"github.com/dd0wney/regnet-monotone/pkg/engine"
	"github.com/dd0wney/regnet-monotone/pkg/export"
	"github.com/dd0wney/regnet-monotone/pkg/logging"
	"github.com/dd0wney/regnet-monotone/pkg/metrics"
	"github.com/dd0wney/regnet-monotone/pkg/present"
)

type options struct {
	configPath string
	csv        string
	png        string
	out        string
	workers    int
	grid       string
	explain    string
	verify     string
	metrics    string
	s3Bucket   string
	s3Prefix   string
	s3Region   string
	compress   bool
	quiet      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "regnet: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, *flag.FlagSet, error) {
	var o options
	fs := flag.NewFlagSet("regnet", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&o.csv, "csv", "", "CSV output file name (default monotonic_functions.csv)")
	fs.StringVar(&o.png, "png", "", "PNG heat-map file name (default plot.png)")
	fs.StringVar(&o.out, "out", "", "Output directory (default .)")
	fs.IntVar(&o.workers, "workers", 0, "Classification workers (1 = sequential)")
	fs.StringVar(&o.grid, "grid", "", "Level bounds as AxR, e.g. 2x2 for the 3x3 space")
	fs.StringVar(&o.explain, "explain", "", "Explain the verdict for one function, e.g. func65")
	fs.StringVar(&o.verify, "verify", "", "Compare the result against a previous CSV export")
	fs.StringVar(&o.metrics, "metrics", "", "Write Prometheus metrics to this textfile")
	fs.StringVar(&o.s3Bucket, "s3-bucket", "", "Also upload exports to this S3 bucket")
	fs.StringVar(&o.s3Prefix, "s3-prefix", "", "Key prefix for S3 uploads")
	fs.StringVar(&o.s3Region, "s3-region", "", "AWS region for S3 uploads")
	fs.BoolVar(&o.compress, "compress", false, "Snappy-compress local exports")
	fs.BoolVar(&o.quiet, "quiet", false, "Do not print the result table")
	err := fs.Parse(args)
	return o, fs, err
}

// parseGrid reads "AxR" as the maximum activator and repressor levels.
func parseGrid(s string) (int, int, error) {
	a, r, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("grid %q: want AxR", s)
	}
	maxA, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, fmt.Errorf("grid %q: activator: %w", s, err)
	}
	maxR, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil {
		return 0, 0, fmt.Errorf("grid %q: repressor: %w", s, err)
	}
	return maxA, maxR, nil
}

// buildConfig layers explicitly set flags over the file (or defaults).
func buildConfig(o options, fs *flag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	var gridErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "csv":
			cfg.Output.CSV = o.csv
		case "png":
			cfg.Output.PNG = o.png
		case "out":
			cfg.Output.Dir = o.out
		case "workers":
			cfg.Workers = o.workers
		case "grid":
			cfg.Grid.MaxActivator, cfg.Grid.MaxRepressor, gridErr = parseGrid(o.grid)
		case "metrics":
			cfg.Metrics.Textfile = o.metrics
		case "s3-bucket":
			cfg.S3.Bucket = o.s3Bucket
		case "s3-prefix":
			cfg.S3.Prefix = o.s3Prefix
		case "s3-region":
			cfg.S3.Region = o.s3Region
		case "compress":
			cfg.Output.Compress = o.compress
		case "quiet":
			cfg.Output.Terminal = !o.quiet
		}
	})
	if gridErr != nil {
		return cfg, gridErr
	}
	if os.Getenv("LOG_LEVEL") != "" {
		cfg.Log.Level = strings.ToLower(os.Getenv("LOG_LEVEL"))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	o, fs, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(o, fs)
	if err != nil {
		return err
	}

	logger := logging.NewStderrLogger(cfg.LogLevel())
	reg := metrics.NewRegistry()
	eng := engine.New(cfg, engine.WithLogger(logger), engine.WithMetrics(reg))

	if o.explain != "" {
		c, verdict, space, err := eng.Explain(o.explain)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s %v: %s\n", c.Label(), c.Bits(), verdict.Describe(space))
		return nil
	}

	res, err := eng.Run(ctx)
	if err != nil {
		return err
	}
	table := present.NewTable(res)

	if cfg.Output.Terminal {
		fmt.Fprintln(stdout, present.RenderTerminal(table))
	}

	if o.verify != "" {
		if err := export.Verify(o.verify, table); err != nil {
			return err
		}
		logger.Info("verified previous export", logging.Path(o.verify))
	}

	if err := exportAll(ctx, cfg, res, table, logger, reg); err != nil {
		return err
	}

	if cfg.Metrics.Textfile != "" {
		if err := reg.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
	}
	return nil
}

func exportAll(ctx context.Context, cfg config.Config, res *engine.Result, table *present.Table, logger logging.Logger, reg *metrics.Registry) error {
	if cfg.Output.CSV == "" && cfg.Output.PNG == "" {
		return nil
	}

	fileSink, err := export.NewFileSink(cfg.Output.Dir)
	if err != nil {
		return err
	}
	var sinks []export.Sink
	if cfg.Output.Compress {
		sinks = append(sinks, export.NewSnappySink(fileSink))
	} else {
		sinks = append(sinks, fileSink)
	}
	if cfg.S3.Bucket != "" {
		s3Sink, err := export.NewS3Sink(ctx, export.S3Options{
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
		if err != nil {
			return err
		}
		sinks = append(sinks, s3Sink)
	}

	exp := export.NewExporter(export.Manifest{
		RunID:      res.RunID,
		CreatedAt:  time.Now().UTC(),
		SpaceSize:  res.Space.Len(),
		Candidates: res.Candidates,
		Retained:   res.Set.Len(),
	}, sinks, export.WithLogger(logger.With(logging.Component("export"))), export.WithMetrics(reg))

	var errs []error
	if cfg.Output.CSV != "" {
		var buf bytes.Buffer
		if err := present.WriteCSV(&buf, table); err != nil {
			return err
		}
		errs = append(errs, exp.Put(ctx, cfg.Output.CSV, buf.Bytes()))
	}
	if cfg.Output.PNG != "" {
		var buf bytes.Buffer
		if err := present.WriteHeatmapPNG(&buf, table, present.DefaultHeatmapOptions()); err != nil {
			return err
		}
		errs = append(errs, exp.Put(ctx, cfg.Output.PNG, buf.Bytes()))
	}
	if cfg.Output.Manifest != "" {
		_, err := exp.Finish(ctx, cfg.Output.Manifest)
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	logger.Info("exports written", logging.Path(filepath.Clean(cfg.Output.Dir)))
	return nil
}
