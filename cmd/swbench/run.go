package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"golang.org/x/sync/errgroup"

	"github.com/ygrebnov/stopwatch"
	oteladapter "github.com/ygrebnov/stopwatch/adapters/otel"
	promadapter "github.com/ygrebnov/stopwatch/adapters/prometheus"
	"github.com/ygrebnov/stopwatch/config"
	"github.com/ygrebnov/stopwatch/monitor"
)

const category = "swbench"

var errSimulated = errors.New("simulated failure")

type benchOptions struct {
	workers     int
	tasks       int
	monitors    int
	cancelRatio float64
	work        time.Duration
	configPath  string
	prometheus  bool
	otel        bool
}

func createRunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "run measured tasks and print monitor snapshots",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "concurrent workers", Value: 8},
			&cli.IntFlag{Name: "tasks", Aliases: []string{"n"}, Usage: "tasks to run", Value: 1000},
			&cli.IntFlag{Name: "monitors", Aliases: []string{"m"}, Usage: "monitors the tasks are spread over", Value: 4},
			&cli.FloatFlag{Name: "cancel-ratio", Usage: "fraction of tasks failing on purpose, in [0, 1]", Value: 0.1},
			&cli.DurationFlag{Name: "work", Usage: "simulated work per task", Value: 100 * time.Microsecond},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML or JSON settings file"},
			&cli.BoolFlag{Name: "prometheus", Usage: "also print the Prometheus view of the monitors"},
			&cli.BoolFlag{Name: "otel", Usage: "mirror instruments into OpenTelemetry and print collected points"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := benchOptions{
				workers:     int(cmd.Int("workers")),
				tasks:       int(cmd.Int("tasks")),
				monitors:    int(cmd.Int("monitors")),
				cancelRatio: cmd.Float("cancel-ratio"),
				work:        cmd.Duration("work"),
				configPath:  cmd.String("config"),
				prometheus:  cmd.Bool("prometheus"),
				otel:        cmd.Bool("otel"),
			}
			return bench(ctx, cmd.Root().Writer, opts)
		},
	}
}

func (o benchOptions) validate() error {
	switch {
	case o.workers <= 0:
		return fmt.Errorf("--workers must be positive, got %d", o.workers)
	case o.tasks < 0:
		return fmt.Errorf("--tasks must not be negative, got %d", o.tasks)
	case o.monitors <= 0:
		return fmt.Errorf("--monitors must be positive, got %d", o.monitors)
	case o.cancelRatio < 0 || o.cancelRatio > 1:
		return fmt.Errorf("--cancel-ratio must be in [0, 1], got %v", o.cancelRatio)
	case o.work < 0:
		return fmt.Errorf("--work must not be negative, got %s", o.work)
	}
	return nil
}

func bench(ctx context.Context, out io.Writer, opts benchOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	settings := config.Defaults()
	if opts.configPath != "" {
		s, err := config.LoadFile(opts.configPath)
		if err != nil {
			return err
		}
		settings = s
	}
	if err := settings.ApplyLogging(); err != nil {
		return err
	}

	repoOpts := settings.RepositoryOptions()
	var reader *sdkmetric.ManualReader
	if opts.otel {
		reader = sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		defer func() { _ = mp.Shutdown(context.Background()) }()

		pf, err := oteladapter.NewProviderFunc(mp.Meter(settings.OTel.InstrumentationName))
		if err != nil {
			return err
		}
		repoOpts = append(repoOpts, monitor.WithProviderFunc(pf))
	}

	repo, err := monitor.NewRepository(repoOpts...)
	if err != nil {
		return err
	}
	f, err := stopwatch.NewFactory(settings.FactoryOptions()...)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"workers": opts.workers,
		"tasks":   opts.tasks,
	}).Info("Starting benchmark")

	started := time.Now()
	if err := runTasks(ctx, f, repo, opts); err != nil {
		return err
	}
	total := time.Since(started)

	printSnapshots(out, repo.Snapshots(), total)

	if opts.prometheus {
		if err := printPrometheus(out, repo, settings.PrometheusOptions()); err != nil {
			return err
		}
	}
	if reader != nil {
		if err := printOTel(ctx, out, reader); err != nil {
			return err
		}
	}
	return nil
}

// runTasks measures opts.tasks executions. Task i fails on purpose when it falls in
// the first cancelRatio share of each hundred tasks, which keeps runs reproducible.
func runTasks(ctx context.Context, f *stopwatch.Factory, repo *monitor.Repository, opts benchOptions) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers)

	failBelow := int(math.Round(opts.cancelRatio * 100))
	for i := range opts.tasks {
		m := repo.Get(monitor.NewKey(fmt.Sprintf("task-%d", i%opts.monitors), category))
		fail := i%100 < failBelow
		g.Go(func() error {
			err := f.Measure(gctx, m, func(ctx context.Context) error {
				if opts.work > 0 {
					t := time.NewTimer(opts.work)
					defer t.Stop()
					select {
					case <-t.C:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
				if fail {
					return errSimulated
				}
				return nil
			})
			if errors.Is(err, errSimulated) {
				return nil
			}
			return err
		})
	}
	return g.Wait()
}

func printSnapshots(out io.Writer, snaps []monitor.Snapshot, total time.Duration) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MONITOR\tIN FLIGHT\tCOUNT\tMEAN\tMIN\tMAX")
	for _, s := range snaps {
		p := s.Performances
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\n",
			s.Key, s.Concurrency, p.Count,
			time.Duration(p.Mean), time.Duration(p.Min), time.Duration(p.Max),
		)
	}
	_ = tw.Flush()
	fmt.Fprintf(out, "total wall time: %s\n", total)
}

func printPrometheus(out io.Writer, repo *monitor.Repository, opts []promadapter.Option) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(promadapter.NewCollector(repo, opts...)); err != nil {
		return err
	}
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		fmt.Fprintf(out, "# %s (%d series)\n", mf.GetName(), len(mf.GetMetric()))
	}
	return nil
}

func printOTel(ctx context.Context, out io.Writer, reader *sdkmetric.ManualReader) error {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return err
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			points := 0
			switch d := m.Data.(type) {
			case metricdata.Sum[int64]:
				points = len(d.DataPoints)
			case metricdata.Histogram[int64]:
				points = len(d.DataPoints)
			}
			fmt.Fprintf(out, "otel %s [%s]: %d points\n", m.Name, m.Unit, points)
		}
	}
	return nil
}
