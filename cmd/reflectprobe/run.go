package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"digital.vasic.reflectprobe/pkg/checks"
	"digital.vasic.reflectprobe/pkg/logging"
	"digital.vasic.reflectprobe/pkg/metrics"
	"digital.vasic.reflectprobe/pkg/probe"
	"digital.vasic.reflectprobe/pkg/registry"
	"digital.vasic.reflectprobe/pkg/report"
	"digital.vasic.reflectprobe/pkg/runner"
)

// runOptions holds the flags of the run command.
type runOptions struct {
	planPath                 string
	resultsDir               string
	format                   string
	includePrototypeOverride bool
}

func newRunCmd(
	g *globalOptions, stdout, stderr io.Writer,
) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the probes of a plan in order",
		Example: `  reflectprobe run
  reflectprobe run --include-prototype-override --format markdown
  reflectprobe run --plan plans/keys.yaml --results-dir results`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if g.logger == nil {
				// Invoked without the root pre-run, as in tests.
				g.logger = logging.NullLogger{}
			}
			return runProbes(cmd.Context(), g, opts, stdout, stderr)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.planPath, "plan", "",
		"YAML or JSON plan listing probe IDs in execution order")
	f.StringVar(&opts.resultsDir, "results-dir", "",
		"directory for per-probe results, run summaries and history")
	f.StringVar(&opts.format, "format", "",
		"print a run summary to stdout: json, yaml or markdown")
	f.BoolVar(&opts.includePrototypeOverride,
		"include-prototype-override", false,
		"also run the Function.prototype.apply override probe")
	cmd.MarkFlagsMutuallyExclusive("plan", "include-prototype-override")

	return cmd
}

func runProbes(
	ctx context.Context,
	g *globalOptions,
	opts *runOptions,
	stdout, stderr io.Writer,
) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var reporter report.Reporter
	if opts.format != "" {
		if reporter, err = report.New(opts.format); err != nil {
			return err
		}
	}

	plan, err := selectPlan(opts)
	if err != nil {
		return err
	}

	base := g.logger
	if opts.resultsDir != "" {
		fileLog, openErr := openRunLog(opts.resultsDir, g.level)
		if openErr != nil {
			return openErr
		}
		defer multierr.AppendInvoke(&err, multierr.Close(fileLog))
		base = logging.NewMultiLogger(g.logger, fileLog)
	}

	log := logging.Adapt(base.WithFields(
		logging.PlanField(plan.Name),
	))
	reg := registry.NewRegistry()
	if err := checks.Register(reg, log, checks.All()...); err != nil {
		return err
	}

	collector := metrics.NewCollector()
	r := runner.NewRunner(
		runner.WithRegistry(reg),
		runner.WithLogger(log),
		runner.WithMetrics(collector),
	)

	results, runErr := r.RunPlan(ctx, plan, &probe.Config{
		ResultsDir: opts.resultsDir,
		Verbose:    g.verbose,
	})

	var outErr error
	if opts.resultsDir != "" && len(results) > 0 {
		outErr = multierr.Append(outErr, report.SaveRunSummary(
			report.BuildRunSummary(results), opts.resultsDir,
		))
		outErr = multierr.Append(outErr, report.AppendToHistory(
			filepath.Join(opts.resultsDir, "history.jsonl"),
			results...,
		))
	}
	if reporter != nil {
		data, err := reporter.GenerateRunSummary(results)
		if err == nil {
			_, err = stdout.Write(data)
		}
		outErr = multierr.Append(outErr, err)
	}
	if outErr != nil {
		fmt.Fprintf(stderr, "reflectprobe: writing reports: %v\n", outErr)
	}

	g.logger.Debug("run finished",
		logging.IntField("probes", len(results)),
		logging.IntField("runs", collector.RunTotal()),
	)

	if runErr != nil {
		return runErr
	}
	return outErr
}

func selectPlan(opts *runOptions) (*registry.Plan, error) {
	switch {
	case opts.planPath != "" && opts.includePrototypeOverride:
		return nil, errors.New(
			"--plan and --include-prototype-override are mutually exclusive",
		)
	case opts.planPath != "":
		return registry.LoadPlan(opts.planPath)
	case opts.includePrototypeOverride:
		return checks.FullPlan(), nil
	}
	return checks.DefaultPlan(), nil
}

// openRunLog returns a JSON logger appending to run.log in dir.
// Closing it syncs and closes the file.
func openRunLog(dir string, level logging.LogLevel) (logging.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "run.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	return &fileLogger{Logger: logging.NewZapLogger(f, level), f: f}, nil
}

type fileLogger struct {
	logging.Logger
	f *os.File
}

func (l *fileLogger) Close() error {
	return multierr.Append(l.Logger.Close(), l.f.Close())
}
