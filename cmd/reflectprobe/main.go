// Command reflectprobe runs the reflection probes in order and
// exits non-zero on the first probe that does not pass. A passing
// run prints nothing unless a report format is requested.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"digital.vasic.reflectprobe/pkg/env"
	"digital.vasic.reflectprobe/pkg/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "reflectprobe: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd, g := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	return executeAndClose(cmd, g)
}

// executeAndClose runs cmd and then flushes the logger, also when
// the command failed and cobra skipped its post-run hooks.
func executeAndClose(cmd *cobra.Command, g *globalOptions) (err error) {
	defer func() { err = multierr.Append(err, g.closeLogger()) }()
	return cmd.Execute()
}

// globalOptions holds flags shared by every command.
type globalOptions struct {
	envFile   string
	logLevel  string
	logFormat string
	verbose   bool

	level  logging.LogLevel
	logger logging.Logger
}

func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, *globalOptions) {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "reflectprobe",
		Short: "Probe reflective operations of the object model",
		Long: `reflectprobe runs an ordered inventory of reflective checks:
explicit-receiver invocation, apply shadowing, Reflect.apply,
property definition and deletion, lookup on primitives, membership
and own-key enumeration. The first unmet assertion stops the run.

Run without a subcommand to execute the default plan.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindEnvironment(cmd, g); err != nil {
				return err
			}
			level, err := logging.ParseLevel(g.logLevel)
			if err != nil {
				return err
			}
			if g.verbose {
				level = logging.LevelDebug
			}
			logger, err := logging.New(g.logFormat, stderr, level)
			if err != nil {
				return err
			}
			g.level, g.logger = level, logger
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	pf := root.PersistentFlags()
	pf.StringVar(&g.envFile, "env-file", ".env",
		"dotenv file with REFLECTPROBE_* defaults for unset flags")
	pf.StringVar(&g.logLevel, "log-level", "error",
		"minimum log level: debug, info, warn or error")
	pf.StringVar(&g.logFormat, "log-format", logging.FormatJSON,
		"stderr log format: json or console")
	pf.BoolVarP(&g.verbose, "verbose", "v", false,
		"log probe progress at debug level")

	runCmd := newRunCmd(g, stdout, stderr)
	root.RunE = runCmd.RunE
	root.Flags().AddFlagSet(runCmd.Flags())
	root.AddCommand(runCmd, newListCmd(stdout))

	return root, g
}

// bindEnvironment fills flags left unset on the command line from
// REFLECTPROBE_* variables. The default env file may be absent.
func bindEnvironment(cmd *cobra.Command, g *globalOptions) error {
	loader := env.NewLoader()
	load := loader.LoadOptional
	if cmd.Flags().Changed("env-file") {
		load = loader.Load
	}
	if err := load(g.envFile); err != nil {
		return err
	}
	return loader.BindFlags(cmd.Flags())
}

// closeLogger flushes and drops the logger. Sync errors from
// writers that cannot be synced, such as terminals and pipes, are
// discarded; anything else is returned.
func (g *globalOptions) closeLogger() error {
	if g.logger == nil {
		return nil
	}
	err := g.logger.Close()
	g.logger = nil

	var kept error
	for _, e := range multierr.Errors(err) {
		if !errors.Is(e, syscall.ENOTTY) && !errors.Is(e, syscall.EINVAL) {
			kept = multierr.Append(kept, e)
		}
	}
	return kept
}
