package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/hephbuild/starconsole/internal/config"
	"github.com/hephbuild/starconsole/internal/hconsole"
	"github.com/hephbuild/starconsole/internal/hcore/hlog"
	"github.com/hephbuild/starconsole/internal/script"
	"github.com/hephbuild/starconsole/sink/sinkotel"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type runOptions struct {
	root    string
	config  config.Config
	sinks   []string
	runID   string
	stdout  io.Writer
	stderr  io.Writer
	summary io.Writer
}

func newRunCmd() *cobra.Command {
	var sinks []string
	var summary bool

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			root, err := os.Getwd()
			if err != nil {
				return err
			}

			cfg, err := config.Load(root, configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			if cmd.Flags().Changed("summary") {
				cfg.Summary = summary
			}

			hlog.From(ctx).Debug("config", "summary", cfg.Summary, "sinks", len(cfg.EnabledSinks()))

			return runScript(ctx, args[0], runOptions{
				root:    root,
				config:  cfg,
				sinks:   sinks,
				runID:   uuid.NewString(),
				stdout:  cmd.OutOrStdout(),
				stderr:  cmd.ErrOrStderr(),
				summary: cmd.ErrOrStderr(),
			})
		},
	}

	cmd.Flags().StringArrayVar(&sinks, "sink", nil, "sink to print to, can be repeated, defaults to all enabled sinks")
	cmd.Flags().BoolVar(&summary, "summary", false, "print counters once the script is done")

	return cmd
}

func runScript(ctx context.Context, path string, opts runOptions) (err error) {
	ctx, span := otel.Tracer(sinkotel.ScopeName).Start(ctx, "run", trace.WithAttributes(
		attribute.String("file", path),
		attribute.String("run_id", opts.runID),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	ctx = hlog.ContextWith(ctx, "run_id", opts.runID)

	tee, closer, err := newPrinter(sinkEnv{
		ctx:    ctx,
		root:   opts.root,
		runID:  opts.runID,
		stdout: opts.stdout,
		stderr: opts.stderr,
	}, opts.config, opts.sinks)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	printer, err := sinkotel.Instrument(ctx, tee, otel.Meter(sinkotel.ScopeName))
	if err != nil {
		return err
	}

	console := hconsole.New(hconsole.Config{
		Client: hconsole.NewPipeline(printer),
	})

	_, err = script.New(console).RunFile(ctx, path)

	if opts.config.Summary {
		printSummary(opts.summary, console.Counters())
	}

	return err
}

func printSummary(w io.Writer, counters *hconsole.Counters) {
	if counters.Len() == 0 {
		return
	}

	for label, count := range counters.Sorted() {
		_, _ = fmt.Fprintf(w, "%s: %d\n", label, count)
	}
}
