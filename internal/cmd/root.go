package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/hephbuild/starconsole/internal/hcore/hlog"
	"github.com/hephbuild/starconsole/internal/hlipgloss"
	"github.com/spf13/cobra"
)

var plain bool
var debug bool
var configPath string

var levelVar slog.LevelVar

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:              "starconsole",
		Short:            "Run Starlark scripts with a console",
		TraverseChildren: true,
		SilenceUsage:     true,
		SilenceErrors:    true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				levelVar.Set(slog.LevelDebug)
			} else {
				levelVar.Set(slog.LevelInfo)
			}

			return nil
		},
	}

	isTerm := hlipgloss.IsTerminal(os.Stdout)

	rootCmd.PersistentFlags().BoolVarP(&plain, "plain", "", !isTerm, "disable colors")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "", false, "enable debug log")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file, skips the .starconsole.yml lookup")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func Execute() int {
	ctx, cancel := newSignalNotifyContext(context.Background())
	defer cancel()

	logger := hlog.NewTextLogger(os.Stderr, &levelVar)
	ctx = hlog.ContextWithLogger(ctx, logger)

	shutdown, err := setupOTelSDK(ctx)
	if err != nil {
		logger.Error(err.Error())
		return 1
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Error(err.Error())
		}
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Error(err.Error())
		return 1
	}

	return 0
}
