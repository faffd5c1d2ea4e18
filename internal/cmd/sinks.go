package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-logr/logr"
	"github.com/go-viper/mapstructure/v2"
	"github.com/hephbuild/starconsole/internal/config"
	"github.com/hephbuild/starconsole/internal/hconsole"
	"github.com/hephbuild/starconsole/internal/hcore/hlog"
	"github.com/hephbuild/starconsole/sink"
	"github.com/hephbuild/starconsole/sink/sinkcbor"
	"github.com/hephbuild/starconsole/sink/sinkjson"
	"github.com/hephbuild/starconsole/sink/sinklogr"
	"github.com/hephbuild/starconsole/sink/sinkotel"
	"github.com/hephbuild/starconsole/sink/sinkslog"
	"github.com/hephbuild/starconsole/sink/sinktee"
	"github.com/hephbuild/starconsole/sink/sinktext"
	"github.com/hephbuild/starconsole/sink/sinkwapc"
	"go.opentelemetry.io/otel/log/global"
	"go.uber.org/multierr"
)

type sinkEnv struct {
	ctx    context.Context //nolint:containedctx
	root   string
	runID  string
	clock  sink.Clock
	stdout io.Writer
	stderr io.Writer
}

type outputOptions struct {
	// Output is stdout, stderr or a file path relative to the working directory.
	Output string `mapstructure:"output"`
}

func (e sinkEnv) open(output string) (io.Writer, io.Closer, error) {
	switch output {
	case "", "stdout":
		return e.stdout, nil, nil
	case "stderr":
		return e.stderr, nil, nil
	}

	if !filepath.IsAbs(output) {
		output = filepath.Join(e.root, output)
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	return f, f, nil
}

type sinkFactory = func(env sinkEnv, options map[string]any) (hconsole.Printer, io.Closer, error)

var nameToSink = map[string]sinkFactory{
	sinktext.Name: func(env sinkEnv, options map[string]any) (hconsole.Printer, io.Closer, error) {
		var cfg outputOptions
		err := mapstructure.Decode(options, &cfg)
		if err != nil {
			return nil, nil, err
		}

		w, closer, err := env.open(cfg.Output)
		if err != nil {
			return nil, nil, err
		}

		return sinktext.New(w, sinktext.Options{Plain: plain}), closer, nil
	},
	sinkslog.Name: func(env sinkEnv, options map[string]any) (hconsole.Printer, io.Closer, error) {
		return sinkslog.New(env.ctx, nil), nil, nil
	},
	sinklogr.Name: func(env sinkEnv, options map[string]any) (hconsole.Printer, io.Closer, error) {
		return sinklogr.New(logr.FromSlogHandler(hlog.From(env.ctx).Handler())), nil, nil
	},
	sinkjson.Name: func(env sinkEnv, options map[string]any) (hconsole.Printer, io.Closer, error) {
		var cfg outputOptions
		err := mapstructure.Decode(options, &cfg)
		if err != nil {
			return nil, nil, err
		}

		w, closer, err := env.open(cfg.Output)
		if err != nil {
			return nil, nil, err
		}

		return sinkjson.New(w, sinkjson.Options{RunID: env.runID, Clock: env.clock}), closer, nil
	},
	sinkcbor.Name: func(env sinkEnv, options map[string]any) (hconsole.Printer, io.Closer, error) {
		var cfg struct {
			Path string `mapstructure:"path"`
		}
		err := mapstructure.Decode(options, &cfg)
		if err != nil {
			return nil, nil, err
		}

		if cfg.Path == "" {
			cfg.Path = "console" + sinkcbor.Ext
		}
		if !filepath.IsAbs(cfg.Path) {
			cfg.Path = filepath.Join(env.root, cfg.Path)
		}

		p, err := sinkcbor.NewFile(cfg.Path, sinkcbor.Options{RunID: env.runID, Clock: env.clock})
		if err != nil {
			return nil, nil, err
		}

		return p, p, nil
	},
	sinkotel.Name: func(env sinkEnv, options map[string]any) (hconsole.Printer, io.Closer, error) {
		return sinkotel.New(env.ctx, global.GetLoggerProvider(), sinkotel.Options{RunID: env.runID, Clock: env.clock}), nil, nil
	},
	sinkwapc.Name: func(env sinkEnv, options map[string]any) (hconsole.Printer, io.Closer, error) {
		var cfg struct {
			Namespace string `mapstructure:"namespace"`
		}
		err := mapstructure.Decode(options, &cfg)
		if err != nil {
			return nil, nil, err
		}

		p, err := sinkwapc.New(sinkwapc.Config{Namespace: cfg.Namespace})
		if err != nil {
			return nil, nil, err
		}

		return p, nil, nil
	},
}

type closers []io.Closer

func (c closers) Close() error {
	var err error
	for _, closer := range c {
		err = multierr.Append(err, closer.Close())
	}

	return err
}

// newPrinter builds the configured sinks. When names is not empty, only
// those sinks are built, whether enabled or not.
func newPrinter(env sinkEnv, cfg config.Config, names []string) (*sinktee.Printer, io.Closer, error) {
	sinks := cfg.EnabledSinks()
	if len(names) > 0 {
		sinks = nil
		for _, name := range names {
			i := slices.IndexFunc(cfg.Sinks, func(s config.Sink) bool {
				return s.Name == name
			})
			if i < 0 {
				return nil, nil, fmt.Errorf("sink %q: not configured", name)
			}
			sinks = append(sinks, cfg.Sinks[i])
		}
	}

	tee := sinktee.New()
	var cs closers

	for _, s := range sinks {
		factory, ok := nameToSink[s.Driver]
		if !ok {
			_ = cs.Close()

			return nil, nil, fmt.Errorf("sink %q: unknown driver %q", s.Name, s.Driver)
		}

		p, closer, err := factory(env, s.Options)
		if err != nil {
			_ = cs.Close()

			return nil, nil, fmt.Errorf("sink %q: %w", s.Name, err)
		}
		if closer != nil {
			cs = append(cs, closer)
		}

		if len(s.Levels) > 0 {
			p = hconsole.Filter(p, s.Levels...)
		}

		hlog.From(env.ctx).Debug("sink", "name", s.Name, "driver", s.Driver)

		tee.Add(p)
	}

	return tee, cs, nil
}
