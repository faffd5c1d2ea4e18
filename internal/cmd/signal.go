package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
)

var errInterrupted = errors.New("ctrl+c")

func newSignalNotifyContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(ctx)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)

	go func() {
		for range ch {
			cancel(errInterrupted)
		}
	}()

	return ctx, func() {
		cancel(nil)
		signal.Stop(ch)
	}
}
