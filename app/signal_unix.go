//go:build !windows
// +build !windows

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// interruptible returns a context canceled when the process is asked to
// terminate.
func interruptible(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(c)
		select {
		case <-c:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
