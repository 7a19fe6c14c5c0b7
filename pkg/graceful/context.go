package graceful

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// Context returns a child of parent that is canceled when the process
// receives SIGINT or SIGTERM, allowing the worker and server to drain before
// exiting. The returned CancelFunc releases the signal watcher.
func Context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			log.Printf("Received %s, starting graceful shutdown...", s)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
