// cmd/wackywidget/main.go
//
// Entry point for the wackywidget organization manager.
//
// Flow:
// 1. Load .wackywidget/config.yaml (or defaults) and apply flag overrides
// 2. Open the diagnostic log, journal and metrics recorder
// 3. Run the TUI when attached to a terminal, the line interpreter otherwise

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
