package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// No repository found is the expected quiet failure: nothing
		// on stdout, nonzero exit, no noise on stderr either.
		if !errors.Is(err, errNoVCS) {
			fmt.Fprintf(os.Stderr, "vcprompt: %v\n", err)
		}
		os.Exit(1)
	}
}
