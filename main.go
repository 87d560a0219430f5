package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCLI(os.Stdout, os.Stderr).execute(ctx, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}
