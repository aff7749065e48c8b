package main

import (
	"context"
	"os"
	"os/signal"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], newApp(os.Stdin, os.Stdout, os.Stderr)))
}
