// Command graphedit edits, renders and serves directed graph documents.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/graphedit/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.New(os.Stderr, cli.LogInfo).Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
