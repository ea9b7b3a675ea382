package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/reoring/jscan/internal/cli"
	_ "github.com/reoring/jscan/source"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cli.RunAndHandleError(ctx, cli.New(cli.DefaultContext()))
}
