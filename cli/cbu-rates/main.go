package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/malusev998/cbu-rates/cli/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.Execute(&cmd.Config{Ctx: ctx})
	stop()

	if err != nil {
		os.Exit(1)
	}
}
