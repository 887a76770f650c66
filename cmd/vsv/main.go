// Command vsv decodes VSV documents and prints their rows.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ForrSiis/vsv/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}
