// Command st runs one logical command against every toolchain in a project.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/st-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/st-cli/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetBuilder(app.Build)
	code := cli.Execute(ctx)

	stop()
	os.Exit(code)
}
