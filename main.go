// Command veil encrypts and decrypts files with a password.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/idelchi/veil/internal/commands"
	"github.com/idelchi/veil/internal/config"
	"github.com/idelchi/veil/internal/ui"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &config.Config{}

	root := commands.NewRootCommand(cfg, version)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.Error.Sprint("Error:"), err)

		return 1
	}

	return 0
}
