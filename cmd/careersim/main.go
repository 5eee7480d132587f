// Command careersim simulates an athlete's career season by season inside a
// procedurally generated (or YAML-defined) league.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "careersim",
		Short:        "Career progression and transfer market simulator",
		SilenceUsage: true,
	}
	root.AddCommand(newSimulateCmd(), newLeagueCmd())
	return root
}
