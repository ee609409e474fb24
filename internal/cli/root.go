// Package cli holds the command-line entry points.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "devresp",
	Short: "Mechanical keyboard sounds for any keyboard",
	Long: `devresp listens to global keyboard state and plays a short click for every
key press and release. Hold LControl+LAlt+Enter to mute or unmute.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// runDaemon is replaced in tests so the root command never opens devices.
var runDaemon = Run

func runRoot(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := runDaemon(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Execute runs the root command. Errors are printed to stderr.
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "devresp: %v\n", err)
	}
	return err
}
