package cli

import (
	"fmt"
	"runtime"

	"github.com/Effyiex/dev-resp/internal/buildinfo"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run:   runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) {
	fmt.Fprintf(cmd.OutOrStdout(), "devresp %s (%s/%s)\n", buildinfo.Version(), runtime.GOOS, runtime.GOARCH)
}
