// Command canopyd serves scene-graph mirror sessions to native host
// peers over websocket, with health and metrics endpoints alongside.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "canopyd",
		Short: "Scene-graph mirror daemon",
		Long: `canopyd hosts scene-graph mirror sessions for native rendering hosts.

Peers connect over websocket and receive a stream of tree commands
(create, insert, remove, set-property, set-text); input events flow
back and are dispatched through the mirrored tree with bubbling and
click synthesis.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
