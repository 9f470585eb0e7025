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
		Use:   "popoverd",
		Short: "Live popover demo server",
		Long: `popoverd serves interactive popovers over WebSocket.

Each connection gets its own popover instance: the client streams
raw interaction events (clicks, hover, focus, keys) and receives
state patches back. The server also exposes a server-rendered demo
page, a health endpoint, and Prometheus metrics.`,
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
