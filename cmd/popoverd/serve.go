package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	popover "github.com/vango-dev/popover"
	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/interaction"
	"github.com/vango-dev/popover/pkg/live"
)

func serveCmd() *cobra.Command {
	var (
		addr    string
		kind    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live popover server",
		Long: `Start the HTTP/WebSocket server.

Endpoints:
  /         server-rendered demo page
  /ws       WebSocket session endpoint
  /healthz  health check
  /metrics  Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKind(kind)
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))

			srv := live.NewServer(live.Config{
				Addr:            addr,
				Logger:          logger,
				Registry:        prometheus.NewRegistry(),
				Popover:         func() popover.Config { return demoPopover(k) },
				ShutdownTimeout: 10 * time.Second,
			})

			ctx, stop := signal.NotifyContext(context.Background(),
				os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":3000", "listen address")
	cmd.Flags().StringVarP(&kind, "kind", "k", "hover", "interaction kind (click, click-target, hover, hover-target)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func parseKind(s string) (interaction.Kind, error) {
	switch s {
	case "click":
		return interaction.Click, nil
	case "click-target":
		return interaction.ClickTargetOnly, nil
	case "hover":
		return interaction.Hover, nil
	case "hover-target":
		return interaction.HoverTargetOnly, nil
	default:
		return 0, fmt.Errorf("unknown interaction kind %q", s)
	}
}

func demoPopover(kind interaction.Kind) popover.Config {
	return popover.Config{
		InteractionKind: kind,
		Target:          dom.Button("Show popover"),
		Content: dom.Div(
			dom.Text("Served live over WebSocket. "),
			dom.Button(dom.Dismiss(), "Dismiss"),
		),
	}
}
