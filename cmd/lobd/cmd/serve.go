package cmd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/lightsgoout/quantcup-lob/internal/api"
	"github.com/lightsgoout/quantcup-lob/pkg/lob"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the engine's query surface and Prometheus metrics over HTTP",
	RunE: func(c *cobra.Command, _ []string) error {
		metrics := lob.NewMetrics(prometheus.DefaultRegisterer)
		tracer := lob.NewTracer(logger)

		e := lob.New(
			lob.WithCapacities(cfg.LobCapacities()),
			lob.WithMetrics(metrics),
			lob.WithTracer(tracer),
		)

		server := api.New(e, logger)
		return server.Run(cfg.Server.HTTPAddr)
	},
}
