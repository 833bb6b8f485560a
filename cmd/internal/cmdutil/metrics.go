package cmdutil

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type metricsConfig struct {
	listenAddr string
	linger     time.Duration
}

var metricsCfg = metricsConfig{}

const metricsShutdownTimeout = 5 * time.Second

func RegisterMetricsFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&metricsCfg.listenAddr,
		"metrics-listen-addr",
		metricsCfg.listenAddr,
		"Address for the metrics endpoint to listen to. Metrics are not served if empty.",
	)
	cmd.PersistentFlags().DurationVar(
		&metricsCfg.linger,
		"metrics-linger",
		metricsCfg.linger,
		"How long to keep serving metrics after the comparison finishes, so they can be scraped.",
	)
}

func MetricsServer(logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := fmt.Fprint(w, "OK"); err != nil {
			logger.Err(err).Msgf("error writing to healthz")
		}
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// RunMetricsServer serves metrics in the background when a listen address is
// set. The returned func keeps the endpoint up for the linger period and then
// shuts it down; it must be called once the command is done.
func RunMetricsServer(logger zerolog.Logger) (stop func()) {
	if metricsCfg.listenAddr == "" {
		return func() {}
	}
	srv := &http.Server{
		Addr:              metricsCfg.listenAddr,
		Handler:           MetricsServer(logger),
		ReadHeaderTimeout: metricsShutdownTimeout,
	}
	go func() {
		logger.Debug().Str("listen-addr", srv.Addr).Msgf("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Err(err).Msgf("error exposing metrics endpoints")
		}
	}()
	linger := metricsCfg.linger
	return func() {
		if linger > 0 {
			logger.Info().Str("listen-addr", srv.Addr).Dur("linger", linger).Msgf("keeping metrics endpoint up")
			time.Sleep(linger)
		}
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Err(err).Msgf("error stopping metrics endpoint")
		}
	}
}
