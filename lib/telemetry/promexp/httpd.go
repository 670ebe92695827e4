//
// (C) Copyright 2021-2024 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package promexp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daos-stack/contprops/logging"
)

type (
	// RegMonFn defines a function signature for registering a Prometheus
	// monitor.
	RegMonFn func(context.Context, logging.Logger, prometheus.Registerer) error

	// ExporterConfig defines the configuration for the Prometheus exporter.
	ExporterConfig struct {
		Port     int
		Title    string
		Register RegMonFn
	}
)

// ContainerPropsTelemetryPort specifies the default port for container
// property telemetry.
const ContainerPropsTelemetryPort = 9193

// StartExporter starts the Prometheus exporter. The returned function
// shuts it down.
func StartExporter(ctx context.Context, log logging.Logger, cfg *ExporterConfig) (func(), error) {
	if cfg == nil {
		return nil, errors.New("invalid exporter config: nil config")
	}

	if cfg.Port <= 0 {
		return nil, errors.New("invalid exporter config: bad port")
	}

	if cfg.Register == nil {
		return nil, errors.New("invalid exporter config: nil register function")
	}

	registry := prometheus.NewRegistry()
	if err := cfg.Register(ctx, log, registry); err != nil {
		return nil, errors.Wrap(err, "failed to register container props monitor")
	}

	listenAddress := fmt.Sprintf("0.0.0.0:%d", cfg.Port)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		num, err := w.Write([]byte(fmt.Sprintf(`<html>
				<head><title>%s</title></head>
				<body>
				<h1>%s</h1>
				<p><a href="/metrics">Metrics</a></p>
				</body>
				</html>`, cfg.Title, cfg.Title)))
		if err != nil {
			log.Errorf("%d: %s", num, err)
		}
	})
	srv := http.Server{Addr: listenAddress, Handler: mux}

	// http listener is a blocking call
	go func() {
		log.Infof("Listening on %s", listenAddress)
		err := srv.ListenAndServe()
		log.Infof("Prometheus web exporter stopped: %s", err.Error())
	}()

	return func() {
		log.Debug("Shutting down Prometheus web exporter")

		// When this cleanup function is called, the original context
		// will probably have already been canceled.
		timedCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()
		if err := srv.Shutdown(timedCtx); err != nil {
			log.Noticef("HTTP server didn't shut down within timeout: %s", err.Error())
		}
	}, nil
}

// RegisterCollector returns a RegMonFn which registers a container
// collector over the supplied sources.
func RegisterCollector(opts *CollectorOpts, sources ...*ContainerSource) RegMonFn {
	return func(_ context.Context, log logging.Logger, reg prometheus.Registerer) error {
		c, err := NewContainerCollector(log, opts, sources...)
		if err != nil {
			return err
		}
		return reg.Register(c)
	}
}
