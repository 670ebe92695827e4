//
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/daos-stack/contprops/common/cmdutil"
	"github.com/daos-stack/contprops/lib/telemetry/promexp"
)

type metricsCmd struct {
	outputCmd
	cmdutil.NoArgsCmd
	File    string   `long:"file" short:"f" required:"1" description:"container document (YAML)"`
	Ignores []string `long:"ignore" short:"i" description:"regular expression matching metric names to skip (may be repeated)"`
	Serve   bool     `long:"serve" short:"s" description:"serve metrics over HTTP until interrupted instead of printing them"`
	Port    int      `long:"port" short:"p" description:"HTTP port for --serve (default 9193)"`
}

func (cmd *metricsCmd) source() (*promexp.ContainerSource, error) {
	configs, err := loadContainerDocument(cmd.File)
	if err != nil {
		return nil, err
	}

	cs, err := promexp.NewContainerSource(cmd.Log(), cmd.File)
	if err != nil {
		return nil, err
	}
	for _, cfg := range configs {
		if err := cs.Add(&promexp.ContainerEntry{
			UUID:  cfg.UUID,
			Label: cfg.Label,
			Props: cfg.Props,
		}); err != nil {
			return nil, err
		}
	}

	return cs, nil
}

func (cmd *metricsCmd) collectorOpts() *promexp.CollectorOpts {
	return &promexp.CollectorOpts{Ignores: cmd.Ignores}
}

// writeMetrics gathers the collector output once and writes it in the
// Prometheus text exposition format.
func (cmd *metricsCmd) writeMetrics(cs *promexp.ContainerSource) error {
	ctx, err := cmd.LogCtx(context.Background())
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	if err := promexp.RegisterCollector(cmd.collectorOpts(), cs)(ctx, cmd.Log(), registry); err != nil {
		return err
	}

	families, err := registry.Gather()
	if err != nil {
		return FaultMetricsGatherFailed(err)
	}
	cmd.Debugf("gathered %d metrics in %d families", countMetrics(families), len(families))

	enc := expfmt.NewEncoder(cmd.writer, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return FaultMetricsGatherFailed(err)
		}
	}

	return nil
}

func countMetrics(families []*dto.MetricFamily) (count int) {
	for _, mf := range families {
		count += len(mf.GetMetric())
	}
	return
}

func (cmd *metricsCmd) serve(cs *promexp.ContainerSource) error {
	ctx, err := cmd.LogCtx(context.Background())
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := cmd.Port
	if port == 0 {
		port = promexp.ContainerPropsTelemetryPort
	}

	shutdown, err := promexp.StartExporter(ctx, cmd.Log(), &promexp.ExporterConfig{
		Port:     port,
		Title:    "DAOS Container Properties",
		Register: promexp.RegisterCollector(cmd.collectorOpts(), cs),
	})
	if err != nil {
		return err
	}
	defer shutdown()

	<-ctx.Done()
	return nil
}

func (cmd *metricsCmd) Execute(_ []string) error {
	cs, err := cmd.source()
	if err != nil {
		return err
	}
	cmd.Debugf("exporting %d containers", cs.Len())

	if cmd.Serve {
		return cmd.serve(cs)
	}
	return cmd.writeMetrics(cs)
}
