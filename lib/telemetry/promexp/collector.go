//
// (C) Copyright 2021-2024 Intel Corporation.
// (C) Copyright 2025 Google LLC
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package promexp

import (
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/daos-stack/contprops/lib/daos"
	"github.com/daos-stack/contprops/logging"
)

const (
	namespace = "container"
	subsystem = "props"
)

var (
	containerLabels = []string{"container", "label"}
	algorithmLabels = []string{"container", "label", "algorithm"}
)

type (
	// CollectorOpts contains options for the container collector.
	CollectorOpts struct {
		Ignores []string
	}

	propMetric struct {
		name    string
		desc    *prometheus.Desc
		algoFn  func(daos.ContainerProps) string
		valueFn func(*ContainerCollector, *resolvedContainer) (float64, bool)
	}

	// ContainerCollector exports the resolved properties of the
	// containers in its sources.
	ContainerCollector struct {
		log            logging.Logger
		summary        *prometheus.SummaryVec
		ignoredMetrics []*regexp.Regexp
		sources        []*ContainerSource
		metrics        []*propMetric
	}
)

func defaultCollectorOpts() *CollectorOpts {
	return &CollectorOpts{}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func newPropMetric(name, help string, valueFn func(daos.ContainerProps) float64) *propMetric {
	fqName := prometheus.BuildFQName(namespace, subsystem, name)
	return &propMetric{
		name: fqName,
		desc: prometheus.NewDesc(fqName, help, containerLabels, nil),
		valueFn: func(_ *ContainerCollector, rc *resolvedContainer) (float64, bool) {
			return valueFn(rc.props), true
		},
	}
}

func newAlgoMetric(name, help string, valueFn func(daos.ContainerProps) float64, algoFn func(daos.ContainerProps) string) *propMetric {
	pm := newPropMetric(name, help, valueFn)
	pm.desc = prometheus.NewDesc(pm.name, help, algorithmLabels, nil)
	pm.algoFn = algoFn
	return pm
}

func containerPropMetrics() []*propMetric {
	return []*propMetric{
		newAlgoMetric("checksum_enabled", "Whether data checksums are enabled",
			func(cp daos.ContainerProps) float64 { return boolValue(cp.ChecksumEnabled) },
			func(cp daos.ContainerProps) string { return cp.ChecksumType.String() }),
		newPropMetric("checksum_chunk_size_bytes", "Checksum chunk size",
			func(cp daos.ContainerProps) float64 { return float64(cp.ChunkSize) }),
		newPropMetric("server_verify_enabled", "Whether the server verifies checksums",
			func(cp daos.ContainerProps) float64 { return boolValue(cp.ServerVerify) }),
		newPropMetric("dedup_enabled", "Whether deduplication is enabled",
			func(cp daos.ContainerProps) float64 { return boolValue(cp.DedupEnabled) }),
		newPropMetric("dedup_verify_enabled", "Whether deduplication verifies candidates by comparison",
			func(cp daos.ContainerProps) float64 { return boolValue(cp.DedupVerify) }),
		newPropMetric("dedup_threshold_bytes", "Deduplication size threshold",
			func(cp daos.ContainerProps) float64 { return float64(cp.DedupThreshold) }),
		newAlgoMetric("compression_enabled", "Whether compression is enabled",
			func(cp daos.ContainerProps) float64 { return boolValue(cp.CompressionEnabled) },
			func(cp daos.ContainerProps) string { return cp.CompressionType.String() }),
		newAlgoMetric("encryption_enabled", "Whether encryption is enabled",
			func(cp daos.ContainerProps) float64 { return boolValue(cp.EncryptionEnabled) },
			func(cp daos.ContainerProps) string { return cp.EncryptionType.String() }),
		newPropMetric("redundancy_factor", "Container redundancy factor",
			func(cp daos.ContainerProps) float64 { return float64(cp.RedunFactor) }),
		{
			name: prometheus.BuildFQName(namespace, subsystem, "allowed_failures"),
			desc: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, "allowed_failures"),
				"Number of simultaneous failures tolerated by the redundancy factor", containerLabels, nil),
			valueFn: func(c *ContainerCollector, rc *resolvedContainer) (float64, bool) {
				af, err := rc.props.AllowedFailures()
				if err != nil {
					c.log.Errorf("container %s: %s", rc.entry.UUID, err)
					return 0, false
				}
				return float64(af), true
			},
		},
	}
}

// NewContainerCollector creates a collector for the supplied sources.
func NewContainerCollector(log logging.Logger, opts *CollectorOpts, sources ...*ContainerSource) (*ContainerCollector, error) {
	if len(sources) == 0 {
		return nil, errors.New("Collector must have > 0 sources")
	}

	if opts == nil {
		opts = defaultCollectorOpts()
	}

	c := &ContainerCollector{
		log:     log,
		sources: sources,
		summary: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Namespace: namespace,
				Subsystem: "exporter",
				Name:      "scrape_duration_seconds",
				Help:      "daos_contprop: Duration of a scrape job.",
			},
			[]string{"source", "result"},
		),
		metrics: containerPropMetrics(),
	}

	for _, pat := range opts.Ignores {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to compile %q", pat)
		}
		c.ignoredMetrics = append(c.ignoredMetrics, re)
	}

	return c, nil
}

func (c *ContainerCollector) isIgnored(name string) bool {
	for _, re := range c.ignoredMetrics {
		if re.MatchString(name) {
			return true
		}
	}

	return false
}

func (c *ContainerCollector) collectSource(ctx context.Context, cs *ContainerSource, ch chan<- prometheus.Metric) error {
	containers, err := cs.resolve(ctx)
	if err != nil {
		return err
	}

	for _, pm := range c.metrics {
		if c.isIgnored(pm.name) {
			continue
		}

		for _, rc := range containers {
			val, ok := pm.valueFn(c, rc)
			if !ok {
				continue
			}

			labels := []string{rc.entry.UUID.String(), rc.entry.Label}
			if pm.algoFn != nil {
				labels = append(labels, pm.algoFn(rc.props))
			}
			ch <- prometheus.MustNewConstMetric(pm.desc, prometheus.GaugeValue, val, labels...)
		}
	}

	return nil
}

// Collect implements prometheus.Collector.
func (c *ContainerCollector) Collect(ch chan<- prometheus.Metric) {
	if c == nil {
		return
	}
	if ch == nil {
		c.log.Error("passed a nil channel")
		return
	}

	ctx := context.Background()
	for _, cs := range c.sources {
		if !cs.IsEnabled() {
			continue
		}

		start := time.Now()
		result := "success"
		if err := c.collectSource(ctx, cs, ch); err != nil {
			c.log.Errorf("failed to collect source %q: %s", cs.Name, err)
			result = "failure"
		}
		c.summary.WithLabelValues(cs.Name, result).Observe(time.Since(start).Seconds())
	}

	c.summary.Collect(ch)
}

// Describe implements prometheus.Collector.
func (c *ContainerCollector) Describe(ch chan<- *prometheus.Desc) {
	c.summary.Describe(ch)
	for _, pm := range c.metrics {
		ch <- pm.desc
	}
}
