package metrics

import (
	"fmt"
	"strings"
	"time"
)

// Sink records pipeline and query events for observability purposes.
type Sink interface {
	// RecordBuildStage records one enrichment stage: its name, the number of
	// rows it processed and how long it took.
	RecordBuildStage(stage string, rows int, d time.Duration)
	// RecordQuery records a snapshot query and the number of results it
	// returned.
	RecordQuery(kind string, results int)
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordBuildStage(string, int, time.Duration) {}
func (NopSink) RecordQuery(string, int)                     {}

// Config defines the metrics exposure settings.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if !strings.Contains(c.PrometheusAddr, ":") {
		return fmt.Errorf("invalid prometheus_addr %q: want host:port", c.PrometheusAddr)
	}
	return nil
}
