package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records pipeline and query events in Prometheus metrics.
type PromSink struct {
	stageDuration *prometheus.HistogramVec
	stageRows     *prometheus.GaugeVec
	queries       *prometheus.CounterVec
	queryResults  *prometheus.CounterVec
}

// NewPromSink registers the pipeline metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	stageDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "enrich_stage_duration_seconds",
		Help:    "Duration of each enrichment stage",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
	stageRows := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "enrich_stage_rows",
		Help: "Rows processed by each enrichment stage",
	}, []string{"stage"})
	queries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_queries_total",
		Help: "Total number of snapshot queries",
	}, []string{"kind", "empty"})
	queryResults := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_query_results_total",
		Help: "Total number of records returned by snapshot queries",
	}, []string{"kind"})

	for _, c := range []struct {
		collector prometheus.Collector
		replace   func(prometheus.Collector)
	}{
		{stageDuration, func(c prometheus.Collector) { stageDuration = c.(*prometheus.HistogramVec) }},
		{stageRows, func(c prometheus.Collector) { stageRows = c.(*prometheus.GaugeVec) }},
		{queries, func(c prometheus.Collector) { queries = c.(*prometheus.CounterVec) }},
		{queryResults, func(c prometheus.Collector) { queryResults = c.(*prometheus.CounterVec) }},
	} {
		if err := reg.Register(c.collector); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				c.replace(are.ExistingCollector)
			} else {
				return nil, err
			}
		}
	}

	return &PromSink{
		stageDuration: stageDuration,
		stageRows:     stageRows,
		queries:       queries,
		queryResults:  queryResults,
	}, nil
}

func (s *PromSink) RecordBuildStage(stage string, rows int, d time.Duration) {
	s.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	s.stageRows.WithLabelValues(stage).Set(float64(rows))
}

func (s *PromSink) RecordQuery(kind string, results int) {
	s.queries.WithLabelValues(kind, strconv.FormatBool(results == 0)).Inc()
	s.queryResults.WithLabelValues(kind).Add(float64(results))
}
