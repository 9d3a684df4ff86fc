package app

import (
	"context"
	"fmt"
	"time"

	"github.com/lastmile-sim/courierenv/config"
	"github.com/lastmile-sim/courierenv/core/dataset"
	"github.com/lastmile-sim/courierenv/core/enrich"
	"github.com/lastmile-sim/courierenv/core/snapshot"
	"github.com/lastmile-sim/courierenv/infra/csvload"
	"github.com/lastmile-sim/courierenv/infra/logger"
	"github.com/lastmile-sim/courierenv/metrics"
)

// Service loads the raw datasets, runs the one-off enrichment pass and
// exposes the query engine over the result. Construction is the only
// expensive step; once New returns, the engine is read-only.
type Service struct {
	Engine *snapshot.Engine

	cfg      *config.Config
	log      logger.Logger
	sink     metrics.Sink
	findings []enrich.Finding
}

// New builds a Service from the configuration. Any missing required column or
// unreadable dataset aborts construction; no partially enriched engine is
// ever exposed.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	if err := logger.Configure(cfg.Logging.Level); err != nil {
		return nil, err
	}
	logg := logger.New("service")

	var sink metrics.Sink = metrics.NopSink{}
	if cfg.Metrics.PrometheusEnabled {
		promSink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sink = promSink
	}

	loader := csvload.NewLoader(logger.New("csvload"))
	norm := dataset.NewNormalizer(logger.New("dataset"))

	waybillTable, err := loader.Load(cfg.Datasets.Waybills, "waybills")
	if err != nil {
		return nil, err
	}
	waveTable, err := loader.Load(cfg.Datasets.CourierWaves, "courier_waves")
	if err != nil {
		return nil, err
	}
	dispatchingTable, err := loader.Load(cfg.Datasets.DispatchingOrders, "dispatching_orders")
	if err != nil {
		return nil, err
	}
	dispatchWaybillTable, err := loader.Load(cfg.Datasets.DispatchWaybills, "dispatch_waybills")
	if err != nil {
		return nil, err
	}

	waybills, err := norm.Waybills(waybillTable)
	if err != nil {
		return nil, err
	}
	waves, err := norm.Waves(waveTable)
	if err != nil {
		return nil, err
	}
	assignments, err := norm.Assignments(dispatchingTable)
	if err != nil {
		return nil, err
	}
	auxAssignments, err := norm.Assignments(dispatchWaybillTable)
	if err != nil {
		return nil, err
	}
	assignments = append(assignments, auxAssignments...)

	findings := enrich.ValidateWaves(waves)
	findings = append(findings, enrich.ValidateWaybills(waybills)...)
	findings = append(findings, enrich.CrossCheckAssignments(assignments, waybills)...)
	for _, f := range findings {
		logg.Warnf("data quality: %s", f)
	}

	buildCtx := ctx
	if cfg.Features.BuildTimeoutSeconds > 0 {
		var cancel context.CancelFunc
		buildCtx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Features.BuildTimeoutSeconds)*time.Second)
		defer cancel()
	}
	enriched, err := enrich.NewBuilder(cfg.Features, logger.New("enrich"), sink).Build(buildCtx, waybills, waves)
	if err != nil {
		return nil, err
	}

	engine := snapshot.NewEngine(cfg.Snapshot, enriched, waves, logger.New("snapshot"), sink)
	return &Service{Engine: engine, cfg: cfg, log: logg, sink: sink, findings: findings}, nil
}

// StateWindowSeconds returns the configured width of the state order window.
func (s *Service) StateWindowSeconds() int {
	return s.cfg.Snapshot.StateWindowSeconds
}

// Findings returns the data-quality issues discovered while loading.
func (s *Service) Findings() []enrich.Finding {
	return s.findings
}

// ServeMetrics exposes the Prometheus endpoint until the context is canceled.
// It returns immediately when metrics are disabled.
func (s *Service) ServeMetrics(ctx context.Context) error {
	if !s.cfg.Metrics.PrometheusEnabled {
		return nil
	}
	return metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr, s.log)
}
