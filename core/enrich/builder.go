package enrich

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/lastmile-sim/courierenv/core/model"
	"github.com/lastmile-sim/courierenv/infra/logger"
	"github.com/lastmile-sim/courierenv/metrics"
)

// Builder runs the one-off enrichment pass: the temporal join attaching the
// per-dispatch active-order count, followed by the derived feature columns.
// The returned slice is a new copy; inputs are never written to, and the
// output is meant to be treated as immutable by everything downstream.
type Builder struct {
	cfg  Config
	log  logger.Logger
	sink metrics.Sink
}

func NewBuilder(cfg Config, log logger.Logger, sink metrics.Sink) *Builder {
	if log == nil {
		log = logger.NopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Builder{cfg: cfg, log: log, sink: sink}
}

// Build produces the enriched waybill table. The context bounds the whole
// pass; it is checked between stages so a timeout aborts without exposing a
// partially enriched table.
func (b *Builder) Build(ctx context.Context, waybills []model.Waybill, waves []model.CourierWave) ([]model.Waybill, error) {
	out := make([]model.Waybill, len(waybills))
	copy(out, waybills)

	stages := []struct {
		name string
		run  func([]model.Waybill, []model.CourierWave)
	}{
		{"active_orders", b.attachActiveOrders},
		{"rejection_rate", b.attachRejectionRates},
		{"peak_hours", b.attachPeakHours},
		{"area_orders", b.attachAreaOrders},
		{"shift_end", b.attachShiftEnd},
	}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("enrichment aborted before %s: %w", st.name, err)
		}
		start := time.Now()
		st.run(out, waves)
		b.sink.RecordBuildStage(st.name, len(out), time.Since(start))
		b.log.Debugw("stage done", map[string]any{"stage": st.name, "rows": len(out)})
	}
	b.log.Infof("enriched %d waybills against %d waves", len(out), len(waves))
	return out, nil
}

// attachActiveOrders aligns each waybill with the wave of the same
// courier-day whose interval contains the dispatch time and records the size
// of that wave's order list. Waybills with no covering wave keep 0. When
// several waves cover the same dispatch the first in input order wins; such
// data is reported by ValidateWaves.
func (b *Builder) attachActiveOrders(waybills []model.Waybill, waves []model.CourierWave) {
	byDay := make(map[string][]model.CourierWave, len(waves))
	for _, wv := range waves {
		key := wv.CourierDay()
		byDay[key] = append(byDay[key], wv)
	}
	for i := range waybills {
		w := &waybills[i]
		w.ActiveOrders = 0
		if w.DispatchTime.IsZero() {
			continue
		}
		for _, wv := range byDay[w.CourierDay()] {
			if wv.Contains(w.DispatchTime) {
				w.ActiveOrders = len(wv.OrderIDs)
				break
			}
		}
	}
}

// attachPeakHours fills the row-local hour_of_day and peak_hours columns from
// the platform order time.
func (b *Builder) attachPeakHours(waybills []model.Waybill, _ []model.CourierWave) {
	for i := range waybills {
		w := &waybills[i]
		w.HourOfDay = w.PlatformOrderTime.Hour()
		if b.cfg.isPeakHour(w.HourOfDay) {
			w.PeakHours = 1
		} else {
			w.PeakHours = 0
		}
	}
}

type areaKey struct {
	da string
	at int64
}

// attachAreaOrders counts dispatches sharing a delivery area and an exact
// dispatch time, a proxy for concurrent demand in the area. Rows without a
// dispatch time belong to no group and stay at 0.
func (b *Builder) attachAreaOrders(waybills []model.Waybill, _ []model.CourierWave) {
	counts := make(map[areaKey]int)
	for i := range waybills {
		if waybills[i].DispatchTime.IsZero() {
			continue
		}
		counts[areaKey{waybills[i].DaID, waybills[i].DispatchTime.Unix()}]++
	}
	for i := range waybills {
		w := &waybills[i]
		if w.DispatchTime.IsZero() {
			w.ActiveAreaOrders = 0
			continue
		}
		w.ActiveAreaOrders = counts[areaKey{w.DaID, w.DispatchTime.Unix()}]
	}
}

// attachShiftEnd derives, per courier-day, the latest dispatch time and from
// it each row's distance to the end of the courier's working day.
func (b *Builder) attachShiftEnd(waybills []model.Waybill, _ []model.CourierWave) {
	last := make(map[string]time.Time)
	for i := range waybills {
		w := &waybills[i]
		key := w.CourierDay()
		if w.DispatchTime.After(last[key]) {
			last[key] = w.DispatchTime
		}
	}
	threshold := float64(b.cfg.NearShiftEndSeconds)
	for i := range waybills {
		w := &waybills[i]
		w.LastDispatchTime = last[w.CourierDay()]
		if w.DispatchTime.IsZero() || w.LastDispatchTime.IsZero() {
			// No dispatch observed; the distance to shift end is undefined.
			w.TimeToShiftEnd = math.NaN()
			w.NearShiftEnd = 0
			continue
		}
		w.TimeToShiftEnd = w.LastDispatchTime.Sub(w.DispatchTime).Seconds()
		if w.TimeToShiftEnd >= 0 && w.TimeToShiftEnd <= threshold {
			w.NearShiftEnd = 1
		} else {
			w.NearShiftEnd = 0
		}
	}
}
