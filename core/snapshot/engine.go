package snapshot

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lastmile-sim/courierenv/core/model"
	"github.com/lastmile-sim/courierenv/infra/logger"
	"github.com/lastmile-sim/courierenv/metrics"
)

// Config defines the query engine parameters.
type Config struct {
	// StateWindowSeconds is the width of the order window used when
	// assembling a state: a state at T contains the orders dispatched in
	// [T, T+window).
	StateWindowSeconds int `json:"state_window_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.StateWindowSeconds == 0 {
		c.StateWindowSeconds = 3600
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.StateWindowSeconds < 0 {
		return fmt.Errorf("state_window_seconds must not be negative")
	}
	return nil
}

// Engine answers point-in-time queries against the enriched tables. The
// tables are shared read-only after construction: no query writes to them, so
// calls are idempotent and safe to issue concurrently.
type Engine struct {
	waybills []model.Waybill
	waves    []model.CourierWave

	// arriveByOrder is built once so unfulfilled-order counting is a lookup
	// per order id instead of a table scan per courier.
	arriveByOrder map[string]time.Time

	cfg  Config
	log  logger.Logger
	sink metrics.Sink
}

// NewEngine builds a query engine over the enriched waybill table and the
// normalized waves.
func NewEngine(cfg Config, waybills []model.Waybill, waves []model.CourierWave, log logger.Logger, sink metrics.Sink) *Engine {
	if log == nil {
		log = logger.NopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	cfg.SetDefaults()
	arrive := make(map[string]time.Time, len(waybills))
	for i := range waybills {
		arrive[waybills[i].OrderID] = waybills[i].ArriveTime
	}
	return &Engine{
		waybills:      waybills,
		waves:         waves,
		arriveByOrder: arrive,
		cfg:           cfg,
		log:           log,
		sink:          sink,
	}
}

func epochTime(epoch int64) (time.Time, error) {
	if epoch < 0 {
		return time.Time{}, InvalidTimestampError{Value: epoch}
	}
	return time.Unix(epoch, 0).UTC(), nil
}

// OrdersInWindow returns the orders dispatched in [startEpoch, endEpoch).
// An empty result is a normal outcome, not an error.
func (e *Engine) OrdersInWindow(startEpoch, endEpoch int64) ([]Order, error) {
	start, err := epochTime(startEpoch)
	if err != nil {
		return nil, err
	}
	end, err := epochTime(endEpoch)
	if err != nil {
		return nil, err
	}
	orders := []Order{}
	for i := range e.waybills {
		w := &e.waybills[i]
		if w.DispatchTime.IsZero() || w.DispatchTime.Before(start) || !w.DispatchTime.Before(end) {
			continue
		}
		orders = append(orders, Order{
			OrderID:                 w.OrderID,
			SenderLat:               w.SenderLat,
			SenderLng:               w.SenderLng,
			EstimateMealPrepareTime: epochOrZero(w.EstimateMealPrepareTime),
			OrderPushTime:           epochOrZero(w.OrderPushTime),
		})
	}
	e.sink.RecordQuery("orders_in_window", len(orders))
	e.log.Debugw("orders in window", map[string]any{"start": startEpoch, "end": endEpoch, "count": len(orders)})
	return orders, nil
}

// ActiveCouriers returns the couriers whose wave interval contains the
// queried instant, each with its most recent grab location at or before that
// instant. Couriers with no grab event yet default to (0, 0).
func (e *Engine) ActiveCouriers(epoch int64) ([]Courier, error) {
	at, err := epochTime(epoch)
	if err != nil {
		return nil, err
	}
	type location struct {
		at       time.Time
		lat, lng float64
	}
	lastSeen := make(map[string]location)
	for i := range e.waybills {
		w := &e.waybills[i]
		if w.GrabTime.IsZero() || w.GrabTime.After(at) {
			continue
		}
		if prev, ok := lastSeen[w.CourierID]; !ok || w.GrabTime.After(prev.at) {
			lastSeen[w.CourierID] = location{at: w.GrabTime, lat: w.GrabLat, lng: w.GrabLng}
		}
	}
	couriers := []Courier{}
	for _, wv := range e.waves {
		if !wv.Contains(at) {
			continue
		}
		c := Courier{
			CourierID: wv.CourierID,
			WaveID:    wv.WaveID,
			OrderIDs:  wv.OrderIDs,
		}
		if c.OrderIDs == nil {
			c.OrderIDs = []string{}
		}
		if loc, ok := lastSeen[wv.CourierID]; ok {
			c.GrabLat, c.GrabLng = loc.lat, loc.lng
		}
		couriers = append(couriers, c)
	}
	e.sink.RecordQuery("active_couriers", len(couriers))
	e.log.Debugw("active couriers", map[string]any{"at": epoch, "count": len(couriers)})
	return couriers, nil
}

// UnfulfilledOrders counts how many of the given orders have not arrived by
// the queried instant. An empty input returns 0 without touching the tables.
func (e *Engine) UnfulfilledOrders(orderIDs []string, epoch int64) (int, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}
	at, err := epochTime(epoch)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, id := range orderIDs {
		if arrive, ok := e.arriveByOrder[id]; ok && arrive.After(at) {
			count++
		}
	}
	e.sink.RecordQuery("unfulfilled_orders", count)
	return count, nil
}

// ConstructState assembles the full observation at the queried instant: the
// orders dispatched in the configured window starting at it, the active
// couriers annotated with their unfulfilled-order counts, and summary counts.
func (e *Engine) ConstructState(epoch int64) (*State, error) {
	orders, err := e.OrdersInWindow(epoch, epoch+int64(e.cfg.StateWindowSeconds))
	if err != nil {
		return nil, err
	}
	couriers, err := e.ActiveCouriers(epoch)
	if err != nil {
		return nil, err
	}
	for i := range couriers {
		n, err := e.UnfulfilledOrders(couriers[i].OrderIDs, epoch)
		if err != nil {
			return nil, err
		}
		couriers[i].UnfulfilledOrders = n
	}
	return &State{
		ID:        uuid.NewString(),
		Timestamp: epoch,
		Orders:    orders,
		Couriers:  couriers,
		System: SystemCounts{
			ActiveOrders:   len(orders),
			ActiveCouriers: len(couriers),
		},
	}, nil
}

func epochOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
