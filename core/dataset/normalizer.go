package dataset

import (
	"github.com/lastmile-sim/courierenv/core/model"
	"github.com/lastmile-sim/courierenv/infra/logger"
)

// Normalizer converts raw tables into typed records: epoch columns become
// timestamps, list-encoded columns become ordered id slices, artifact columns
// are stripped. Inputs are not mutated beyond artifact removal; malformed
// list cells parse to an empty list and are counted, never fatal.
type Normalizer struct {
	log logger.Logger
}

func NewNormalizer(log logger.Logger) *Normalizer {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Normalizer{log: log}
}

// Waybills normalizes the waybill table. The columns every downstream join
// and aggregation depends on must be present; the rest default per field.
func (n *Normalizer) Waybills(t Table) ([]model.Waybill, error) {
	t.DropArtifacts()
	if err := t.Require("order_id", "courier_id", "da_id", "dispatch_time",
		"is_courier_grabbed", "platform_order_time", "dt"); err != nil {
		return nil, err
	}
	out := make([]model.Waybill, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, model.Waybill{
			OrderID:                 r["order_id"],
			CourierID:               r["courier_id"],
			DaID:                    r["da_id"],
			DispatchTime:            parseEpoch(r["dispatch_time"]),
			GrabTime:                parseEpoch(r["grab_time"]),
			ArriveTime:              parseEpoch(r["arrive_time"]),
			PlatformOrderTime:       parseEpoch(r["platform_order_time"]),
			OrderPushTime:           parseEpoch(r["order_push_time"]),
			EstimateMealPrepareTime: parseEpoch(r["estimate_meal_prepare_time"]),
			SenderLat:               parseFloat(r["sender_lat"]),
			SenderLng:               parseFloat(r["sender_lng"]),
			GrabLat:                 parseFloat(r["grab_lat"]),
			GrabLng:                 parseFloat(r["grab_lng"]),
			IsCourierGrabbed:        parseBoolish(r["is_courier_grabbed"]),
			Dt:                      r["dt"],
		})
	}
	n.log.Infof("normalized %d waybills from %s", len(out), t.Name)
	return out, nil
}

// Waves normalizes the courier-wave table. A missing wave_id cell maps to
// model.UnknownWaveID; an unparseable order_ids cell maps to an empty list.
func (n *Normalizer) Waves(t Table) ([]model.CourierWave, error) {
	t.DropArtifacts()
	if err := t.Require("courier_id", "wave_start_time", "wave_end_time", "dt"); err != nil {
		return nil, err
	}
	out := make([]model.CourierWave, 0, len(t.Rows))
	badLists := 0
	for _, r := range t.Rows {
		ids, ok := ParseIDList(r["order_ids"])
		if !ok {
			badLists++
		}
		out = append(out, model.CourierWave{
			CourierID:     r["courier_id"],
			WaveID:        parseInt(r["wave_id"], model.UnknownWaveID),
			WaveStartTime: parseEpoch(r["wave_start_time"]),
			WaveEndTime:   parseEpoch(r["wave_end_time"]),
			OrderIDs:      ids,
			Dt:            r["dt"],
		})
	}
	if badLists > 0 {
		n.log.Warnf("%s: %d unparseable order_ids cells defaulted to empty", t.Name, badLists)
	}
	n.log.Infof("normalized %d waves from %s", len(out), t.Name)
	return out, nil
}

// Assignments normalizes an auxiliary dispatch table. These records are only
// cross-checked against the join inputs, so no column is required.
func (n *Normalizer) Assignments(t Table) ([]model.Assignment, error) {
	t.DropArtifacts()
	out := make([]model.Assignment, 0, len(t.Rows))
	badLists := 0
	for _, r := range t.Rows {
		ids, ok := ParseIDList(r["courier_waybills"])
		if !ok {
			badLists++
		}
		out = append(out, model.Assignment{
			CourierID:       r["courier_id"],
			CourierWaybills: ids,
			Dt:              r["dt"],
		})
	}
	if badLists > 0 {
		n.log.Warnf("%s: %d unparseable courier_waybills cells defaulted to empty", t.Name, badLists)
	}
	return out, nil
}
