package enrich

import (
	"fmt"
	"sort"

	"github.com/lastmile-sim/courierenv/core/model"
)

// Finding is a data-quality issue discovered in the input datasets. Findings
// are reported, not fatal: the historical exports ship with a handful of them
// and the pipeline stays usable.
type Finding struct {
	Kind      string `json:"kind"`
	CourierID string `json:"courier_id,omitempty"`
	Dt        string `json:"dt,omitempty"`
	OrderID   string `json:"order_id,omitempty"`
	Detail    string `json:"detail"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
}

// ValidateWaves reports inverted wave intervals and overlapping waves for the
// same courier-day. Overlaps make the active-order join ambiguous (the first
// covering wave wins), so they are surfaced instead of silently tolerated.
func ValidateWaves(waves []model.CourierWave) []Finding {
	var findings []Finding
	byDay := make(map[string][]model.CourierWave)
	for _, wv := range waves {
		if err := wv.Validate(); err != nil {
			findings = append(findings, Finding{
				Kind:      "inverted_wave",
				CourierID: wv.CourierID,
				Dt:        wv.Dt,
				Detail:    err.Error(),
			})
			continue
		}
		byDay[wv.CourierDay()] = append(byDay[wv.CourierDay()], wv)
	}
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		group := byDay[day]
		sort.Slice(group, func(i, j int) bool {
			return group[i].WaveStartTime.Before(group[j].WaveStartTime)
		})
		// A long wave can swallow several later ones, so each wave is
		// compared against the furthest-reaching predecessor, not just its
		// neighbor.
		reach := group[0]
		for i := 1; i < len(group); i++ {
			if reach.Overlaps(group[i]) {
				findings = append(findings, Finding{
					Kind:      "overlapping_waves",
					CourierID: group[i].CourierID,
					Dt:        group[i].Dt,
					Detail: fmt.Sprintf("waves %d and %d overlap for courier %s on %s",
						reach.WaveID, group[i].WaveID, group[i].CourierID, group[i].Dt),
				})
			}
			if group[i].WaveEndTime.After(reach.WaveEndTime) {
				reach = group[i]
			}
		}
	}
	return findings
}

// ValidateWaybills reports rows whose arrival precedes their dispatch.
func ValidateWaybills(waybills []model.Waybill) []Finding {
	var findings []Finding
	for _, w := range waybills {
		if err := w.Validate(); err != nil {
			findings = append(findings, Finding{
				Kind:      "inverted_waybill",
				CourierID: w.CourierID,
				OrderID:   w.OrderID,
				Dt:        w.Dt,
				Detail:    err.Error(),
			})
		}
	}
	return findings
}

// CrossCheckAssignments reports assignment records referencing order ids that
// never appear in the waybill table. The auxiliary dispatch datasets are only
// used for this consistency check.
func CrossCheckAssignments(assignments []model.Assignment, waybills []model.Waybill) []Finding {
	known := make(map[string]bool, len(waybills))
	for _, w := range waybills {
		known[w.OrderID] = true
	}
	var findings []Finding
	for _, a := range assignments {
		for _, id := range a.CourierWaybills {
			if !known[id] {
				findings = append(findings, Finding{
					Kind:      "unknown_assignment_order",
					CourierID: a.CourierID,
					OrderID:   id,
					Dt:        a.Dt,
					Detail:    fmt.Sprintf("assignment for courier %s references unknown order %s", a.CourierID, id),
				})
			}
		}
	}
	return findings
}
