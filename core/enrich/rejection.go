package enrich

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/lastmile-sim/courierenv/core/model"
)

// attachRejectionRates fills historical_rejection_rate, defined as one minus
// the courier's mean acceptance. By default the mean is taken over the
// courier's entire record, which is what the consuming environments expect
// even though it looks ahead of each row. With CausalRejectionRate set, each
// row instead gets the mean over dispatches strictly before its own dispatch
// time, and a courier's first dispatch counts as fully accepting.
func (b *Builder) attachRejectionRates(waybills []model.Waybill, _ []model.CourierWave) {
	if b.cfg.CausalRejectionRate {
		b.attachCausalRejectionRates(waybills)
		return
	}
	grabbed := make(map[string][]float64)
	for i := range waybills {
		w := &waybills[i]
		grabbed[w.CourierID] = append(grabbed[w.CourierID], float64(w.IsCourierGrabbed))
	}
	rate := make(map[string]float64, len(grabbed))
	for courier, vals := range grabbed {
		rate[courier] = 1 - stat.Mean(vals, nil)
	}
	for i := range waybills {
		waybills[i].HistoricalRejectionRate = rate[waybills[i].CourierID]
	}
}

func (b *Builder) attachCausalRejectionRates(waybills []model.Waybill) {
	perCourier := make(map[string][]int)
	for i := range waybills {
		perCourier[waybills[i].CourierID] = append(perCourier[waybills[i].CourierID], i)
	}
	for _, idx := range perCourier {
		sort.SliceStable(idx, func(a, c int) bool {
			return waybills[idx[a]].DispatchTime.Before(waybills[idx[c]].DispatchTime)
		})
		// Rows sharing a dispatch time must not see each other, so the
		// running sum advances only when the time strictly increases.
		var sum, n float64
		committedSum, committedN := 0.0, 0.0
		for j, i := range idx {
			w := &waybills[i]
			if j > 0 && waybills[idx[j-1]].DispatchTime.Before(w.DispatchTime) {
				committedSum, committedN = sum, n
			}
			if committedN == 0 {
				w.HistoricalRejectionRate = 0
			} else {
				w.HistoricalRejectionRate = 1 - committedSum/committedN
			}
			sum += float64(w.IsCourierGrabbed)
			n++
		}
	}
}
