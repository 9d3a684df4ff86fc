package model

import (
	"fmt"
	"time"
)

// UnknownWaveID marks a wave whose id was absent from the source data.
const UnknownWaveID int64 = -1

// CourierWave is one contiguous working session of a courier: a start/end
// interval and the orders handled during it.
type CourierWave struct {
	CourierID     string
	WaveID        int64
	WaveStartTime time.Time
	WaveEndTime   time.Time
	OrderIDs      []string
	Dt            string
}

// CourierDay returns the compound courier/day key for this wave.
func (cw CourierWave) CourierDay() string {
	return CourierDay(cw.CourierID, cw.Dt)
}

// Contains reports whether t falls inside the wave interval, bounds included.
func (cw CourierWave) Contains(t time.Time) bool {
	return !cw.WaveStartTime.After(t) && !cw.WaveEndTime.Before(t)
}

// Overlaps reports whether the two wave intervals intersect.
func (cw CourierWave) Overlaps(other CourierWave) bool {
	return !cw.WaveStartTime.After(other.WaveEndTime) && !other.WaveStartTime.After(cw.WaveEndTime)
}

// Validate checks that the interval is well formed.
func (cw CourierWave) Validate() error {
	if cw.WaveEndTime.Before(cw.WaveStartTime) {
		return fmt.Errorf("wave %d (courier %s): wave_end_time %v precedes wave_start_time %v",
			cw.WaveID, cw.CourierID, cw.WaveEndTime, cw.WaveStartTime)
	}
	return nil
}

// Assignment is an auxiliary dispatch record linking a courier to the
// waybills assigned to it. Both the dispatching-order and dispatch-waybill
// datasets normalize to this shape; they are parsed and cross-checked but not
// otherwise transformed.
type Assignment struct {
	CourierID       string
	CourierWaybills []string
	Dt              string
}
