package model

import (
	"fmt"
	"time"
)

// Waybill is one delivery order's full lifecycle record: platform push,
// dispatch to a courier, grab (pickup) and arrival, with the geolocations
// observed along the way. Timestamps left at their zero value mean the event
// was not observed in the source data.
type Waybill struct {
	OrderID   string
	CourierID string
	DaID      string // delivery area id

	DispatchTime      time.Time
	GrabTime          time.Time
	ArriveTime        time.Time
	PlatformOrderTime time.Time
	OrderPushTime     time.Time

	EstimateMealPrepareTime time.Time

	SenderLat float64
	SenderLng float64
	GrabLat   float64
	GrabLng   float64

	// IsCourierGrabbed is 1 when the courier accepted the dispatch, 0 when
	// it was rejected or timed out.
	IsCourierGrabbed int

	// Dt is the calendar day of the record, e.g. "20221017".
	Dt string

	// Derived columns, populated by enrich.Build. Zero until then.
	ActiveOrders            int
	HistoricalRejectionRate float64
	HourOfDay               int
	PeakHours               int
	ActiveAreaOrders        int
	LastDispatchTime        time.Time
	TimeToShiftEnd          float64 // seconds until the courier's last dispatch of the day
	NearShiftEnd            int
}

// CourierDay returns the compound courier/day key used to align waybills with
// the wave covering the same courier-day.
func (w Waybill) CourierDay() string {
	return CourierDay(w.CourierID, w.Dt)
}

// Validate checks the record's internal time ordering.
func (w Waybill) Validate() error {
	if !w.DispatchTime.IsZero() && !w.ArriveTime.IsZero() && w.ArriveTime.Before(w.DispatchTime) {
		return fmt.Errorf("waybill %s: arrive_time %v precedes dispatch_time %v", w.OrderID, w.ArriveTime, w.DispatchTime)
	}
	return nil
}

// CourierDay builds the compound (courier_id, dt) join key.
func CourierDay(courierID, dt string) string {
	return courierID + "_" + dt
}
