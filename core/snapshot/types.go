package snapshot

import "fmt"

// Order is the projection of a waybill returned by the time-window query:
// just what a dispatcher needs to place the order, with the epoch fields the
// raw exports use.
type Order struct {
	OrderID                 string  `json:"order_id"`
	SenderLat               float64 `json:"sender_lat"`
	SenderLng               float64 `json:"sender_lng"`
	EstimateMealPrepareTime int64   `json:"estimate_meal_prepare_time"`
	OrderPushTime           int64   `json:"order_push_time"`
}

// Courier is one active courier at the queried instant: the wave it is
// working, the orders assigned in that wave, its last known grab location and
// the count of assigned orders not yet delivered.
type Courier struct {
	CourierID         string   `json:"courier_id"`
	WaveID            int64    `json:"wave_id"`
	OrderIDs          []string `json:"order_ids"`
	GrabLat           float64  `json:"grab_lat"`
	GrabLng           float64  `json:"grab_lng"`
	UnfulfilledOrders int      `json:"unfulfilled_orders"`
}

// SystemCounts summarizes a state.
type SystemCounts struct {
	ActiveOrders   int `json:"active_orders"`
	ActiveCouriers int `json:"active_couriers"`
}

// State is the assembled observation at one instant. It is built fresh on
// every query and never mutated afterwards.
type State struct {
	ID        string       `json:"id"`
	Timestamp int64        `json:"timestamp"`
	Orders    []Order      `json:"orders"`
	Couriers  []Courier    `json:"couriers"`
	System    SystemCounts `json:"system"`
}

// InvalidTimestampError reports a query parameter that cannot denote an
// epoch instant.
type InvalidTimestampError struct {
	Value int64
}

func (e InvalidTimestampError) Error() string {
	return fmt.Sprintf("invalid timestamp %d: epoch seconds must not be negative", e.Value)
}
