package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lastmile-sim/courierenv/config"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	waybills := writeCSV(t, dir, "waybills.csv",
		"Unnamed: 0,order_id,courier_id,da_id,dispatch_time,grab_time,arrive_time,platform_order_time,order_push_time,estimate_meal_prepare_time,sender_lat,sender_lng,grab_lat,grab_lng,is_courier_grabbed,dt\n"+
			"0,A,c1,d1,3000,3100,8000,2900,2800,2950,31.0,121.0,31.1,121.1,1,20221017\n"+
			"1,B,c1,d1,4000,4100,9000,3900,3800,3950,31.2,121.2,31.3,121.3,0,20221017\n")
	waves := writeCSV(t, dir, "waves.csv",
		"courier_id,wave_id,wave_start_time,wave_end_time,order_ids,dt\n"+
			"c1,5,1000,5000,\"[A, B]\",20221017\n")
	dispatching := writeCSV(t, dir, "dispatching.csv",
		"courier_id,courier_waybills,dt\nc1,\"[A]\",20221017\n")
	dispatchWaybills := writeCSV(t, dir, "dispatch_waybills.csv",
		"courier_id,courier_waybills,dt\nc1,\"[B]\",20221017\n")

	cfg := &config.Config{
		Datasets: config.DatasetsConfig{
			Waybills:          waybills,
			CourierWaves:      waves,
			DispatchingOrders: dispatching,
			DispatchWaybills:  dispatchWaybills,
		},
	}
	cfg.Features.SetDefaults()
	cfg.Snapshot.SetDefaults()
	cfg.Metrics.SetDefaults()
	return cfg
}

func TestServiceEndToEnd(t *testing.T) {
	svc, err := New(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(svc.Findings()) != 0 {
		t.Errorf("unexpected findings: %v", svc.Findings())
	}

	st, err := svc.Engine.ConstructState(3000)
	if err != nil {
		t.Fatalf("ConstructState: %v", err)
	}
	if st.System.ActiveOrders != 2 || st.System.ActiveCouriers != 1 {
		t.Fatalf("summary = %+v", st.System)
	}
	c := st.Couriers[0]
	if c.CourierID != "c1" || c.WaveID != 5 {
		t.Errorf("courier = %+v", c)
	}
	// Neither wave order has arrived by T=3000.
	if c.UnfulfilledOrders != 2 {
		t.Errorf("unfulfilled = %d, want 2", c.UnfulfilledOrders)
	}
}

func TestServiceMissingColumnAborts(t *testing.T) {
	cfg := testConfig(t)
	// Overwrite the waybill export with one lacking the dispatch column.
	cfg.Datasets.Waybills = writeCSV(t, t.TempDir(), "bad.csv", "order_id,dt\nA,20221017\n")
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected construction to fail on missing column")
	}
}
