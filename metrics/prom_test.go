package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("NewPromSink: %v", err)
	}
	sink.RecordBuildStage("active_orders", 120, 5*time.Millisecond)
	sink.RecordQuery("active_couriers", 3)
	sink.RecordQuery("active_couriers", 0)

	if got := testutil.ToFloat64(sink.stageRows.WithLabelValues("active_orders")); got != 120 {
		t.Errorf("stage rows = %v, want 120", got)
	}
	if got := testutil.ToFloat64(sink.queries.WithLabelValues("active_couriers", "false")); got != 1 {
		t.Errorf("non-empty queries = %v, want 1", got)
	}
	if got := testutil.ToFloat64(sink.queries.WithLabelValues("active_couriers", "true")); got != 1 {
		t.Errorf("empty queries = %v, want 1", got)
	}
	if got := testutil.ToFloat64(sink.queryResults.WithLabelValues("active_couriers")); got != 3 {
		t.Errorf("query results = %v, want 3", got)
	}
}

func TestPromSinkReregister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSink(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPromSink(reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}
