package gateway

import (
	"context"
	"sync/atomic"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Sternrassler/catalog-client/pkg/result"
)

func TestRecord_OutcomeLabels(t *testing.T) {
	var calls atomic.Int32
	// A call name of its own keeps the counters independent of other tests.
	call := NewCall("metrics-outcome", decodeInt)
	gw := newTestGateway(true)

	success := fetchesTotal.WithLabelValues("metrics-outcome", "success")
	failure := fetchesTotal.WithLabelValues("metrics-outcome", "failure")
	notFound := fetchErrorsTotal.WithLabelValues(string(result.KindNotFound))
	beforeNotFound := promtest.ToFloat64(notFound)

	call.Perform(context.Background(), gw, countingOp(&calls, &RawResponse{StatusCode: 200, Body: []byte("1")}, nil))
	call.Perform(context.Background(), gw, countingOp(&calls, &RawResponse{StatusCode: 404}, nil))

	if got := promtest.ToFloat64(success); got != 1 {
		t.Errorf("fetches{outcome=success} = %v, want 1", got)
	}
	if got := promtest.ToFloat64(failure); got != 1 {
		t.Errorf("fetches{outcome=failure} = %v, want 1", got)
	}
	// The kind is recorded on the error counter, never as an outcome label.
	if got := promtest.ToFloat64(fetchesTotal.WithLabelValues("metrics-outcome", string(result.KindNotFound))); got != 0 {
		t.Errorf("fetches{outcome=not_found} = %v, want 0", got)
	}
	if got := promtest.ToFloat64(notFound) - beforeNotFound; got != 1 {
		t.Errorf("fetch_errors{kind=not_found} delta = %v, want 1", got)
	}
}
