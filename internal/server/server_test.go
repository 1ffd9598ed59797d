package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"syscall"
	"testing"

	"github.com/Sternrassler/catalog-client/internal/testutil"
	"github.com/Sternrassler/catalog-client/pkg/catalog"
	"github.com/Sternrassler/catalog-client/pkg/connectivity"
	"github.com/Sternrassler/catalog-client/pkg/gateway"
	"github.com/Sternrassler/catalog-client/pkg/result"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T, online bool) (*httptest.Server, *testutil.FakeFetcher) {
	t.Helper()
	fetcher := testutil.NewFakeFetcher()
	repo := catalog.NewRepository(fetcher, gateway.New(connectivity.NewStatic(online), zerolog.Nop()))
	srv := New(DefaultConfig(), repo, repo, nil, zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, fetcher
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s error = %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, true)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health error = %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if string(body) != "OK" {
		t.Errorf("Expected body 'OK', got %s", string(body))
	}
}

func TestReadyEndpoint(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer redisClient.Close()

	repo := catalog.NewRepository(testutil.NewFakeFetcher(), gateway.New(connectivity.NewStatic(true), zerolog.Nop()))
	handler := New(DefaultConfig(), repo, repo, redisClient, zerolog.Nop()).Handler()

	t.Run("ready", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})

	t.Run("not_ready_redis_down", func(t *testing.T) {
		mr.Close()
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503, got %d", w.Code)
		}
	})
}

func TestListEndpoint(t *testing.T) {
	ts, fetcher := newTestServer(t, true)
	fetcher.SetPage(40, testutil.Summaries(41, 42)...)

	var page pageJSON
	resp := getJSON(t, ts.URL+"/api/items?offset=40&limit=20", &page)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(page.Items) != 2 || page.Items[0].ID != 41 || page.Items[1].Name != "Name_42" {
		t.Errorf("items = %+v, want ids 41, 42", page.Items)
	}
	if page.NextOffset == nil || *page.NextOffset != 60 {
		t.Errorf("next_offset = %v, want 60", page.NextOffset)
	}

	calls := fetcher.ListCalls()
	if len(calls) != 1 || calls[0] != (testutil.ListCall{Limit: 20, Offset: 40}) {
		t.Errorf("ListCalls() = %+v, want [{20 40}]", calls)
	}
}

func TestListEndpoint_Defaults(t *testing.T) {
	ts, fetcher := newTestServer(t, true)

	var page pageJSON
	getJSON(t, ts.URL+"/api/items", &page)

	if page.NextOffset != nil {
		t.Errorf("next_offset = %v, want null for an empty page", *page.NextOffset)
	}
	if page.Items == nil || len(page.Items) != 0 {
		t.Errorf("items = %v, want empty array", page.Items)
	}
	if calls := fetcher.ListCalls(); calls[0] != (testutil.ListCall{Limit: 20, Offset: 0}) {
		t.Errorf("call = %+v, want {20 0}", calls[0])
	}
}

func TestListEndpoint_LimitCapped(t *testing.T) {
	ts, fetcher := newTestServer(t, true)

	getJSON(t, ts.URL+"/api/items?limit=1000", nil)

	if calls := fetcher.ListCalls(); calls[0].Limit != DefaultConfig().MaxLimit {
		t.Errorf("limit = %d, want %d", calls[0].Limit, DefaultConfig().MaxLimit)
	}
}

func TestListEndpoint_BadQuery(t *testing.T) {
	ts, fetcher := newTestServer(t, true)

	for _, q := range []string{"offset=-1", "offset=abc", "limit=0", "limit=x"} {
		var body errorJSON
		resp := getJSON(t, ts.URL+"/api/items?"+q, &body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, resp.StatusCode)
		}
		if body.Error != "bad_request" {
			t.Errorf("%s: error = %q, want bad_request", q, body.Error)
		}
	}
	if n := len(fetcher.ListCalls()); n != 0 {
		t.Errorf("ListCalls() = %d, want 0", n)
	}
}

func TestItemEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, true)

	var item itemDetailJSON
	resp := getJSON(t, ts.URL+"/api/items/25", &item)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	want := detailJSON(testutil.Detail(25))
	if item != want {
		t.Errorf("item = %+v, want %+v", item, want)
	}
}

func TestItemEndpoint_BadID(t *testing.T) {
	ts, _ := newTestServer(t, true)

	for _, id := range []string{"abc", "0", "-4"} {
		resp := getJSON(t, ts.URL+"/api/items/"+id, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("id %s: status = %d, want 400", id, resp.StatusCode)
		}
	}
}

func TestFailureStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		online     bool
		resp       *gateway.RawResponse
		err        error
		wantStatus int
		wantKind   result.ErrorKind
	}{
		{name: "offline", online: false, wantStatus: http.StatusServiceUnavailable, wantKind: result.KindNoConnectivity},
		{name: "not found", online: true, resp: &gateway.RawResponse{StatusCode: 404}, wantStatus: http.StatusNotFound, wantKind: result.KindNotFound},
		{name: "server", online: true, resp: &gateway.RawResponse{StatusCode: 503}, wantStatus: http.StatusBadGateway, wantKind: result.KindServer},
		{name: "network", online: true, err: syscall.ECONNRESET, wantStatus: http.StatusBadGateway, wantKind: result.KindNetwork},
		{name: "unknown", online: true, resp: &gateway.RawResponse{StatusCode: 400}, wantStatus: http.StatusInternalServerError, wantKind: result.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, fetcher := newTestServer(t, tt.online)
			fetcher.SetItemResponse(1, tt.resp, tt.err)

			var body errorJSON
			resp := getJSON(t, ts.URL+"/api/items/1", &body)

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if body.Error != string(tt.wantKind) {
				t.Errorf("error = %q, want %q", body.Error, tt.wantKind)
			}
			if body.RequestID == "" || body.RequestID != resp.Header.Get(RequestIDHeader) {
				t.Errorf("request_id = %q, header = %q", body.RequestID, resp.Header.Get(RequestIDHeader))
			}
		})
	}
}

func TestStatusForKind_Unhandled(t *testing.T) {
	if got := StatusForKind("bogus"); got != http.StatusInternalServerError {
		t.Errorf("StatusForKind(bogus) = %d, want 500", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, false)

	getJSON(t, ts.URL+"/api/items/1", nil)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	for _, name := range []string{"catalog_fetches_total", "catalog_offline_total"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("Expected metrics output to contain %s", name)
		}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if len(seen) != 36 {
			t.Errorf("generated id = %q, want a UUID", seen)
		}
		if w.Header().Get(RequestIDHeader) != seen {
			t.Errorf("header = %q, want %q", w.Header().Get(RequestIDHeader), seen)
		}
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if seen != "abc-123" {
			t.Errorf("id = %q, want abc-123", seen)
		}
	})
}

func TestLoggingMiddleware(t *testing.T) {
	var buf strings.Builder
	logger := zerolog.New(&buf)
	handler := RequestID(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
	})))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/items", nil))

	var entry map[string]any
	if err := json.Unmarshal([]byte(buf.String()), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", buf.String())
	}
	if entry["status_code"] != float64(http.StatusTeapot) {
		t.Errorf("status_code = %v, want 418", entry["status_code"])
	}
	if entry["path"] != "/api/items" {
		t.Errorf("path = %v, want /api/items", entry["path"])
	}
	if entry["request_id"] == "" {
		t.Error("request_id missing from log line")
	}
}
