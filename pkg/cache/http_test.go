package cache

import (
	"bytes"
	"io"
	"net/http"
	"testing"
	"time"
)

func TestResponseToEntry(t *testing.T) {
	lastModified := time.Now().Add(-1 * time.Hour).UTC().Truncate(time.Second)

	tests := []struct {
		name    string
		resp    *http.Response
		wantErr bool
	}{
		{
			name: "response with validators",
			resp: &http.Response{
				StatusCode: 200,
				Header: http.Header{
					"Last-Modified": []string{lastModified.Format(http.TimeFormat)},
					"Etag":          []string{`"abc123"`},
					"Content-Type":  []string{"application/json"},
				},
				Body: io.NopCloser(bytes.NewReader([]byte(`{"count": 1}`))),
			},
		},
		{
			name: "response without validators",
			resp: &http.Response{
				StatusCode: 200,
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Body:       io.NopCloser(bytes.NewReader([]byte(`{"count": 1}`))),
			},
		},
		{
			name:    "nil response",
			resp:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := ResponseToEntry(tt.resp, DefaultMaxAge)
			if (err != nil) != tt.wantErr {
				t.Errorf("ResponseToEntry() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			body, _ := io.ReadAll(tt.resp.Body)
			if string(body) != `{"count": 1}` {
				t.Errorf("restored body = %q, want original", body)
			}
			if string(entry.Data) != `{"count": 1}` {
				t.Errorf("Data = %q, want original body", entry.Data)
			}
			if entry.StatusCode != tt.resp.StatusCode {
				t.Errorf("StatusCode = %v, want %v", entry.StatusCode, tt.resp.StatusCode)
			}
			if want := tt.resp.Header.Get("ETag"); entry.ETag != want {
				t.Errorf("ETag = %v, want %v", entry.ETag, want)
			}
			if tt.resp.Header.Get("Last-Modified") != "" && !entry.LastModified.Equal(lastModified) {
				t.Errorf("LastModified = %v, want %v", entry.LastModified, lastModified)
			}
			if got := entry.FreshUntil.Sub(entry.CachedAt); got != DefaultMaxAge {
				t.Errorf("acceptance window = %v, want %v", got, DefaultMaxAge)
			}
		})
	}
}

func TestIsCacheable(t *testing.T) {
	tests := []struct {
		name string
		resp *http.Response
		want bool
	}{
		{name: "nil", resp: nil, want: false},
		{name: "ok", resp: &http.Response{StatusCode: 200, Header: http.Header{}}, want: true},
		{name: "ok public", resp: &http.Response{StatusCode: 200, Header: http.Header{"Cache-Control": {"public, max-age=86400"}}}, want: true},
		{name: "no-store", resp: &http.Response{StatusCode: 200, Header: http.Header{"Cache-Control": {"private, No-Store"}}}, want: false},
		{name: "not found", resp: &http.Response{StatusCode: 404, Header: http.Header{}}, want: false},
		{name: "server error", resp: &http.Response{StatusCode: 503, Header: http.Header{}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCacheable(tt.resp); got != tt.want {
				t.Errorf("IsCacheable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldMakeConditionalRequest(t *testing.T) {
	tests := []struct {
		name  string
		entry *CacheEntry
		want  bool
	}{
		{name: "nil entry", entry: nil, want: false},
		{name: "entry with ETag", entry: &CacheEntry{ETag: `"abc123"`}, want: true},
		{name: "entry with Last-Modified", entry: &CacheEntry{LastModified: time.Now()}, want: true},
		{name: "entry without validators", entry: &CacheEntry{Data: []byte("{}")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldMakeConditionalRequest(tt.entry); got != tt.want {
				t.Errorf("ShouldMakeConditionalRequest() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddConditionalHeaders(t *testing.T) {
	lastModified := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name             string
		entry            *CacheEntry
		wantIfNoneMatch  string
		wantIfModifiedSi string
	}{
		{
			name:            "ETag preferred",
			entry:           &CacheEntry{ETag: `"abc"`, LastModified: lastModified},
			wantIfNoneMatch: `"abc"`,
		},
		{
			name:             "Last-Modified only",
			entry:            &CacheEntry{LastModified: lastModified},
			wantIfModifiedSi: lastModified.Format(http.TimeFormat),
		},
		{
			name:  "nil entry",
			entry: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "http://example.com/pokemon/1", nil)
			AddConditionalHeaders(req, tt.entry)

			if got := req.Header.Get("If-None-Match"); got != tt.wantIfNoneMatch {
				t.Errorf("If-None-Match = %q, want %q", got, tt.wantIfNoneMatch)
			}
			if got := req.Header.Get("If-Modified-Since"); got != tt.wantIfModifiedSi {
				t.Errorf("If-Modified-Since = %q, want %q", got, tt.wantIfModifiedSi)
			}
		})
	}

	AddConditionalHeaders(nil, &CacheEntry{ETag: `"x"`})
}
