package cache

import (
	"testing"
	"time"
)

func TestCacheEntry_IsFresh(t *testing.T) {
	tests := []struct {
		name       string
		freshUntil time.Time
		want       bool
	}{
		{
			name:       "stale entry",
			freshUntil: time.Now().Add(-1 * time.Hour),
			want:       false,
		},
		{
			name:       "fresh entry",
			freshUntil: time.Now().Add(30 * time.Second),
			want:       true,
		},
		{
			name:       "just stale",
			freshUntil: time.Now().Add(-1 * time.Second),
			want:       false,
		},
		{
			name: "zero window",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &CacheEntry{FreshUntil: tt.freshUntil}
			if got := entry.IsFresh(); got != tt.want {
				t.Errorf("IsFresh() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCacheEntry_TTL(t *testing.T) {
	tests := []struct {
		name       string
		freshUntil time.Time
		wantMin    time.Duration
		wantMax    time.Duration
	}{
		{
			name:       "one minute remaining",
			freshUntil: time.Now().Add(1 * time.Minute),
			wantMin:    59 * time.Second,
			wantMax:    61 * time.Second,
		},
		{
			name:       "already stale",
			freshUntil: time.Now().Add(-1 * time.Hour),
			wantMin:    0,
			wantMax:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &CacheEntry{FreshUntil: tt.freshUntil}
			got := entry.TTL()
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("TTL() = %v, want between %v and %v", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestCacheEntry_Refresh(t *testing.T) {
	entry := &CacheEntry{
		CachedAt:   time.Now().Add(-2 * time.Minute),
		FreshUntil: time.Now().Add(-1 * time.Minute),
	}

	entry.Refresh(DefaultMaxAge)

	if !entry.IsFresh() {
		t.Error("IsFresh() = false after Refresh")
	}
	if age := entry.Age(); age > time.Second {
		t.Errorf("Age() = %v after Refresh, want ~0", age)
	}
	if ttl := entry.TTL(); ttl < DefaultMaxAge-time.Second || ttl > DefaultMaxAge {
		t.Errorf("TTL() = %v, want ~%v", ttl, DefaultMaxAge)
	}
}
