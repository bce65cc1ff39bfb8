package cache

import (
	"strings"
	"testing"
)

func TestTripPageKey(t *testing.T) {
	tests := []struct {
		generation int64
		page       int
		pageSize   int
		want       string
	}{
		{0, 1, 10, "trips:page:0:1:10"},
		{3, 2, 25, "trips:page:3:2:25"},
		{12, 1, 100, "trips:page:12:1:100"},
	}

	for _, test := range tests {
		if got := tripPageKey(test.generation, test.page, test.pageSize); got != test.want {
			t.Errorf("tripPageKey(%d, %d, %d) = %q, want %q", test.generation, test.page, test.pageSize, got, test.want)
		}
	}
}

func TestTripPageKeyDistinctPerGeneration(t *testing.T) {
	before := tripPageKey(1, 1, 10)
	after := tripPageKey(2, 1, 10)
	if before == after {
		t.Error("expected distinct keys across generations")
	}
}

func TestHashIP(t *testing.T) {
	h := hashIP("192.168.1.1")
	if len(h) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(h))
	}
	if strings.ToLower(h) != h {
		t.Error("expected lowercase hex")
	}
	if h == hashIP("192.168.1.2") {
		t.Error("expected distinct hashes for distinct IPs")
	}
	if h != hashIP("192.168.1.1") {
		t.Error("expected stable hash for the same IP")
	}
}
