package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		url  string
		want int
	}{
		{"/api/audit", 1},
		{"/api/audit?page=", 1},
		{"/api/audit?page=abc", 1},
		{"/api/audit?page=0", 1},
		{"/api/audit?page=-3", 1},
		{"/api/audit?page=1", 1},
		{"/api/audit?page=7", 7},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", tc.url, nil)
		if got := ParsePage(r); got != tc.want {
			t.Errorf("ParsePage(%q): got %d, want %d", tc.url, got, tc.want)
		}
	}
}

func TestSkip(t *testing.T) {
	if got := Skip(1); got != 0 {
		t.Errorf("Skip(1): got %d, want 0", got)
	}
	if got := Skip(3); got != int64(2*PageSize) {
		t.Errorf("Skip(3): got %d, want %d", got, 2*PageSize)
	}
}

func TestTrimPage(t *testing.T) {
	short := make([]int, PageSize-1)
	if TrimPage(&short) {
		t.Error("short slice should not report a next page")
	}
	if len(short) != PageSize-1 {
		t.Errorf("short slice trimmed: len %d", len(short))
	}

	exact := make([]int, PageSize)
	if TrimPage(&exact) {
		t.Error("exact slice should not report a next page")
	}

	over := make([]int, PageSize+1)
	if !TrimPage(&over) {
		t.Error("overfull slice should report a next page")
	}
	if len(over) != PageSize {
		t.Errorf("overfull slice: len %d, want %d", len(over), PageSize)
	}
}
