package dto

import "testing"

func TestPageFilterNormalize(t *testing.T) {
	cases := []struct {
		name      string
		in        PageFilter
		wantPage  int
		wantLimit int
	}{
		{"zero values", PageFilter{}, 1, 10},
		{"negative page", PageFilter{Page: -3, Limit: 20}, 1, 20},
		{"oversized limit", PageFilter{Page: 2, Limit: 500}, 2, 10},
		{"in range", PageFilter{Page: 4, Limit: 50}, 4, 50},
	}

	for _, tc := range cases {
		tc.in.Normalize()
		if tc.in.Page != tc.wantPage || tc.in.Limit != tc.wantLimit {
			t.Errorf("%s: got page=%d limit=%d, want page=%d limit=%d",
				tc.name, tc.in.Page, tc.in.Limit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(PageFilter{Page: 2, Limit: 10}, 25)
	if meta.TotalPages != 3 {
		t.Fatalf("TotalPages = %d, want 3", meta.TotalPages)
	}
	if meta.TotalItems != 25 {
		t.Fatalf("TotalItems = %d, want 25", meta.TotalItems)
	}
	if meta.CurrentPage != 2 {
		t.Fatalf("CurrentPage = %d, want 2", meta.CurrentPage)
	}

	exact := NewPaginationMeta(PageFilter{Page: 1, Limit: 10}, 30)
	if exact.TotalPages != 3 {
		t.Fatalf("TotalPages = %d for exact division, want 3", exact.TotalPages)
	}

	empty := NewPaginationMeta(PageFilter{Page: 1, Limit: 10}, 0)
	if empty.TotalPages != 0 {
		t.Fatalf("TotalPages = %d for empty set, want 0", empty.TotalPages)
	}
}
