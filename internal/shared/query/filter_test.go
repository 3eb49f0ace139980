package query

import "testing"

func TestPageFilter(t *testing.T) {
	tests := []struct {
		name       string
		filter     PageFilter
		wantOffset int
		wantLimit  int
	}{
		{"zero values default", PageFilter{}, 0, 10},
		{"first page", PageFilter{Page: 1, PageSize: 20}, 0, 20},
		{"third page", PageFilter{Page: 3, PageSize: 20}, 40, 20},
		{"oversized page size is capped", PageFilter{Page: 2, PageSize: 500}, 100, 100},
		{"negative page treated as first", PageFilter{Page: -1, PageSize: 20}, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Offset(); got != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", got, tt.wantOffset)
			}
			if got := tt.filter.Limit(); got != tt.wantLimit {
				t.Errorf("Limit() = %d, want %d", got, tt.wantLimit)
			}
		})
	}
}

func TestSortFilterOrderClause(t *testing.T) {
	tests := []struct {
		name   string
		filter SortFilter
		want   string
	}{
		{"empty sort by yields empty clause", SortFilter{SortOrder: "desc"}, ""},
		{"ascending by default", SortFilter{SortBy: "created_at"}, "created_at ASC"},
		{"descending lowercase", SortFilter{SortBy: "price", SortOrder: "desc"}, "price DESC"},
		{"descending uppercase", SortFilter{SortBy: "price", SortOrder: "DESC"}, "price DESC"},
		{"unknown order falls back to ascending", SortFilter{SortBy: "title", SortOrder: "sideways"}, "title ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.OrderClause(); got != tt.want {
				t.Errorf("OrderClause() = %q, want %q", got, tt.want)
			}
		})
	}
}
