package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		limit    string
		expected Params
	}{
		{"defaults when absent", "", "", Params{Page: 1, Limit: 10}},
		{"defaults when non-numeric", "abc", "xyz", Params{Page: 1, Limit: 10}},
		{"defaults when non-positive", "0", "-5", Params{Page: 1, Limit: 10}},
		{"valid values pass through", "3", "25", Params{Page: 3, Limit: 25}},
		{"limit capped", "1", "5000", Params{Page: 1, Limit: MaxLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.page, tt.limit))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 2, Params{Page: 2, Limit: 2}.Offset())
	assert.Equal(t, 40, Params{Page: 5, Limit: 10}.Offset())
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name       string
		params     Params
		total      int64
		totalPages int
		hasMore    bool
	}{
		{"five rows page two of three", Params{Page: 2, Limit: 2}, 5, 3, true},
		{"last page", Params{Page: 3, Limit: 2}, 5, 3, false},
		{"exact multiple", Params{Page: 2, Limit: 5}, 10, 2, false},
		{"empty table", Params{Page: 1, Limit: 10}, 0, 0, false},
		{"single full page", Params{Page: 1, Limit: 10}, 10, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage(tt.params, tt.total)
			assert.Equal(t, tt.totalPages, page.TotalPages)
			assert.Equal(t, tt.hasMore, page.HasMore)
			assert.Equal(t, tt.total, page.Total)
		})
	}
}

func TestNewOffsetPage(t *testing.T) {
	// hasMore reflects rows past the returned window, not the page index.
	page := NewOffsetPage(Params{Page: 1, Limit: 10}, 15, 10)
	assert.True(t, page.HasMore)

	page = NewOffsetPage(Params{Page: 2, Limit: 10}, 15, 5)
	assert.False(t, page.HasMore)

	page = NewOffsetPage(Params{Page: 1, Limit: 10}, 0, 0)
	assert.False(t, page.HasMore)
}
