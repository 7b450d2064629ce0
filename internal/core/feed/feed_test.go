package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		requested int
		size      int
		want      Window
	}{
		{"empty store", 0, 1, 10, Window{Number: 1, Size: 10, NumPages: 1, Offset: 0}},
		{"empty store far page", 0, 7, 10, Window{Number: 1, Size: 10, NumPages: 1, Offset: 0}},
		{"first page", 13, 1, 10, Window{Number: 1, Size: 10, NumPages: 2, Offset: 0}},
		{"last partial page", 13, 2, 10, Window{Number: 2, Size: 10, NumPages: 2, Offset: 10}},
		{"past the end clamps to last", 13, 3, 10, Window{Number: 2, Size: 10, NumPages: 2, Offset: 10}},
		{"zero clamps to first", 13, 0, 10, Window{Number: 1, Size: 10, NumPages: 2, Offset: 0}},
		{"negative clamps to first", 13, -4, 10, Window{Number: 1, Size: 10, NumPages: 2, Offset: 0}},
		{"exact multiple", 20, 2, 10, Window{Number: 2, Size: 10, NumPages: 2, Offset: 10}},
		{"default size", 11, 2, 0, Window{Number: 2, Size: 10, NumPages: 2, Offset: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(tt.total, tt.requested, tt.size))
		})
	}
}

func TestWindowNavigation(t *testing.T) {
	w := Paginate(25, 2, 10)
	assert.True(t, w.HasNext())
	assert.True(t, w.HasPrevious())

	w = Paginate(25, 3, 10)
	assert.False(t, w.HasNext())

	w = Paginate(0, 1, 10)
	assert.False(t, w.HasNext())
	assert.False(t, w.HasPrevious())
}
