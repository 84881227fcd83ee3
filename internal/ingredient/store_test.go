package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// missingFrom must return the requested ids minus the cached ids, regardless
// of order or duplicates in the request.
func TestMissingFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		requested []int
		present   []int
		want      []int
	}{
		{name: "all missing", requested: []int{1, 2, 3}, present: nil, want: []int{1, 2, 3}},
		{name: "none missing", requested: []int{1, 2}, present: []int{1, 2}, want: []int{}},
		{name: "partial overlap", requested: []int{10, 11, 12}, present: []int{11}, want: []int{10, 12}},
		{name: "duplicates in request collapse", requested: []int{5, 5, 6}, present: []int{6}, want: []int{5}},
		{name: "present ids outside request are ignored", requested: []int{7}, present: []int{7, 8, 9}, want: []int{}},
		{name: "empty request", requested: nil, present: []int{1}, want: []int{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, missingFrom(tc.requested, tc.present))
		})
	}
}
