package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeOf(t *testing.T) {
	tests := []struct {
		name   string
		counts map[string]int
		want   string
	}{
		{
			name:   "clear winner",
			counts: map[string]int{"physical": 5, "ebook": 2, "audiobook": 1},
			want:   "physical",
		},
		{
			name:   "tie breaks lexically",
			counts: map[string]int{"physical": 3, "audiobook": 3},
			want:   "audiobook",
		},
		{
			name:   "empty",
			counts: map[string]int{},
			want:   "",
		},
		{
			name:   "single entry",
			counts: map[string]int{"ebook": 1},
			want:   "ebook",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, modeOf(test.counts))
		})
	}
}

func TestOrderedCounts(t *testing.T) {
	rows := orderedCounts(map[string]int{
		"lost interest": 4,
		"too long":      4,
		"bad writing":   7,
		"library due":   1,
	})

	assert.Equal(t, []ReasonCount{
		{Reason: "bad writing", Count: 7},
		{Reason: "lost interest", Count: 4},
		{Reason: "too long", Count: 4},
		{Reason: "library due", Count: 1},
	}, rows)
}
