package shelf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/safegergis/tome/internal/catalog"
	"github.com/safegergis/tome/pkg/pointer"
)

func TestResolveProgress_TargetCascade(t *testing.T) {
	tests := []struct {
		name           string
		entry          Entry
		facts          *catalog.BookFacts
		wantUnit       ProgressUnit
		wantTarget     int
		wantPercentage float64
	}{
		{
			name:           "user_override_beats_catalog",
			entry:          Entry{CurrentPage: 50, UserPageCount: pointer.To(100)},
			facts:          &catalog.BookFacts{PageCount: pointer.To(400)},
			wantUnit:       UnitPages,
			wantTarget:     100,
			wantPercentage: 50,
		},
		{
			name:           "catalog_page_count",
			entry:          Entry{CurrentPage: 100},
			facts:          &catalog.BookFacts{PageCount: pointer.To(400)},
			wantUnit:       UnitPages,
			wantTarget:     400,
			wantPercentage: 25,
		},
		{
			name:           "ebook_page_count_fallback",
			entry:          Entry{CurrentPage: 30},
			facts:          &catalog.BookFacts{EbookPageCount: pointer.To(300)},
			wantUnit:       UnitPages,
			wantTarget:     300,
			wantPercentage: 10,
		},
		{
			name:           "audio_only_entry",
			entry:          Entry{CurrentSeconds: 1800},
			facts:          &catalog.BookFacts{AudioLengthSeconds: pointer.To(3600)},
			wantUnit:       UnitSeconds,
			wantTarget:     3600,
			wantPercentage: 50,
		},
		{
			name:           "user_audio_override",
			entry:          Entry{CurrentSeconds: 600, UserAudioSeconds: pointer.To(6000)},
			facts:          &catalog.BookFacts{AudioLengthSeconds: pointer.To(3600)},
			wantUnit:       UnitSeconds,
			wantTarget:     6000,
			wantPercentage: 10,
		},
		{
			name: "page_target_wins_over_audio",
			entry: Entry{
				CurrentPage:      50,
				CurrentSeconds:   1800,
				UserPageCount:    pointer.To(100),
				UserAudioSeconds: pointer.To(3600),
			},
			facts:          &catalog.BookFacts{},
			wantUnit:       UnitPages,
			wantTarget:     100,
			wantPercentage: 50,
		},
		{
			name:           "no_targets_at_all",
			entry:          Entry{CurrentPage: 50, CurrentSeconds: 1000},
			facts:          &catalog.BookFacts{},
			wantUnit:       UnitNone,
			wantTarget:     0,
			wantPercentage: 0,
		},
		{
			name:           "nil_facts_uses_overrides_only",
			entry:          Entry{CurrentPage: 25, UserPageCount: pointer.To(200)},
			facts:          nil,
			wantUnit:       UnitPages,
			wantTarget:     200,
			wantPercentage: 12.5,
		},
		{
			name:           "nil_facts_no_overrides",
			entry:          Entry{CurrentPage: 25},
			facts:          nil,
			wantUnit:       UnitNone,
			wantTarget:     0,
			wantPercentage: 0,
		},
		{
			name:           "zero_catalog_target_ignored",
			entry:          Entry{CurrentPage: 10},
			facts:          &catalog.BookFacts{PageCount: pointer.To(0), EbookPageCount: pointer.To(250)},
			wantUnit:       UnitPages,
			wantTarget:     250,
			wantPercentage: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveProgress(&tt.entry, tt.facts)

			assert.Equal(t, tt.wantUnit, got.Unit)
			assert.Equal(t, tt.wantTarget, got.EffectiveTarget)
			assert.InDelta(t, tt.wantPercentage, got.Percentage, 0.001)
		})
	}
}

func TestResolveProgress_CapsAtHundred(t *testing.T) {
	entry := Entry{CurrentPage: 500, UserPageCount: pointer.To(100)}

	got := ResolveProgress(&entry, nil)

	assert.Equal(t, float64(100), got.Percentage)
}

func TestResolveProgress_Rounding(t *testing.T) {
	entry := Entry{CurrentPage: 1, UserPageCount: pointer.To(3)}

	got := ResolveProgress(&entry, nil)

	assert.InDelta(t, 33.33, got.Percentage, 0.0001)
}

// Percentage never decreases as progress counters increase with fixed targets.
func TestResolveProgress_Monotonic(t *testing.T) {
	facts := &catalog.BookFacts{PageCount: pointer.To(321)}

	previous := float64(0)
	for page := 0; page <= 400; page += 7 {
		entry := Entry{CurrentPage: page}
		got := ResolveProgress(&entry, facts)

		assert.GreaterOrEqual(t, got.Percentage, previous)
		assert.LessOrEqual(t, got.Percentage, float64(100))
		previous = got.Percentage
	}
}
