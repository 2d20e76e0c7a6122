package shelf

import (
	"math"

	"github.com/safegergis/tome/internal/catalog"
)

// ProgressUnit is the unit an entry's progress percentage is measured in.
type ProgressUnit string

const (
	UnitPages   ProgressUnit = "pages"
	UnitSeconds ProgressUnit = "seconds"
	UnitNone    ProgressUnit = "none"
)

// EffectiveProgress is the derived progress of a shelf entry after target
// resolution. It is recomputed on every read and never persisted.
type EffectiveProgress struct {
	Unit            ProgressUnit `json:"unit"`
	EffectiveTarget int          `json:"effective_target"`
	Percentage      float64      `json:"percentage"`
}

// ResolveProgress computes the effective target and percentage for an entry.
//
// Target resolution cascades from user overrides to catalog facts:
//
//   - page target  = first positive of {user_page_count, page_count, ebook_page_count}
//   - audio target = first positive of {user_audio_length_seconds, audio_length_seconds}
//
// A resolvable page target always wins, even when the entry also carries
// listening progress; audio is the fallback for audiobook-only entries.
// With no resolvable target the percentage is 0. Pure function; a nil facts
// argument (catalog unreachable) behaves as an all-absent catalog record.
func ResolveProgress(entry *Entry, facts *catalog.BookFacts) EffectiveProgress {
	if facts == nil {
		facts = &catalog.BookFacts{}
	}

	pageTarget := firstPositive(entry.UserPageCount, facts.PageCount, facts.EbookPageCount)
	audioTarget := firstPositive(entry.UserAudioSeconds, facts.AudioLengthSeconds)

	switch {
	case pageTarget > 0:
		return EffectiveProgress{
			Unit:            UnitPages,
			EffectiveTarget: pageTarget,
			Percentage:      percentage(entry.CurrentPage, pageTarget),
		}

	case audioTarget > 0:
		return EffectiveProgress{
			Unit:            UnitSeconds,
			EffectiveTarget: audioTarget,
			Percentage:      percentage(entry.CurrentSeconds, audioTarget),
		}
	}

	return EffectiveProgress{Unit: UnitNone}
}

// firstPositive returns the first candidate that is non-nil and >0, or 0.
func firstPositive(candidates ...*int) int {
	for _, candidate := range candidates {
		if candidate != nil && *candidate > 0 {
			return *candidate
		}
	}
	return 0
}

// percentage computes min(100, current/target*100) rounded to 2 decimals.
func percentage(current, target int) float64 {
	if current <= 0 {
		return 0
	}

	pct := float64(current) / float64(target) * 100
	pct = math.Round(pct*100) / 100

	return math.Min(pct, 100)
}
