// Package ranking turns transcript segments into scored candidate
// highlights. The generative ranking service is treated as an untrusted
// producer: everything it returns passes through the validation in this
// package before the selector sees it.
package ranking

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

const (
	// minScore is the quality floor below which a highlight is rejected
	// outright rather than clamped.
	minScore = 0.3
	// minDuration rejects highlights that stay under one second even
	// after the floor below.
	minDuration = 1.0
	// flooredDuration is the length short highlights are extended to.
	// Sub-second ranges get more context, never truncation.
	flooredDuration = 2.0
	// minGap thins highlights closer than this unless they score above
	// keepCloseScore.
	minGap         = 5.0
	keepCloseScore = 0.8
	// degenerate-text heuristics
	minTextLen    = 20
	maxTokenShare = 0.3
)

// Raw is one unvalidated highlight tuple from the ranking service.
type Raw struct {
	Start  float64
	End    float64
	Score  float64
	Label  string
	Reason string
}

// CoerceRaw converts a loosely-typed decoded highlight object into a
// Raw, tolerating numbers encoded as strings. It fails only when a
// timestamp cannot be read at all.
func CoerceRaw(obj map[string]any) (Raw, error) {
	start, ok := toFloat(obj["start"])
	if !ok {
		return Raw{}, fmt.Errorf("highlight start %v is not a number", obj["start"])
	}
	end, ok := toFloat(obj["end"])
	if !ok {
		return Raw{}, fmt.Errorf("highlight end %v is not a number", obj["end"])
	}
	score, ok := toFloat(obj["score"])
	if !ok {
		score = 0.5
	}
	return Raw{
		Start:  start,
		End:    end,
		Score:  score,
		Label:  toString(obj["label"]),
		Reason: toString(obj["reason"]),
	}, nil
}

// ValidateHighlights clamps, filters and thins one chunk's worth of raw
// highlights against the transcript segments that produced them.
// Out-of-range scores are clamped, not rejected, unless they fall below
// the quality floor.
func ValidateHighlights(raws []Raw, segments []types.TranscriptSegment) []types.CandidateHighlight {
	validated := make([]types.CandidateHighlight, 0, len(raws))
	for _, r := range raws {
		if r.End <= r.Start {
			continue
		}
		start, end := r.Start, r.End
		if end-start < minDuration {
			end = start + flooredDuration
		}
		start, end = clampToSegments(start, end, segments)

		if !isQuality(start, end, r.Score, segments) {
			continue
		}
		validated = append(validated, types.CandidateHighlight{
			Start:  start,
			End:    end,
			Score:  clamp01(r.Score),
			Label:  r.Label,
			Reason: r.Reason,
		})
	}

	sort.SliceStable(validated, func(i, j int) bool { return validated[i].Score > validated[j].Score })
	return thinByGap(dropOverlaps(validated))
}

func isQuality(start, end, score float64, segments []types.TranscriptSegment) bool {
	if score < minScore {
		return false
	}
	if end-start < minDuration {
		return false
	}
	// Reject highlights whose underlying speech is degenerate.
	for _, seg := range segments {
		if seg.Start <= start && start <= seg.End && seg.Start <= end && end <= seg.End {
			text := strings.TrimSpace(seg.Text)
			if len(text) < minTextLen || isRepetitive(text) {
				return false
			}
			break
		}
	}
	return true
}

// isRepetitive flags text dominated by a single token, a cheap proxy
// for stuck ASR output ("yeah yeah yeah yeah").
func isRepetitive(text string) bool {
	words := strings.Fields(strings.ToLower(text))
	if len(words) < 5 {
		return false
	}
	counts := make(map[string]int, len(words))
	maxCount := 0
	for _, w := range words {
		counts[w]++
		if counts[w] > maxCount {
			maxCount = counts[w]
		}
	}
	return float64(maxCount)/float64(len(words)) > maxTokenShare
}

// dropOverlaps resolves overlapping highlights by keeping the higher
// score. Input must be sorted by score descending.
func dropOverlaps(hs []types.CandidateHighlight) []types.CandidateHighlight {
	kept := make([]types.CandidateHighlight, 0, len(hs))
	for _, h := range hs {
		overlapping := false
		for _, k := range kept {
			if h.Start < k.End && k.Start < h.End {
				overlapping = true
				break
			}
		}
		if !overlapping {
			kept = append(kept, h)
		}
	}
	return kept
}

// thinByGap enforces a minimum temporal gap between highlights, letting
// high scorers survive regardless of proximity.
func thinByGap(hs []types.CandidateHighlight) []types.CandidateHighlight {
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].Start < hs[j].Start })

	out := make([]types.CandidateHighlight, 0, len(hs))
	lastEnd := 0.0
	for _, h := range hs {
		if h.Start >= lastEnd+minGap || h.Score > keepCloseScore {
			out = append(out, h)
			lastEnd = h.End
		}
	}
	return out
}

// clampToSegments pins a highlight to the bounds of the transcript
// segments containing its timestamps, preferring the containing
// segment and falling back to the nearest preceding (for start) or
// following (for end) one. No invented time outside the transcribed
// timeline.
func clampToSegments(start, end float64, segments []types.TranscriptSegment) (float64, float64) {
	var startSeg, endSeg *types.TranscriptSegment
	for i := range segments {
		seg := &segments[i]
		if seg.Start <= start && start <= seg.End {
			startSeg = seg
		}
		if seg.Start <= end && end <= seg.End {
			endSeg = seg
		}
	}
	if startSeg == nil {
		if startSeg = nearestPreceding(start, segments); startSeg == nil {
			startSeg = firstSegment(segments)
		}
	}
	if endSeg == nil {
		if endSeg = nearestFollowing(end, segments); endSeg == nil {
			endSeg = lastSegment(segments)
		}
	}
	if startSeg != nil && start < startSeg.Start {
		start = startSeg.Start
	}
	if endSeg != nil && end > endSeg.End {
		end = endSeg.End
	}
	return start, end
}

func firstSegment(segments []types.TranscriptSegment) *types.TranscriptSegment {
	var best *types.TranscriptSegment
	for i := range segments {
		if best == nil || segments[i].Start < best.Start {
			best = &segments[i]
		}
	}
	return best
}

func lastSegment(segments []types.TranscriptSegment) *types.TranscriptSegment {
	var best *types.TranscriptSegment
	for i := range segments {
		if best == nil || segments[i].End > best.End {
			best = &segments[i]
		}
	}
	return best
}

func nearestPreceding(t float64, segments []types.TranscriptSegment) *types.TranscriptSegment {
	var best *types.TranscriptSegment
	for i := range segments {
		if segments[i].Start <= t && (best == nil || segments[i].Start > best.Start) {
			best = &segments[i]
		}
	}
	return best
}

func nearestFollowing(t float64, segments []types.TranscriptSegment) *types.TranscriptSegment {
	var best *types.TranscriptSegment
	for i := range segments {
		if segments[i].End >= t && (best == nil || segments[i].End < best.End) {
			best = &segments[i]
		}
	}
	return best
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
