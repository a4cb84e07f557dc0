// Package selection turns ranked candidate highlights into a disjoint,
// time-ordered set of segments whose total duration approximates the
// target. The overlapping "smart selection" strategies of the reference
// behavior are modeled as one polymorphic policy.
package selection

import (
	"fmt"
	"math"
	"sort"

	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

// Policy selects the segment-selection variant.
type Policy string

const (
	// PolicyGreedy is the default greedy-with-buffer knapsack.
	PolicyGreedy Policy = "greedy"
	// PolicyChunk spreads picks across equal timeline chunks.
	PolicyChunk Policy = "chunk"
	// PolicyTemporal picks per three timeline zones.
	PolicyTemporal Policy = "temporal"
)

const (
	// overBudget allows the greedy accumulation to run slightly past
	// target before truncating.
	overBudget = 1.1
	// underTarget triggers a second, tighter scan for more segments.
	underTarget = 0.8
)

type Selector struct {
	Policy    Policy
	MergeGap  float64 // adjacent segments closer than this are merged
	MinLength float64 // segments shorter than this are dropped
}

func New(policy Policy) *Selector {
	return &Selector{Policy: policy, MergeGap: 1.0, MinLength: 2.0}
}

// ParsePolicy maps a user-supplied policy name onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyGreedy, PolicyChunk, PolicyTemporal:
		return Policy(s), nil
	case "":
		return PolicyGreedy, nil
	}
	return "", fmt.Errorf("unknown selection policy %q", s)
}

// Select is deterministic: identical candidates and target produce
// identical output. Empty candidates produce empty output, never an
// error.
func (s *Selector) Select(candidates []types.CandidateHighlight, targetSeconds int) []types.SelectedSegment {
	if len(candidates) == 0 {
		return nil
	}
	target := float64(targetSeconds)

	// A target below the minimum segment length still yields one
	// truncated segment rather than nothing.
	if target < s.MinLength && target > 0 {
		best := topScored(candidates)
		end := best.End
		if best.Start+target < end {
			end = best.Start + target
		}
		return []types.SelectedSegment{{Start: best.Start, End: end, Label: best.Label}}
	}

	var picked []types.CandidateHighlight
	switch s.Policy {
	case PolicyChunk:
		picked = s.selectChunked(candidates, target)
	case PolicyTemporal:
		picked = s.selectTemporal(candidates, target, idealClipDuration(target))
	default:
		picked = s.selectGreedy(candidates, target)
	}

	return s.finalize(picked)
}

// selectGreedy implements the greedy-with-buffer knapsack: accumulate by
// score under a 10% buffer, truncate the overflowing candidate when the
// remaining budget is worth keeping, then backfill if still well under
// target.
func (s *Selector) selectGreedy(candidates []types.CandidateHighlight, target float64) []types.CandidateHighlight {
	ordered := sortByScore(candidates)

	var picked []types.CandidateHighlight
	taken := make([]bool, len(ordered))
	total := 0.0

	for i, c := range ordered {
		d := c.Duration()
		if d < s.MinLength {
			continue
		}
		if total+d > target*overBudget {
			remaining := target - total
			if remaining > s.MinLength {
				t := c
				t.End = t.Start + remaining
				picked = append(picked, t)
				taken[i] = true
				total = target
			}
			break
		}
		picked = append(picked, c)
		taken[i] = true
		total += d
	}

	// Backfill pass is tighter than the main loop: it never exceeds
	// target exactly.
	if total < target*underTarget {
		for i, c := range ordered {
			if taken[i] {
				continue
			}
			d := c.Duration()
			if d >= s.MinLength && total+d <= target {
				picked = append(picked, c)
				taken[i] = true
				total += d
			}
		}
	}
	return picked
}

// selectChunked divides the timeline into equal chunks and takes up to
// two well-sized candidates per chunk, guaranteeing coverage across the
// whole video. Insufficient coverage falls through to the three-zone
// temporal pass.
func (s *Selector) selectChunked(candidates []types.CandidateHighlight, target float64) []types.CandidateHighlight {
	ideal := idealClipDuration(target)
	videoDur := maxEnd(candidates)
	if videoDur <= 0 {
		return nil
	}

	numChunks := chunkCount(target, ideal)
	chunkBudget := target / float64(numChunks)

	var picked []types.CandidateHighlight
	total := 0.0
	for i := 0; i < numChunks; i++ {
		lo := float64(i) * videoDur / float64(numChunks)
		hi := float64(i+1) * videoDur / float64(numChunks)

		inChunk := sortByScore(filterByStart(candidates, lo, hi))
		used := 0.0
		count := 0
		for _, c := range inChunk {
			d := c.Duration()
			if !durationAcceptable(d, ideal) {
				continue
			}
			if total+d > target*overBudget {
				continue
			}
			picked = append(picked, c)
			total += d
			used += d
			count++
			if used >= chunkBudget*0.8 || count >= 2 {
				break
			}
		}
	}

	if len(picked) < 3 || totalDuration(picked) < target*0.5 {
		temporal := s.selectTemporal(candidates, target, ideal)
		if len(temporal) > len(picked) {
			return temporal
		}
	}
	return picked
}

// selectTemporal takes up to two candidates from each of the three
// timeline zones: opening quarter, middle half, closing quarter.
func (s *Selector) selectTemporal(candidates []types.CandidateHighlight, target, ideal float64) []types.CandidateHighlight {
	videoDur := maxEnd(candidates)
	if videoDur <= 0 {
		return nil
	}
	zones := [][2]float64{
		{0, videoDur * 0.25},
		{videoDur * 0.25, videoDur * 0.75},
		{videoDur * 0.75, videoDur},
	}

	var picked []types.CandidateHighlight
	total := 0.0
	for _, zone := range zones {
		inZone := sortByScore(filterByStart(candidates, zone[0], zone[1]))
		count := 0
		for _, c := range inZone {
			d := c.Duration()
			if !durationAcceptable(d, ideal) {
				continue
			}
			if total+d > target*overBudget {
				continue
			}
			picked = append(picked, c)
			total += d
			count++
			if count >= 2 {
				break
			}
		}
	}
	return picked
}

// finalize orders picks by start, merges near-adjacent ranges, and
// drops anything below the minimum length.
func (s *Selector) finalize(picked []types.CandidateHighlight) []types.SelectedSegment {
	if len(picked) == 0 {
		return nil
	}
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].Start < picked[j].Start })

	merged := []types.CandidateHighlight{picked[0]}
	for _, next := range picked[1:] {
		cur := &merged[len(merged)-1]
		if next.Start-cur.End <= s.MergeGap {
			if next.End > cur.End {
				cur.End = next.End
			}
			cur.Score = math.Max(cur.Score, next.Score)
			if next.Label != "" {
				if cur.Label != "" {
					cur.Label += " + " + next.Label
				} else {
					cur.Label = next.Label
				}
			}
			continue
		}
		merged = append(merged, next)
	}

	out := make([]types.SelectedSegment, 0, len(merged))
	for _, m := range merged {
		if m.Duration() < s.MinLength {
			continue
		}
		out = append(out, types.SelectedSegment{Start: m.Start, End: m.End, Label: m.Label})
	}
	return out
}

// idealClipDuration scales clip length with the square root of the
// target so short reels get snappy clips and long reels more
// comprehensive ones, clamped to [3s, 20s].
func idealClipDuration(target float64) float64 {
	base := math.Sqrt(target)*0.8 + 2
	switch {
	case target <= 60:
		base *= 0.7
	case target > 300:
		base *= 1.2
	}
	return math.Max(3, math.Min(20, base))
}

func chunkCount(target, ideal float64) int {
	estimated := target / ideal
	n := int(estimated * 0.6)
	if n < 3 {
		n = 3
	}
	if n > 8 {
		n = 8
	}
	return n
}

// durationAcceptable keeps candidates within 50% of the ideal clip
// duration and never more than double it.
func durationAcceptable(d, ideal float64) bool {
	if math.Abs(d-ideal) > ideal*0.5 {
		return false
	}
	return d <= ideal*2
}

func sortByScore(candidates []types.CandidateHighlight) []types.CandidateHighlight {
	out := make([]types.CandidateHighlight, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score == out[j].Score {
			return out[i].Start < out[j].Start
		}
		return out[i].Score > out[j].Score
	})
	return out
}

func filterByStart(candidates []types.CandidateHighlight, lo, hi float64) []types.CandidateHighlight {
	var out []types.CandidateHighlight
	for _, c := range candidates {
		if c.Start >= lo && c.Start < hi {
			out = append(out, c)
		}
	}
	return out
}

func topScored(candidates []types.CandidateHighlight) types.CandidateHighlight {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score || (c.Score == best.Score && c.Start < best.Start) {
			best = c
		}
	}
	return best
}

func maxEnd(candidates []types.CandidateHighlight) float64 {
	var m float64
	for _, c := range candidates {
		m = math.Max(m, c.End)
	}
	return m
}

func totalDuration(candidates []types.CandidateHighlight) float64 {
	var t float64
	for _, c := range candidates {
		t += c.Duration()
	}
	return t
}
