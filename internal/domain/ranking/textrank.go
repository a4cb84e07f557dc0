package ranking

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

// TextRank is the deterministic offline ranker used when the generative
// service is disabled or unreachable. It scores words by running a
// damped random walk over a co-occurrence graph, averages word scores
// per sentence, and maps sentence scores back onto transcript segments.
type TextRank struct {
	WindowSize int
	Damping    float64
}

func NewTextRank() *TextRank {
	return &TextRank{WindowSize: 2, Damping: 0.85}
}

const (
	walkMaxIter   = 100
	walkTolerance = 1e-6
	// inclusionFloor drops segments whose normalized score carries no
	// signal.
	inclusionFloor = 0.1
	// overlapThreshold is the lexical-overlap ratio for mapping a
	// sentence onto a segment.
	overlapThreshold = 0.3
)

var (
	sentenceSplitRE = regexp.MustCompile(`[.!?]+`)
	nonWordRE       = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	spaceRE         = regexp.MustCompile(`\s+`)
)

func (t *TextRank) Rank(_ context.Context, segments []types.TranscriptSegment, _ int) ([]types.CandidateHighlight, error) {
	if len(segments) == 0 {
		return nil, nil
	}

	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, seg.Text)
	}
	sentences := splitSentences(strings.Join(parts, " "))
	if len(sentences) == 0 {
		return nil, nil
	}

	scores := t.sentenceScores(sentences)
	segScores := mapScoresToSegments(segments, sentences, scores)

	out := make([]types.CandidateHighlight, 0, len(segments))
	for i, seg := range segments {
		if segScores[i] <= inclusionFloor {
			continue
		}
		out = append(out, types.CandidateHighlight{
			Start:  seg.Start,
			End:    seg.End,
			Score:  segScores[i],
			Label:  fmt.Sprintf("Highlight %d", i+1),
			Reason: fmt.Sprintf("textrank score %.3f", segScores[i]),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func (t *TextRank) sentenceScores(sentences []string) []float64 {
	if len(sentences) <= 1 {
		out := make([]float64, len(sentences))
		for i := range out {
			out[i] = 1
		}
		return out
	}

	processed := make([][]string, len(sentences))
	for i, s := range sentences {
		processed[i] = strings.Fields(preprocess(s))
	}

	vocab := buildVocabulary(processed)
	matrix := t.cooccurrence(processed, vocab)
	wordScores := t.randomWalk(matrix)

	scores := make([]float64, len(sentences))
	for i, words := range processed {
		if len(words) == 0 {
			continue
		}
		var sum float64
		for _, w := range words {
			sum += wordScores[vocab[w]]
		}
		scores[i] = sum / float64(len(words))
	}
	return normalizeMinMax(scores)
}

func buildVocabulary(sentences [][]string) map[string]int {
	vocab := make(map[string]int)
	for _, words := range sentences {
		for _, w := range words {
			if _, ok := vocab[w]; !ok {
				vocab[w] = len(vocab)
			}
		}
	}
	return vocab
}

// cooccurrence builds a row-normalized word adjacency matrix over a
// sliding window within each sentence.
func (t *TextRank) cooccurrence(sentences [][]string, vocab map[string]int) [][]float64 {
	n := len(vocab)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}

	for _, words := range sentences {
		for i := range words {
			lo := max(0, i-t.WindowSize)
			hi := min(len(words), i+t.WindowSize+1)
			for j := lo; j < hi; j++ {
				if i == j {
					continue
				}
				m[vocab[words[i]]][vocab[words[j]]]++
			}
		}
	}

	for i := range m {
		var rowSum float64
		for _, v := range m[i] {
			rowSum += v
		}
		if rowSum > 0 {
			for j := range m[i] {
				m[i][j] /= rowSum
			}
		}
	}
	return m
}

// randomWalk iterates the damped update until the L2 delta converges
// or the iteration cap is hit.
func (t *TextRank) randomWalk(matrix [][]float64) []float64 {
	n := len(matrix)
	if n == 0 {
		return nil
	}
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1 / float64(n)
	}

	next := make([]float64, n)
	for iter := 0; iter < walkMaxIter; iter++ {
		base := (1 - t.Damping) / float64(n)
		for j := 0; j < n; j++ {
			var acc float64
			for i := 0; i < n; i++ {
				acc += matrix[i][j] * scores[i]
			}
			next[j] = base + t.Damping*acc
		}

		var delta float64
		for i := range scores {
			d := next[i] - scores[i]
			delta += d * d
		}
		copy(scores, next)
		if math.Sqrt(delta) < walkTolerance {
			break
		}
	}
	return scores
}

// mapScoresToSegments assigns each segment the max score among
// sentences that overlap it lexically or by containment; unmatched
// segments take the corpus mean.
func mapScoresToSegments(segments []types.TranscriptSegment, sentences []string, scores []float64) []float64 {
	var mean float64
	if len(scores) > 0 {
		for _, s := range scores {
			mean += s
		}
		mean /= float64(len(scores))
	} else {
		mean = 0.5
	}

	out := make([]float64, len(segments))
	for i, seg := range segments {
		segLower := strings.ToLower(seg.Text)
		best := 0.0
		for j, sent := range sentences {
			sentLower := strings.ToLower(sent)
			if lexicalOverlap(sentLower, segLower) >= overlapThreshold ||
				strings.Contains(segLower, sentLower) ||
				strings.Contains(sentLower, segLower) {
				if scores[j] > best {
					best = scores[j]
				}
			}
		}
		if best == 0 {
			best = mean
		}
		out[i] = best
	}
	return out
}

// lexicalOverlap is the Jaccard ratio of the two word sets.
func lexicalOverlap(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	inter := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			inter++
		}
	}
	union := len(wa) + len(wb) - inter
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		out[w] = struct{}{}
	}
	return out
}

func splitSentences(text string) []string {
	raw := sentenceSplitRE.Split(text, -1)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func preprocess(text string) string {
	text = strings.ToLower(text)
	text = nonWordRE.ReplaceAllString(text, "")
	return strings.TrimSpace(spaceRE.ReplaceAllString(text, " "))
}

func normalizeMinMax(scores []float64) []float64 {
	if len(scores) == 0 {
		return scores
	}
	lo, hi := scores[0], scores[0]
	for _, s := range scores {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	if hi <= lo {
		return scores
	}
	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = (s - lo) / (hi - lo)
	}
	return out
}
