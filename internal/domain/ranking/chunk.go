package ranking

import "github.com/Prajanya-g/videoSumarizer/internal/types"

// maxTokensPerChunk keeps each ranking request inside the model's
// context window. Token counts are estimated at 4 characters per token.
const (
	maxTokensPerChunk = 3000
	charsPerToken     = 4
)

// ChunkSegments partitions the transcript into consecutive runs of
// segments whose estimated token count stays under the chunk budget.
// A single oversized segment still forms its own chunk.
func ChunkSegments(segments []types.TranscriptSegment) [][]types.TranscriptSegment {
	var chunks [][]types.TranscriptSegment
	var current []types.TranscriptSegment
	tokens := 0

	for _, seg := range segments {
		segTokens := len(seg.Text) / charsPerToken
		if tokens+segTokens > maxTokensPerChunk && len(current) > 0 {
			chunks = append(chunks, current)
			current = []types.TranscriptSegment{seg}
			tokens = segTokens
			continue
		}
		current = append(current, seg)
		tokens += segTokens
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}
