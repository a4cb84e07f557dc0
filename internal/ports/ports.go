package ports

import (
	"context"

	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

// VideoTool is the black-box transcode/probe surface. Implementations
// issue child processes with explicit timeouts and fully drained output.
type VideoTool interface {
	ExtractAudio(ctx context.Context, inVideo, outWav string) error
	CutAudioRange(ctx context.Context, inWav string, startSec, durSec float64, outWav string) error
	CutSegment(ctx context.Context, inVideo string, startSec, durSec float64, outVideo string) error
	ConcatCopy(ctx context.Context, listFile, outVideo string) error
	ConcatReencode(ctx context.Context, listFile, outVideo string) error
	ThumbnailFast(ctx context.Context, inVideo string, atSec float64, outImage string) error
	ThumbnailAccurate(ctx context.Context, inVideo string, atSec float64, outImage string) error
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

// SpeechToText transcribes one bounded audio chunk. Load warms the
// model once; the engine reuses the backend across chunks.
type SpeechToText interface {
	Load(ctx context.Context) error
	TranscribeChunk(ctx context.Context, wavPath string) ([]types.TranscriptSegment, error)
}

// Ranker scores transcript segments into candidate highlights.
type Ranker interface {
	Rank(ctx context.Context, segments []types.TranscriptSegment, targetSeconds int) ([]types.CandidateHighlight, error)
}

// Tracker is the external job-status collaborator. The core emits one
// lifecycle state per stage boundary; terminal failures carry the
// error text.
type Tracker interface {
	Update(jobID string, status types.JobStatus, errMsg string) error
}
