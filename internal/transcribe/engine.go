// Package transcribe chunks long audio and merges per-chunk
// speech-to-text output into one time-ordered transcript.
package transcribe

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Prajanya-g/videoSumarizer/internal/ports"
	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

const (
	// chunkSeconds bounds the audio handed to the backend in one call.
	chunkSeconds = 300.0
	// loadTimeout bounds backend warm-up. Fatal on expiry, no retry.
	loadTimeout = 2 * time.Minute
	// chunkTimeout bounds a single chunk transcription. Fatal for the
	// run on expiry.
	chunkTimeout = 10 * time.Minute
)

type Engine struct {
	video  ports.VideoTool
	stt    ports.SpeechToText
	log    *slog.Logger
	loaded bool
	mu     sync.Mutex
}

func NewEngine(video ports.VideoTool, stt ports.SpeechToText, log *slog.Logger) *Engine {
	return &Engine{video: video, stt: stt, log: log}
}

// Transcribe produces ordered segments covering [0, duration]. Audio
// beyond the chunk threshold is split into non-overlapping windows
// transcribed concurrently against the shared warmed backend; local
// timestamps are offset by each window's start, then the merge re-sorts
// by start since chunk completion order is not temporal order.
func (e *Engine) Transcribe(ctx context.Context, audioPath string) (types.Transcript, error) {
	if err := e.ensureLoaded(ctx); err != nil {
		return types.Transcript{}, err
	}

	duration, err := e.video.ProbeDuration(ctx, audioPath)
	if err != nil {
		return types.Transcript{}, fmt.Errorf("probe audio duration: %w", err)
	}
	e.log.Info("transcribing audio", "duration_sec", fmt.Sprintf("%.1f", duration))

	var segments []types.TranscriptSegment
	if duration > chunkSeconds {
		segments, err = e.transcribeChunked(ctx, audioPath, duration)
	} else {
		segments, err = e.transcribeOne(ctx, audioPath, 0)
	}
	if err != nil {
		return types.Transcript{}, err
	}

	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Start < segments[j].Start })
	return buildTranscript(segments, duration), nil
}

func (e *Engine) ensureLoaded(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loaded {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()
	if err := e.stt.Load(ctx); err != nil {
		return fmt.Errorf("load speech model: %w", err)
	}
	e.loaded = true
	return nil
}

func (e *Engine) transcribeChunked(ctx context.Context, audioPath string, duration float64) ([]types.TranscriptSegment, error) {
	numChunks := int(math.Ceil(duration / chunkSeconds))
	e.log.Info("chunking audio for transcription", "chunks", numChunks, "chunk_sec", chunkSeconds)

	results := make([][]types.TranscriptSegment, numChunks)
	errc := make(chan error, numChunks)
	var wg sync.WaitGroup

	for i := 0; i < numChunks; i++ {
		start := float64(i) * chunkSeconds
		windowLen := math.Min(chunkSeconds, duration-start)
		if windowLen <= 0 {
			break
		}

		wg.Add(1)
		go func(i int, start, windowLen float64) {
			defer wg.Done()
			segs, err := e.transcribeWindow(ctx, audioPath, i, start, windowLen)
			if err != nil {
				errc <- fmt.Errorf("chunk %d: %w", i+1, err)
				return
			}
			// Chunks share no mutable state beyond this indexed slot.
			results[i] = segs
		}(i, start, windowLen)
	}
	wg.Wait()
	close(errc)
	if err := <-errc; err != nil {
		return nil, err
	}

	var all []types.TranscriptSegment
	for _, segs := range results {
		all = append(all, segs...)
	}
	return all, nil
}

func (e *Engine) transcribeWindow(ctx context.Context, audioPath string, i int, start, windowLen float64) ([]types.TranscriptSegment, error) {
	chunkPath := filepath.Join(
		filepath.Dir(audioPath),
		fmt.Sprintf("%s_chunk_%d.wav", strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath)), i),
	)
	if err := e.video.CutAudioRange(ctx, audioPath, start, windowLen, chunkPath); err != nil {
		return nil, fmt.Errorf("extract window: %w", err)
	}
	defer os.Remove(chunkPath)

	segs, err := e.transcribeOne(ctx, chunkPath, start)
	if err != nil {
		return nil, err
	}
	e.log.Debug("chunk transcribed", "chunk", i+1, "segments", len(segs))
	return segs, nil
}

func (e *Engine) transcribeOne(ctx context.Context, wavPath string, offset float64) ([]types.TranscriptSegment, error) {
	ctx, cancel := context.WithTimeout(ctx, chunkTimeout)
	defer cancel()

	segs, err := e.stt.TranscribeChunk(ctx, wavPath)
	if err != nil {
		return nil, err
	}
	for i := range segs {
		segs[i].Start += offset
		segs[i].End += offset
	}
	return segs, nil
}

func buildTranscript(segments []types.TranscriptSegment, duration float64) types.Transcript {
	texts := make([]string, 0, len(segments))
	total := duration
	for _, s := range segments {
		texts = append(texts, s.Text)
		if s.End > total {
			total = s.End
		}
	}
	return types.Transcript{
		Segments:      segments,
		FullText:      strings.Join(texts, " "),
		TotalDuration: total,
	}
}
