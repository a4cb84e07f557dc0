package transcribe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

type fakeVideo struct {
	duration float64
	probeErr error

	mu   sync.Mutex
	cuts []float64 // start seconds of each requested window
}

func (f *fakeVideo) ExtractAudio(ctx context.Context, inVideo, outWav string) error { return nil }
func (f *fakeVideo) CutAudioRange(ctx context.Context, inWav string, startSec, durSec float64, outWav string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cuts = append(f.cuts, startSec)
	return nil
}
func (f *fakeVideo) CutSegment(ctx context.Context, inVideo string, startSec, durSec float64, outVideo string) error {
	return nil
}
func (f *fakeVideo) ConcatCopy(ctx context.Context, listFile, outVideo string) error     { return nil }
func (f *fakeVideo) ConcatReencode(ctx context.Context, listFile, outVideo string) error { return nil }
func (f *fakeVideo) ThumbnailFast(ctx context.Context, inVideo string, atSec float64, outImage string) error {
	return nil
}
func (f *fakeVideo) ThumbnailAccurate(ctx context.Context, inVideo string, atSec float64, outImage string) error {
	return nil
}
func (f *fakeVideo) ProbeDuration(ctx context.Context, path string) (float64, error) {
	return f.duration, f.probeErr
}

type fakeSTT struct {
	loadErr error
	err     error
	// segments returned for every chunk, with chunk-local timestamps
	segs []types.TranscriptSegment

	mu        sync.Mutex
	loadCalls int
	calls     int
}

func (f *fakeSTT) Load(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCalls++
	return f.loadErr
}

func (f *fakeSTT) TranscribeChunk(ctx context.Context, wavPath string) ([]types.TranscriptSegment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]types.TranscriptSegment, len(f.segs))
	copy(out, f.segs)
	return out, nil
}

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTranscribe_ShortAudioSingleCall(t *testing.T) {
	video := &fakeVideo{duration: 120}
	stt := &fakeSTT{segs: []types.TranscriptSegment{
		{Start: 0, End: 5, Text: "hello"},
		{Start: 5, End: 10, Text: "world"},
	}}
	eng := NewEngine(video, stt, discardLog())

	tr, err := eng.Transcribe(context.Background(), "/tmp/audio.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stt.calls != 1 {
		t.Fatalf("short audio should be one call, got %d", stt.calls)
	}
	if len(video.cuts) != 0 {
		t.Fatalf("short audio must not be windowed")
	}
	if tr.FullText != "hello world" {
		t.Fatalf("full text wrong: %q", tr.FullText)
	}
	if tr.TotalDuration != 120 {
		t.Fatalf("total duration should keep probed length, got %v", tr.TotalDuration)
	}
}

func TestTranscribe_LongAudioChunksAndOffsets(t *testing.T) {
	// 12 minutes splits into three 5-minute windows (last one short).
	video := &fakeVideo{duration: 720}
	stt := &fakeSTT{segs: []types.TranscriptSegment{
		{Start: 0, End: 4, Text: "chunk text"},
	}}
	eng := NewEngine(video, stt, discardLog())

	tr, err := eng.Transcribe(context.Background(), "/tmp/audio.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stt.calls != 3 {
		t.Fatalf("expected 3 chunk calls, got %d", stt.calls)
	}
	if len(tr.Segments) != 3 {
		t.Fatalf("expected 3 merged segments, got %d", len(tr.Segments))
	}
	wantStarts := []float64{0, 300, 600}
	for i, s := range tr.Segments {
		if s.Start != wantStarts[i] {
			t.Fatalf("segment %d start = %v, want %v (offsets not applied or order broken)", i, s.Start, wantStarts[i])
		}
		if s.End != wantStarts[i]+4 {
			t.Fatalf("segment %d end = %v", i, s.End)
		}
	}
	if stt.loadCalls != 1 {
		t.Fatalf("model must be loaded once, got %d", stt.loadCalls)
	}
}

func TestTranscribe_ChunkErrorFailsRun(t *testing.T) {
	video := &fakeVideo{duration: 720}
	stt := &fakeSTT{err: errors.New("decode failed")}
	eng := NewEngine(video, stt, discardLog())

	_, err := eng.Transcribe(context.Background(), "/tmp/audio.wav")
	if err == nil {
		t.Fatalf("expected chunk error to fail the run")
	}
	if !strings.Contains(err.Error(), "chunk") {
		t.Fatalf("error should name the chunk: %v", err)
	}
}

func TestTranscribe_LoadFailureIsFatal(t *testing.T) {
	video := &fakeVideo{duration: 60}
	stt := &fakeSTT{loadErr: errors.New("model missing")}
	eng := NewEngine(video, stt, discardLog())

	if _, err := eng.Transcribe(context.Background(), "/tmp/audio.wav"); err == nil {
		t.Fatalf("expected load failure to be fatal")
	}
	if stt.calls != 0 {
		t.Fatalf("no transcription should run after a failed load")
	}
}

func TestTranscribe_LoadOnceAcrossRuns(t *testing.T) {
	video := &fakeVideo{duration: 60}
	stt := &fakeSTT{segs: []types.TranscriptSegment{{Start: 0, End: 2, Text: "ok"}}}
	eng := NewEngine(video, stt, discardLog())

	for i := 0; i < 3; i++ {
		if _, err := eng.Transcribe(context.Background(), "/tmp/audio.wav"); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if stt.loadCalls != 1 {
		t.Fatalf("expected a single warm-up, got %d", stt.loadCalls)
	}
}

func TestBuildTranscript_ExtendsDurationToLastSegment(t *testing.T) {
	tr := buildTranscript([]types.TranscriptSegment{
		{Start: 0, End: 10, Text: "a"},
		{Start: 10, End: 130, Text: "b"},
	}, 120)
	if tr.TotalDuration != 130 {
		t.Fatalf("duration should extend to last segment end, got %v", tr.TotalDuration)
	}
}
