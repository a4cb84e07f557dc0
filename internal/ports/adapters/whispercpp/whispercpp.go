// Package whispercpp runs a local whisper.cpp binary as the
// speech-to-text backend.
package whispercpp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Prajanya-g/videoSumarizer/internal/errs"
	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

type Adapter struct {
	bin   string
	model string
}

func New(binPath, modelPath string) *Adapter {
	return &Adapter{bin: binPath, model: modelPath}
}

// Load verifies the binary and model up front so a missing model fails
// the run before any chunk work starts. The caller bounds this with the
// model-load timeout.
func (a *Adapter) Load(ctx context.Context) error {
	if _, err := os.Stat(a.model); err != nil {
		return &errs.ServiceError{Service: "whisper.cpp", Err: fmt.Errorf("model: %w", err)}
	}
	cmd := exec.CommandContext(ctx, a.bin, "--help")
	if b, err := cmd.CombinedOutput(); err != nil {
		return &errs.ServiceError{Service: "whisper.cpp", Err: errs.NewToolError(a.bin, err, b)}
	}
	return nil
}

// TranscribeChunk transcribes one bounded WAV file. Timestamps are
// chunk-local; the engine offsets them to the global timeline.
func (a *Adapter) TranscribeChunk(ctx context.Context, wavPath string) ([]types.TranscriptSegment, error) {
	outPrefix := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))
	cmd := exec.CommandContext(ctx, a.bin,
		"-m", a.model,
		"-f", wavPath,
		"-oj",
		"-of", outPrefix,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errs.NewToolError(a.bin, errors.New("chunk transcription timed out"), nil)
		}
		return nil, errs.NewToolError(a.bin, err, b)
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return nil, &errs.ResourceError{Path: outPrefix + ".json", Err: err}
	}
	defer os.Remove(outPrefix + ".json")

	return parseOutput(jb)
}

// whisper.cpp -oj emits segments with millisecond offsets.
type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func parseOutput(jb []byte) ([]types.TranscriptSegment, error) {
	var out whisperOutput
	if err := json.Unmarshal(jb, &out); err != nil {
		return nil, &errs.ValidationError{Reason: "parse whisper.cpp output", Err: err}
	}
	segs := make([]types.TranscriptSegment, 0, len(out.Transcription))
	for _, t := range out.Transcription {
		text := strings.TrimSpace(t.Text)
		if text == "" || t.Offsets.To <= t.Offsets.From {
			continue
		}
		segs = append(segs, types.TranscriptSegment{
			Start: float64(t.Offsets.From) / 1000,
			End:   float64(t.Offsets.To) / 1000,
			Text:  text,
		})
	}
	return segs, nil
}
