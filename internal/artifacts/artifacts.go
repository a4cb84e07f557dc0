// Package artifacts persists the per-job deliverable files at the
// storage boundary: transcript JSON and SRT, the navigation manifest,
// and the final result manifest.
package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Prajanya-g/videoSumarizer/internal/errs"
	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

// Fixed artifact names inside a job directory.
const (
	TranscriptJSON = "transcript.json"
	TranscriptSRT  = "transcript.srt"
	JumpToJSON     = "jump_to.json"
	ResultJSON     = "result.json"
	HighlightsMP4  = "highlights.mp4"
	ThumbnailJPG   = "thumb.jpg"
)

// WriteTranscript persists transcript.json and transcript.srt.
func WriteTranscript(jobDir string, tr types.Transcript) error {
	if err := writeJSON(filepath.Join(jobDir, TranscriptJSON), tr); err != nil {
		return err
	}
	srt := FormatSRT(tr.Segments)
	path := filepath.Join(jobDir, TranscriptSRT)
	if err := os.WriteFile(path, []byte(srt), 0o644); err != nil {
		return &errs.ResourceError{Path: path, Err: err}
	}
	return nil
}

type jumpTo struct {
	Highlights []types.SelectedSegment `json:"highlights"`
}

// WriteJumpTo persists the navigation manifest, one entry per selected
// segment in rendered order.
func WriteJumpTo(jobDir string, selected []types.SelectedSegment) error {
	if selected == nil {
		selected = []types.SelectedSegment{}
	}
	return writeJSON(filepath.Join(jobDir, JumpToJSON), jumpTo{Highlights: selected})
}

// WriteResult persists result.json with the file manifest and the full
// selected segment list.
func WriteResult(jobDir string, res types.Result) error {
	return writeJSON(filepath.Join(jobDir, ResultJSON), res)
}

// FileManifest names the artifacts a completed job exposes.
func FileManifest() map[string]string {
	return map[string]string{
		"highlights_video": HighlightsMP4,
		"thumbnail":        ThumbnailJPG,
		"transcript":       TranscriptJSON,
		"transcript_srt":   TranscriptSRT,
		"jump_to":          JumpToJSON,
	}
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &errs.ResourceError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return &errs.ResourceError{Path: path, Err: err}
	}
	return nil
}
