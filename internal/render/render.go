// Package render cuts and concatenates selected segments into the
// deliverable video, with tiered fallback around the black-box encoder.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Prajanya-g/videoSumarizer/internal/errs"
	"github.com/Prajanya-g/videoSumarizer/internal/ports"
	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

type Renderer struct {
	video ports.VideoTool
	log   *slog.Logger
}

func New(video ports.VideoTool, log *slog.Logger) *Renderer {
	return &Renderer{video: video, log: log}
}

// Concatenate renders the selected ranges into outPath. A single
// segment is a direct re-encode of that range. Multiple segments are
// cut to temporary clips with a fixed profile, then joined with a
// stream-copy attempt first and a full re-encode concat when the copy
// path fails. Temporary clips are always removed.
func (r *Renderer) Concatenate(ctx context.Context, sourceVideo string, selected []types.SelectedSegment, outPath string) error {
	if len(selected) == 0 {
		return &errs.ValidationError{Reason: "no segments to render"}
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return &errs.ResourceError{Path: filepath.Dir(outPath), Err: err}
	}

	if len(selected) == 1 {
		seg := selected[0]
		return r.video.CutSegment(ctx, sourceVideo, seg.Start, seg.Duration(), outPath)
	}
	return r.concatMultiple(ctx, sourceVideo, selected, outPath)
}

func (r *Renderer) concatMultiple(ctx context.Context, sourceVideo string, selected []types.SelectedSegment, outPath string) (err error) {
	tmpDir, err := os.MkdirTemp("", "highlight-clips-")
	if err != nil {
		return &errs.ResourceError{Path: "temp dir", Err: err}
	}
	defer os.RemoveAll(tmpDir)

	clips := make([]string, 0, len(selected))
	for i, seg := range selected {
		clipPath := filepath.Join(tmpDir, fmt.Sprintf("seg_%03d.mp4", i))
		if err := r.video.CutSegment(ctx, sourceVideo, seg.Start, seg.Duration(), clipPath); err != nil {
			return fmt.Errorf("cut segment %d: %w", i+1, err)
		}
		clips = append(clips, clipPath)
	}

	listFile := filepath.Join(tmpDir, "concat.txt")
	if err := writeConcatList(listFile, clips); err != nil {
		return err
	}

	if err := r.video.ConcatCopy(ctx, listFile, outPath); err == nil {
		r.log.Info("concatenated with stream copy", "clips", len(clips))
		return nil
	} else {
		r.log.Warn("stream-copy concat failed, re-encoding", "error", err)
	}

	if err := r.video.ConcatReencode(ctx, listFile, outPath); err != nil {
		return fmt.Errorf("concat re-encode: %w", err)
	}
	r.log.Info("concatenated with re-encode", "clips", len(clips))
	return nil
}

// Thumbnail grabs one frame at the deliverable's midpoint. The duration
// probe degrades to zero on failure so thumbnailing still proceeds with
// a best-effort seek point; the fast single-pass grab falls back to the
// slower accurate path.
func (r *Renderer) Thumbnail(ctx context.Context, videoPath, outPath string) error {
	duration, err := r.video.ProbeDuration(ctx, videoPath)
	if err != nil {
		r.log.Warn("duration probe failed, thumbnailing from start", "error", err)
		duration = 0
	}
	mid := duration / 2

	if err := r.video.ThumbnailFast(ctx, videoPath, mid, outPath); err == nil {
		return nil
	} else {
		r.log.Warn("fast thumbnail failed, trying accurate seek", "error", err)
	}
	return r.video.ThumbnailAccurate(ctx, videoPath, mid, outPath)
}

func writeConcatList(listFile string, clips []string) error {
	var b []byte
	for _, c := range clips {
		b = append(b, []byte("file '"+c+"'\n")...)
	}
	if err := os.WriteFile(listFile, b, 0o644); err != nil {
		return &errs.ResourceError{Path: listFile, Err: err}
	}
	return nil
}
