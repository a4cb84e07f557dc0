// Package usecase sequences the highlight pipeline stages for one job:
// extract, transcribe, rank, select, render, publish artifacts.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Prajanya-g/videoSumarizer/internal/artifacts"
	"github.com/Prajanya-g/videoSumarizer/internal/domain/selection"
	"github.com/Prajanya-g/videoSumarizer/internal/errs"
	"github.com/Prajanya-g/videoSumarizer/internal/ports"
	"github.com/Prajanya-g/videoSumarizer/internal/status"
	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

// Transcriber is the chunked transcription engine surface.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (types.Transcript, error)
}

// Renderer is the tiered-fallback rendering surface.
type Renderer interface {
	Concatenate(ctx context.Context, sourceVideo string, selected []types.SelectedSegment, outPath string) error
	Thumbnail(ctx context.Context, videoPath, outPath string) error
}

type Deps struct {
	Video       ports.VideoTool
	Transcriber Transcriber
	Ranker      ports.Ranker
	Selector    *selection.Selector
	Renderer    Renderer
	Reporter    *status.Reporter
	Log         *slog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

// Run executes the full pipeline for one job, reporting one lifecycle
// state per stage boundary. On an unrecovered error it removes any
// deliverable a client could mistake for success, records the terminal
// failed status with the error text, and re-propagates.
func (u Usecase) Run(ctx context.Context, job types.Job, jobDir string) (types.Result, error) {
	started := time.Now()

	res, err := u.run(ctx, job, jobDir, started)
	if err != nil {
		u.removeDeliverables(jobDir)
		u.d.Reporter.Emit(job.ID, types.StatusFailed, err.Error())
		return types.Result{}, err
	}
	u.d.Reporter.Emit(job.ID, types.StatusCompleted, "")
	return res, nil
}

func (u Usecase) run(ctx context.Context, job types.Job, jobDir string, started time.Time) (types.Result, error) {
	log := u.d.Log.With("job", job.ID)
	u.d.Reporter.Emit(job.ID, types.StatusProcessing, "")

	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return types.Result{}, &errs.ResourceError{Path: jobDir, Err: err}
	}

	log.Info("extracting audio", "source", job.SourceVideo)
	audioPath := filepath.Join(jobDir, "audio.wav")
	if err := u.d.Video.ExtractAudio(ctx, job.SourceVideo, audioPath); err != nil {
		return types.Result{}, fmt.Errorf("extract audio: %w", err)
	}

	u.d.Reporter.Emit(job.ID, types.StatusTranscribing, "")
	tr, err := u.d.Transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return types.Result{}, fmt.Errorf("transcribe: %w", err)
	}
	if err := artifacts.WriteTranscript(jobDir, tr); err != nil {
		return types.Result{}, err
	}
	log.Info("transcription completed", "segments", len(tr.Segments))

	u.d.Reporter.Emit(job.ID, types.StatusRanking, "")
	candidates, err := u.d.Ranker.Rank(ctx, tr.Segments, job.TargetSeconds)
	if err != nil {
		return types.Result{}, fmt.Errorf("rank segments: %w", err)
	}
	log.Info("ranking completed", "candidates", len(candidates))

	u.d.Reporter.Emit(job.ID, types.StatusSelecting, "")
	selected := u.d.Selector.Select(candidates, job.TargetSeconds)
	if len(selected) == 0 {
		return types.Result{}, &errs.ValidationError{Reason: "no usable segments selected"}
	}
	actual := types.TotalDuration(selected)
	log.Info("selection completed",
		"segments", len(selected),
		"actual_sec", fmt.Sprintf("%.1f", actual),
		"target_sec", job.TargetSeconds)

	u.d.Reporter.Emit(job.ID, types.StatusRendering, "")
	outPath := filepath.Join(jobDir, artifacts.HighlightsMP4)
	if err := u.d.Renderer.Concatenate(ctx, job.SourceVideo, selected, outPath); err != nil {
		return types.Result{}, fmt.Errorf("render highlights: %w", err)
	}
	thumbPath := filepath.Join(jobDir, artifacts.ThumbnailJPG)
	if err := u.d.Renderer.Thumbnail(ctx, outPath, thumbPath); err != nil {
		return types.Result{}, fmt.Errorf("render thumbnail: %w", err)
	}
	if fi, err := os.Stat(outPath); err == nil {
		log.Info("deliverable rendered", "path", outPath, "size", humanize.Bytes(uint64(fi.Size())))
	}

	if err := artifacts.WriteJumpTo(jobDir, selected); err != nil {
		return types.Result{}, err
	}

	res := types.Result{
		JobID:          job.ID,
		Status:         types.StatusCompleted,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		TargetSeconds:  job.TargetSeconds,
		ActualDuration: actual,
		SegmentsCount:  len(selected),
		Files:          artifacts.FileManifest(),
		Segments:       selected,
		Stats:          buildStats(tr, len(candidates), len(selected), actual, started),
	}
	if err := artifacts.WriteResult(jobDir, res); err != nil {
		return types.Result{}, err
	}
	return res, nil
}

func buildStats(tr types.Transcript, candidateCount, selectedCount int, actual float64, started time.Time) types.ResultStats {
	stats := types.ResultStats{
		ProcessingSeconds: time.Since(started).Seconds(),
		CandidateCount:    candidateCount,
	}
	if actual > 0 {
		stats.CompressionRatio = tr.TotalDuration / actual
	}
	if selectedCount > 0 && actual > 0 {
		stats.AvgSegmentLength = actual / float64(selectedCount)
	}
	return stats
}

// removeDeliverables clears success-shaped artifacts after a failure.
// Transcript files stay for diagnostics; the deliverable, thumbnail,
// and result manifest must not outlive a failed run.
func (u Usecase) removeDeliverables(jobDir string) {
	for _, name := range []string{artifacts.HighlightsMP4, artifacts.ThumbnailJPG, artifacts.ResultJSON, artifacts.JumpToJSON} {
		os.Remove(filepath.Join(jobDir, name))
	}
}
