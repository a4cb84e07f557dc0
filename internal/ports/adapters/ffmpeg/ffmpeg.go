// Package ffmpeg wraps the ffmpeg and ffprobe binaries behind the
// ports.VideoTool surface. Every call runs as a child process under a
// wall-clock timeout; on expiry the process is force-killed and the
// failure surfaces as an ExternalToolError without retry.
package ffmpeg

import (
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/Prajanya-g/videoSumarizer/internal/errs"
)

// Encode profile shared by segment cuts and the re-encode concat path.
const (
	videoCodec  = "libx264"
	audioCodec  = "aac"
	preset      = "veryfast"
	crfQuality  = "23"
	callTimeout = 5 * time.Minute
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
	timeout time.Duration
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath, timeout: callTimeout}
}

// Available reports whether both binaries can be executed.
func (a *Adapter) Available(ctx context.Context) error {
	for _, bin := range []string{a.ffmpeg, a.ffprobe} {
		cmd := exec.CommandContext(ctx, bin, "-version")
		if b, err := cmd.CombinedOutput(); err != nil {
			return errs.NewToolError(bin, err, b)
		}
	}
	return nil
}

// ExtractAudio normalizes arbitrary video into mono 16 kHz 16-bit PCM.
func (a *Adapter) ExtractAudio(ctx context.Context, inVideo, outWav string) error {
	return a.runFFmpeg(ctx,
		"-i", inVideo,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		"-y",
		outWav,
	)
}

// CutAudioRange extracts one transcription chunk window, keeping the
// mono 16 kHz profile.
func (a *Adapter) CutAudioRange(ctx context.Context, inWav string, startSec, durSec float64, outWav string) error {
	return a.runFFmpeg(ctx,
		"-i", inWav,
		"-ss", fmtSec(startSec),
		"-t", fmtSec(durSec),
		"-ar", "16000",
		"-ac", "1",
		"-y",
		outWav,
	)
}

// CutSegment re-encodes one selected range with the fixed profile.
func (a *Adapter) CutSegment(ctx context.Context, inVideo string, startSec, durSec float64, outVideo string) error {
	return a.runFFmpeg(ctx,
		"-i", inVideo,
		"-ss", fmtSec(startSec),
		"-t", fmtSec(durSec),
		"-c:v", videoCodec,
		"-preset", preset,
		"-crf", crfQuality,
		"-c:a", audioCodec,
		"-movflags", "+faststart",
		"-y",
		outVideo,
	)
}

// ConcatCopy joins pre-encoded clips via the concat demuxer without
// re-encoding. Fast, but can fail across heterogeneous inputs.
func (a *Adapter) ConcatCopy(ctx context.Context, listFile, outVideo string) error {
	return a.runFFmpeg(ctx,
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-c", "copy",
		"-y",
		outVideo,
	)
}

// ConcatReencode joins clips with a full re-encode. Slower, but works
// for inputs the stream-copy path rejects.
func (a *Adapter) ConcatReencode(ctx context.Context, listFile, outVideo string) error {
	return a.runFFmpeg(ctx,
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-c:v", videoCodec,
		"-preset", preset,
		"-crf", crfQuality,
		"-c:a", audioCodec,
		"-movflags", "+faststart",
		"-y",
		outVideo,
	)
}

// ThumbnailFast grabs a single frame using input seeking, which skips
// decoding everything before the seek point.
func (a *Adapter) ThumbnailFast(ctx context.Context, inVideo string, atSec float64, outImage string) error {
	return a.runFFmpeg(ctx,
		"-ss", fmtSec(atSec),
		"-i", inVideo,
		"-vframes", "1",
		"-f", "image2",
		"-c:v", "mjpeg",
		"-q:v", "2",
		"-y",
		outImage,
	)
}

// ThumbnailAccurate decodes up to the seek point before grabbing the
// frame. Used when the fast path fails on an awkward container.
func (a *Adapter) ThumbnailAccurate(ctx context.Context, inVideo string, atSec float64, outImage string) error {
	return a.runFFmpeg(ctx,
		"-i", inVideo,
		"-ss", fmtSec(atSec),
		"-vframes", "1",
		"-f", "image2",
		"-c:v", "mjpeg",
		"-q:v", "2",
		"-y",
		outImage,
	)
}

// ProbeDuration queries container duration via ffprobe, never the
// encoder.
func (a *Adapter) ProbeDuration(ctx context.Context, path string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, a.wrapErr(ctx, a.ffprobe, err, b)
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errs.NewToolError(a.ffprobe, err, b)
	}
	return sec, nil
}

func (a *Adapter) runFFmpeg(ctx context.Context, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	// CombinedOutput drains both pipes, so a chatty encode cannot
	// deadlock on a full pipe buffer.
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return a.wrapErr(ctx, a.ffmpeg, err, b)
	}
	return nil
}

func (a *Adapter) wrapErr(ctx context.Context, tool string, err error, output []byte) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errs.NewToolError(tool, errors.New("timed out after "+a.timeout.String()), nil)
	}
	return errs.NewToolError(tool, err, output)
}

func fmtSec(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
