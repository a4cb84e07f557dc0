// Package pipeline wires adapters to the usecase and runs one job
// end to end.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Prajanya-g/videoSumarizer/internal/domain/ranking"
	"github.com/Prajanya-g/videoSumarizer/internal/domain/selection"
	"github.com/Prajanya-g/videoSumarizer/internal/ports"
	"github.com/Prajanya-g/videoSumarizer/internal/ports/adapters/ffmpeg"
	"github.com/Prajanya-g/videoSumarizer/internal/ports/adapters/gptrank"
	"github.com/Prajanya-g/videoSumarizer/internal/ports/adapters/whisperapi"
	"github.com/Prajanya-g/videoSumarizer/internal/ports/adapters/whispercpp"
	"github.com/Prajanya-g/videoSumarizer/internal/render"
	"github.com/Prajanya-g/videoSumarizer/internal/status"
	"github.com/Prajanya-g/videoSumarizer/internal/transcribe"
	"github.com/Prajanya-g/videoSumarizer/internal/types"
	"github.com/Prajanya-g/videoSumarizer/internal/usecase"
)

const (
	asrWhisperCPP = "whispercpp"
	asrOpenAI     = "openai"
)

type Config struct {
	JobID         string
	InputVideo    string
	TargetSeconds int
	DataDir       string

	FFmpegPath  string
	FFprobePath string

	ASRBackend       string
	WhisperBin       string
	WhisperModel     string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIBaseURL    string
	AllowedHosts     []string
	LLMEnabled       bool
	TextRankFallback bool

	SelectionPolicy  string
	MinSegmentLength float64

	Log *slog.Logger
}

func (c Config) Validate() error {
	if c.InputVideo == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.InputVideo); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.TargetSeconds <= 0 {
		return fmt.Errorf("target duration must be > 0")
	}
	switch c.ASRBackend {
	case asrWhisperCPP:
		if c.WhisperModel == "" {
			return fmt.Errorf("whisper model path is required")
		}
	case asrOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("api key is required for hosted transcription")
		}
	default:
		return fmt.Errorf("unknown transcription backend %q", c.ASRBackend)
	}
	if _, err := selection.ParsePolicy(c.SelectionPolicy); err != nil {
		return err
	}
	if c.LLMEnabled {
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("api key is required when ranking with a language model")
		}
		return gptrank.ValidateBaseURL(c.OpenAIBaseURL, c.AllowedHosts)
	}
	return nil
}

// jobDir is where one job's artifacts live: <DataDir>/jobs/<JobID>.
func (c Config) jobDir(jobID string) string {
	dataDir := c.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	return filepath.Join(dataDir, "jobs", jobID)
}

// Run executes the full pipeline for cfg and returns the job result.
func Run(ctx context.Context, cfg Config) (types.Result, error) {
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	video := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	if err := video.Available(ctx); err != nil {
		return types.Result{}, err
	}

	var stt ports.SpeechToText
	var client *openai.Client
	if cfg.OpenAIAPIKey != "" {
		conf := openai.DefaultConfig(cfg.OpenAIAPIKey)
		conf.BaseURL = gptrank.NormalizeBaseURL(cfg.OpenAIBaseURL)
		client = openai.NewClientWithConfig(conf)
	}
	switch cfg.ASRBackend {
	case asrOpenAI:
		stt = whisperapi.New(client)
	default:
		stt = whispercpp.New(cfg.WhisperBin, cfg.WhisperModel)
	}

	var primary ports.Ranker
	if cfg.LLMEnabled {
		primary = gptrank.New(client, cfg.OpenAIModel, log)
	}
	var fallback ports.Ranker
	if cfg.TextRankFallback {
		fallback = ranking.NewTextRank()
	}
	ranker := &ranking.Service{Primary: primary, Fallback: fallback, Log: log}

	policy, err := selection.ParsePolicy(cfg.SelectionPolicy)
	if err != nil {
		return types.Result{}, err
	}
	selector := selection.New(policy)
	if cfg.MinSegmentLength > 0 {
		selector.MinLength = cfg.MinSegmentLength
	}

	tracker := status.NewFileTracker(cfg.jobDir)
	reporter := status.NewReporter(tracker, log)
	defer reporter.Close()

	uc := usecase.New(usecase.Deps{
		Video:       video,
		Transcriber: transcribe.NewEngine(video, stt, log),
		Ranker:      ranker,
		Selector:    selector,
		Renderer:    render.New(video, log),
		Reporter:    reporter,
		Log:         log,
	})

	job := types.Job{
		ID:            cfg.JobID,
		TargetSeconds: cfg.TargetSeconds,
		SourceVideo:   cfg.InputVideo,
	}
	reporter.Emit(job.ID, types.StatusUploaded, "")
	return uc.Run(ctx, job, cfg.jobDir(job.ID))
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.SpeechToText = (*whispercpp.Adapter)(nil)
var _ ports.SpeechToText = (*whisperapi.Adapter)(nil)
var _ ports.Ranker = (*gptrank.Adapter)(nil)
var _ ports.Ranker = (*ranking.TextRank)(nil)
var _ ports.Tracker = (*status.FileTracker)(nil)
