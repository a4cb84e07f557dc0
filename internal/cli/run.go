package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Prajanya-g/videoSumarizer/internal/config"
	"github.com/Prajanya-g/videoSumarizer/internal/pipeline"
)

func run(cmd *cobra.Command, input string) error {
	target, _ := cmd.Flags().GetInt("target")
	dataDir, _ := cmd.Flags().GetString("data")
	policy, _ := cmd.Flags().GetString("policy")
	minSegment, _ := cmd.Flags().GetFloat64("min-segment")
	allowedHosts, _ := cmd.Flags().GetStringSlice("llm-allowed-hosts")

	conf, err := config.Load()
	if err != nil {
		return err
	}
	if dataDir != "" {
		conf.DataDir = dataDir
	}
	if policy != "" {
		conf.SelectionPolicy = policy
	}
	if minSegment > 0 {
		conf.MinSegmentLength = minSegment
	}

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
	defer cancel()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := pipeline.Config{
		JobID:         uuid.NewString(),
		InputVideo:    absIn,
		TargetSeconds: target,
		DataDir:       conf.DataDir,

		FFmpegPath:  conf.FFmpegPath,
		FFprobePath: conf.FFprobePath,

		ASRBackend:   conf.ASRBackend,
		WhisperBin:   conf.WhisperBinPath,
		WhisperModel: conf.WhisperModel,

		OpenAIAPIKey:     conf.OpenAIAPIKey,
		OpenAIModel:      conf.OpenAIModel,
		OpenAIBaseURL:    conf.OpenAIBaseURL,
		AllowedHosts:     allowedHosts,
		LLMEnabled:       conf.LLMEnabled && conf.OpenAIAPIKey != "",
		TextRankFallback: conf.TextRankFallback,

		SelectionPolicy:  conf.SelectionPolicy,
		MinSegmentLength: conf.MinSegmentLength,

		Log: log,
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "highlight reel ready: %d segments, %.1fs (job %s)\n",
		res.SegmentsCount, res.ActualDuration, res.JobID)
	return nil
}
