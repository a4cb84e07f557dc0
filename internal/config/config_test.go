package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "ffmpeg", cfg.FFmpegPath)
	require.Equal(t, "ffprobe", cfg.FFprobePath)
	require.Equal(t, "whispercpp", cfg.ASRBackend)
	require.Equal(t, "greedy", cfg.SelectionPolicy)
	require.Equal(t, 2.0, cfg.MinSegmentLength)
	require.Equal(t, "data", cfg.DataDir)
	require.True(t, cfg.LLMEnabled)
	require.True(t, cfg.TextRankFallback)
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("ASR_BACKEND", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SELECTION_POLICY", "temporal")
	t.Setenv("MIN_SEGMENT_LENGTH", "3.5")
	t.Setenv("LLM_RANKING_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "openai", cfg.ASRBackend)
	require.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	require.Equal(t, "temporal", cfg.SelectionPolicy)
	require.Equal(t, 3.5, cfg.MinSegmentLength)
	require.False(t, cfg.LLMEnabled)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("ASR_BACKEND", "carrier-pigeon")

	cfg, err := Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_RejectsUnknownPolicy(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SELECTION_POLICY", "random")

	cfg, err := Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_RejectsNonPositiveMinLength(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("MIN_SEGMENT_LENGTH", "0")

	cfg, err := Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}
