package config

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds every environment-driven tunable of the pipeline.
// Flags may override fields after loading.
type Config struct {
	// Tool paths
	FFmpegPath  string `mapstructure:"FFMPEG_PATH"`
	FFprobePath string `mapstructure:"FFPROBE_PATH"`

	// Transcription
	ASRBackend     string `mapstructure:"ASR_BACKEND" validate:"oneof=whispercpp openai"`
	WhisperBinPath string `mapstructure:"WHISPER_BIN_PATH"`
	WhisperModel   string `mapstructure:"WHISPER_MODEL_PATH"`

	// LLM ranking
	OpenAIAPIKey     string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel      string `mapstructure:"OPENAI_MODEL"`
	OpenAIBaseURL    string `mapstructure:"OPENAI_BASE_URL"`
	LLMEnabled       bool   `mapstructure:"LLM_RANKING_ENABLED"`
	TextRankFallback bool   `mapstructure:"TEXTRANK_FALLBACK_ENABLED"`

	// Selection
	SelectionPolicy  string  `mapstructure:"SELECTION_POLICY" validate:"oneof=greedy chunk temporal"`
	MinSegmentLength float64 `mapstructure:"MIN_SEGMENT_LENGTH" validate:"gt=0"`

	// Storage
	DataDir string `mapstructure:"DATA_DIR" validate:"required"`
}

// bindEnv binds environment variables from mapstructure tags so
// AutomaticEnv picks up keys Unmarshal would otherwise miss.
func bindEnv(c Config) {
	typ := reflect.TypeOf(c)
	for i := 0; i < typ.NumField(); i++ {
		if tag := typ.Field(i).Tag.Get("mapstructure"); tag != "" {
			viper.BindEnv(tag)
		}
	}
}

func Load() (*Config, error) {
	bindEnv(Config{})
	viper.AutomaticEnv()

	viper.SetDefault("FFMPEG_PATH", "ffmpeg")
	viper.SetDefault("FFPROBE_PATH", "ffprobe")
	viper.SetDefault("ASR_BACKEND", "whispercpp")
	viper.SetDefault("WHISPER_BIN_PATH", "whisper-cli")
	viper.SetDefault("LLM_RANKING_ENABLED", true)
	viper.SetDefault("TEXTRANK_FALLBACK_ENABLED", true)
	viper.SetDefault("SELECTION_POLICY", "greedy")
	viper.SetDefault("MIN_SEGMENT_LENGTH", 2.0)
	viper.SetDefault("DATA_DIR", "data")

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
