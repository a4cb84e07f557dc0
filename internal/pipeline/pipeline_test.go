package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig(t *testing.T) Config {
	input := filepath.Join(t.TempDir(), "in.mp4")
	if err := os.WriteFile(input, []byte("mp4"), 0o644); err != nil {
		t.Fatal(err)
	}
	return Config{
		JobID:           "job",
		InputVideo:      input,
		TargetSeconds:   60,
		ASRBackend:      asrWhisperCPP,
		WhisperModel:    "/models/ggml-base.bin",
		SelectionPolicy: "greedy",
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing input", mutate: func(c *Config) { c.InputVideo = "" }, wantErr: true},
		{name: "input does not exist", mutate: func(c *Config) { c.InputVideo = "/nope/missing.mp4" }, wantErr: true},
		{name: "zero target", mutate: func(c *Config) { c.TargetSeconds = 0 }, wantErr: true},
		{name: "whispercpp without model", mutate: func(c *Config) { c.WhisperModel = "" }, wantErr: true},
		{
			name: "hosted asr without key",
			mutate: func(c *Config) {
				c.ASRBackend = asrOpenAI
				c.OpenAIAPIKey = ""
			},
			wantErr: true,
		},
		{
			name: "hosted asr with key",
			mutate: func(c *Config) {
				c.ASRBackend = asrOpenAI
				c.OpenAIAPIKey = "sk-test"
			},
		},
		{name: "unknown backend", mutate: func(c *Config) { c.ASRBackend = "sphinx" }, wantErr: true},
		{name: "unknown policy", mutate: func(c *Config) { c.SelectionPolicy = "random" }, wantErr: true},
		{
			name: "llm without key",
			mutate: func(c *Config) {
				c.LLMEnabled = true
				c.OpenAIAPIKey = ""
			},
			wantErr: true,
		},
		{
			name: "llm with bad base url",
			mutate: func(c *Config) {
				c.LLMEnabled = true
				c.OpenAIAPIKey = "sk-test"
				c.OpenAIBaseURL = "http://evil.example"
			},
			wantErr: true,
		},
		{
			name: "llm with default base url",
			mutate: func(c *Config) {
				c.LLMEnabled = true
				c.OpenAIAPIKey = "sk-test"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestJobDir(t *testing.T) {
	c := Config{DataDir: "/var/lib/videosum"}
	if got := c.jobDir("abc"); got != filepath.Join("/var/lib/videosum", "jobs", "abc") {
		t.Fatalf("jobDir = %q", got)
	}
	empty := Config{}
	if got := empty.jobDir("abc"); got != filepath.Join("data", "jobs", "abc") {
		t.Fatalf("default jobDir = %q", got)
	}
}
