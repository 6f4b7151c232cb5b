package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	return Config{
		Whisper: WhisperConfig{
			ModelPath:  "models/test.bin",
			BinaryPath: "./whisper",
			Language:   "en",
		},
		Gemini: GeminiConfig{
			APIKeys: []string{"test-key"},
		},
		Paths: PathsConfig{
			Input:  "data/input",
			Output: "data/output",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing model path",
			mutate:  func(c *Config) { c.Whisper.ModelPath = "" },
			wantErr: true,
		},
		{
			name:    "missing paths",
			mutate:  func(c *Config) { c.Paths = PathsConfig{} },
			wantErr: true,
		},
		{
			name:    "missing api keys",
			mutate:  func(c *Config) { c.Gemini.APIKeys = nil },
			wantErr: true,
		},
		{
			name:    "unknown study mode",
			mutate:  func(c *Config) { c.Study.Mode = "podcast" },
			wantErr: true,
		},
		{
			name:    "mode is case insensitive",
			mutate:  func(c *Config) { c.Study.Mode = "Summary" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Chunking.TargetSeconds != 1200 {
		t.Errorf("TargetSeconds = %v, want 1200", cfg.Chunking.TargetSeconds)
	}
	if cfg.Chunking.ToleranceSeconds != 120 {
		t.Errorf("ToleranceSeconds = %v, want 120", cfg.Chunking.ToleranceSeconds)
	}
	if cfg.Chunking.MinGapSeconds != 3 {
		t.Errorf("MinGapSeconds = %v, want 3", cfg.Chunking.MinGapSeconds)
	}
	if cfg.Chunking.MaxChunks != 20 {
		t.Errorf("MaxChunks = %v, want 20", cfg.Chunking.MaxChunks)
	}
	if cfg.Study.Mode != "flashcards" {
		t.Errorf("Mode = %v, want flashcards", cfg.Study.Mode)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %v, want gemini-2.5-flash", cfg.Gemini.Model)
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
whisper:
  model_path: "models/test.bin"
  binary_path: "./whisper"
  language: "en"
  prompt: "test"

gemini:
  model: "gemini-2.5-flash"
  api_keys:
    - "key-one"

chunking:
  target_seconds: 600
  tolerance_seconds: 60

paths:
  input: "data/input"
  output: "data/output"

logging:
  level: "info"
  format: "text"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test loading
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Whisper.ModelPath != "models/test.bin" {
		t.Errorf("ModelPath = %v, want %v", cfg.Whisper.ModelPath, "models/test.bin")
	}

	if cfg.Paths.Input != "data/input" {
		t.Errorf("Input = %v, want %v", cfg.Paths.Input, "data/input")
	}

	if cfg.Chunking.TargetSeconds != 600 {
		t.Errorf("TargetSeconds = %v, want 600", cfg.Chunking.TargetSeconds)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
