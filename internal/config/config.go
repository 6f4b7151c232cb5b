package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Whisper     WhisperConfig     `yaml:"whisper"`
	Tools       ToolsConfig       `yaml:"tools"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Chunking    ChunkingConfig    `yaml:"chunking"`
	Study       StudyConfig       `yaml:"study"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type ToolsConfig struct {
	YtDlpPath  string `yaml:"ytdlp_path"`
	FFmpegPath string `yaml:"ffmpeg_path"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type ChunkingConfig struct {
	TargetSeconds    float64 `yaml:"target_seconds"`
	ToleranceSeconds float64 `yaml:"tolerance_seconds"`
	MinGapSeconds    float64 `yaml:"min_gap_seconds"`
	MaxChunks        int     `yaml:"max_chunks"`
}

type StudyConfig struct {
	Language string `yaml:"language"`
	Mode     string `yaml:"mode"` // flashcards, summary or both
}

type PathsConfig struct {
	Input      string `yaml:"input"`
	Processing string `yaml:"processing"`
	Output     string `yaml:"output"`
	Archived   string `yaml:"archived"`
	Cache      string `yaml:"cache"`
	Temp       string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent    int `yaml:"max_concurrent"`
	MaxLLMConcurrent int `yaml:"max_llm_concurrent"`
}

// Load reads and validates the YAML config file. A GEMINI_API_KEY
// environment variable is appended to gemini.api_keys when set.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKeys = append(cfg.Gemini.APIKeys, key)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Whisper.Language == "" {
		return fmt.Errorf("whisper.language is required")
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required (or set GEMINI_API_KEY)")
	}

	switch strings.ToLower(c.Study.Mode) {
	case "":
		c.Study.Mode = "flashcards"
	case "flashcards", "summary", "both":
		c.Study.Mode = strings.ToLower(c.Study.Mode)
	default:
		return fmt.Errorf("study.mode must be flashcards, summary or both")
	}

	if c.Paths.Processing == "" {
		c.Paths.Processing = "data/processing"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Cache == "" {
		c.Paths.Cache = "data/cache"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Tools.YtDlpPath == "" {
		c.Tools.YtDlpPath = "yt-dlp"
	}
	if c.Tools.FFmpegPath == "" {
		c.Tools.FFmpegPath = "ffmpeg"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Chunking.TargetSeconds == 0 {
		c.Chunking.TargetSeconds = 1200
	}
	if c.Chunking.ToleranceSeconds == 0 {
		c.Chunking.ToleranceSeconds = 120
	}
	if c.Chunking.MinGapSeconds == 0 {
		c.Chunking.MinGapSeconds = 3
	}
	if c.Chunking.MaxChunks == 0 {
		c.Chunking.MaxChunks = 20
	}
	if c.Study.Language == "" {
		c.Study.Language = "en"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.MaxLLMConcurrent == 0 {
		c.Performance.MaxLLMConcurrent = 4
	}

	return nil
}
