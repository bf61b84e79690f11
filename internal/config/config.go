package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Storage     StorageConfig     `yaml:"storage"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Deck        DeckConfig        `yaml:"deck"`
	Defaults    DefaultsConfig    `yaml:"defaults"`
	Converters  ConvertersConfig  `yaml:"converters"`
}

type ServerConfig struct {
	Addr          string `yaml:"addr" env:"MEETING2SLIDES_ADDR"`
	PublicBaseURL string `yaml:"public_base_url" env:"MEETING2SLIDES_PUBLIC_URL"`
}

type GeminiConfig struct {
	APIKey          string   `yaml:"api_key" env:"GEMINI_API_KEY"`
	APIKeys         []string `yaml:"api_keys" env:"GEMINI_API_KEYS" envSeparator:","`
	Model           string   `yaml:"model"`
	ImageModel      string   `yaml:"image_model"`
	Temperature     float32  `yaml:"temperature"`
	MaxOutputTokens int32    `yaml:"max_output_tokens"`
}

type StorageConfig struct {
	DBPath    string `yaml:"db_path" env:"MEETING2SLIDES_DB_PATH"`
	BucketDir string `yaml:"bucket_dir"`
	Bucket    string `yaml:"bucket"`
}

type PathsConfig struct {
	Inbox    string `yaml:"inbox"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"MEETING2SLIDES_LOG_LEVEL"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type DeckConfig struct {
	MinSlides int `yaml:"min_slides"`
	MaxSlides int `yaml:"max_slides"`
}

type DefaultsConfig struct {
	SystemPrompt       string `yaml:"system_prompt"`
	ContentOrientation string `yaml:"content_orientation"`
	VisualStyle        string `yaml:"visual_style"`
	ImageStyle         string `yaml:"image_style"`
}

// ConvertersConfig names the external commands used to extract text from
// transcript formats that cannot be read directly.
type ConvertersConfig struct {
	PDF  []string `yaml:"pdf"`
	DOCX []string `yaml:"docx"`
}

// Load reads the YAML file at path, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Keys returns the configured Gemini API keys, single key first, without duplicates.
func (c *Config) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, k := range append([]string{c.Gemini.APIKey}, c.Gemini.APIKeys...) {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return fmt.Errorf("storage.db_path is required")
	}
	if c.Storage.BucketDir == "" {
		return fmt.Errorf("storage.bucket_dir is required")
	}
	if c.Deck.MinSlides < 0 || c.Deck.MaxSlides < 0 {
		return fmt.Errorf("deck slide bounds must not be negative")
	}
	if c.Deck.MaxSlides != 0 && c.Deck.MinSlides > c.Deck.MaxSlides {
		return fmt.Errorf("deck.min_slides (%d) exceeds deck.max_slides (%d)", c.Deck.MinSlides, c.Deck.MaxSlides)
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.PublicBaseURL == "" {
		c.Server.PublicBaseURL = "http://localhost" + c.Server.Addr
	}
	if c.Storage.Bucket == "" {
		c.Storage.Bucket = "presentations"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "auto"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.ImageModel == "" {
		c.Gemini.ImageModel = "imagen-4.0-fast-generate-001"
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.4
	}
	if c.Gemini.MaxOutputTokens == 0 {
		c.Gemini.MaxOutputTokens = 8192
	}
	if c.Deck.MinSlides == 0 {
		c.Deck.MinSlides = 8
	}
	if c.Deck.MaxSlides == 0 {
		c.Deck.MaxSlides = 14
	}
	if c.Deck.MinSlides > c.Deck.MaxSlides {
		c.Deck.MaxSlides = c.Deck.MinSlides
	}
	if c.Defaults.SystemPrompt == "" {
		c.Defaults.SystemPrompt = "You are an expert at creating professional presentations."
	}
	if c.Defaults.ContentOrientation == "" {
		c.Defaults.ContentOrientation = "Commercial proposal"
	}
	if c.Defaults.VisualStyle == "" {
		c.Defaults.VisualStyle = "Minimalist, professional, white and orange, with charts"
	}
	if c.Defaults.ImageStyle == "" {
		c.Defaults.ImageStyle = "Modern, clean, professional with lime green (#d2dd00), black and white colors"
	}
	if len(c.Converters.PDF) == 0 {
		c.Converters.PDF = []string{"pdftotext", "-layout", "{input}", "-"}
	}
	if len(c.Converters.DOCX) == 0 {
		c.Converters.DOCX = []string{"pandoc", "-t", "plain", "{input}"}
	}

	return nil
}
