package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pitchperfect/pitch-backend/internal/pkg/backoff"
	pkgRetry "github.com/pitchperfect/pitch-backend/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configurations
	GenerationConnectorCfg GenerationConnectorConfig `envPrefix:"GENERATION_"`
	ASRConnectorCfg        ASRConnectorConfig        `envPrefix:"ASR_"`
	TTSConnectorCfg        TTSConnectorConfig        `envPrefix:"TTS_"`
	ScraperConnectorCfg    ScraperConnectorConfig    `envPrefix:"SCRAPER_"`
	DocParseConnectorCfg   DocParseConnectorConfig   `envPrefix:"DOCPARSE_"`

	// Suggestion regeneration limits
	SuggestionCfg SuggestionConfig `envPrefix:"SUGGESTION_"`

	// Survey trigger thresholds
	SurveyCfg SurveyConfig `envPrefix:"SURVEY_"`

	// Script timing: words per minute assumed for block timestamps
	SpeakingRateWPM int `env:"SPEAKING_RATE_WPM" envDefault:"130"`
	// Acceptable deviation of the generated word count from target
	WordCountTolerance float64 `env:"WORD_COUNT_TOLERANCE" envDefault:"0.2"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Fallback suggestions shown when regeneration exhausts its retries
	// (loaded from JSON file)
	FallbackSuggestions map[string][]string

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS,notEmpty"`

	// Environment (set from flag, not from env var)
	Environment string
}

type GenerationConnectorConfig struct {
	HTTPClientConfig
	SuggestionsEndpoint string               `env:"SUGGESTIONS_ENDPOINT,notEmpty"`
	ScriptEndpoint      string               `env:"SCRIPT_ENDPOINT,notEmpty"`
	CounterpartEndpoint string               `env:"COUNTERPART_ENDPOINT,notEmpty"`
	AnalysisEndpoint    string               `env:"ANALYSIS_ENDPOINT,notEmpty"`
	ScoreEndpoint       string               `env:"SCORE_ENDPOINT,notEmpty"`
	Retry               pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type ASRConnectorConfig struct {
	HTTPClientConfig
	TranscribeEndpoint string               `env:"TRANSCRIBE_ENDPOINT,notEmpty"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type TTSConnectorConfig struct {
	HTTPClientConfig
	SynthesizeEndpoint string               `env:"SYNTHESIZE_ENDPOINT,notEmpty"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type ScraperConnectorConfig struct {
	HTTPClientConfig
	ScrapeEndpoint string               `env:"SCRAPE_ENDPOINT,notEmpty"`
	Retry          pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type DocParseConnectorConfig struct {
	HTTPClientConfig
	ParseEndpoint string               `env:"PARSE_ENDPOINT,notEmpty"`
	Retry         pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT,notEmpty"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT,notEmpty"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE,notEmpty"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT,notEmpty"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT,notEmpty"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

// SuggestionConfig bounds "regenerate suggestion" calls. The defaults
// are product tuning values, kept as configuration on purpose.
type SuggestionConfig struct {
	WindowLimit int            `env:"WINDOW_LIMIT" envDefault:"5"`
	Window      time.Duration  `env:"WINDOW" envDefault:"60s"`
	Cooldown    time.Duration  `env:"COOLDOWN" envDefault:"30s"`
	MaxRetries  uint           `env:"MAX_RETRIES" envDefault:"3"`
	Backoff     backoff.Config `envPrefix:"BACKOFF_"`
}

// SurveyConfig holds the survey trigger thresholds.
type SurveyConfig struct {
	QuickSessionSeconds       int `env:"QUICK_SESSION_SECONDS" envDefault:"300"`
	ComprehensiveCompleted    int `env:"COMPREHENSIVE_COMPLETED" envDefault:"10"`
	ComprehensiveAbandonedRun int `env:"COMPREHENSIVE_ABANDONED_RUN" envDefault:"3"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxDocumentSize  int64 `env:"MAX_DOCUMENT_SIZE" envDefault:"10485760"`  // 10 MiB
	MaxAudioFileSize int64 `env:"MAX_AUDIO_FILE_SIZE" envDefault:"26214400"` // 25 MiB
	MaxVideoFileSize int64 `env:"MAX_VIDEO_FILE_SIZE" envDefault:"104857600"`
	MaxUploadSize    int64 `env:"MAX_UPLOAD_SIZE" envDefault:"134217728"` // multipart parse cap
}

// fallbackSuggestions represents the structure of fallback_suggestions.json
type fallbackSuggestions struct {
	Suggestions map[string][]string `json:"suggestions"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	for _, rc := range []*pkgRetry.RetryConfig{
		&cfg.GenerationConnectorCfg.Retry,
		&cfg.ASRConnectorCfg.Retry,
		&cfg.TTSConnectorCfg.Retry,
		&cfg.ScraperConnectorCfg.Retry,
		&cfg.DocParseConnectorCfg.Retry,
	} {
		rc.Normalize()
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := loadFallbackSuggestions(cfg); err != nil {
		return nil, fmt.Errorf("load fallback suggestions: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.SuggestionCfg.WindowLimit < 1 || cfg.SuggestionCfg.WindowLimit > 100 {
		errors = append(errors, fmt.Sprintf("SUGGESTION_WINDOW_LIMIT must be between 1 and 100, got %d", cfg.SuggestionCfg.WindowLimit))
	}

	if cfg.SuggestionCfg.MaxRetries > 10 {
		errors = append(errors, fmt.Sprintf("SUGGESTION_MAX_RETRIES must be at most 10, got %d", cfg.SuggestionCfg.MaxRetries))
	}

	if cfg.SpeakingRateWPM < 60 || cfg.SpeakingRateWPM > 260 {
		errors = append(errors, fmt.Sprintf("SPEAKING_RATE_WPM must be between 60 and 260, got %d", cfg.SpeakingRateWPM))
	}

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", errors[0])
	}

	return nil
}

var defaultFallbackSuggestions = map[string][]string{
	"problem": {
		"Existing solutions are too expensive for small teams",
		"Manual workflows waste hours every week",
		"Current tools don't integrate with each other",
	},
	"persona": {
		"A busy founder who needs results fast",
		"An operations manager drowning in spreadsheets",
		"A first-time buyer comparing alternatives",
	},
	"hook": {
		"Start with a surprising industry statistic",
		"Open with a short customer story",
		"Ask the audience a pointed question",
	},
}

func loadFallbackSuggestions(cfg *Config) error {
	configPath := filepath.Join("internal", "config", "fallback_suggestions.json")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Warning: fallback suggestions file not found at %s, using defaults\n", configPath)
		cfg.FallbackSuggestions = defaultFallbackSuggestions
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read fallback suggestions file: %w", err)
	}

	if len(data) == 0 {
		return fmt.Errorf("fallback suggestions file is empty: %s", configPath)
	}

	var parsed fallbackSuggestions
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse fallback suggestions JSON: %w", err)
	}

	if len(parsed.Suggestions) == 0 {
		return fmt.Errorf("fallback suggestions file contains no entries: %s", configPath)
	}

	cfg.FallbackSuggestions = parsed.Suggestions

	fmt.Printf("Loaded fallback suggestions for %d types from %s\n", len(cfg.FallbackSuggestions), configPath)
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
