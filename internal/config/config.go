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

	"github.com/solacetech/solace-backend/internal/entity"
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
	LLMConnectorCfg       LLMConnectorConfig       `envPrefix:"LLM_"`
	EmbeddingConnectorCfg EmbeddingConnectorConfig `envPrefix:"EMBEDDING_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Regression artifact files (JSON parameter exports)
	ArtifactsDir string `env:"ARTIFACTS_DIR" envDefault:"artifacts"`

	// In-memory session store
	SessionTTL             time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1h"`

	// Feedback delivery
	SMTPCfg SMTPConfig `envPrefix:"SMTP_"`

	// Append-only CSV logs
	ActivityLogPath string `env:"ACTIVITY_LOG_PATH" envDefault:"logs/user_activity_log.csv"`
	FeedbackLogPath string `env:"FEEDBACK_LOG_PATH" envDefault:"logs/feedback_log.csv"`

	// Questionnaire definition (loaded from JSON file, with built-in defaults)
	Questions []entity.QuestionSpec

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS,notEmpty"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN,notEmpty"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"` // seconds
}

// LLMConnectorConfig configures the Mistral chat-completions connector.
type LLMConnectorConfig struct {
	HTTPClientConfig
	ChatCompletionsEndpoint string  `env:"CHAT_COMPLETIONS_ENDPOINT" envDefault:"/v1/chat/completions"`
	Model                   string  `env:"MODEL,notEmpty"`
	Temperature             float64 `env:"TEMPERATURE" envDefault:"0.2"`
	MaxTokens               int     `env:"MAX_TOKENS" envDefault:"4096"`
}

// EmbeddingConnectorConfig configures the sentence-embedding inference service.
type EmbeddingConnectorConfig struct {
	HTTPClientConfig
	EmbedEndpoint string `env:"EMBED_ENDPOINT" envDefault:"/embed"`
	// Dimension the regression artifacts were fitted against. A service
	// returning vectors of another width is a deployment error.
	Dimension int `env:"DIMENSION" envDefault:"384"`
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

// SMTPConfig holds the outbound mail settings for feedback delivery.
type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"465"`
	Sender   string `env:"SENDER"`
	Password string `env:"PASSWORD"`
	Receiver string `env:"RECEIVER"`
}

// Enabled reports whether feedback mail delivery is configured at all.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.Sender != "" && c.Receiver != ""
}

// questionsFile represents the structure of questions.json
type questionsFile struct {
	Questions []entity.QuestionSpec `json:"questions"`
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

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := loadQuestions(cfg); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if cfg.EmbeddingConnectorCfg.Dimension < 1 {
		errors = append(errors, fmt.Sprintf("EMBEDDING_DIMENSION must be positive, got %d", cfg.EmbeddingConnectorCfg.Dimension))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", errors[0])
	}

	return nil
}

// defaultQuestions is the canonical school-construction questionnaire. Order
// matters: sessions ask these top to bottom and answers are keyed by Key.
var defaultQuestions = []entity.QuestionSpec{
	{Key: "ProjectDescription", Prompt: "Please describe the project in a few sentences."},
	{Key: "Location", Prompt: "Which part of NYC is the school located in?"},
	{Key: "Grades", Prompt: "How many grades will the school have?"},
	{Key: "StudentsPerClass", Prompt: "What is the average number of students per class?"},
	{Key: "Timeline", Prompt: "What is the expected construction timeline (in months)?"},
	{Key: "SquareFootage", Prompt: "What is the square footage of the construction?"},
	{Key: "SpecialReqs", Prompt: "Are there any special facilities or requirements needed?"},
}

// DefaultQuestions returns a copy of the built-in questionnaire.
func DefaultQuestions() []entity.QuestionSpec {
	out := make([]entity.QuestionSpec, len(defaultQuestions))
	copy(out, defaultQuestions)
	return out
}

func loadQuestions(cfg *Config) error {
	configPath := filepath.Join("internal", "config", "questions.json")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Warning: questions file not found at %s, using default questions\n", configPath)
		cfg.Questions = DefaultQuestions()
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read questions file: %w", err)
	}

	if len(data) == 0 {
		return fmt.Errorf("questions file is empty: %s", configPath)
	}

	var parsed questionsFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse questions JSON: %w", err)
	}

	if len(parsed.Questions) == 0 {
		return fmt.Errorf("questions file contains no questions: %s", configPath)
	}

	seen := make(map[entity.QuestionKey]struct{}, len(parsed.Questions))
	for _, q := range parsed.Questions {
		if q.Key == "" || q.Prompt == "" {
			return fmt.Errorf("questions file entry missing key or prompt: %s", configPath)
		}
		if _, dup := seen[q.Key]; dup {
			return fmt.Errorf("questions file has duplicate key %q: %s", q.Key, configPath)
		}
		seen[q.Key] = struct{}{}
	}

	cfg.Questions = parsed.Questions

	fmt.Printf("Loaded %d questions from %s\n", len(cfg.Questions), configPath)
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
