package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"GardenBot/internal/domain"
	"GardenBot/internal/formatter"
)

const (
	defaultTimezone  = "Europe/Moscow"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	configPathEnv     = "GARDENBOT_CONFIG"
	logLevelEnv       = "LOG_LEVEL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	legacyTokenEnv    = "BOT_TOKEN"
	telegramChatEnv   = "TELEGRAM_CHANNEL_ID"
	legacyChatEnv     = "CHANNEL_ID"
	storagePathEnv    = "STORAGE_PATH"
	storageDSNEnv     = "STORAGE_DSN"
	chatGPTAPIKeyEnv  = "CHATGPT_API_KEY"
	chatGPTModelEnv   = "CHATGPT_MODEL"
	storageBackendEnv = "STORAGE_BACKEND"
)

// Storage backends.
const (
	BackendJSON     = "json"
	BackendPostgres = "postgres"
)

// Config holds high-level settings required across the application.
// It is loaded once at process start and not mutated during a run.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Timezone   string           `yaml:"timezone"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Storage    StorageConfig    `yaml:"storage"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	ChatGPT    ChatGPTConfig    `yaml:"chatgpt"`
	Sources    []SourceConfig   `yaml:"sources"`

	location *time.Location `yaml:"-"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken  string `yaml:"botToken"`
	ChannelID string `yaml:"channelId"`
	ParseMode string `yaml:"parseMode"`
	APIURL    string `yaml:"apiUrl"`
}

// StorageConfig points at the post log.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	DSN     string `yaml:"dsn"`
}

// FetchConfig describes outbound page requests.
type FetchConfig struct {
	UserAgent      string `yaml:"userAgent"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout returns the per-request deadline.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// PipelineConfig tunes the single-run pipeline.
type PipelineConfig struct {
	// RecencyDays is the trailing window for publish dates; 0 disables date filtering.
	RecencyDays      int    `yaml:"recencyDays"`
	TipEvery         int    `yaml:"tipEvery"`
	PhotoPosts       bool   `yaml:"photoPosts"`
	Style            string `yaml:"style"`
	MaxMessageLength int    `yaml:"maxMessageLength"`
	TruncateAt       int    `yaml:"truncateAt"`
	CaptionLength    int    `yaml:"captionLength"`
	CaptionTruncate  int    `yaml:"captionTruncateAt"`
}

// RecencyWindow converts RecencyDays into a duration.
func (p PipelineConfig) RecencyWindow() time.Duration {
	return time.Duration(p.RecencyDays) * 24 * time.Hour
}

// SummarizerConfig bounds the bullet digest.
type SummarizerConfig struct {
	MaxInputChars int `yaml:"maxInputChars"`
	MinSentence   int `yaml:"minSentence"`
	MaxSentence   int `yaml:"maxSentence"`
	MaxBullets    int `yaml:"maxBullets"`
}

// ChatGPTConfig defines how to contact an OpenAI-compatible API for bullet writing.
type ChatGPTConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// Enabled reports whether the LLM bullet writer should be wired.
func (c ChatGPTConfig) Enabled() bool {
	return c.APIKey != "" && c.Endpoint != "" && c.Model != ""
}

// SourceConfig is one section page to scan, optionally with its syndication feed.
type SourceConfig struct {
	URL  string `yaml:"url"`
	Feed string `yaml:"feed"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
// An explicit path wins over GARDENBOT_CONFIG.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultConfig().Sources
	}

	return cfg
}

// Validate checks the credentials a publishing run cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Telegram.BotToken) == "" {
		return &domain.ConfigError{Field: "telegram.botToken"}
	}
	if strings.TrimSpace(c.Telegram.ChannelID) == "" {
		return &domain.ConfigError{Field: "telegram.channelId"}
	}
	switch c.Storage.Backend {
	case BackendJSON:
		if c.Storage.Path == "" {
			return &domain.ConfigError{Field: "storage.path"}
		}
	case BackendPostgres:
		if c.Storage.DSN == "" {
			return &domain.ConfigError{Field: "storage.dsn"}
		}
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// Location resolves the configured timezone.
func (c Config) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SourceURLs lists the configured page URLs in order.
func (c Config) SourceURLs() []string {
	urls := make([]string, 0, len(c.Sources))
	for _, s := range c.Sources {
		urls = append(urls, s.URL)
	}
	return urls
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(legacyTokenEnv); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Telegram.BotToken = v
	}

	if v := os.Getenv(legacyChatEnv); v != "" {
		c.Telegram.ChannelID = v
	}
	if v := os.Getenv(telegramChatEnv); v != "" {
		c.Telegram.ChannelID = v
	}

	if v := os.Getenv(storageBackendEnv); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv(storagePathEnv); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(storageDSNEnv); v != "" {
		c.Storage.DSN = v
	}

	if v := os.Getenv(chatGPTAPIKeyEnv); v != "" {
		c.ChatGPT.APIKey = v
	}
	if v := os.Getenv(chatGPTModelEnv); v != "" {
		c.ChatGPT.Model = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to UTC", tz)
		loc = time.UTC
	}
	c.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Timezone != "" {
		base.Timezone = override.Timezone
	}

	if override.Telegram.BotToken != "" {
		base.Telegram.BotToken = override.Telegram.BotToken
	}
	if override.Telegram.ChannelID != "" {
		base.Telegram.ChannelID = override.Telegram.ChannelID
	}
	if override.Telegram.ParseMode != "" {
		base.Telegram.ParseMode = override.Telegram.ParseMode
	}
	if override.Telegram.APIURL != "" {
		base.Telegram.APIURL = override.Telegram.APIURL
	}

	if override.Storage.Backend != "" {
		base.Storage.Backend = override.Storage.Backend
	}
	if override.Storage.Path != "" {
		base.Storage.Path = override.Storage.Path
	}
	if override.Storage.DSN != "" {
		base.Storage.DSN = override.Storage.DSN
	}

	if override.Fetch.UserAgent != "" {
		base.Fetch.UserAgent = override.Fetch.UserAgent
	}
	if override.Fetch.TimeoutSeconds > 0 {
		base.Fetch.TimeoutSeconds = override.Fetch.TimeoutSeconds
	}

	base.Pipeline = mergePipeline(base.Pipeline, override.Pipeline)
	base.Summarizer = mergeSummarizer(base.Summarizer, override.Summarizer)

	if override.ChatGPT.Endpoint != "" {
		base.ChatGPT.Endpoint = override.ChatGPT.Endpoint
	}
	if override.ChatGPT.Model != "" {
		base.ChatGPT.Model = override.ChatGPT.Model
	}
	if override.ChatGPT.APIKey != "" {
		base.ChatGPT.APIKey = override.ChatGPT.APIKey
	}
	if override.ChatGPT.SystemPrompt != "" {
		base.ChatGPT.SystemPrompt = override.ChatGPT.SystemPrompt
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	return base
}

func mergePipeline(base, override PipelineConfig) PipelineConfig {
	// recencyDays and photoPosts have meaningful zero values, so the file always wins.
	base.RecencyDays = override.RecencyDays
	base.PhotoPosts = override.PhotoPosts

	if override.TipEvery > 0 {
		base.TipEvery = override.TipEvery
	}
	if override.Style != "" {
		base.Style = override.Style
	}
	if override.MaxMessageLength > 0 {
		base.MaxMessageLength = override.MaxMessageLength
	}
	if override.TruncateAt > 0 {
		base.TruncateAt = override.TruncateAt
	}
	if override.CaptionLength > 0 {
		base.CaptionLength = override.CaptionLength
	}
	if override.CaptionTruncate > 0 {
		base.CaptionTruncate = override.CaptionTruncate
	}
	return base
}

func mergeSummarizer(base, override SummarizerConfig) SummarizerConfig {
	if override.MaxInputChars > 0 {
		base.MaxInputChars = override.MaxInputChars
	}
	if override.MinSentence > 0 {
		base.MinSentence = override.MinSentence
	}
	if override.MaxSentence > 0 {
		base.MaxSentence = override.MaxSentence
	}
	if override.MaxBullets > 0 {
		base.MaxBullets = override.MaxBullets
	}
	return base
}

func defaultConfig() Config {
	return Config{
		Logging:  LoggingConfig{Level: "info"},
		Timezone: defaultTimezone,
		Telegram: TelegramConfig{
			ParseMode: "MarkdownV2",
			APIURL:    "https://api.telegram.org",
		},
		Storage: StorageConfig{Backend: BackendJSON, Path: "storage.json"},
		Fetch:   FetchConfig{UserAgent: defaultUserAgent, TimeoutSeconds: 15},
		Pipeline: PipelineConfig{
			RecencyDays:      0,
			TipEvery:         10,
			PhotoPosts:       false,
			Style:            formatter.StyleDigest,
			MaxMessageLength: 4096,
			TruncateAt:       4000,
			CaptionLength:    1024,
			CaptionTruncate:  950,
		},
		Summarizer: SummarizerConfig{
			MaxInputChars: 4000,
			MinSentence:   50,
			MaxSentence:   200,
			MaxBullets:    5,
		},
		ChatGPT: ChatGPTConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o-mini",
			SystemPrompt: "Ты редактор канала о саде и огороде. Перескажи статью 3-5 короткими пунктами на русском языке, каждый пункт с новой строки, начиная с дефиса.",
		},
		Sources: []SourceConfig{
			{URL: "https://www.supersadovnik.ru/sad-i-ogorod-289"},
			{URL: "https://www.supersadovnik.ru/podgotovka-sada-k-zime-301"},
			{URL: "https://www.supersadovnik.ru/idei-dlya-sada-263"},
			{URL: "https://www.botanichka.ru/blog/", Feed: "https://www.botanichka.ru/feed/"},
			{URL: "https://ogorod.ru/ru/ogorod"},
			{URL: "https://ogorod.ru/ru/sad"},
			{URL: "https://dolinasad.by/blog/"},
			{URL: "https://tk-konstruktor.ru/stati/"},
		},
	}
}
