package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all memoria configuration.
type Config struct {
	Env     string        `mapstructure:"env"`
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Share   ShareConfig   `mapstructure:"share"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Bind         string `mapstructure:"bind"`
	Port         int    `mapstructure:"port"`
	PublicURL    string `mapstructure:"public_url"`     // base of generated share links
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"` // requests carry embedded media
}

type LLMConfig struct {
	Provider     string        `mapstructure:"provider"` // "gemini", "anthropic", "ollama", "mock"
	Model        string        `mapstructure:"model"`
	OllamaURL    string        `mapstructure:"ollama_url"`
	OllamaModel  string        `mapstructure:"ollama_model"` // e.g. "llama3.2"
	AnthropicKey string        `mapstructure:"anthropic_key"`
	GeminiKey    string        `mapstructure:"gemini_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type ShareConfig struct {
	MaxTokenLength int `mapstructure:"max_token_length"` // 0 = unlimited
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Env: "development",
		Server: ServerConfig{
			Bind:         "127.0.0.1",
			Port:         37780,
			PublicURL:    "http://127.0.0.1:37780/",
			MaxBodyBytes: 32 << 20,
		},
		LLM: LLMConfig{
			Provider: "gemini",
			Timeout:  30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// Load reads configuration in increasing priority: defaults, the TOML file
// at path (optional, skipped when empty or missing), MEMORIA_* environment
// variables. A .env file in the working directory is loaded first.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix("memoria")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	// Human readable logs in development, JSON lines elsewhere.
	if v.IsSet("logging.console") {
		cfg.Logging.Console = v.GetBool("logging.console")
	} else {
		cfg.Logging.Console = cfg.IsDevelopment()
	}

	// Provider keys under their conventional names.
	if cfg.LLM.AnthropicKey == "" {
		cfg.LLM.AnthropicKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if cfg.LLM.GeminiKey == "" {
		cfg.LLM.GeminiKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
// logging.console is left out: unset, it follows the environment.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("env", d.Env)
	v.SetDefault("server.bind", d.Server.Bind)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.public_url", d.Server.PublicURL)
	v.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)
	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.ollama_url", d.LLM.OllamaURL)
	v.SetDefault("llm.ollama_model", d.LLM.OllamaModel)
	v.SetDefault("llm.anthropic_key", d.LLM.AnthropicKey)
	v.SetDefault("llm.gemini_key", d.LLM.GeminiKey)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("share.max_token_length", d.Share.MaxTokenLength)
	v.SetDefault("logging.level", d.Logging.Level)
}

// Validate checks values that would otherwise fail later at a worse time.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive")
	}
	if c.Share.MaxTokenLength < 0 {
		return fmt.Errorf("share.max_token_length must not be negative")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
