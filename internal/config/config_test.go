package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ListenAddr() != "127.0.0.1:37780" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir) // keep a stray .env out of the test

	path := filepath.Join(dir, "memoria.toml")
	data := `
env = "production"

[server]
port = 9000
public_url = "https://memoria.example/"

[llm]
provider = "ollama"
ollama_model = "llama3.2"
timeout = "5s"

[share]
max_token_length = 8000
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MEMORIA_SERVER_BIND", "0.0.0.0")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ListenAddr() != "0.0.0.0:9000" {
		t.Errorf("ListenAddr = %q, want 0.0.0.0:9000", cfg.ListenAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("env should be production")
	}
	if cfg.Server.PublicURL != "https://memoria.example/" {
		t.Errorf("PublicURL = %q", cfg.Server.PublicURL)
	}
	if cfg.LLM.Provider != "ollama" || cfg.LLM.OllamaModel != "llama3.2" {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if cfg.LLM.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.LLM.Timeout)
	}
	if cfg.LLM.AnthropicKey != "sk-test" {
		t.Errorf("AnthropicKey = %q", cfg.LLM.AnthropicKey)
	}
	if cfg.Share.MaxTokenLength != 8000 {
		t.Errorf("MaxTokenLength = %d", cfg.Share.MaxTokenLength)
	}
	if cfg.Logging.Console {
		t.Error("production should default to JSON logs")
	}
	if cfg.Server.MaxBodyBytes != 32<<20 {
		t.Errorf("MaxBodyBytes default lost: %d", cfg.Server.MaxBodyBytes)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 37780 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if !cfg.Logging.Console {
		t.Error("development should default to console logs")
	}
}

func TestLoadConsoleOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MEMORIA_ENV", "production")
	t.Setenv("MEMORIA_LOGGING_CONSOLE", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IsDevelopment() || !cfg.Logging.Console {
		t.Errorf("env = %q console = %v, want production with console", cfg.Env, cfg.Logging.Console)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 70000
	if cfg.Validate() == nil {
		t.Error("expected port error")
	}

	cfg = Default()
	cfg.LLM.Timeout = 0
	if cfg.Validate() == nil {
		t.Error("expected timeout error")
	}
}
