package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Data: DataConfig{Driver: "fs", Root: "data/knowledge-base"},
		LLM: LLMConfig{
			Primary: ProviderConfig{Provider: "ollama", Model: "llama3.1:8b"},
		},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Data.Driver = "postgres"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}

	expected := `data.driver must be "fs" or "redis", got "postgres"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_RedisDriverRequiresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Data.Driver = "redis"
	cfg.Data.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for redis driver without addrs")
	}
}

func TestValidate_MissingPrimaryModel(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.Primary.Model = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing primary model")
	}
}

func TestValidate_FallbackOptional(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.Fallback = ProviderConfig{}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error when fallback is absent: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 120 {
		t.Errorf("expected WriteTimeoutSec=120, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Data.Driver != "fs" {
		t.Errorf("expected Driver='fs', got %q", cfg.Data.Driver)
	}
	if cfg.Data.Root != "data/knowledge-base" {
		t.Errorf("expected Root='data/knowledge-base', got %q", cfg.Data.Root)
	}
	if cfg.Data.KeyPrefix != "shopkb:" {
		t.Errorf("expected KeyPrefix='shopkb:', got %q", cfg.Data.KeyPrefix)
	}
	if cfg.Data.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Data.ReadinessTimeout)
	}
	if cfg.Search.MaxCandidates != 2000 {
		t.Errorf("expected MaxCandidates=2000, got %d", cfg.Search.MaxCandidates)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Data:   DataConfig{Driver: "redis", KeyPrefix: "custom:", ReadinessTimeout: 15},
		Search: SearchConfig{MaxCandidates: 500},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Data.Driver != "redis" {
		t.Errorf("expected Driver='redis', got %q", cfg.Data.Driver)
	}
	if cfg.Data.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Data.KeyPrefix)
	}
	if cfg.Search.MaxCandidates != 500 {
		t.Errorf("expected MaxCandidates=500, got %d", cfg.Search.MaxCandidates)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("SHOPKB_TEST_KEY", "sk-123")
	defer os.Unsetenv("SHOPKB_TEST_KEY")

	in := []byte("api_key: ${SHOPKB_TEST_KEY}\nmodel: ${SHOPKB_TEST_MODEL:-llama3.1:8b}\n")
	out := string(expandEnvVars(in))

	want := "api_key: sk-123\nmodel: llama3.1:8b\n"
	if out != want {
		t.Errorf("unexpected expansion:\ngot:  %q\nwant: %q", out, want)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "config")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}

	yaml := `
http:
  port: 8080
data:
  driver: fs
  root: /mnt/nas/knowledge-base
llm:
  primary:
    provider: ollama
    base_url: http://localhost:11434/v1
    model: llama3.1:8b
  fallback:
    provider: groq
    api_key: ${SHOPKB_TEST_GROQ_KEY:-dummy}
    model: llama-3.1-70b-versatile
auth:
  api_keys:
    - test-key
`
	if err := os.WriteFile(filepath.Join(cfgDir, "test.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Data.Root != "/mnt/nas/knowledge-base" {
		t.Errorf("unexpected data root: %q", cfg.Data.Root)
	}
	if !cfg.LLM.Fallback.Configured() {
		t.Error("expected fallback to be configured")
	}
	if cfg.LLM.Fallback.APIKey != "dummy" {
		t.Errorf("expected default-expanded api key, got %q", cfg.LLM.Fallback.APIKey)
	}
	if cfg.Search.MaxCandidates != 2000 {
		t.Errorf("expected defaulted MaxCandidates=2000, got %d", cfg.Search.MaxCandidates)
	}
}
