package config

import (
	"os"
	"path/filepath"
	"testing"
)

const settingsTOML = `
[[servers]]
name = "local"
model = "llama3"
api_type = "ollama"
base_api_url = "http://localhost:11434"
connection_timeout = 5
deadline_timeout = 120

[[servers]]
name = "hosted"
model = "gpt-4o-mini"
api_type = "open_ai"
base_api_url = "https://api.openai.com"
secret = "openai_key"

[[endpoints]]
path = "/summarize"
template = "summary"
server = "local"
system_prompt = "You summarize text."
user_prompt = "Summarize: {input}"

[[endpoints]]
path = "/classify"
template = "classes"
server = "hosted"
system_prompt = "You classify text."
user_prompt = "Classify: {input}"
`

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func TestLoadSettings(t *testing.T) {
	cfg, err := LoadSettings(writeSettings(t, settingsTOML))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	s := cfg.Get()

	if len(s.Servers) != 2 || len(s.Endpoints) != 2 {
		t.Fatalf("servers=%d endpoints=%d", len(s.Servers), len(s.Endpoints))
	}

	local, err := s.ServerByName("local")
	if err != nil {
		t.Fatalf("ServerByName: %v", err)
	}
	if local.APIType != "ollama" || local.BaseAPIURL != "http://localhost:11434" {
		t.Fatalf("local=%+v", local)
	}
	if local.ConnectionTimeout == nil || *local.ConnectionTimeout != 5 {
		t.Fatalf("connection_timeout=%v", local.ConnectionTimeout)
	}
	if local.DeadlineTimeout == nil || *local.DeadlineTimeout != 120 {
		t.Fatalf("deadline_timeout=%v", local.DeadlineTimeout)
	}
	if local.Secret != "" {
		t.Fatalf("local secret=%q, want none", local.Secret)
	}

	hosted, err := s.ServerByName("hosted")
	if err != nil {
		t.Fatalf("ServerByName: %v", err)
	}
	if hosted.Secret != "openai_key" {
		t.Fatalf("hosted secret=%q", hosted.Secret)
	}
	if hosted.ConnectionTimeout != nil {
		t.Fatalf("hosted connection_timeout=%v, want nil", hosted.ConnectionTimeout)
	}

	ep, err := s.EndpointByPath("/classify")
	if err != nil {
		t.Fatalf("EndpointByPath: %v", err)
	}
	if ep.Server != "hosted" || ep.Template != "classes" {
		t.Fatalf("endpoint=%+v", ep)
	}
}

func TestSettings_NotFound(t *testing.T) {
	cfg, err := LoadSettings(writeSettings(t, settingsTOML))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	s := cfg.Get()

	if _, err := s.ServerByName("missing"); err == nil {
		t.Fatalf("expected error for unknown server")
	}
	if _, err := s.EndpointByPath("/nope"); err == nil {
		t.Fatalf("expected error for unknown endpoint")
	}
}

func TestLoadSettings_DanglingServerReference(t *testing.T) {
	broken := `
[[servers]]
name = "local"
model = "m"
api_type = "ollama"
base_api_url = "http://localhost:11434"

[[endpoints]]
path = "/x"
template = "t"
server = "does-not-exist"
system_prompt = "s"
user_prompt = "u"
`
	if _, err := LoadSettings(writeSettings(t, broken)); err == nil {
		t.Fatalf("expected validation error for dangling server reference")
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
