package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  bool
		errMsg   string
		validate func(*testing.T, *Config)
	}{
		{
			name: "minimal config gets defaults",
			content: `
model:
  list_file: my-models.txt
`,
			validate: func(t *testing.T, c *Config) {
				if c.Model.ListFile != "my-models.txt" {
					t.Errorf("Model.ListFile = %v, want my-models.txt", c.Model.ListFile)
				}
				if c.Model.Engine != "cli" {
					t.Errorf("Model.Engine = %v, want cli", c.Model.Engine)
				}
				if c.Reddit.UserAgent == "" {
					t.Error("UserAgent should have default value")
				}
				if c.Reddit.TimeoutSeconds != 15 {
					t.Errorf("Reddit.TimeoutSeconds = %v, want 15", c.Reddit.TimeoutSeconds)
				}
				if c.Render.Width != 80 {
					t.Errorf("Render.Width = %v, want 80", c.Render.Width)
				}
				if !*c.Output.Print || !*c.Output.WriteFile {
					t.Error("output defaults should print and write")
				}
			},
		},
		{
			name: "server engine config",
			content: `
model:
  engine: server
  server_url: http://gpu-box:11434
  name: llama3.1:70b
`,
			validate: func(t *testing.T, c *Config) {
				if c.Model.Engine != "server" {
					t.Errorf("Model.Engine = %v, want server", c.Model.Engine)
				}
				if c.Model.ServerURL != "http://gpu-box:11434" {
					t.Errorf("Model.ServerURL = %v", c.Model.ServerURL)
				}
				if c.Model.Name != "llama3.1:70b" {
					t.Errorf("Model.Name = %v", c.Model.Name)
				}
			},
		},
		{
			name: "explicit output toggles survive",
			content: `
output:
  dir: reports
  write_file: false
`,
			validate: func(t *testing.T, c *Config) {
				if c.Output.Dir != "reports" {
					t.Errorf("Output.Dir = %v, want reports", c.Output.Dir)
				}
				if *c.Output.WriteFile {
					t.Error("write_file: false should stick, not be defaulted back")
				}
			},
		},
		{
			name: "invalid engine",
			content: `
model:
  engine: cloud
`,
			wantErr: true,
			errMsg:  "invalid engine",
		},
		{
			name: "width too small",
			content: `
render:
  width: 10
`,
			wantErr: true,
			errMsg:  "width too small",
		},
		{
			name: "invalid color mode",
			content: `
render:
  color: maybe
`,
			wantErr: true,
			errMsg:  "invalid color mode",
		},
		{
			name:    "not yaml",
			content: "{{{{",
			wantErr: true,
			errMsg:  "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".threadsum.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error %q does not contain %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadDefaultWithoutFile(t *testing.T) {
	// No config anywhere: pure defaults.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	if cfg.Model.Engine != "cli" {
		t.Errorf("Model.Engine = %v, want cli", cfg.Model.Engine)
	}
	if cfg.Model.ListFile != "models.txt" {
		t.Errorf("Model.ListFile = %v, want models.txt", cfg.Model.ListFile)
	}
}

func TestLoadDefaultFindsCwdFile(t *testing.T) {
	dir := t.TempDir()
	content := "model:\n  name: mistral:7b\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	if cfg.Model.Name != "mistral:7b" {
		t.Errorf("Model.Name = %v, want mistral:7b", cfg.Model.Name)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("THREADSUM_MODEL", "qwen2.5:14b")
	t.Setenv("THREADSUM_USER_AGENT", "custom-agent/2.0")

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	if cfg.Model.Name != "qwen2.5:14b" {
		t.Errorf("Model.Name = %v, want env override", cfg.Model.Name)
	}
	if cfg.Reddit.UserAgent != "custom-agent/2.0" {
		t.Errorf("Reddit.UserAgent = %v, want env override", cfg.Reddit.UserAgent)
	}
}
