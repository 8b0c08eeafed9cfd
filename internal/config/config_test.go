package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyremap", FileName)

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	want := Default()
	if cfg.Verbose != want.Verbose || cfg.StorePath != want.StorePath ||
		cfg.UseNotifications != want.UseNotifications || cfg.WatchStore != want.WatchStore ||
		cfg.Backend != want.Backend {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
	if cfg.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", cfg.GetConfigPath(), path)
	}

	again, err := Load(path, nil)
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if again.StorePath != DefaultStoreFile {
		t.Errorf("re-read StorePath = %q", again.StorePath)
	}
}

func TestLoadReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `verbose = true
store_path = "maps/keys.json"
use_notifications = false
watch_store = false
backend = "None"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Verbose || cfg.UseNotifications || cfg.WatchStore {
		t.Errorf("booleans not decoded: %+v", cfg)
	}
	if cfg.Backend != BackendNone {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendNone)
	}
	if got, want := cfg.ResolveStorePath(), filepath.Join(filepath.Dir(path), "maps", "keys.json"); got != want {
		t.Errorf("ResolveStorePath() = %q, want %q", got, want)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("verbose = true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.UseNotifications || !cfg.WatchStore || cfg.Backend != BackendAuto || cfg.StorePath != DefaultStoreFile {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad toml", content: "verbose = = true", wantErr: "failed to parse config file"},
		{name: "bad backend", content: `backend = "wayland"`, wantErr: "invalid backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path, nil)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestResolveStorePath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "abs.json")
	tests := []struct {
		name       string
		configPath string
		storePath  string
		want       string
	}{
		{name: "empty uses default", configPath: filepath.Join("cfg", FileName), storePath: "", want: filepath.Join("cfg", DefaultStoreFile)},
		{name: "relative", configPath: filepath.Join("cfg", FileName), storePath: "x.json", want: filepath.Join("cfg", "x.json")},
		{name: "absolute", configPath: filepath.Join("cfg", FileName), storePath: abs, want: abs},
		{name: "no config path", configPath: "", storePath: "x.json", want: "x.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{StorePath: tt.storePath, configPath: tt.configPath}
			if got := c.ResolveStorePath(); got != tt.want {
				t.Errorf("ResolveStorePath() = %q, want %q", got, tt.want)
			}
		})
	}
}
