package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_BACKEND", "SQLITE_DB_PATH", "DATA_FILE_PATH", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("default backend = %q, want memory", cfg.DataBackend)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("default log level = %v, want info", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", "/tmp/x.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != "9090" || cfg.DataBackend != "sqlite" || cfg.SQLiteDBPath != "/tmp/x.db" {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", cfg.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid memory backend",
			cfg:  Config{Port: "8080", DataBackend: "memory"},
		},
		{
			name: "valid sqlite backend",
			cfg: Config{
				Port:         "8080",
				DataBackend:  "sqlite",
				SQLiteDBPath: filepath.Join(dir, "db", "app.db"),
			},
		},
		{
			name: "valid file backend",
			cfg: Config{
				Port:         "8080",
				DataBackend:  "file",
				DataFilePath: filepath.Join(dir, "state", "app.json"),
			},
		},
		{
			name:    "non numeric port",
			cfg:     Config{Port: "eighty", DataBackend: "memory"},
			wantErr: "invalid port",
		},
		{
			name:    "port zero",
			cfg:     Config{Port: "0", DataBackend: "memory"},
			wantErr: "between 1 and 65535",
		},
		{
			name:    "port too large",
			cfg:     Config{Port: "70000", DataBackend: "memory"},
			wantErr: "between 1 and 65535",
		},
		{
			name:    "unknown backend",
			cfg:     Config{Port: "8080", DataBackend: "redis"},
			wantErr: "invalid data backend",
		},
		{
			name:    "sqlite backend without path",
			cfg:     Config{Port: "8080", DataBackend: "sqlite"},
			wantErr: "database path cannot be empty",
		},
		{
			name:    "file backend without path",
			cfg:     Config{Port: "8080", DataBackend: "file"},
			wantErr: "data file path cannot be empty",
		},
		{
			name:    "multiple errors joined",
			cfg:     Config{Port: "bad", DataBackend: "redis"},
			wantErr: "invalid port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCreatesStorageDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "app.db")
	cfg := Config{Port: "8080", DataBackend: "sqlite", SQLiteDBPath: path}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	// ensureDir should have created the parent chain
	if err := (&Config{Port: "8080", DataBackend: "sqlite", SQLiteDBPath: path}).Validate(); err != nil {
		t.Fatalf("second Validate() = %v", err)
	}
}
