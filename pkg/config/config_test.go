package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "boxlay.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Force != def.Force {
		t.Fatalf("Force = %+v, want defaults %+v", cfg.Force, def.Force)
	}
	if cfg.Offset != def.Offset {
		t.Fatalf("Offset = %g, want %g", cfg.Offset, def.Offset)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
offset = 25

[force]
spring_length = 80
steps = 10

[refine]
workers = 4

[cache]
backend = "none"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Force.SpringLength != 80 {
		t.Fatalf("SpringLength = %g, want 80", cfg.Force.SpringLength)
	}
	if cfg.Force.Steps != 10 {
		t.Fatalf("Steps = %d, want 10", cfg.Force.Steps)
	}
	// Untouched keys keep their defaults.
	if cfg.Force.Repulsion != Default().Force.Repulsion {
		t.Fatalf("Repulsion = %g, want default", cfg.Force.Repulsion)
	}
	if cfg.Refine.Workers != 4 {
		t.Fatalf("Workers = %d, want 4", cfg.Refine.Workers)
	}
	if cfg.Cache.Backend != CacheBackendNone {
		t.Fatalf("Backend = %q, want none", cfg.Cache.Backend)
	}
	if cfg.Offset != 25 {
		t.Fatalf("Offset = %g, want 25", cfg.Offset)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "zero spring length",
			content: "[force]\nspring_length = 0\n",
			wantErr: "spring_length",
		},
		{
			name:    "negative steps",
			content: "[force]\nsteps = -1\n",
			wantErr: "steps",
		},
		{
			name:    "unknown cache backend",
			content: "[cache]\nbackend = \"memcached\"\n",
			wantErr: "cache.backend",
		},
		{
			name:    "unknown store",
			content: "[server]\nstore = \"postgres\"\n",
			wantErr: "server.store",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("Load succeeded for missing file, want error")
	}
}
