package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}

	cfg, err = Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TickRate != Default().TickRate {
		t.Fatalf("tick rate = %d, want default", cfg.TickRate)
	}
}

func TestLoadOverlaysFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	body := "physics:\n  gravity: 0.5\nrooms:\n  cache_size: 9\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Physics.Gravity != 0.5 {
		t.Fatalf("gravity = %v, want 0.5 from file", cfg.Physics.Gravity)
	}
	if cfg.Rooms.CacheSize != 9 {
		t.Fatalf("cache size = %d, want 9 from file", cfg.Rooms.CacheSize)
	}
	// Keys the file does not mention keep their defaults.
	if cfg.Physics.StepHeight != Default().Physics.StepHeight {
		t.Fatalf("step height = %v, want default", cfg.Physics.StepHeight)
	}
	if cfg.TickRate != Default().TickRate {
		t.Fatalf("tick rate = %d, want default", cfg.TickRate)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics: [not, a, map]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed config accepted")
	}
}
