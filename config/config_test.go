package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	content := `
paths:
  scenes_dir: scenes
  output: output
  bg_music: bg_music.mp3
images:
  per_scene: 2
  orientation: portrait
speech:
  voice: te-IN-ShrutiNeural
  rate: "+15.00%"
video:
  width: 1080
  height: 1920
  min_image_sec: 2.5
audio:
  music_volume: 0.5
upload:
  enabled: false
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Images.PerScene != 2 {
		t.Errorf("Expected per_scene 2, got %d", cfg.Images.PerScene)
	}
	if cfg.Speech.Rate != "+15.00%" {
		t.Errorf("Expected rate +15.00%%, got %q", cfg.Speech.Rate)
	}
	if cfg.Video.MinImageSec != 2.5 {
		t.Errorf("Expected min_image_sec 2.5, got %f", cfg.Video.MinImageSec)
	}
	if cfg.Upload.Enabled {
		t.Error("Expected upload disabled")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}
