package render

import (
	"strings"
	"testing"

	"github.com/smartbot520/generate-video/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Video.Width = 1080
	cfg.Video.Height = 1920
	cfg.Video.FPS = 24
	cfg.Video.SlideshowOpacity = 0.85
	cfg.Audio.MusicVolume = 0.5
	cfg.Paths.BGMusic = "bg_music.mp3"
	cfg.Paths.OverlayVideo = "Muted_Video.mp4"
	return cfg
}

func TestOverlayFilter(t *testing.T) {
	a := New(testConfig())
	filter := a.overlayFilter()

	for _, want := range []string{
		"[0:v]scale=1080:1920:force_original_aspect_ratio=increase",
		"crop=1080:1920",
		"colorchannelmixer=aa=0.85",
		"overlay=(W-w)/2:(H-h)/2[vout]",
	} {
		if !strings.Contains(filter, want) {
			t.Errorf("Overlay filter missing %q:\n%s", want, filter)
		}
	}
}

func TestMixFilter(t *testing.T) {
	a := New(testConfig())
	filter := a.mixFilter()

	for _, want := range []string{
		"volume=0.50",
		"amix=inputs=2:duration=first",
		"normalize=0",
		"[aout]",
	} {
		if !strings.Contains(filter, want) {
			t.Errorf("Mix filter missing %q:\n%s", want, filter)
		}
	}

	// Narration is input 0 and must not be attenuated
	if !strings.Contains(filter, "[1:a]volume=") {
		t.Errorf("Expected volume applied to the music input only:\n%s", filter)
	}
}
