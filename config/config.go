package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths  PathsConfig  `yaml:"paths"`
	Images ImagesConfig `yaml:"images"`
	Speech SpeechConfig `yaml:"speech"`
	Video  VideoConfig  `yaml:"video"`
	Audio  AudioConfig  `yaml:"audio"`
	Upload UploadConfig `yaml:"upload"`
}

type PathsConfig struct {
	ScenesDir    string `yaml:"scenes_dir"`
	Output       string `yaml:"output"`
	Work         string `yaml:"work"`
	BGMusic      string `yaml:"bg_music"`
	OverlayVideo string `yaml:"overlay_video"`
}

type ImagesConfig struct {
	PerScene    int    `yaml:"per_scene"`
	Orientation string `yaml:"orientation"`
}

type SpeechConfig struct {
	Voice        string `yaml:"voice"`
	Language     string `yaml:"language"`
	Rate         string `yaml:"rate"`
	Pitch        string `yaml:"pitch"`
	OutputFormat string `yaml:"output_format"`
}

type VideoConfig struct {
	Width               int     `yaml:"width"`
	Height              int     `yaml:"height"`
	FPS                 int     `yaml:"fps"`
	CaptionFont         string  `yaml:"caption_font"`
	CaptionFontSize     int     `yaml:"caption_font_size"`
	CaptionMarginBottom int     `yaml:"caption_margin_bottom"`
	FadeSec             float64 `yaml:"fade_sec"`
	MinImageSec         float64 `yaml:"min_image_sec"`
	SlideshowOpacity    float64 `yaml:"slideshow_opacity"`
}

type AudioConfig struct {
	MusicVolume float64 `yaml:"music_volume"`
}

type UploadConfig struct {
	Enabled           bool     `yaml:"enabled"`
	Visibility        string   `yaml:"visibility"`
	CategoryID        string   `yaml:"category_id"`
	DefaultLanguage   string   `yaml:"default_language"`
	Tags              []string `yaml:"tags"`
	NotifySubscribers bool     `yaml:"notify_subscribers"`
	MadeForKids       bool     `yaml:"made_for_kids"`
}

// Load reads config.yaml and returns a Config struct
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
