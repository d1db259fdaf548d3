package types

import "strings"

// Scene is one narrated segment loaded from a scene-set JSON file.
// Text, ImageKeyword and Subtitle come from the input file and are never
// modified; the remaining fields are filled in as the pipeline runs.
type Scene struct {
	Text         string `json:"text"`
	ImageKeyword string `json:"image_keyword"`
	Subtitle     string `json:"subtitle"`

	Index       int      `json:"index"`
	Images      []string `json:"images"`
	DurationSec float64  `json:"duration_sec"`
	ClipFile    string   `json:"clip_file"`
}

// SceneSet is the ordered sequence of scenes from one input file.
type SceneSet struct {
	Name             string  `json:"name"`
	SourceFile       string  `json:"source_file"`
	Scenes           []Scene `json:"scenes"`
	AudioFile        string  `json:"audio_file"`
	AudioDurationSec float64 `json:"audio_duration_sec"`
	VideoFile        string  `json:"video_file"`
}

// FullScript joins every scene's narration text into the single string that
// is sent to the speech synthesizer.
func (s *SceneSet) FullScript() string {
	texts := make([]string, 0, len(s.Scenes))
	for _, scene := range s.Scenes {
		texts = append(texts, scene.Text)
	}
	return strings.Join(texts, " ")
}

// RunState tracks the processing of one scene set
type RunState struct {
	RunID       string    `json:"run_id"`
	StartedAt   string    `json:"started_at"`
	CompletedAt string    `json:"completed_at"`
	Set         *SceneSet `json:"scene_set"`
	VideoFile   string    `json:"video_file"`
	YouTubeID   string    `json:"youtube_id,omitempty"`
	YouTubeURL  string    `json:"youtube_url,omitempty"`
	Error       string    `json:"error,omitempty"`
}
