package render

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/smartbot520/generate-video/config"
	"github.com/smartbot520/generate-video/types"
)

// Assembler builds the final video for one scene set: scene clips
// concatenated, overlaid on the looping muted background video, with
// background music mixed under the narration.
type Assembler struct {
	cfg *config.Config
}

// New creates a new Assembler
func New(cfg *config.Config) *Assembler {
	return &Assembler{cfg: cfg}
}

// Run renders the final MP4 into outFile, using workDir for intermediates
func (a *Assembler) Run(ctx context.Context, set *types.SceneSet, workDir, outFile string) (string, error) {
	log.Println("[render] Starting final video assembly...")

	if err := os.MkdirAll(workDir, 0755); err != nil {
		return "", fmt.Errorf("create render dir: %w", err)
	}

	slideshow, err := a.concatClips(ctx, set, workDir)
	if err != nil {
		return "", fmt.Errorf("concatenate scene clips: %w", err)
	}

	visual, err := a.overlayBackground(ctx, set, slideshow, workDir)
	if err != nil {
		return "", fmt.Errorf("background overlay: %w", err)
	}

	mixed, err := a.mixAudio(ctx, set, workDir)
	if err != nil {
		return "", fmt.Errorf("audio mix: %w", err)
	}

	final, err := a.combineVideoAudio(ctx, visual, mixed, outFile)
	if err != nil {
		return "", fmt.Errorf("combine video+audio: %w", err)
	}

	log.Printf("[render] ✅ Final video ready: %s", final)
	return final, nil
}

// concatClips joins all scene clips in order
func (a *Assembler) concatClips(ctx context.Context, set *types.SceneSet, workDir string) (string, error) {
	log.Println("[render] Concatenating scene clips...")

	listFile := filepath.Join(workDir, "clips_concat.txt")
	var lines []string
	for _, scene := range set.Scenes {
		if scene.ClipFile == "" {
			return "", fmt.Errorf("scene %d has no rendered clip", scene.Index+1)
		}
		lines = append(lines, fmt.Sprintf("file '%s'", scene.ClipFile))
	}

	if err := os.WriteFile(listFile, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return "", err
	}

	outFile := filepath.Join(workDir, "slideshow.mp4")
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "22",
		"-pix_fmt", "yuv420p",
		"-an",
		outFile,
	)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg concat clips: %w", err)
	}
	return outFile, nil
}

// overlayBackground loops the muted overlay video under the slideshow for the
// narration duration, slideshow centered at the configured opacity
func (a *Assembler) overlayBackground(ctx context.Context, set *types.SceneSet, slideshow, workDir string) (string, error) {
	log.Println("[render] Adding looping background video...")

	outFile := filepath.Join(workDir, "visual.mp4")

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-stream_loop", "-1",
		"-i", a.cfg.Paths.OverlayVideo,
		"-i", slideshow,
		"-filter_complex", a.overlayFilter(),
		"-map", "[vout]",
		"-t", fmt.Sprintf("%.3f", set.AudioDurationSec),
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "22",
		"-pix_fmt", "yuv420p",
		"-an",
		outFile,
	)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg overlay: %w", err)
	}
	return outFile, nil
}

// overlayFilter cover-crops the background to the vertical frame and overlays
// the slideshow centered with partial opacity, so the background shows through
func (a *Assembler) overlayFilter() string {
	w := a.cfg.Video.Width
	h := a.cfg.Video.Height

	return fmt.Sprintf(
		"[0:v]scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d,setsar=1[bg];"+
			"[1:v]format=yuva420p,colorchannelmixer=aa=%.2f[fg];"+
			"[bg][fg]overlay=(W-w)/2:(H-h)/2[vout]",
		w, h, w, h,
		a.cfg.Video.SlideshowOpacity,
	)
}

// mixAudio loops the background music under the narration track
func (a *Assembler) mixAudio(ctx context.Context, set *types.SceneSet, workDir string) (string, error) {
	log.Println("[render] Mixing background music and narration...")

	outFile := filepath.Join(workDir, "audio_mixed.mp3")

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-i", set.AudioFile,
		"-stream_loop", "-1",
		"-i", a.cfg.Paths.BGMusic,
		"-filter_complex", a.mixFilter(),
		"-map", "[aout]",
		"-t", fmt.Sprintf("%.3f", set.AudioDurationSec),
		"-c:a", "libmp3lame",
		"-q:a", "2",
		outFile,
	)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg audio mix: %w", err)
	}
	return outFile, nil
}

// mixFilter lowers the music volume and mixes it with the narration,
// cutting at the narration's end
func (a *Assembler) mixFilter() string {
	return fmt.Sprintf(
		"[1:a]volume=%.2f[bgm];[0:a][bgm]amix=inputs=2:duration=first:dropout_transition=0:normalize=0[aout]",
		a.cfg.Audio.MusicVolume,
	)
}

// combineVideoAudio merges the final video and audio into one MP4
func (a *Assembler) combineVideoAudio(ctx context.Context, videoFile, audioFile, outFile string) (string, error) {
	log.Println("[render] Combining video + audio...")

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-i", videoFile,
		"-i", audioFile,
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", "192k",
		"-shortest",
		"-movflags", "+faststart",
		outFile,
	)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg combine: %w", err)
	}
	return outFile, nil
}
