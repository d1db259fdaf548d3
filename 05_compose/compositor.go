package compose

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/smartbot520/generate-video/04_timing"
	"github.com/smartbot520/generate-video/config"
	"github.com/smartbot520/generate-video/types"
)

// Compositor renders one clip per scene: an image slideshow cover-cropped to
// the vertical frame, with a fading caption at the bottom.
type Compositor struct {
	cfg *config.Config
}

// New creates a new Compositor
func New(cfg *config.Config) *Compositor {
	return &Compositor{cfg: cfg}
}

// Run builds a clip for every scene into outputDir.
// A scene that ended up with zero downloaded images is a hard error here —
// the pipeline must never emit an empty clip.
func (c *Compositor) Run(ctx context.Context, set *types.SceneSet, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create clip dir: %w", err)
	}

	for i := range set.Scenes {
		scene := &set.Scenes[i]
		if len(scene.Images) == 0 {
			return fmt.Errorf("scene %d: no images downloaded for %q", i+1, scene.ImageKeyword)
		}

		log.Printf("[compose] Scene %d/%d: %d image(s), %.2fs", i+1, len(set.Scenes), len(scene.Images), scene.DurationSec)

		clip, err := c.composeScene(ctx, scene, outputDir)
		if err != nil {
			return fmt.Errorf("scene %d compose: %w", i+1, err)
		}
		scene.ClipFile = clip
	}

	log.Printf("[compose] ✅ %d scene clip(s) ready", len(set.Scenes))
	return nil
}

// composeScene renders a single scene clip with ffmpeg
func (c *Compositor) composeScene(ctx context.Context, scene *types.Scene, outputDir string) (string, error) {
	outFile := filepath.Join(outputDir, fmt.Sprintf("scene_%03d.mp4", scene.Index))

	perImg := timing.PerImageDuration(scene.DurationSec, len(scene.Images), c.cfg.Video.MinImageSec)

	args := []string{"-y"}
	for _, img := range scene.Images {
		args = append(args, "-loop", "1", "-t", fmt.Sprintf("%.3f", perImg), "-i", img)
	}

	filter := c.sceneFilter(scene)

	args = append(args,
		"-filter_complex", filter,
		"-map", "[vout]",
		"-t", fmt.Sprintf("%.3f", scene.DurationSec),
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		"-an",
		outFile,
	)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg scene render: %w", err)
	}
	return outFile, nil
}

// sceneFilter builds the full filter graph for one scene: per-image
// scale/crop chains, concat, optional caption, scene fade in/out.
func (c *Compositor) sceneFilter(scene *types.Scene) string {
	filter := c.slideshowFilter(len(scene.Images))

	var post []string
	if strings.TrimSpace(scene.Subtitle) != "" {
		post = append(post, c.captionFilter(scene.Subtitle, scene.DurationSec))
	}
	post = append(post, c.fadeFilter(scene.DurationSec))

	return filter + ";[slides]" + strings.Join(post, ",") + "[vout]"
}

// slideshowFilter cover-scales and center-crops each image to the vertical
// frame and concatenates them into [slides]
func (c *Compositor) slideshowFilter(imageCount int) string {
	w := c.cfg.Video.Width
	h := c.cfg.Video.Height

	var chains []string
	var labels []string
	for k := 0; k < imageCount; k++ {
		chains = append(chains, fmt.Sprintf(
			"[%d:v]scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d,setsar=1,fps=%d[v%d]",
			k, w, h, w, h, c.cfg.Video.FPS, k,
		))
		labels = append(labels, fmt.Sprintf("[v%d]", k))
	}

	concat := fmt.Sprintf("%sconcat=n=%d:v=1:a=0[slides]", strings.Join(labels, ""), imageCount)
	return strings.Join(chains, ";") + ";" + concat
}

// captionFilter draws the subtitle centered at the bottom, fading the text
// alpha in and out over the configured fade window
func (c *Compositor) captionFilter(subtitle string, duration float64) string {
	fade := c.cfg.Video.FadeSec
	holdEnd := duration - fade
	if holdEnd < 0 {
		holdEnd = 0
	}
	alpha := fmt.Sprintf(
		"if(lt(t,%.2f),t/%.2f,if(lt(t,%.3f),1,max((%.3f-t)/%.2f,0)))",
		fade, fade, holdEnd, duration, fade,
	)

	return fmt.Sprintf(
		"drawtext=text='%s':font='%s':fontsize=%d:fontcolor=white:x=(w-text_w)/2:y=h-text_h-%d:alpha='%s'",
		escapeFFmpegText(subtitle),
		c.cfg.Video.CaptionFont,
		c.cfg.Video.CaptionFontSize,
		c.cfg.Video.CaptionMarginBottom,
		alpha,
	)
}

// fadeFilter fades the whole scene clip in and out
func (c *Compositor) fadeFilter(duration float64) string {
	fade := c.cfg.Video.FadeSec
	outStart := duration - fade
	if outStart < 0 {
		outStart = 0
	}
	return fmt.Sprintf("fade=t=in:st=0:d=%.2f,fade=t=out:st=%.3f:d=%.2f", fade, outStart, fade)
}

func escapeFFmpegText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "'", "\\'")
	s = strings.ReplaceAll(s, ":", "\\:")
	return s
}
