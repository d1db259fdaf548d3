package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	scenes "github.com/smartbot520/generate-video/01_scenes"
	images "github.com/smartbot520/generate-video/02_images"
	tts "github.com/smartbot520/generate-video/03_tts"
	timing "github.com/smartbot520/generate-video/04_timing"
	compose "github.com/smartbot520/generate-video/05_compose"
	render "github.com/smartbot520/generate-video/06_render"
	upload "github.com/smartbot520/generate-video/07_upload"
	"github.com/smartbot520/generate-video/config"
	"github.com/smartbot520/generate-video/types"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env (local dev only — CI uses real env)
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	for _, dir := range []string{cfg.Paths.Output, cfg.Paths.Work} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create dir %s: %v", dir, err)
		}
	}

	loader := scenes.New(cfg)
	files, err := loader.List()
	if err != nil {
		log.Fatalf("Failed to list scene files: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("No scene files found in %s", cfg.Paths.ScenesDir)
	}

	log.Printf("🎬 Shorts pipeline starting — %d scene file(s)", len(files))

	ctx := context.Background()
	for _, file := range files {
		log.Printf("\n🚀 Processing %s...", filepath.Base(file))
		if err := processSceneSet(ctx, cfg, loader, file); err != nil {
			log.Fatalf("❌ %s failed: %v", filepath.Base(file), err)
		}
	}

	log.Println("✅ All scene sets processed")
}

// processSceneSet runs the full stage sequence for one scene file.
// Intermediates live in a uuid-suffixed scratch dir that is removed after a
// successful export; on failure it is left behind for inspection.
func processSceneSet(ctx context.Context, cfg *config.Config, loader *scenes.Loader, file string) error {
	runID := uuid.NewString()[:8]

	state := &types.RunState{
		RunID:     runID,
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}

	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	workDir := filepath.Join(cfg.Paths.Work, fmt.Sprintf("%s_%s", base, runID))
	outDir := filepath.Join(cfg.Paths.Output, base)
	for _, dir := range []string{workDir, outDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}

	// Every stage failure, including the scene load, leaves a run_state.json
	defer func() {
		state.CompletedAt = time.Now().UTC().Format(time.RFC3339)
		saveJSON(filepath.Join(outDir, "run_state.json"), state)
	}()

	// ─────────────────────────────────────────────
	// STAGE 1: Load scenes
	// ─────────────────────────────────────────────
	log.Println("\n━━━ STAGE 1: Scenes ━━━")
	set, err := loader.Load(file)
	if err != nil {
		state.Error = fmt.Sprintf("stage 1 scenes: %v", err)
		return fmt.Errorf("stage 1 scenes: %w", err)
	}
	state.Set = set

	// ─────────────────────────────────────────────
	// STAGE 2: Images
	// ─────────────────────────────────────────────
	log.Println("\n━━━ STAGE 2: Images ━━━")
	fetcher := images.New(cfg)
	if err := fetcher.Run(ctx, set, filepath.Join(workDir, "images")); err != nil {
		state.Error = fmt.Sprintf("stage 2 images: %v", err)
		return fmt.Errorf("stage 2 images: %w", err)
	}

	// ─────────────────────────────────────────────
	// STAGE 3: Narration
	// ─────────────────────────────────────────────
	log.Println("\n━━━ STAGE 3: Narration ━━━")
	audioDir := filepath.Join(workDir, "audio")
	if err := os.MkdirAll(audioDir, 0755); err != nil {
		return fmt.Errorf("create audio dir: %w", err)
	}
	audioFile := filepath.Join(audioDir, "full_audio.mp3")

	synth := tts.New(cfg)
	if err := synth.Run(ctx, set.FullScript(), audioFile); err != nil {
		state.Error = fmt.Sprintf("stage 3 narration: %v", err)
		return fmt.Errorf("stage 3 narration: %w", err)
	}

	dur, err := tts.AudioDuration(audioFile)
	if err != nil {
		state.Error = fmt.Sprintf("stage 3 narration: %v", err)
		return fmt.Errorf("stage 3 narration duration: %w", err)
	}
	set.AudioFile = audioFile
	set.AudioDurationSec = dur
	log.Printf("[tts] Narration duration: %.2fs", dur)

	// ─────────────────────────────────────────────
	// STAGE 4: Timing
	// ─────────────────────────────────────────────
	log.Println("\n━━━ STAGE 4: Timing ━━━")
	if err := timing.Allocate(set); err != nil {
		state.Error = fmt.Sprintf("stage 4 timing: %v", err)
		return fmt.Errorf("stage 4 timing: %w", err)
	}
	for _, scene := range set.Scenes {
		log.Printf("[timing] Scene %d: %.2fs (%d words)", scene.Index+1, scene.DurationSec, timing.WordCount(scene.Text))
	}

	// ─────────────────────────────────────────────
	// STAGE 5: Scene clips
	// ─────────────────────────────────────────────
	log.Println("\n━━━ STAGE 5: Scene clips ━━━")
	compositor := compose.New(cfg)
	if err := compositor.Run(ctx, set, filepath.Join(workDir, "clips")); err != nil {
		state.Error = fmt.Sprintf("stage 5 compose: %v", err)
		return fmt.Errorf("stage 5 compose: %w", err)
	}

	// ─────────────────────────────────────────────
	// STAGE 6: Final render
	// ─────────────────────────────────────────────
	log.Println("\n━━━ STAGE 6: Render ━━━")
	assembler := render.New(cfg)
	finalVideo, err := assembler.Run(ctx, set, filepath.Join(workDir, "render"), filepath.Join(outDir, "final_video.mp4"))
	if err != nil {
		state.Error = fmt.Sprintf("stage 6 render: %v", err)
		return fmt.Errorf("stage 6 render: %w", err)
	}
	set.VideoFile = finalVideo
	state.VideoFile = finalVideo

	// ─────────────────────────────────────────────
	// STAGE 7: Upload (optional)
	// ─────────────────────────────────────────────
	if cfg.Upload.Enabled {
		log.Println("\n━━━ STAGE 7: Upload ━━━")
		uploader := upload.New(cfg)
		videoID, videoURL, err := uploader.Run(ctx, finalVideo, set)
		if err != nil {
			state.Error = fmt.Sprintf("stage 7 upload: %v", err)
			return fmt.Errorf("stage 7 upload: %w", err)
		}
		state.YouTubeID = videoID
		state.YouTubeURL = videoURL
	}

	// Cleanup scratch dir only after a fully successful run
	if err := os.RemoveAll(workDir); err != nil {
		log.Printf("⚠️  Could not remove work dir %s: %v", workDir, err)
	}

	log.Printf("✅ Saved video: %s", finalVideo)
	return nil
}

func saveJSON(path string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Warning: could not marshal JSON for %s: %v", path, err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("Warning: could not save %s: %v", path, err)
	}
}
