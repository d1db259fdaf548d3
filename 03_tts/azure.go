package tts

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/smartbot520/generate-video/config"
)

// Synthesizer turns the full narration script into one MP3 via the Azure
// Speech REST endpoint. Key and region come from AZURE_SPEECH_KEY and
// AZURE_REGION.
type Synthesizer struct {
	cfg        *config.Config
	httpClient *http.Client
	key        string
	region     string
	endpoint   string // set from region unless overridden
}

// New creates a new Synthesizer
func New(cfg *config.Config) *Synthesizer {
	return &Synthesizer{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		key:        os.Getenv("AZURE_SPEECH_KEY"),
		region:     os.Getenv("AZURE_REGION"),
	}
}

// Run synthesizes the script and writes the audio to outFile.
// One blocking call per run; any non-success response aborts.
func (s *Synthesizer) Run(ctx context.Context, script, outFile string) error {
	if s.key == "" || s.region == "" {
		return fmt.Errorf("AZURE_SPEECH_KEY or AZURE_REGION not set")
	}
	if strings.TrimSpace(script) == "" {
		return fmt.Errorf("empty narration script")
	}

	ssml := s.buildSSML(script)

	req, err := http.NewRequestWithContext(ctx, "POST", s.endpointURL(), strings.NewReader(ssml))
	if err != nil {
		return err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", s.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", s.cfg.Speech.OutputFormat)
	req.Header.Set("User-Agent", "generate-video/1.0")

	log.Printf("[tts] Synthesizing %d characters with voice %s...", len(script), s.cfg.Speech.Voice)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("speech request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("speech synthesis failed: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read audio: %w", err)
	}
	if len(audio) < 100 {
		return fmt.Errorf("speech endpoint returned %d bytes — likely an error", len(audio))
	}

	if err := os.WriteFile(outFile, audio, 0644); err != nil {
		return fmt.Errorf("write audio: %w", err)
	}

	log.Printf("[tts] ✅ Narration audio saved: %s", outFile)
	return nil
}

func (s *Synthesizer) endpointURL() string {
	if s.endpoint != "" {
		return s.endpoint
	}
	return fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", s.region)
}

// buildSSML wraps the script in the voice and prosody settings from config
func (s *Synthesizer) buildSSML(text string) string {
	return fmt.Sprintf(
		"<speak version='1.0' xml:lang='%s'><voice name='%s'><prosody rate='%s' pitch='%s'>%s</prosody></voice></speak>",
		s.cfg.Speech.Language,
		s.cfg.Speech.Voice,
		s.cfg.Speech.Rate,
		s.cfg.Speech.Pitch,
		escapeXML(text),
	)
}

func escapeXML(s string) string {
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	).Replace(s)
}

// AudioDuration uses ffprobe to get accurate audio duration in seconds
func AudioDuration(audioFile string) (float64, error) {
	out, err := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioFile,
	).Output()
	if err != nil {
		return 0, err
	}
	var dur float64
	_, err = fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &dur)
	return dur, err
}
