package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/smartbot520/generate-video/config"
	"github.com/smartbot520/generate-video/types"
)

const defaultBaseURL = "https://api.pexels.com/v1"

// Fetcher downloads stock photos from the Pexels API
type Fetcher struct {
	cfg        *config.Config
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// New creates a new Fetcher. The API key comes from PEXELS_API_KEY.
func New(cfg *config.Config) *Fetcher {
	return &Fetcher{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		apiKey:     os.Getenv("PEXELS_API_KEY"),
		baseURL:    defaultBaseURL,
	}
}

type searchResponse struct {
	Photos []photo `json:"photos"`
}

type photo struct {
	Src photoSrc `json:"src"`
}

type photoSrc struct {
	Portrait string `json:"portrait"`
	Original string `json:"original"`
}

// Run downloads images for every scene into imageDir/scene<i+1>/.
// A keyword with no search results is logged and skipped — the scene keeps
// zero images and the compositor rejects it later. Network and disk errors
// abort the run.
func (f *Fetcher) Run(ctx context.Context, set *types.SceneSet, imageDir string) error {
	if f.apiKey == "" {
		return fmt.Errorf("PEXELS_API_KEY not set")
	}

	for i := range set.Scenes {
		scene := &set.Scenes[i]
		sceneDir := filepath.Join(imageDir, fmt.Sprintf("scene%d", i+1))
		if err := os.MkdirAll(sceneDir, 0755); err != nil {
			return fmt.Errorf("create scene image dir: %w", err)
		}

		files, err := f.FetchScene(ctx, scene.ImageKeyword, sceneDir)
		if err != nil {
			return fmt.Errorf("scene %d images: %w", i+1, err)
		}
		scene.Images = files

		if len(files) == 0 {
			log.Printf("[images] ❌ No images found for %q (scene %d)", scene.ImageKeyword, i+1)
			continue
		}
		log.Printf("[images] ✅ Downloaded %d image(s) for %q → %s", len(files), scene.ImageKeyword, sceneDir)
	}
	return nil
}

// FetchScene searches Pexels for a keyword and saves up to per_scene images.
// An empty result set is not an error; it returns an empty slice.
func (f *Fetcher) FetchScene(ctx context.Context, query, dir string) ([]string, error) {
	photos, err := f.search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(photos) == 0 {
		return nil, nil
	}

	if len(photos) > f.cfg.Images.PerScene {
		photos = photos[:f.cfg.Images.PerScene]
	}

	var saved []string
	for i, p := range photos {
		imageURL := p.Src.Portrait
		if imageURL == "" {
			imageURL = p.Src.Original
		}
		if imageURL == "" {
			continue
		}

		outFile := filepath.Join(dir, fmt.Sprintf("img%d.jpg", i+1))
		if err := f.download(ctx, imageURL, outFile); err != nil {
			return nil, fmt.Errorf("download image %d for %q: %w", i+1, query, err)
		}
		saved = append(saved, outFile)
	}
	return saved, nil
}

func (f *Fetcher) search(ctx context.Context, query string) ([]photo, error) {
	searchURL := fmt.Sprintf("%s/search?query=%s&per_page=%d&orientation=%s",
		f.baseURL,
		url.QueryEscape(query),
		f.cfg.Images.PerScene,
		f.cfg.Images.Orientation,
	)

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", f.apiKey)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pexels search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pexels search returned HTTP %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parse pexels response: %w", err)
	}
	return result.Photos, nil
}

func (f *Fetcher) download(ctx context.Context, fileURL, outPath string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", fileURL, nil)
	if err != nil {
		return err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 20*1024*1024)) // max 20MB
	if err != nil {
		return err
	}

	if len(data) < 100 {
		return fmt.Errorf("response too small (%d bytes) — likely an error page", len(data))
	}

	return os.WriteFile(outPath, data, 0644)
}
