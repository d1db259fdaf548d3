package upload

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/smartbot520/generate-video/config"
	"github.com/smartbot520/generate-video/types"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Uploader pushes a finished video to YouTube via Data API v3.
// Disabled by default; enable with upload.enabled in config.yaml.
type Uploader struct {
	cfg *config.Config
}

// New creates a new Uploader
func New(cfg *config.Config) *Uploader {
	return &Uploader{cfg: cfg}
}

// Run uploads the final video for a scene set. Title comes from the scene-set
// name, description from the scene subtitles.
func (u *Uploader) Run(ctx context.Context, videoFile string, set *types.SceneSet) (string, string, error) {
	log.Println("[upload] Authenticating with YouTube API...")

	client, err := u.getOAuthClient(ctx)
	if err != nil {
		return "", "", fmt.Errorf("youtube auth: %w", err)
	}

	svc, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", "", fmt.Errorf("youtube service: %w", err)
	}

	title := titleFromName(set.Name)
	log.Printf("[upload] Uploading: %q", title)

	snippet := &youtube.VideoSnippet{
		Title:                title,
		Description:          descriptionFromScenes(set),
		Tags:                 u.cfg.Upload.Tags,
		CategoryId:           u.cfg.Upload.CategoryID,
		DefaultLanguage:      u.cfg.Upload.DefaultLanguage,
		DefaultAudioLanguage: u.cfg.Upload.DefaultLanguage,
	}

	status := &youtube.VideoStatus{
		PrivacyStatus:           u.cfg.Upload.Visibility,
		SelfDeclaredMadeForKids: u.cfg.Upload.MadeForKids,
	}

	video := &youtube.Video{
		Snippet: snippet,
		Status:  status,
	}

	f, err := os.Open(videoFile)
	if err != nil {
		return "", "", fmt.Errorf("open video file: %w", err)
	}
	defer f.Close()

	fi, _ := f.Stat()
	log.Printf("[upload] File size: %.1f MB", float64(fi.Size())/1024/1024)

	call := svc.Videos.Insert([]string{"snippet", "status"}, video)
	call.Media(f)
	call.NotifySubscribers(u.cfg.Upload.NotifySubscribers)

	uploaded, err := call.Do()
	if err != nil {
		return "", "", fmt.Errorf("youtube upload: %w", err)
	}

	videoID := uploaded.Id
	videoURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)

	log.Printf("[upload] ✅ Uploaded: %s", videoURL)
	return videoID, videoURL, nil
}

// getOAuthClient creates an OAuth2 HTTP client using env credentials
func (u *Uploader) getOAuthClient(ctx context.Context) (*http.Client, error) {
	clientID := os.Getenv("YOUTUBE_CLIENT_ID")
	clientSecret := os.Getenv("YOUTUBE_CLIENT_SECRET")
	refreshToken := os.Getenv("YOUTUBE_REFRESH_TOKEN")

	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return nil, fmt.Errorf("YOUTUBE_CLIENT_ID, YOUTUBE_CLIENT_SECRET, or YOUTUBE_REFRESH_TOKEN not set")
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeUploadScope, youtube.YoutubeScope},
	}

	token := &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour), // force refresh
	}

	transport := &oauth2.Transport{Source: conf.TokenSource(ctx, token)}
	return &http.Client{Transport: transport}, nil
}

// titleFromName turns a scene file base name into a readable title
func titleFromName(name string) string {
	title := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.TrimSpace(title)
}

// descriptionFromScenes joins the scene subtitles into a plain description
func descriptionFromScenes(set *types.SceneSet) string {
	var lines []string
	for _, scene := range set.Scenes {
		if strings.TrimSpace(scene.Subtitle) != "" {
			lines = append(lines, scene.Subtitle)
		}
	}
	return strings.Join(lines, "\n")
}
