package upload

import (
	"context"
	"testing"

	"golang.org/x/oauth2"

	"github.com/smartbot520/generate-video/config"
	"github.com/smartbot520/generate-video/types"
)

func TestGetOAuthClientRequiresCredentials(t *testing.T) {
	t.Setenv("YOUTUBE_CLIENT_ID", "")
	t.Setenv("YOUTUBE_CLIENT_SECRET", "")
	t.Setenv("YOUTUBE_REFRESH_TOKEN", "")

	u := New(&config.Config{})
	if _, err := u.getOAuthClient(context.Background()); err == nil {
		t.Error("Expected error when OAuth env vars are unset")
	}
}

func TestGetOAuthClientReturnsHTTPClient(t *testing.T) {
	t.Setenv("YOUTUBE_CLIENT_ID", "id")
	t.Setenv("YOUTUBE_CLIENT_SECRET", "secret")
	t.Setenv("YOUTUBE_REFRESH_TOKEN", "refresh")

	u := New(&config.Config{})
	client, err := u.getOAuthClient(context.Background())
	if err != nil {
		t.Fatalf("getOAuthClient failed: %v", err)
	}
	if client == nil {
		t.Fatal("Expected a non-nil HTTP client")
	}

	transport, ok := client.Transport.(*oauth2.Transport)
	if !ok {
		t.Fatalf("Expected oauth2 transport, got %T", client.Transport)
	}
	if transport.Source == nil {
		t.Error("Expected a token source on the transport")
	}
}

func TestTitleFromName(t *testing.T) {
	if got := titleFromName("araku_coffee-story"); got != "araku coffee story" {
		t.Errorf("Unexpected title: %q", got)
	}
}

func TestDescriptionFromScenes(t *testing.T) {
	set := &types.SceneSet{
		Scenes: []types.Scene{
			{Subtitle: "First line"},
			{Subtitle: "  "},
			{Subtitle: "Second line"},
		},
	}

	want := "First line\nSecond line"
	if got := descriptionFromScenes(set); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
