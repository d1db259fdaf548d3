package scenes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smartbot520/generate-video/config"
)

func testConfig(scenesDir string) *config.Config {
	cfg := &config.Config{}
	cfg.Paths.ScenesDir = scenesDir
	return cfg
}

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write scene file: %v", err)
	}
	return path
}

func TestLoadValidSceneSet(t *testing.T) {
	dir := t.TempDir()
	path := writeSceneFile(t, dir, "story_01.json", `[
		{"text": "first scene narration", "image_keyword": "sunset beach", "subtitle": "Scene one"},
		{"text": "second scene narration", "image_keyword": "city night", "subtitle": "Scene two"}
	]`)

	loader := New(testConfig(dir))
	set, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if set.Name != "story_01" {
		t.Errorf("Expected name story_01, got %q", set.Name)
	}
	if len(set.Scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(set.Scenes))
	}
	if set.Scenes[1].Index != 1 {
		t.Errorf("Expected scene index 1, got %d", set.Scenes[1].Index)
	}
	if set.Scenes[0].ImageKeyword != "sunset beach" {
		t.Errorf("Unexpected image keyword: %q", set.Scenes[0].ImageKeyword)
	}
}

func TestLoadRejectsEmptyText(t *testing.T) {
	dir := t.TempDir()
	path := writeSceneFile(t, dir, "bad.json", `[{"text": "  ", "image_keyword": "x", "subtitle": "y"}]`)

	loader := New(testConfig(dir))
	if _, err := loader.Load(path); err == nil {
		t.Error("Expected error for scene with empty text")
	}
}

func TestLoadRejectsEmptySet(t *testing.T) {
	dir := t.TempDir()
	path := writeSceneFile(t, dir, "empty.json", `[]`)

	loader := New(testConfig(dir))
	if _, err := loader.Load(path); err == nil {
		t.Error("Expected error for empty scene array")
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeSceneFile(t, dir, "broken.json", `{"not": "an array"`)

	loader := New(testConfig(dir))
	if _, err := loader.Load(path); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestListReturnsSortedJSONFiles(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "b.json", `[]`)
	writeSceneFile(t, dir, "a.json", `[]`)
	writeSceneFile(t, dir, "notes.txt", "ignore me")

	loader := New(testConfig(dir))
	files, err := loader.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "a.json" || filepath.Base(files[1]) != "b.json" {
		t.Errorf("Expected sorted order [a.json b.json], got %v", files)
	}
}

func TestFullScriptJoinsSceneTexts(t *testing.T) {
	dir := t.TempDir()
	path := writeSceneFile(t, dir, "s.json", `[
		{"text": "hello", "image_keyword": "a", "subtitle": ""},
		{"text": "world", "image_keyword": "b", "subtitle": ""}
	]`)

	loader := New(testConfig(dir))
	set, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := set.FullScript(); got != "hello world" {
		t.Errorf("Expected %q, got %q", "hello world", got)
	}
}
