package scenes

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/smartbot520/generate-video/config"
	"github.com/smartbot520/generate-video/types"
)

// Loader reads scene-set JSON files from the scenes directory
type Loader struct {
	cfg *config.Config
}

// New creates a new Loader
func New(cfg *config.Config) *Loader {
	return &Loader{cfg: cfg}
}

// List returns every *.json file in the scenes directory, sorted by name
func (l *Loader) List() ([]string, error) {
	entries, err := os.ReadDir(l.cfg.Paths.ScenesDir)
	if err != nil {
		return nil, fmt.Errorf("read scenes dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(l.cfg.Paths.ScenesDir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Load parses and validates one scene-set file.
// Every scene must carry non-empty narration text; an empty scene array or
// unparseable file is an error.
func (l *Loader) Load(path string) (*types.SceneSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene file: %w", err)
	}

	var sceneList []types.Scene
	if err := json.Unmarshal(data, &sceneList); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	if len(sceneList) == 0 {
		return nil, fmt.Errorf("%s contains no scenes", filepath.Base(path))
	}

	for i := range sceneList {
		sceneList[i].Index = i
		if strings.TrimSpace(sceneList[i].Text) == "" {
			return nil, fmt.Errorf("%s: scene %d has empty text", filepath.Base(path), i+1)
		}
		if strings.TrimSpace(sceneList[i].ImageKeyword) == "" {
			log.Printf("[scenes] Warning: scene %d has no image keyword — no images will be fetched", i+1)
		}
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	set := &types.SceneSet{
		Name:       base,
		SourceFile: path,
		Scenes:     sceneList,
	}

	log.Printf("[scenes] Loaded %d scene(s) from %s", len(set.Scenes), filepath.Base(path))
	return set, nil
}
