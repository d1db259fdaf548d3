package timing

import (
	"fmt"
	"strings"

	"github.com/smartbot520/generate-video/types"
)

// Allocate splits the measured narration duration across scenes proportionally
// to word count. The allocations always sum to the narration duration.
func Allocate(set *types.SceneSet) error {
	totalWords := 0
	counts := make([]int, len(set.Scenes))
	for i, scene := range set.Scenes {
		counts[i] = WordCount(scene.Text)
		totalWords += counts[i]
	}

	if totalWords == 0 {
		return fmt.Errorf("scene set %q has no narration words", set.Name)
	}
	if set.AudioDurationSec <= 0 {
		return fmt.Errorf("scene set %q has no narration duration", set.Name)
	}

	for i := range set.Scenes {
		set.Scenes[i].DurationSec = float64(counts[i]) / float64(totalWords) * set.AudioDurationSec
	}
	return nil
}

// WordCount counts whitespace-separated words
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// PerImageDuration returns how long each image in a scene slideshow is shown:
// an even split of the scene duration, floored at minSec per image.
func PerImageDuration(sceneDuration float64, imageCount int, minSec float64) float64 {
	if imageCount <= 0 {
		return minSec
	}
	per := sceneDuration / float64(imageCount)
	if per < minSec {
		return minSec
	}
	return per
}
