// ABOUTME: Tests for gse-backed segmentation
// ABOUTME: Loads the embedded dictionary so it is skipped in short mode
package corpus

import (
	"strings"
	"testing"
)

func TestGSESegmenter_Cut(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping dictionary load in short mode")
	}

	seg, err := NewGSESegmenter(false)
	if err != nil {
		t.Fatalf("NewGSESegmenter() error = %v", err)
	}

	words := seg.Cut("床前明月光，疑是地上霜。")
	if len(words) == 0 {
		t.Fatal("Cut() returned no words")
	}

	joined := strings.Join(words, "")
	if strings.ContainsAny(joined, "，。 ") {
		t.Errorf("Cut() kept punctuation or spaces: %v", words)
	}
	if !strings.Contains(joined, "明月") {
		t.Errorf("Cut() lost content: %v", words)
	}
}
