// ABOUTME: Chinese word segmentation backed by go-ego/gse
// ABOUTME: Produces whitespace-free tokens with punctuation removed
package corpus

import (
	"fmt"
	"strings"

	"github.com/go-ego/gse"
)

// GSESegmenter cuts raw Chinese text into words
type GSESegmenter struct {
	seg      gse.Segmenter
	useStops bool
}

// NewGSESegmenter loads the given dictionaries, or the embedded default
// dictionary when none are given. With stopWords set, gse's default stop
// word list is applied.
func NewGSESegmenter(stopWords bool, dictFiles ...string) (*GSESegmenter, error) {
	seg, err := gse.New(dictFiles...)
	if err != nil {
		return nil, fmt.Errorf("failed to load segmentation dictionary: %w", err)
	}

	s := &GSESegmenter{seg: seg, useStops: stopWords}
	if stopWords {
		if err := s.seg.LoadStop(); err != nil {
			return nil, fmt.Errorf("failed to load stop words: %w", err)
		}
	}
	return s, nil
}

// Cut segments text with the HMM enabled for unknown words
func (s *GSESegmenter) Cut(text string) []string {
	words := s.seg.Trim(s.seg.Cut(text, true))
	if s.useStops {
		words = s.seg.Stop(words)
	}

	out := words[:0]
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}
