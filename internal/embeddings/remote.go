// ABOUTME: Builds a vocabulary by asking a remote embedding service for each token
// ABOUTME: Tokens are deduplicated and sent in sorted batches
package embeddings

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/harper/poetsim/internal/core"
)

// DefaultBatchSize is the number of tokens sent per embedding request
const DefaultBatchSize = 256

// Embedder returns one vector per input text
type Embedder interface {
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float64, error)
}

// Vocabulary returns the distinct trimmed tokens of src in sorted order
func Vocabulary(src core.TokenSource) []string {
	seen := make(map[string]struct{})
	for _, author := range src.Authors() {
		for _, tok := range src.Tokens(author) {
			if tok = strings.TrimSpace(tok); tok != "" {
				seen[tok] = struct{}{}
			}
		}
	}

	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// BuildRemoteLookup embeds every distinct token in src
func BuildRemoteLookup(ctx context.Context, emb Embedder, src core.TokenSource, batchSize int) (*MapLookup, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	words := Vocabulary(src)
	if len(words) == 0 {
		return nil, fmt.Errorf("corpus has no tokens to embed")
	}

	vectors := make(map[string][]float64, len(words))
	dim := 0
	for start := 0; start < len(words); start += batchSize {
		end := min(start+batchSize, len(words))
		batch := words[start:end]

		out, err := emb.GenerateEmbeddings(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to embed tokens %d-%d: %w", start, end, err)
		}
		if len(out) != len(batch) {
			return nil, fmt.Errorf("embedding service returned %d vectors for %d tokens", len(out), len(batch))
		}

		for i, v := range out {
			if dim == 0 {
				dim = len(v)
			}
			vectors[batch[i]] = v
		}
	}

	return NewMapLookup(dim, vectors)
}
