// ABOUTME: SimilarityIndex answers nearest-author queries by angular distance
// ABOUTME: Scans the store in insertion order; ties keep the first author seen
package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/harper/poetsim/internal/models"
	"gonum.org/v1/gonum/floats"
)

// Index ranks authors of a Store by angle between their vectors.
// It never mutates the store and is safe for concurrent queries.
type Index struct {
	store *Store
	// scaled[i] is store.vectors[i] multiplied by a power of two so its
	// largest component lies in [0.5, 1). Angles are unchanged and the
	// squared norms in sq can neither overflow nor underflow.
	scaled [][]float64
	sq     []float64
}

// NewIndex wraps a store and precomputes scaled vectors and their norms
func NewIndex(store *Store) *Index {
	ix := &Index{
		store:  store,
		scaled: make([][]float64, len(store.vectors)),
		sq:     make([]float64, len(store.vectors)),
	}
	for i, av := range store.vectors {
		ix.scaled[i] = scaleUnitRange(av.Vector)
		ix.sq[i] = floats.Dot(ix.scaled[i], ix.scaled[i])
	}
	return ix
}

// scaleUnitRange returns a copy of v scaled by an exact power of two.
// A zero vector stays zero.
func scaleUnitRange(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)

	maxAbs := floats.Norm(v, math.Inf(1))
	if maxAbs == 0 || math.IsInf(maxAbs, 0) || math.IsNaN(maxAbs) {
		return out
	}
	// Ldexp per component: for subnormal input 2^-exp itself overflows
	_, exp := math.Frexp(maxAbs)
	for k := range out {
		out[k] = math.Ldexp(out[k], -exp)
	}
	return out
}

// Store returns the wrapped store
func (ix *Index) Store() *Store {
	return ix.store
}

// NearestAuthor is the function form of Index.NearestAuthor
func NearestAuthor(store *Store, query string) (string, error) {
	n, err := NewIndex(store).NearestAuthor(query)
	if err != nil {
		return "", err
	}
	return n.Author, nil
}

// NearestAuthor returns the author with the smallest angle to query.
// The running minimum starts at π and is replaced only by a strictly
// smaller angle, so equal angles keep the earlier author. The first
// candidate is always accepted, even at exactly π.
func (ix *Index) NearestAuthor(query string) (models.Neighbor, error) {
	qi, err := ix.queryIndex(query)
	if err != nil {
		return models.Neighbor{}, err
	}

	best := models.Neighbor{Angle: math.Pi}
	found := false

	for i := range ix.store.vectors {
		if i == qi {
			continue
		}
		n, err := ix.compare(qi, i)
		if err != nil {
			return models.Neighbor{}, err
		}
		if !found || n.Angle < best.Angle {
			best = n
			found = true
		}
	}

	return best, nil
}

// Rank returns every other author ordered by ascending angle, ties in
// store order, truncated to k results when k > 0.
func (ix *Index) Rank(query string, k int) ([]models.Neighbor, error) {
	qi, err := ix.queryIndex(query)
	if err != nil {
		return nil, err
	}

	results := make([]models.Neighbor, 0, len(ix.store.vectors)-1)
	for i := range ix.store.vectors {
		if i == qi {
			continue
		}
		n, err := ix.compare(qi, i)
		if err != nil {
			return nil, err
		}
		results = append(results, n)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Angle < results[j].Angle
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Angle returns the angular distance between two named authors
func (ix *Index) Angle(a, b string) (models.Neighbor, error) {
	ai, ok := ix.store.index[a]
	if !ok {
		return models.Neighbor{}, authorError(a, ErrUnknownAuthor)
	}
	bi, ok := ix.store.index[b]
	if !ok {
		return models.Neighbor{}, authorError(b, ErrUnknownAuthor)
	}
	if ix.sq[ai] == 0 {
		return models.Neighbor{}, authorError(a, ErrDegenerateVector)
	}
	return ix.compare(ai, bi)
}

// queryIndex validates a query and returns its position
func (ix *Index) queryIndex(query string) (int, error) {
	qi, ok := ix.store.index[query]
	if !ok {
		return 0, authorError(query, ErrUnknownAuthor)
	}
	if len(ix.store.vectors) < 2 {
		return 0, fmt.Errorf("%w: store has %d", ErrNoCandidates, len(ix.store.vectors))
	}
	if ix.sq[qi] == 0 {
		return 0, authorError(query, ErrDegenerateVector)
	}
	return qi, nil
}

// compare computes the angle between the vectors at positions i and j.
// Using sqrt(|x|²|y|²) makes identical vectors give a cosine of exactly 1.
// A vector is degenerate only when every component is exactly zero.
func (ix *Index) compare(i, j int) (models.Neighbor, error) {
	other := ix.store.vectors[j]
	if ix.sq[j] == 0 {
		return models.Neighbor{}, authorError(other.Author, ErrDegenerateVector)
	}

	dot := floats.Dot(ix.scaled[i], ix.scaled[j])
	cos := dot / math.Sqrt(ix.sq[i]*ix.sq[j])
	cos = math.Max(-1, math.Min(1, cos))

	return models.Neighbor{
		Author: other.Author,
		Angle:  math.Acos(cos),
		Cosine: cos,
	}, nil
}
