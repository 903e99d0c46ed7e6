// ABOUTME: Tests for AuthorVectorBuilder aggregation
// ABOUTME: Covers mean vectors, OOV skipping, degenerate authors and order invariance
package core

import (
	"errors"
	"reflect"
	"testing"
)

// mapLookup is a fixed in-memory embedding vocabulary for tests
type mapLookup struct {
	dim     int
	vectors map[string][]float64
}

func (m *mapLookup) Vector(token string) ([]float64, bool) {
	v, ok := m.vectors[token]
	return v, ok
}

func (m *mapLookup) Dimension() int {
	return m.dim
}

// testSource is an ordered corpus for tests
type testSource struct {
	authors []string
	tokens  map[string][]string
}

func newTestSource() *testSource {
	return &testSource{tokens: make(map[string][]string)}
}

func (s *testSource) add(author string, tokens ...string) *testSource {
	if _, ok := s.tokens[author]; !ok {
		s.authors = append(s.authors, author)
	}
	s.tokens[author] = append(s.tokens[author], tokens...)
	return s
}

func (s *testSource) Authors() []string {
	return s.authors
}

func (s *testSource) Tokens(author string) []string {
	return s.tokens[author]
}

func mountainRiver() *mapLookup {
	return &mapLookup{
		dim: 2,
		vectors: map[string][]float64{
			"mountain": {1, 0},
			"river":    {0, 1},
		},
	}
}

func TestBuildAuthorVectors_KnownVectors(t *testing.T) {
	src := newTestSource().
		add("A", "mountain", "mountain").
		add("B", "river").
		add("C", "mountain", "river")

	store, err := BuildAuthorVectors(src, mountainRiver())
	if err != nil {
		t.Fatalf("BuildAuthorVectors() error = %v", err)
	}

	want := map[string][]float64{
		"A": {1, 0},
		"B": {0, 1},
		"C": {0.5, 0.5},
	}
	for author, vec := range want {
		av, ok := store.Get(author)
		if !ok {
			t.Fatalf("author %q missing from store", author)
		}
		if !reflect.DeepEqual(av.Vector, vec) {
			t.Errorf("vector[%s] = %v, want %v", author, av.Vector, vec)
		}
	}

	if got := store.Authors(); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("Authors() = %v, want insertion order [A B C]", got)
	}
}

func TestBuildAuthorVectors_DimensionMatchesLookup(t *testing.T) {
	lookup := &mapLookup{
		dim: 5,
		vectors: map[string][]float64{
			"月": {1, 2, 3, 4, 5},
			"风": {5, 4, 3, 2, 1},
		},
	}
	src := newTestSource().add("李白", "月", "风").add("杜甫", "风")

	store, err := BuildAuthorVectors(src, lookup)
	if err != nil {
		t.Fatalf("BuildAuthorVectors() error = %v", err)
	}
	if store.Dimension() != 5 {
		t.Errorf("Dimension() = %d, want 5", store.Dimension())
	}
	for _, av := range store.Vectors() {
		if len(av.Vector) != 5 {
			t.Errorf("len(vector[%s]) = %d, want 5", av.Author, len(av.Vector))
		}
	}
}

func TestAuthorVector_SkipsOOVAndTrims(t *testing.T) {
	b := NewBuilder(mountainRiver())

	av, err := b.AuthorVector("A", []string{" mountain ", "cloud", "", "  ", "river\t", "cloud"})
	if err != nil {
		t.Fatalf("AuthorVector() error = %v", err)
	}

	if !reflect.DeepEqual(av.Vector, []float64{0.5, 0.5}) {
		t.Errorf("Vector = %v, want [0.5 0.5]", av.Vector)
	}
	if av.TokenCount != 2 {
		t.Errorf("TokenCount = %d, want 2", av.TokenCount)
	}
	if av.OOVCount != 2 {
		t.Errorf("OOVCount = %d, want 2", av.OOVCount)
	}
}

func TestAuthorVector_OrderInvariant(t *testing.T) {
	// Values chosen so that naive left-to-right summation is not associative.
	lookup := &mapLookup{
		dim: 3,
		vectors: map[string][]float64{
			"a": {0.1, 1e16, 0.3},
			"b": {0.2, 1, 0.7},
			"c": {0.3, -1e16, 0.1},
			"d": {1e-9, 3.3, 0.01},
		},
	}
	b := NewBuilder(lookup)

	permutations := [][]string{
		{"a", "b", "c", "d", "a", "b"},
		{"b", "a", "d", "c", "b", "a"},
		{"d", "c", "b", "a", "a", "b"},
		{"c", "a", "a", "b", "b", "d"},
	}

	first, err := b.AuthorVector("X", permutations[0])
	if err != nil {
		t.Fatalf("AuthorVector() error = %v", err)
	}

	for _, perm := range permutations[1:] {
		got, err := b.AuthorVector("X", perm)
		if err != nil {
			t.Fatalf("AuthorVector(%v) error = %v", perm, err)
		}
		if !reflect.DeepEqual(got.Vector, first.Vector) {
			t.Errorf("AuthorVector(%v) = %v, want %v", perm, got.Vector, first.Vector)
		}
	}
}

func TestBuildAuthorVectors_DegenerateAuthor(t *testing.T) {
	src := newTestSource().
		add("A", "mountain").
		add("D", "unknown_token")

	_, err := BuildAuthorVectors(src, mountainRiver())
	if !errors.Is(err, ErrDegenerateAuthorVector) {
		t.Fatalf("error = %v, want ErrDegenerateAuthorVector", err)
	}

	var ae *AuthorError
	if !errors.As(err, &ae) {
		t.Fatalf("error %v is not an *AuthorError", err)
	}
	if ae.Author != "D" {
		t.Errorf("Author = %q, want %q", ae.Author, "D")
	}
}

func TestBuildAuthorVectors_EmptyTokenSequence(t *testing.T) {
	src := newTestSource().add("E")

	_, err := BuildAuthorVectors(src, mountainRiver())
	if !errors.Is(err, ErrDegenerateAuthorVector) {
		t.Fatalf("error = %v, want ErrDegenerateAuthorVector", err)
	}
}

func TestBuilder_SkipDegenerate(t *testing.T) {
	src := newTestSource().
		add("A", "mountain").
		add("D", "unknown_token").
		add("B", "river")

	b := NewBuilder(mountainRiver())
	b.SkipDegenerate = true

	store, skipped, err := b.Build(src)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !reflect.DeepEqual(skipped, []string{"D"}) {
		t.Errorf("skipped = %v, want [D]", skipped)
	}
	if !reflect.DeepEqual(store.Authors(), []string{"A", "B"}) {
		t.Errorf("Authors() = %v, want [A B]", store.Authors())
	}
}

func TestBuildAuthorVectors_LookupDimensionMismatch(t *testing.T) {
	lookup := &mapLookup{
		dim: 2,
		vectors: map[string][]float64{
			"mountain": {1, 0},
			"broken":   {1, 0, 0},
		},
	}
	src := newTestSource().add("A", "mountain", "broken")

	_, err := BuildAuthorVectors(src, lookup)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("error = %v, want ErrDimensionMismatch", err)
	}
}

func TestBuildAuthorVectors_DoesNotMutateInput(t *testing.T) {
	src := newTestSource().add("A", " mountain ", "river")
	before := append([]string(nil), src.Tokens("A")...)

	if _, err := BuildAuthorVectors(src, mountainRiver()); err != nil {
		t.Fatalf("BuildAuthorVectors() error = %v", err)
	}
	if !reflect.DeepEqual(src.Tokens("A"), before) {
		t.Errorf("tokens mutated: %v, want %v", src.Tokens("A"), before)
	}
}
