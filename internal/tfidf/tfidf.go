// ABOUTME: Builds author vectors from TF-IDF weighted term counts
// ABOUTME: Smoothed idf and L2-normalised rows, matching the usual scikit-learn defaults
package tfidf

import (
	"math"
	"sort"
	"strings"

	"github.com/harper/poetsim/internal/core"
	"github.com/harper/poetsim/internal/models"
	"gonum.org/v1/gonum/mat"
)

// Options controls how the document-term matrix is built
type Options struct {
	// MinDF drops terms that appear for fewer authors than this
	MinDF int
	// SkipDegenerate drops authors with no remaining terms
	SkipDegenerate bool
}

// Build returns one TF-IDF vector per author, with the vocabulary as the
// vector space. Every author is one document.
func Build(src core.TokenSource, opts Options) (*core.Store, []string, error) {
	authors := src.Authors()

	counts := make([]map[string]int, len(authors))
	df := make(map[string]int)
	for i, author := range authors {
		counts[i] = make(map[string]int)
		for _, raw := range src.Tokens(author) {
			if tok := strings.TrimSpace(raw); tok != "" {
				counts[i][tok]++
			}
		}
		for tok := range counts[i] {
			df[tok]++
		}
	}

	vocab := make([]string, 0, len(df))
	for tok, n := range df {
		if n >= opts.MinDF {
			vocab = append(vocab, tok)
		}
	}
	sort.Strings(vocab)

	if len(vocab) == 0 {
		if len(authors) > 0 && !opts.SkipDegenerate {
			return nil, nil, &core.AuthorError{Author: authors[0], Err: core.ErrDegenerateAuthorVector}
		}
		store, err := core.NewStore(nil)
		return store, authors, err
	}

	column := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	n := float64(len(authors))
	for j, tok := range vocab {
		column[tok] = j
		idf[j] = math.Log((1+n)/(1+float64(df[tok]))) + 1
	}

	m := mat.NewDense(len(authors), len(vocab), nil)
	for i := range authors {
		for tok, c := range counts[i] {
			if j, ok := column[tok]; ok {
				m.Set(i, j, float64(c)*idf[j])
			}
		}
	}

	var (
		vectors []models.AuthorVector
		skipped []string
	)
	for i, author := range authors {
		row := m.RowView(i)
		norm := mat.Norm(row, 2)
		if norm == 0 {
			if opts.SkipDegenerate {
				skipped = append(skipped, author)
				continue
			}
			return nil, nil, &core.AuthorError{Author: author, Err: core.ErrDegenerateAuthorVector}
		}

		vec := make([]float64, len(vocab))
		for j := range vec {
			vec[j] = row.AtVec(j) / norm
		}

		inVocab, oov := 0, 0
		for tok, c := range counts[i] {
			if _, ok := column[tok]; ok {
				inVocab += c
			} else {
				oov += c
			}
		}

		vectors = append(vectors, models.AuthorVector{
			Author:     author,
			Vector:     vec,
			TokenCount: inVocab,
			OOVCount:   oov,
		})
	}

	store, err := core.NewStore(vectors)
	if err != nil {
		return nil, nil, err
	}
	return store, skipped, nil
}
