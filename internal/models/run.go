// ABOUTME: Run describes one cached analysis result
// ABOUTME: Identifies author vectors by corpus/settings fingerprint
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Vectorisation methods
const (
	MethodWord2Vec = "word2vec"
	MethodTFIDF    = "tfidf"
)

// Run is the metadata of a stored set of author vectors
type Run struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	Fingerprint string    `json:"fingerprint" yaml:"fingerprint"`
	Method      string    `json:"method" yaml:"method"`
	Dimension   int       `json:"dimension" yaml:"dimension"`
	AuthorCount int       `json:"author_count" yaml:"author_count"`
	Skipped     []string  `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// CachedRun bundles a run with its vectors in insertion order
type CachedRun struct {
	Run     Run            `json:"run"`
	Vectors []AuthorVector `json:"vectors"`
}

// NewRun creates run metadata with a fresh ID
func NewRun(fingerprint, method string, dimension, authorCount int) *Run {
	return &Run{
		RunID:       generateRunID(),
		Fingerprint: fingerprint,
		Method:      method,
		Dimension:   dimension,
		AuthorCount: authorCount,
		CreatedAt:   time.Now(),
	}
}

func generateRunID() string {
	return fmt.Sprintf("run_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}

// IsValidMethod reports whether method names a supported vectorisation
func IsValidMethod(method string) bool {
	return method == MethodWord2Vec || method == MethodTFIDF
}
