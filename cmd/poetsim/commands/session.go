// ABOUTME: Shared corpus flags and session setup for corpus commands
// ABOUTME: Loads config, corpus, cache and embedder, then opens a session
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/poetsim/internal/config"
	"github.com/harper/poetsim/internal/corpus"
	"github.com/harper/poetsim/internal/llm"
	"github.com/harper/poetsim/internal/models"
	"github.com/harper/poetsim/internal/session"
	"github.com/harper/poetsim/internal/storage"
)

// corpusFlags are the options every corpus command accepts
type corpusFlags struct {
	segment        bool
	method         string
	skipDegenerate bool
	noCache        bool
}

func (f *corpusFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.segment, "segment", false, "Segment raw Chinese text with gse instead of splitting on whitespace")
	cmd.Flags().StringVar(&f.method, "method", "", "Vectorisation method: word2vec or tfidf (default from POETSIM_METHOD)")
	cmd.Flags().BoolVar(&f.skipDegenerate, "skip-degenerate", false, "Drop authors with no in-vocabulary tokens instead of failing")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "Do not read or write the result cache")
}

// openSession builds or restores the vectors for the corpus at path.
// The caller must close the returned cache.
func openSession(cmd *cobra.Command, path string, flags *corpusFlags) (*session.Session, storage.Cache, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if flags.method != "" {
		cfg.Method = flags.method
		if err := cfg.Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	var loadOpts corpus.LoadOptions
	if flags.segment {
		seg, err := corpus.NewGSESegmenter(true)
		if err != nil {
			return nil, nil, err
		}
		loadOpts.Segmenter = seg
	}

	c, err := corpus.Load(path, loadOpts)
	if err != nil {
		return nil, nil, err
	}
	if c.Len() == 0 {
		return nil, nil, fmt.Errorf("corpus %s has no authors", path)
	}

	var cache storage.Cache = storage.NopCache{}
	if !flags.noCache {
		cache, err = storage.Open(cfg.CacheOptions())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open cache: %w", err)
		}
	}

	sc := session.Config{
		Options: cfg.SessionOptions(),
		Cache:   cache,
		Logger:  logger,
	}
	sc.Options.SkipDegenerate = flags.skipDegenerate

	if cfg.Method == models.MethodWord2Vec && cfg.Embedder == session.EmbedderOpenAI {
		client, err := llm.NewOpenAIClientWithConfig(cfg.LLMConfig())
		if err != nil {
			_ = cache.Close()
			return nil, nil, err
		}
		sc.Remote = client
	}

	s, err := session.Open(cmd.Context(), c, sc)
	if err != nil {
		_ = cache.Close()
		return nil, nil, err
	}
	return s, cache, nil
}
