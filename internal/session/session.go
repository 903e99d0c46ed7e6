// ABOUTME: Session builds or restores the author vector store for one corpus
// ABOUTME: Chooses the embedder, consults the result cache and answers queries
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harper/poetsim/internal/core"
	"github.com/harper/poetsim/internal/corpus"
	"github.com/harper/poetsim/internal/embeddings"
	"github.com/harper/poetsim/internal/models"
	"github.com/harper/poetsim/internal/storage"
	"github.com/harper/poetsim/internal/tfidf"
)

// Embedder names
const (
	EmbedderWord2Vec   = "word2vec"
	EmbedderPretrained = "pretrained"
	EmbedderOpenAI     = "openai"
)

// Options are the settings that determine the vectors. They are part of
// the cache fingerprint.
type Options struct {
	Method         string
	Embedder       string
	Train          embeddings.TrainOptions
	VectorsPath    string
	SkipDegenerate bool

	// EmbeddingModel and BaseURL select the remote embedding model
	EmbeddingModel string
	BaseURL        string
}

// Config wires a session to its collaborators
type Config struct {
	Options Options

	// Cache stores computed vectors; nil disables caching
	Cache storage.Cache
	// Remote embeds tokens for the openai embedder
	Remote embeddings.Embedder
	// Lookup, when set, replaces whichever embedder Options names
	Lookup core.Lookup
	Logger *log.Logger
}

// Session holds the vectors for one corpus and answers similarity queries
type Session struct {
	corpus    *corpus.Corpus
	index     *core.Index
	run       models.Run
	fromCache bool
}

// Open returns a session for c, loading vectors from the cache when a run
// with the same fingerprint exists and computing them otherwise
func Open(ctx context.Context, c *corpus.Corpus, cfg Config) (*Session, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cache := cfg.Cache
	if cache == nil {
		cache = storage.NopCache{}
	}

	opts := cfg.Options
	if opts.Method == "" {
		opts.Method = models.MethodWord2Vec
	}
	if !models.IsValidMethod(opts.Method) {
		return nil, fmt.Errorf("unknown method %q", opts.Method)
	}

	fp := Fingerprint(c, opts)
	logger.Debug("corpus loaded", "authors", c.Len(), "tokens", c.TokenCount(), "fingerprint", fp[:12])

	cached, err := cache.Load(fp)
	if err != nil {
		logger.Warn("cache read failed, recomputing", "err", err)
	}
	if cached != nil {
		store, err := core.NewStore(cached.Vectors)
		if err == nil {
			logger.Info("cache hit", "run", cached.Run.RunID, "authors", store.Len())
			return &Session{corpus: c, index: core.NewIndex(store), run: cached.Run, fromCache: true}, nil
		}
		logger.Warn("cached run is invalid, recomputing", "run", cached.Run.RunID, "err", err)
	}

	logger.Info("cache miss, computing author vectors", "method", opts.Method)
	store, skipped, err := build(ctx, c, opts, cfg, logger)
	if err != nil {
		return nil, err
	}
	for _, author := range skipped {
		logger.Warn("dropped author without in-vocabulary tokens", "author", author)
	}

	run := models.NewRun(fp, opts.Method, store.Dimension(), store.Len())
	run.Skipped = skipped

	if err := cache.Save(&models.CachedRun{Run: *run, Vectors: store.Vectors()}); err != nil {
		logger.Warn("cache write failed", "err", err)
	} else {
		logger.Debug("cached run", "run", run.RunID)
	}

	return &Session{corpus: c, index: core.NewIndex(store), run: *run}, nil
}

func build(ctx context.Context, c *corpus.Corpus, opts Options, cfg Config, logger *log.Logger) (*core.Store, []string, error) {
	if opts.Method == models.MethodTFIDF {
		return tfidf.Build(c, tfidf.Options{SkipDegenerate: opts.SkipDegenerate})
	}

	lookup := cfg.Lookup
	if lookup == nil {
		var err error
		lookup, err = resolveLookup(ctx, c, opts, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
	}

	b := core.NewBuilder(lookup)
	b.SkipDegenerate = opts.SkipDegenerate
	return b.Build(c)
}

func resolveLookup(ctx context.Context, c *corpus.Corpus, opts Options, cfg Config, logger *log.Logger) (core.Lookup, error) {
	switch opts.Embedder {
	case EmbedderWord2Vec, "":
		logger.Info("training word2vec", "dim", opts.Train.Dim, "min_count", opts.Train.MinCount,
			"window", opts.Train.Window, "model", opts.Train.Model)
		lookup, err := embeddings.Train(ctx, c.Documents(), opts.Train)
		if err != nil {
			return nil, err
		}
		logger.Debug("trained vocabulary", "words", lookup.Len())
		return lookup, nil
	case EmbedderPretrained:
		logger.Info("loading pretrained vectors", "path", opts.VectorsPath)
		return embeddings.LoadPretrained(opts.VectorsPath)
	case EmbedderOpenAI:
		if cfg.Remote == nil {
			return nil, fmt.Errorf("openai embedder requires a remote client")
		}
		logger.Info("embedding vocabulary remotely", "tokens", len(embeddings.Vocabulary(c)))
		return embeddings.BuildRemoteLookup(ctx, cfg.Remote, c, embeddings.DefaultBatchSize)
	default:
		return nil, fmt.Errorf("unknown embedder %q", opts.Embedder)
	}
}

// Fingerprint identifies a corpus together with the settings that shape
// its vectors. Pretrained vectors are identified by path, size and
// modification time.
func Fingerprint(c *corpus.Corpus, opts Options) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "corpus=%s\nmethod=%s\nskip=%t\n", c.Fingerprint(), opts.Method, opts.SkipDegenerate)
	if opts.Method == models.MethodTFIDF {
		return hex.EncodeToString(h.Sum(nil))
	}

	_, _ = fmt.Fprintf(h, "embedder=%s\n", opts.Embedder)
	switch opts.Embedder {
	case EmbedderPretrained:
		_, _ = fmt.Fprintf(h, "vectors=%s\nstamp=%s\n", opts.VectorsPath, fileStamp(opts.VectorsPath))
	case EmbedderOpenAI:
		_, _ = fmt.Fprintf(h, "model=%s\nbase_url=%s\n", opts.EmbeddingModel, opts.BaseURL)
	default:
		t := opts.Train
		_, _ = fmt.Fprintf(h, "dim=%d\nmin=%d\nwindow=%d\niter=%d\nmodel=%s\n",
			t.Dim, t.MinCount, t.Window, t.Iter, t.Model)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func fileStamp(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "missing"
	}
	return fmt.Sprintf("%d/%d", info.Size(), info.ModTime().UnixNano())
}

// NearestAuthor returns the author closest in angle to author
func (s *Session) NearestAuthor(author string) (models.Neighbor, error) {
	return s.index.NearestAuthor(author)
}

// Rank returns up to limit neighbours of author, closest first
func (s *Session) Rank(author string, limit int) ([]models.Neighbor, error) {
	return s.index.Rank(author, limit)
}

// Angle returns the angular distance between two authors
func (s *Session) Angle(a, b string) (models.Neighbor, error) {
	return s.index.Angle(a, b)
}

// Authors returns the vectors in store order
func (s *Session) Authors() []models.AuthorVector {
	return s.index.Store().Vectors()
}

// Corpus returns the corpus the session was opened on
func (s *Session) Corpus() *corpus.Corpus {
	return s.corpus
}

// Run returns the metadata of the run backing this session
func (s *Session) Run() models.Run {
	return s.run
}

// FromCache reports whether the vectors were restored from the cache
func (s *Session) FromCache() bool {
	return s.fromCache
}
