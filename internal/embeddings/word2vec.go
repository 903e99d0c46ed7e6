// ABOUTME: Trains a word2vec vocabulary over a corpus using ynqa/wego
// ABOUTME: Round-trips the trained model through wego's text format into a MapLookup
package embeddings

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/ynqa/wego/pkg/embedding"
	"github.com/ynqa/wego/pkg/model/modelutil/vector"
	"github.com/ynqa/wego/pkg/model/word2vec"
)

// Model architectures accepted by TrainOptions.Model
const (
	ModelSkipGram = "skipgram"
	ModelCBOW     = "cbow"
)

// TrainOptions configures word2vec training
type TrainOptions struct {
	Dim      int
	MinCount int
	Window   int
	Iter     int
	Workers  int
	Model    string
	Verbose  bool
}

// DefaultTrainOptions mirrors the reference poetry model: 400 dimensions,
// min count 5, window 5
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		Dim:      400,
		MinCount: 5,
		Window:   5,
		Iter:     5,
		Workers:  runtime.NumCPU(),
		Model:    ModelSkipGram,
	}
}

func (o TrainOptions) wego() (word2vec.Options, error) {
	if o.Dim <= 0 {
		return word2vec.Options{}, fmt.Errorf("dimension must be positive, got %d", o.Dim)
	}
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	opts := word2vec.Options{
		BatchSize:          1024,
		Dim:                o.Dim,
		DocInMemory:        true,
		Goroutines:         workers,
		Initlr:             0.025,
		Iter:               o.Iter,
		LogBatch:           100000,
		MaxCount:           -1,
		MaxDepth:           100,
		MinCount:           o.MinCount,
		MinLR:              0.0000025,
		NegativeSampleSize: 5,
		OptimizerType:      "ns",
		SubsampleThreshold: 0.001,
		ToLower:            false,
		UpdateLRBatch:      100000,
		Verbose:            o.Verbose,
		Window:             o.Window,
	}

	switch o.Model {
	case ModelSkipGram, "":
		opts.ModelType = "skipgram"
	case ModelCBOW:
		opts.ModelType = "cbow"
	default:
		return word2vec.Options{}, fmt.Errorf("unknown word2vec model %q (want %s or %s)", o.Model, ModelSkipGram, ModelCBOW)
	}
	return opts, nil
}

// Train fits a word2vec model on docs, one document per line, and returns
// the learned vocabulary. Tokens below MinCount are not in the result.
func Train(ctx context.Context, docs []string, opts TrainOptions) (*MapLookup, error) {
	wopts, err := opts.wego()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model, err := word2vec.NewForOptions(wopts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize word2vec: %w", err)
	}

	text := strings.Join(docs, "\n")
	if err := model.Train(strings.NewReader(text)); err != nil {
		return nil, fmt.Errorf("failed to train word2vec: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := model.Save(&buf, vector.Single); err != nil {
		return nil, fmt.Errorf("failed to export word vectors: %w", err)
	}

	embs, err := embedding.Load(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to read word vectors: %w", err)
	}
	if len(embs) == 0 {
		return nil, fmt.Errorf("word2vec produced an empty vocabulary (min count %d)", opts.MinCount)
	}
	return FromEmbeddings(embs)
}
