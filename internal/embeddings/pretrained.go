// ABOUTME: Loads pretrained word vectors in word2vec text format
// ABOUTME: Accepts files with or without the leading "count dimension" header
package embeddings

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ynqa/wego/pkg/embedding"
)

// LoadPretrained reads a word2vec text vector file from path
func LoadPretrained(path string) (*MapLookup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vectors: %w", err)
	}
	defer f.Close()

	return ReadPretrained(f)
}

// ReadPretrained parses word2vec text vectors. An optional first line of
// two integers is treated as a header and checked against the data.
func ReadPretrained(r io.Reader) (*MapLookup, error) {
	br := bufio.NewReader(r)

	first, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read vectors: %w", err)
	}

	headerDim := 0
	body := io.MultiReader(strings.NewReader(first), br)
	if dim, ok := parseHeader(first); ok {
		headerDim = dim
		body = br
	}

	embs, err := embedding.Load(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vectors: %w", err)
	}

	lookup, err := FromEmbeddings(embs)
	if err != nil {
		return nil, err
	}
	if headerDim != 0 && headerDim != lookup.Dimension() {
		return nil, fmt.Errorf("header declares dimension %d but vectors have %d", headerDim, lookup.Dimension())
	}
	return lookup, nil
}

func parseHeader(line string) (int, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, false
	}
	if _, err := strconv.Atoi(fields[0]); err != nil {
		return 0, false
	}
	dim, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, false
	}
	return dim, true
}
