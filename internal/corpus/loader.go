// ABOUTME: Corpus loaders for TSV and YAML files
// ABOUTME: Optionally segments raw Chinese text into tokens before loading
package corpus

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Segmenter splits raw text into tokens
type Segmenter interface {
	Cut(text string) []string
}

// LoadOptions configures corpus loading
type LoadOptions struct {
	// Segmenter, when set, tokenizes each text instead of splitting on whitespace
	Segmenter Segmenter
}

// Load reads a corpus file, choosing the format by extension:
// .yaml/.yml as YAML, anything else as TSV.
func Load(path string, opts LoadOptions) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data, opts)
	default:
		return ParseTSV(bytes.NewReader(data), opts)
	}
}

// ParseTSV reads lines of "author<TAB>text". Repeated authors are
// concatenated in line order; blank lines and # comments are skipped.
func ParseTSV(r io.Reader, opts LoadOptions) (*Corpus, error) {
	c := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		author, text, ok := strings.Cut(line, "\t")
		author = strings.TrimSpace(author)
		if !ok || author == "" {
			return nil, fmt.Errorf("line %d: expected author<TAB>text", lineNo)
		}

		c.Add(author, tokenize(text, opts)...)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan corpus: %w", err)
	}
	return c, nil
}

// ParseYAML reads a mapping of author to text or list of texts.
// Mapping order is kept as author order.
func ParseYAML(data []byte, opts LoadOptions) (*Corpus, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML corpus: %w", err)
	}

	c := New()
	if len(doc.Content) == 0 {
		return c, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("YAML corpus must be a mapping of author to text, line %d", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		author := strings.TrimSpace(key.Value)
		if author == "" {
			return nil, fmt.Errorf("line %d: empty author name", key.Line)
		}

		c.Add(author)
		switch val.Kind {
		case yaml.ScalarNode:
			c.Add(author, tokenize(val.Value, opts)...)
		case yaml.SequenceNode:
			for _, item := range val.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("line %d: poems for %q must be strings", item.Line, author)
				}
				c.Add(author, tokenize(item.Value, opts)...)
			}
		default:
			return nil, fmt.Errorf("line %d: unsupported value for %q", val.Line, author)
		}
	}

	return c, nil
}

func tokenize(text string, opts LoadOptions) []string {
	if opts.Segmenter != nil {
		return opts.Segmenter.Cut(text)
	}
	return strings.Fields(text)
}
