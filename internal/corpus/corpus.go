// ABOUTME: Corpus is the ordered author to token sequence mapping fed to the builder
// ABOUTME: Keeps authors in first-appearance order and fingerprints its content
package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Corpus holds pre-tokenized poetry grouped by author
type Corpus struct {
	authors []string
	tokens  map[string][]string
}

// New creates an empty corpus
func New() *Corpus {
	return &Corpus{tokens: make(map[string][]string)}
}

// Add appends tokens to an author's sequence. New authors are appended to
// the author order; blank tokens are dropped.
func (c *Corpus) Add(author string, tokens ...string) {
	if _, ok := c.tokens[author]; !ok {
		c.authors = append(c.authors, author)
		c.tokens[author] = nil
	}
	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		c.tokens[author] = append(c.tokens[author], tok)
	}
}

// AddText splits whitespace separated text and appends it to an author
func (c *Corpus) AddText(author, text string) {
	c.Add(author, strings.Fields(text)...)
}

// Authors returns author names in first-appearance order
func (c *Corpus) Authors() []string {
	out := make([]string, len(c.authors))
	copy(out, c.authors)
	return out
}

// Tokens returns a copy of the author's token sequence
func (c *Corpus) Tokens(author string) []string {
	toks := c.tokens[author]
	out := make([]string, len(toks))
	copy(out, toks)
	return out
}

// Len returns the number of authors
func (c *Corpus) Len() int {
	return len(c.authors)
}

// TokenCount returns the total number of tokens across all authors
func (c *Corpus) TokenCount() int {
	n := 0
	for _, toks := range c.tokens {
		n += len(toks)
	}
	return n
}

// Documents returns one space-joined line per author, in author order.
// This is the training text for the embedding model.
func (c *Corpus) Documents() []string {
	docs := make([]string, len(c.authors))
	for i, author := range c.authors {
		docs[i] = strings.Join(c.tokens[author], " ")
	}
	return docs
}

// Fingerprint hashes authors and tokens in order
func (c *Corpus) Fingerprint() string {
	h := sha256.New()
	for _, author := range c.authors {
		h.Write([]byte(author))
		h.Write([]byte{0})
		for _, tok := range c.tokens[author] {
			h.Write([]byte(tok))
			h.Write([]byte{' '})
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
