// ABOUTME: Error kinds reported by vector aggregation and similarity queries
// ABOUTME: Sentinels match with errors.Is, AuthorError carries the author name
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateAuthorVector means an author has no in-vocabulary tokens
	ErrDegenerateAuthorVector = errors.New("author has no in-vocabulary tokens")
	// ErrDegenerateVector means a stored author vector has zero norm
	ErrDegenerateVector = errors.New("author vector has zero norm")
	// ErrUnknownAuthor means the queried author is not in the store
	ErrUnknownAuthor = errors.New("unknown author")
	// ErrNoCandidates means the store holds fewer than two authors
	ErrNoCandidates = errors.New("fewer than two authors to compare")
	// ErrDimensionMismatch means vectors disagree on dimension
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrDuplicateAuthor means an author appears twice in one store
	ErrDuplicateAuthor = errors.New("duplicate author")
)

// AuthorError ties one of the sentinel errors to the author it concerns
type AuthorError struct {
	Author string
	Err    error
}

func (e *AuthorError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Author)
}

func (e *AuthorError) Unwrap() error {
	return e.Err
}

func authorError(author string, err error) error {
	return &AuthorError{Author: author, Err: err}
}
