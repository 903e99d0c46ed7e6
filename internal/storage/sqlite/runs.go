// ABOUTME: Run and author vector persistence for SQLite
// ABOUTME: Stores vectors as little-endian float64 BLOBs and restores insertion order
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/harper/poetsim/internal/models"
)

// RunStore handles cached run persistence
type RunStore struct {
	db *DB
}

// NewRunStore creates a new RunStore
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db}
}

// Save replaces any run stored under the same fingerprint
func (s *RunStore) Save(run *models.CachedRun) error {
	for i := range run.Vectors {
		if err := run.Vectors[i].ValidateDimension(run.Run.Dimension); err != nil {
			return err
		}
	}

	skipped, err := json.Marshal(run.Run.Skipped)
	if err != nil {
		return fmt.Errorf("failed to marshal skipped authors: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM runs WHERE fingerprint = ?", run.Run.Fingerprint); err != nil {
		return fmt.Errorf("failed to replace run: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO runs (fingerprint, run_id, method, dimension, author_count, skipped, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.Run.Fingerprint, run.Run.RunID, run.Run.Method, run.Run.Dimension,
		len(run.Vectors), string(skipped), run.Run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO author_vectors (fingerprint, ordinal, author, vector, token_count, oov_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare vector insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, av := range run.Vectors {
		if _, err := stmt.Exec(run.Run.Fingerprint, i, av.Author, vectorToBlob(av.Vector), av.TokenCount, av.OOVCount); err != nil {
			return fmt.Errorf("failed to insert vector for %q: %w", av.Author, err)
		}
	}

	return tx.Commit()
}

// Load returns the run stored under fingerprint, or nil if there is none
func (s *RunStore) Load(fingerprint string) (*models.CachedRun, error) {
	run, err := s.scanRun(s.db.QueryRow(`
		SELECT fingerprint, run_id, method, dimension, author_count, skipped, created_at
		FROM runs
		WHERE fingerprint = ?
	`, fingerprint))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT author, vector, token_count, oov_count
		FROM author_vectors
		WHERE fingerprint = ?
		ORDER BY ordinal ASC
	`, fingerprint)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cached := &models.CachedRun{Run: *run}
	for rows.Next() {
		var (
			av   models.AuthorVector
			blob []byte
		)
		if err := rows.Scan(&av.Author, &blob, &av.TokenCount, &av.OOVCount); err != nil {
			return nil, err
		}
		av.Vector = blobToVector(blob)
		cached.Vectors = append(cached.Vectors, av)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(cached.Vectors) != run.AuthorCount {
		return nil, fmt.Errorf("run %s is incomplete: %d of %d vectors", run.RunID, len(cached.Vectors), run.AuthorCount)
	}
	return cached, nil
}

// List returns run metadata, newest first
func (s *RunStore) List() ([]models.Run, error) {
	rows, err := s.db.Query(`
		SELECT fingerprint, run_id, method, dimension, author_count, skipped, created_at
		FROM runs
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []models.Run
	for rows.Next() {
		run, err := s.scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Delete removes one run and its vectors
func (s *RunStore) Delete(fingerprint string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE fingerprint = ?", fingerprint)
	return err
}

// Clear removes every run
func (s *RunStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM runs")
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *RunStore) scanRun(row scanner) (*models.Run, error) {
	var (
		run     models.Run
		skipped sql.NullString
	)
	if err := row.Scan(&run.Fingerprint, &run.RunID, &run.Method, &run.Dimension,
		&run.AuthorCount, &skipped, &run.CreatedAt); err != nil {
		return nil, err
	}
	if skipped.Valid && skipped.String != "" && skipped.String != "null" {
		if err := json.Unmarshal([]byte(skipped.String), &run.Skipped); err != nil {
			return nil, fmt.Errorf("failed to parse skipped authors: %w", err)
		}
	}
	return &run, nil
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}
