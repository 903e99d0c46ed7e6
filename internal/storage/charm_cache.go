// ABOUTME: Run cache backed by charm KV for cloud-synced results
// ABOUTME: Each run is one JSON document under run:<fingerprint>
package storage

import (
	"fmt"
	"sort"

	"github.com/harper/poetsim/internal/charm"
	"github.com/harper/poetsim/internal/models"
)

// kvStore is the part of the charm client the cache needs
type kvStore interface {
	SetJSON(key string, value any) error
	GetJSON(key string, dest any) (bool, error)
	Delete(key string) error
	ListKeys(prefix string) ([]string, error)
	Sync() error
	ID() (string, error)
	Close() error
}

// CharmCache manages cached runs using Charm KV
type CharmCache struct {
	kv kvStore
}

// NewCharmCache creates a cache over an open charm client
func NewCharmCache(client *charm.Client) *CharmCache {
	return &CharmCache{kv: client}
}

// Load returns the run stored under fingerprint, or nil if there is none
func (c *CharmCache) Load(fingerprint string) (*models.CachedRun, error) {
	var run models.CachedRun
	found, err := c.kv.GetJSON(charm.RunKey(fingerprint), &run)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached run: %w", err)
	}
	if !found {
		return nil, nil
	}

	for i := range run.Vectors {
		if err := run.Vectors[i].ValidateDimension(run.Run.Dimension); err != nil {
			return nil, fmt.Errorf("cached run %s is corrupt: %w", run.Run.RunID, err)
		}
	}
	return &run, nil
}

// Save stores run under its fingerprint, replacing any earlier run
func (c *CharmCache) Save(run *models.CachedRun) error {
	for i := range run.Vectors {
		if err := run.Vectors[i].ValidateDimension(run.Run.Dimension); err != nil {
			return err
		}
	}
	return c.kv.SetJSON(charm.RunKey(run.Run.Fingerprint), run)
}

// List returns run metadata, newest first
func (c *CharmCache) List() ([]models.Run, error) {
	keys, err := c.kv.ListKeys(charm.RunPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list run keys: %w", err)
	}

	var runs []models.Run
	for _, key := range keys {
		var run models.CachedRun
		found, err := c.kv.GetJSON(key, &run)
		if err != nil || !found {
			continue
		}
		runs = append(runs, run.Run)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}

// Clear deletes every cached run
func (c *CharmCache) Clear() error {
	keys, err := c.kv.ListKeys(charm.RunPrefix)
	if err != nil {
		return fmt.Errorf("failed to list run keys: %w", err)
	}
	for _, key := range keys {
		if err := c.kv.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// Sync pushes and pulls runs with the charm server
func (c *CharmCache) Sync() error {
	return c.kv.Sync()
}

// ID returns the charm account the runs sync to
func (c *CharmCache) ID() (string, error) {
	return c.kv.ID()
}

// Close closes the underlying KV store
func (c *CharmCache) Close() error {
	return c.kv.Close()
}
