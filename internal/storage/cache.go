// ABOUTME: Result cache for computed author vectors keyed by fingerprint
// ABOUTME: Backends are SQLite, charm KV, or none
package storage

import (
	"fmt"

	"github.com/harper/poetsim/internal/charm"
	"github.com/harper/poetsim/internal/models"
	"github.com/harper/poetsim/internal/storage/sqlite"
)

// Cache backend names
const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
	BackendNone   = "none"
)

// Cache persists author vectors between runs. Load returns nil, nil on a miss.
type Cache interface {
	Load(fingerprint string) (*models.CachedRun, error)
	Save(run *models.CachedRun) error
	List() ([]models.Run, error)
	Clear() error
	Close() error
}

// Syncer is implemented by caches that replicate to a remote
type Syncer interface {
	Sync() error
}

// Account is implemented by caches tied to a remote user identity
type Account interface {
	ID() (string, error)
}

// Options selects and configures a cache backend
type Options struct {
	Backend string
	DataDir string
	Charm   *charm.Config
}

// Open returns the cache for opts.Backend
func Open(opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		dataDir := opts.DataDir
		if dataDir == "" {
			dataDir = sqlite.DefaultDataDir()
		}
		db, err := sqlite.Open(sqlite.DBPath(dataDir))
		if err != nil {
			return nil, err
		}
		return NewSQLiteCache(db), nil
	case BackendCharm:
		cfg := opts.Charm
		if cfg == nil {
			cfg = charm.DefaultConfig()
		}
		client, err := charm.GetClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewCharmCache(client), nil
	case BackendNone:
		return NopCache{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}

// SQLiteCache stores runs in a local SQLite database
type SQLiteCache struct {
	db   *sqlite.DB
	runs *sqlite.RunStore
}

// NewSQLiteCache wraps an open database
func NewSQLiteCache(db *sqlite.DB) *SQLiteCache {
	return &SQLiteCache{db: db, runs: sqlite.NewRunStore(db)}
}

func (c *SQLiteCache) Load(fingerprint string) (*models.CachedRun, error) {
	return c.runs.Load(fingerprint)
}

func (c *SQLiteCache) Save(run *models.CachedRun) error {
	return c.runs.Save(run)
}

func (c *SQLiteCache) List() ([]models.Run, error) {
	return c.runs.List()
}

func (c *SQLiteCache) Clear() error {
	return c.runs.Clear()
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// Path returns the database file path
func (c *SQLiteCache) Path() string {
	return c.db.Path()
}

// NopCache never stores anything
type NopCache struct{}

func (NopCache) Load(string) (*models.CachedRun, error) { return nil, nil }
func (NopCache) Save(*models.CachedRun) error { return nil }
func (NopCache) List() ([]models.Run, error) { return nil, nil }
func (NopCache) Clear() error { return nil }
func (NopCache) Close() error { return nil }
