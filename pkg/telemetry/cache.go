package telemetry

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const (
	CacheDbName = "openf1.db"
)

// Cache keeps raw API responses keyed by request URL in a sqlite database
// inside the cache directory. Entries never expire: race sessions that already
// happened don't change.
type Cache struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating cache dir %s", dir)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, CacheDbName))
	if err != nil {
		return nil, errors.Wrap(err, "opening cache database")
	}

	_, err = db.Exec(buildCreateResponsesTable())
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "init cache database")
	}

	return &Cache{
		db:  db,
		now: time.Now,
	}, nil
}

func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.db.Close()
}

func (c *Cache) Get(url string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	query, read := buildSelectResponseCommand()
	rows, err := c.db.Query(query, url)
	if err != nil {
		return nil, false, err
	}
	return read(rows)
}

func (c *Cache) Put(url string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(buildUpsertResponseCommand(), url, body, c.now().Unix())
	return err
}
