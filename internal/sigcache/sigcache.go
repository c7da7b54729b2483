// Package sigcache persists assembled document bodies across runs, keyed by
// guid and content signature.
//
// The core's signatures make staleness detection trivial: a body is
// unchanged exactly when its (guid, signature) pair was seen on a previous
// run. No timestamps and no locking are involved. Stored blobs carry a
// BLAKE3 digest so corruption is detected on read.
package sigcache

import (
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/blueprint/core/encoding"
	"github.com/FocuswithJustin/blueprint/core/errors"
	"github.com/FocuswithJustin/blueprint/core/plan"
	"github.com/FocuswithJustin/blueprint/core/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS bodies (
	guid       TEXT NOT NULL,
	signature  TEXT NOT NULL,
	blake3     TEXT NOT NULL,
	body       BLOB NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY (guid, signature)
);
CREATE TABLE IF NOT EXISTS latest (
	guid      TEXT PRIMARY KEY,
	signature TEXT NOT NULL
);
`

// Cache is a persistent store of previously-emitted bodies.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if needed) a cache database at the given path.
func Open(path string) (*Cache, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open cache database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize cache schema")
	}
	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// blake3Hex computes the BLAKE3 digest of data as a hex string.
func blake3Hex(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Put stores one encoded body under its guid and signature. Storing the
// same pair again is a no-op.
func (c *Cache) Put(guid, signature string, body []byte) error {
	if guid == "" || signature == "" {
		return errors.NewValidation("cache key", "guid and signature must not be empty")
	}
	_, err := c.db.Exec(
		`INSERT OR IGNORE INTO bodies (guid, signature, blake3, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		guid, signature, blake3Hex(body), body, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return errors.Wrap(err, "failed to store body")
	}
	_, err = c.db.Exec(
		`INSERT INTO latest (guid, signature) VALUES (?, ?)
		 ON CONFLICT(guid) DO UPDATE SET signature = excluded.signature`,
		guid, signature)
	return errors.Wrap(err, "failed to update latest signature")
}

// Get retrieves a stored body and verifies its BLAKE3 digest.
func (c *Cache) Get(guid, signature string) ([]byte, error) {
	var digest string
	var body []byte
	err := c.db.QueryRow(
		`SELECT blake3, body FROM bodies WHERE guid = ? AND signature = ?`,
		guid, signature).Scan(&digest, &body)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("cache entry", guid)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read body")
	}
	if blake3Hex(body) != digest {
		return nil, errors.NewValidation("cache entry", "stored body does not match its digest")
	}
	return body, nil
}

// Has reports whether the (guid, signature) pair is already stored.
func (c *Cache) Has(guid, signature string) (bool, error) {
	var one int
	err := c.db.QueryRow(
		`SELECT 1 FROM bodies WHERE guid = ? AND signature = ?`,
		guid, signature).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to query cache")
	}
	return true, nil
}

// LatestSignature returns the most recently recorded signature for a guid.
func (c *Cache) LatestSignature(guid string) (string, error) {
	var sig string
	err := c.db.QueryRow(`SELECT signature FROM latest WHERE guid = ?`, guid).Scan(&sig)
	if err == sql.ErrNoRows {
		return "", errors.NewNotFound("cache entry", guid)
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to query latest signature")
	}
	return sig, nil
}

// Stats summarizes a Record pass over one assembled document.
type Stats struct {
	New       int      // bodies never seen before
	Updated   int      // bodies whose signature changed since the last run
	Unchanged int      // bodies identical to the last run
	Changed   []string // guids of new and updated bodies, in document order
}

// Record stores every body of a document and classifies each against the
// previous run. Consumers can restrict re-parsing to the returned changed
// guids.
func (c *Cache) Record(doc plan.Document) (Stats, error) {
	var stats Stats
	for _, b := range doc {
		prev, err := c.LatestSignature(b.GUID)
		switch {
		case errors.Is(err, errors.ErrNotFound):
			stats.New++
			stats.Changed = append(stats.Changed, b.GUID)
		case err != nil:
			return Stats{}, err
		case prev == b.Signature:
			stats.Unchanged++
		default:
			stats.Updated++
			stats.Changed = append(stats.Changed, b.GUID)
		}

		data, err := encoding.Marshal(b)
		if err != nil {
			return Stats{}, errors.NewEncode("canonical marshal", "", err)
		}
		if err := c.Put(b.GUID, b.Signature, data); err != nil {
			return Stats{}, err
		}
	}
	return stats, nil
}
