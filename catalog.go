package fbdecode

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/fbdecode/dump"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Catalog records converted dumps in an SQLite database, keyed by the SHA-1
// of the uncompressed dump.
type Catalog struct {
	db *sql.DB
}

// Entry is a single catalogued dump.
type Entry struct {
	ID      string
	Name    string
	SHA1    string
	Format  dump.Format
	Width   int
	Height  int
	Preview []byte
}

// NewCatalog opens or creates the catalog in file.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	// Workers share the catalog, serialise writers
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS dump (id TEXT PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, name TEXT NOT NULL, format INTEGER NOT NULL, width INTEGER, height INTEGER, preview BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add records e and returns its ID. If a dump with the same SHA-1 is already
// catalogued the existing ID is returned and nothing is changed.
func (c *Catalog) Add(e Entry) (string, error) {
	if _, err := c.db.Exec("INSERT OR IGNORE INTO dump (id, sha1, name, format, width, height, preview) VALUES (?, ?, ?, ?, ?, ?, ?)", uuid.New().String(), e.SHA1, e.Name, int(e.Format), e.Width, e.Height, e.Preview); err != nil {
		return "", err
	}

	var id string
	if err := c.db.QueryRow("SELECT id FROM dump WHERE sha1 = ?", e.SHA1).Scan(&id); err != nil {
		return "", err
	}

	return id, nil
}

const selectEntry = "SELECT id, name, sha1, format, width, height, preview FROM dump"

type scanner interface {
	Scan(...interface{}) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e             Entry
		format        int
		width, height sql.NullInt64
	)
	if err := s.Scan(&e.ID, &e.Name, &e.SHA1, &format, &width, &height, &e.Preview); err != nil {
		return e, err
	}
	e.Format = dump.Format(format)
	e.Width, e.Height = int(width.Int64), int(height.Int64)
	return e, nil
}

// FindBySHA1 returns the entry with the given SHA-1, or nil if there isn't
// one.
func (c *Catalog) FindBySHA1(sha string) (*Entry, error) {
	switch e, err := scanEntry(c.db.QueryRow(selectEntry+" WHERE sha1 = ?", sha)); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &e, nil
	default:
		return nil, err
	}
}

// List returns every entry ordered by name.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query(selectEntry + " ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
