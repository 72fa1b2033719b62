// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package artifacts persists operation artifacts for the CLI host: bodies
// on disk, YAML metadata sidecars, and a SQLite ledger of everything
// produced. The agent core stays request-scoped; only this host-side sink
// keeps anything around.
package artifacts

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nucleotide-agent/internal/agent"
	"github.com/pdiddy/nucleotide-agent/pkg/types"
)

const (
	bodiesDir   = "bodies"
	metadataDir = "metadata"
	indexDir    = "index"
	dbFile      = "artifacts.db"
)

// Store manages the artifact ledger and its on-disk bodies.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates the artifact ledger at dir/index/artifacts.db
// and the bodies/metadata directories next to it.
func NewStore(cfg types.ArtifactStoreConfig) (*Store, error) {
	for _, sub := range []string{bodiesDir, metadataDir, indexDir} {
		if err := os.MkdirAll(filepath.Join(cfg.Dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", sub, err)
		}
	}

	dbPath := filepath.Join(cfg.Dir, indexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: cfg.Dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS artifacts (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    mimetype    TEXT NOT NULL,
    description TEXT NOT NULL,
    body_path   TEXT,
    uris        TEXT,
    metadata    TEXT NOT NULL,
    created_at  TEXT NOT NULL
)`)
	return err
}

// Entry is one ledger row.
type Entry struct {
	ID          int64
	Mimetype    string
	Description string
	BodyPath    string
	URIs        []string
	Metadata    agent.Metadata
	CreatedAt   time.Time
}

// Save records an artifact in the ledger, writes its body (when inline)
// under bodies/, and drops a YAML sidecar under metadata/. It returns the
// ledger ID.
func (s *Store) Save(ctx context.Context, a agent.Artifact) (int64, error) {
	metaJSON, err := json.Marshal(a.Metadata)
	if err != nil {
		return 0, fmt.Errorf("marshaling metadata: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO artifacts (mimetype, description, body_path, uris, metadata, created_at)
		 VALUES (?, ?, '', ?, ?, ?)`,
		a.Mimetype, a.Description, strings.Join(a.URIs, "\n"), string(metaJSON),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("inserting artifact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading artifact id: %w", err)
	}

	slug := fmt.Sprintf("artifact-%d", id)

	if len(a.Content) > 0 {
		bodyPath := filepath.Join(s.dir, bodiesDir, slug+extFor(a.Mimetype))
		if err := writeFileAtomic(bodyPath, a.Content); err != nil {
			return 0, fmt.Errorf("writing artifact body: %w", err)
		}
		if _, err := s.db.ExecContext(ctx,
			`UPDATE artifacts SET body_path = ? WHERE id = ?`, bodyPath, id); err != nil {
			return 0, fmt.Errorf("recording body path: %w", err)
		}
	}

	if err := s.writeSidecar(slug, a); err != nil {
		return 0, err
	}
	return id, nil
}

// sidecar is the YAML metadata record written next to each artifact.
type sidecar struct {
	Mimetype    string         `yaml:"mimetype"`
	Description string         `yaml:"description"`
	URIs        []string       `yaml:"uris,omitempty"`
	Metadata    agent.Metadata `yaml:"metadata"`
}

func (s *Store) writeSidecar(slug string, a agent.Artifact) error {
	data, err := yaml.Marshal(sidecar{
		Mimetype:    a.Mimetype,
		Description: a.Description,
		URIs:        a.URIs,
		Metadata:    a.Metadata,
	})
	if err != nil {
		return fmt.Errorf("marshaling sidecar: %w", err)
	}
	path := filepath.Join(s.dir, metadataDir, slug+".yaml")
	return writeFileAtomic(path, data)
}

// List returns all ledger entries, oldest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mimetype, description, body_path, uris, metadata, created_at
		 FROM artifacts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying artifacts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var uris, metaJSON, created string
		if err := rows.Scan(&e.ID, &e.Mimetype, &e.Description, &e.BodyPath, &uris, &metaJSON, &created); err != nil {
			return nil, fmt.Errorf("scanning artifact row: %w", err)
		}
		if uris != "" {
			e.URIs = strings.Split(uris, "\n")
		}
		if err := json.Unmarshal([]byte(metaJSON), &e.Metadata); err != nil {
			return nil, fmt.Errorf("decoding metadata for artifact %d: %w", e.ID, err)
		}
		if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// writeFileAtomic writes data through a temp file and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".artifact-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing file: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func extFor(mimetype string) string {
	switch mimetype {
	case "application/json":
		return ".json"
	case "text/plain":
		return ".txt"
	default:
		return ".bin"
	}
}
