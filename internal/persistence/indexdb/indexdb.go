// Package indexdb keeps a small sqlite index of written snapshots so the
// server can find the latest one at boot. It is a secondary read model: losing
// it never loses a session, only the lookup.
package indexdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Index struct {
	db *sql.DB
}

type SnapshotRow struct {
	Tick       uint64
	Path       string
	Money      uint64
	Exported   uint64
	RecordedAt string
}

func Open(path string) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// WAL suits the append-only write pattern.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma: %w", err)
		}
	}

	schema := `
CREATE TABLE IF NOT EXISTS snapshots (
	tick        INTEGER NOT NULL,
	path        TEXT    NOT NULL,
	money       INTEGER NOT NULL,
	exported    INTEGER NOT NULL,
	recorded_at TEXT    NOT NULL,
	PRIMARY KEY (tick)
);
`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}
	return &Index{db: db}, nil
}

// RecordSnapshot upserts the index row for a written snapshot.
func (ix *Index) RecordSnapshot(tick uint64, path string, money, exported uint64) error {
	_, err := ix.db.Exec(
		`INSERT INTO snapshots (tick, path, money, exported, recorded_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(tick) DO UPDATE SET
		   path=excluded.path, money=excluded.money,
		   exported=excluded.exported, recorded_at=excluded.recorded_at`,
		int64(tick), path, int64(money), int64(exported),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// LatestSnapshot returns the highest-tick snapshot on record, if any.
func (ix *Index) LatestSnapshot() (SnapshotRow, bool, error) {
	row := ix.db.QueryRow(
		`SELECT tick, path, money, exported, recorded_at
		 FROM snapshots ORDER BY tick DESC LIMIT 1`)
	var r SnapshotRow
	var tick, money, exported int64
	err := row.Scan(&tick, &r.Path, &money, &exported, &r.RecordedAt)
	if err == sql.ErrNoRows {
		return SnapshotRow{}, false, nil
	}
	if err != nil {
		return SnapshotRow{}, false, err
	}
	r.Tick = uint64(tick)
	r.Money = uint64(money)
	r.Exported = uint64(exported)
	return r, true, nil
}

func (ix *Index) Close() error {
	return ix.db.Close()
}
