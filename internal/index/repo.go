package index

import (
	"database/sql"
	"errors"
	"fmt"
)

// PaperRow is one indexed entry. Pos is the entry's insertion-order position
// within its topic.
type PaperRow struct {
	Topic    string
	Pos      int
	Title    string
	Authors  string
	Year     int
	Journal  string
	Abstract string
}

// SearchResult is one search hit.
type SearchResult struct {
	Topic   string `json:"topic"`
	Title   string `json:"title"`
	Authors string `json:"authors"`
	Year    int    `json:"year"`
	Snippet string `json:"snippet"`
}

const checksumKey = "store_checksum"

// ReplaceAll rebuilds the whole index from rows within one transaction and
// records the store checksum the rows were derived from.
func (db *DB) ReplaceAll(rows []PaperRow, checksum string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM papers`); err != nil {
		return fmt.Errorf("index: clear papers: %w", err)
	}
	ftsClear(tx)

	stmt, err := tx.Prepare(`
		INSERT INTO papers (topic, pos, title, authors, year, journal, abstract)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("index: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.Topic, r.Pos, r.Title, r.Authors, r.Year, r.Journal, r.Abstract); err != nil {
			return fmt.Errorf("index: insert paper: %w", err)
		}
		if err := ftsInsert(tx, r); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, checksumKey, checksum); err != nil {
		return fmt.Errorf("index: set checksum: %w", err)
	}

	return tx.Commit()
}

// Checksum returns the store checksum recorded by the last rebuild, or the
// empty string when the index has never been built.
func (db *DB) Checksum() (string, error) {
	var v string
	err := db.conn.QueryRow(`SELECT value FROM meta WHERE key = ?`, checksumKey).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: checksum: %w", err)
	}
	return v, nil
}

// ListPapers returns indexed entries, optionally filtered by topic, ordered
// by topic then position.
func (db *DB) ListPapers(topic string) ([]PaperRow, error) {
	query := `SELECT topic, pos, title, authors, year, journal, abstract FROM papers`
	args := []any{}
	if topic != "" {
		query += ` WHERE topic = ?`
		args = append(args, topic)
	}
	query += ` ORDER BY CAST(topic AS INTEGER), topic, pos`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("index: list papers: %w", err)
	}
	defer rows.Close()

	var out []PaperRow
	for rows.Next() {
		var r PaperRow
		if err := rows.Scan(&r.Topic, &r.Pos, &r.Title, &r.Authors, &r.Year, &r.Journal, &r.Abstract); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountPapers returns the number of indexed entries.
func (db *DB) CountPapers() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count: %w", err)
	}
	return n, nil
}
