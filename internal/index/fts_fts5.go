//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS papers_fts USING fts5(
			topic UNINDEXED,
			title,
			authors,
			journal,
			abstract,
			year UNINDEXED,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsClear(tx *sql.Tx) {
	_, _ = tx.Exec(`DELETE FROM papers_fts`)
}

func ftsInsert(tx *sql.Tx, r PaperRow) error {
	_, err := tx.Exec(`
		INSERT INTO papers_fts (topic, title, authors, journal, abstract, year)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.Topic, r.Title, r.Authors, r.Journal, r.Abstract, r.Year)
	if err != nil {
		return fmt.Errorf("index: insert fts: %w", err)
	}
	return nil
}

// Search performs an FTS5 full-text search and returns hits with snippets.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT topic,
		       title,
		       authors,
		       year,
		       snippet(papers_fts, 4, '<b>', '</b>', '...', 64)
		FROM papers_fts
		WHERE papers_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Topic, &r.Title, &r.Authors, &r.Year, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
