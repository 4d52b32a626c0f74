package index

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"

	"github.com/zyho/litkeep/internal/models"
	"github.com/zyho/litkeep/internal/store"
)

// Sync rebuilds the index from the store. The store is small enough that a
// full rebuild is simpler than diffing; the rebuild is skipped when the
// store content checksum matches the one recorded at the last sync.
func Sync(db *DB, st *store.Store, logger *slog.Logger) error {
	snap := st.Snapshot()
	cs, err := snapshotChecksum(snap)
	if err != nil {
		return err
	}

	prev, err := db.Checksum()
	if err != nil {
		return err
	}
	if prev == cs {
		logger.Debug("index: up to date", slog.String("checksum", cs))
		return nil
	}

	rows := Flatten(snap)
	if err := db.ReplaceAll(rows, cs); err != nil {
		return err
	}
	logger.Debug("index: rebuilt", slog.Int("papers", len(rows)))
	return nil
}

// Flatten converts the store mapping into rows, topics in ascending numeric
// order and entries in insertion order.
func Flatten(data map[string][]models.Paper) []PaperRow {
	ids := make([]string, 0, len(data))
	for id := range data {
		ids = append(ids, id)
	}
	store.SortTopicIDs(ids)

	var rows []PaperRow
	for _, id := range ids {
		for pos, p := range data[id] {
			rows = append(rows, PaperRow{
				Topic:    id,
				Pos:      pos,
				Title:    p.Title,
				Authors:  p.Authors,
				Year:     p.Year,
				Journal:  p.Journal,
				Abstract: p.Abstract,
			})
		}
	}
	return rows
}

// snapshotChecksum hashes the canonical JSON form of the snapshot. Map keys
// are sorted by encoding/json, so equal content hashes equally.
func snapshotChecksum(data map[string][]models.Paper) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
