package services

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/harukisb/raidloot/internal/config"
	"github.com/harukisb/raidloot/pkg/core/model"
	"github.com/harukisb/raidloot/pkg/db"
)

// HistoryEntry is one allocation history line prepared for display.
type HistoryEntry struct {
	Record    model.AllocationRecord
	Timestamp string
}

// ViewHistory returns the tier's allocation history, newest first,
// optionally filtered to one position.
func ViewHistory(ctx context.Context, database db.Database, cfg *config.Config, logger *zap.Logger, position model.Position) ([]HistoryEntry, error) {
	snapshot, err := LoadSnapshot(ctx, database, cfg.RaidTierID, logger)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(snapshot.History))
	for _, rec := range snapshot.History {
		if position != "" && rec.Position != position {
			continue
		}
		entries = append(entries, HistoryEntry{
			Record:    rec,
			Timestamp: isoTimestamp(rec.Timestamp),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Record.Timestamp.After(entries[j].Record.Timestamp)
	})

	logger.Debug("History loaded", zap.Int("entries", len(entries)))

	return entries, nil
}
