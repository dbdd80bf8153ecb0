package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/harukisb/raidloot/internal/config"
	"github.com/harukisb/raidloot/pkg/core/model"
	"github.com/harukisb/raidloot/pkg/db"
)

// RosterEntry pairs a position with its player for display.
type RosterEntry struct {
	Position model.Position
	Player   model.Player
}

// ListRoster returns the tier roster in display order.
func ListRoster(ctx context.Context, database db.Database, cfg *config.Config, logger *zap.Logger) ([]RosterEntry, error) {
	snapshot, err := LoadSnapshot(ctx, database, cfg.RaidTierID, logger)
	if err != nil {
		return nil, err
	}

	entries := make([]RosterEntry, 0, len(snapshot.Roster))
	for _, pos := range model.Positions() {
		entries = append(entries, RosterEntry{Position: pos, Player: snapshot.Roster[pos]})
	}

	return entries, nil
}
