package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/harukisb/raidloot/pkg/core/model"
	"github.com/harukisb/raidloot/pkg/db"
)

// Snapshot is the immutable state a layer computation reasons over. It is
// read in full before the computation begins and never refreshed mid-run;
// after a confirmation the caller discards it and loads a fresh one.
type Snapshot struct {
	Roster  model.Roster
	History model.History
}

// LoadSnapshot reads the roster and allocation history of a raid tier.
func LoadSnapshot(ctx context.Context, database db.Database, tierID string, logger *zap.Logger) (*Snapshot, error) {
	logger.Debug("Loading roster snapshot", zap.String("tier_id", tierID))

	members, err := database.GetMembers(ctx, tierID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster members: %w", err)
	}

	policies, err := database.GetPolicies(ctx, tierID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member policies: %w", err)
	}

	roster, err := buildRoster(members, policies)
	if err != nil {
		return nil, err
	}

	allocations, err := database.GetAllocations(ctx, tierID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allocation history: %w", err)
	}

	history, err := buildHistory(allocations)
	if err != nil {
		return nil, err
	}

	logger.Debug("Snapshot loaded",
		zap.Int("members", len(members)),
		zap.Int("policies", len(policies)),
		zap.Int("allocations", len(allocations)))

	return &Snapshot{Roster: roster, History: history}, nil
}

// buildRoster converts database member and policy records into the typed
// roster, failing fast on shape errors.
func buildRoster(members []db.Member, policies []db.Policy) (model.Roster, error) {
	roster := make(model.Roster, len(members))

	for _, m := range members {
		pos := model.Position(m.Position)
		if !pos.IsValid() {
			return nil, fmt.Errorf("unknown roster position %q", m.Position)
		}
		if _, dup := roster[pos]; dup {
			return nil, fmt.Errorf("duplicate roster position %s", pos)
		}

		player := model.Player{
			Name:            m.Name,
			Job:             model.Job(m.Job),
			Policies:        make(map[model.Slot]model.Policy),
			DynamicPriority: m.DynamicPriority,
		}
		if m.Wish1 != "" {
			player.WeaponWishes = append(player.WeaponWishes, model.Job(m.Wish1))
		}
		if m.Wish2 != "" {
			player.WeaponWishes = append(player.WeaponWishes, model.Job(m.Wish2))
		}

		roster[pos] = player
	}

	for _, p := range policies {
		pos := model.Position(p.Position)
		player, ok := roster[pos]
		if !ok {
			return nil, fmt.Errorf("policy references unknown position %q", p.Position)
		}
		slot := model.Slot(p.Slot)
		if !slot.IsValid() {
			return nil, fmt.Errorf("policy for position %s references unknown slot %q", pos, p.Slot)
		}
		policy := model.Policy(p.Policy)
		if !policy.IsValid() {
			return nil, fmt.Errorf("unknown policy %q for position %s slot %s", p.Policy, pos, slot)
		}
		player.Policies[slot] = policy
		roster[pos] = player
	}

	if err := roster.Validate(); err != nil {
		return nil, err
	}

	return roster, nil
}

// buildHistory converts database allocation records into the typed history.
func buildHistory(allocations []db.Allocation) (model.History, error) {
	history := make(model.History, 0, len(allocations))

	for _, a := range allocations {
		pos := model.Position(a.Position)
		if !pos.IsValid() {
			return nil, fmt.Errorf("allocation %s references unknown position %q", a.ID, a.Position)
		}
		slot := model.Slot(a.Slot)
		if !slot.IsValid() {
			return nil, fmt.Errorf("allocation %s references unknown slot %q", a.ID, a.Slot)
		}
		status, err := model.ParseStatus(a.Status, slot)
		if err != nil {
			return nil, fmt.Errorf("allocation %s: %w", a.ID, err)
		}

		history = append(history, model.AllocationRecord{
			Position:  pos,
			Slot:      slot,
			Status:    status,
			Layer:     a.Layer,
			Week:      a.Week,
			Weapon:    model.Job(a.Weapon),
			Timestamp: a.CreatedAt,
		})
	}

	return history, nil
}

// toDBAllocation converts a model record back into its database shape.
func toDBAllocation(id, tierID string, rec model.AllocationRecord) db.Allocation {
	return db.Allocation{
		ID:        id,
		TierID:    tierID,
		Position:  string(rec.Position),
		Slot:      string(rec.Slot),
		Status:    string(rec.Status),
		Layer:     rec.Layer,
		Week:      rec.Week,
		Weapon:    string(rec.Weapon),
		CreatedAt: rec.Timestamp,
	}
}

// isoTimestamp formats a confirmation time the way records are displayed.
func isoTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
