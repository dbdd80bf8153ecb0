package postgres

import (
	"context"
	"fmt"

	"github.com/harukisb/raidloot/pkg/db"
)

// GetAllocations retrieves all allocation records of a raid tier
func (d *DB) GetAllocations(ctx context.Context, tierID string) ([]db.Allocation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, tier_id, position, slot, status, layer, week, weapon, created_at
		FROM allocation
		WHERE tier_id = $1
	`, tierID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	var allocations []db.Allocation
	for rows.Next() {
		var a db.Allocation
		if err := rows.Scan(&a.ID, &a.TierID, &a.Position, &a.Slot, &a.Status, &a.Layer, &a.Week, &a.Weapon, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}

	return allocations, nil
}

// ConfirmAllocations inserts the allocation record batch and applies the
// dynamic priority increments in a single transaction. Either the whole
// batch lands or none of it does; a partial write would desynchronize
// dynamic priority accounting from recorded history.
func (d *DB) ConfirmAllocations(ctx context.Context, tierID string, allocations []db.Allocation, priorityDeltas map[string]int) error {
	if len(allocations) == 0 && len(priorityDeltas) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range allocations {
		_, err := tx.Exec(ctx, `
			INSERT INTO allocation (id, tier_id, position, slot, status, layer, week, weapon, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, a.ID, tierID, a.Position, a.Slot, a.Status, a.Layer, a.Week, a.Weapon, a.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert allocation: %w", err)
		}
	}

	for position, delta := range priorityDeltas {
		tag, err := tx.Exec(ctx, `
			UPDATE roster_member
			SET dynamic_priority = dynamic_priority + $1
			WHERE tier_id = $2 AND position = $3
		`, delta, tierID, position)
		if err != nil {
			return fmt.Errorf("failed to update dynamic priority: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("no roster member at position %s in tier %s", position, tierID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
