package postgres

import (
	"context"
	"fmt"

	"github.com/harukisb/raidloot/pkg/db"
)

// GetMembers retrieves all roster members of a raid tier
func (d *DB) GetMembers(ctx context.Context, tierID string) ([]db.Member, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT tier_id, position, name, job, wish1, wish2, dynamic_priority
		FROM roster_member
		WHERE tier_id = $1
	`, tierID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster members: %w", err)
	}
	defer rows.Close()

	var members []db.Member
	for rows.Next() {
		var m db.Member
		if err := rows.Scan(&m.TierID, &m.Position, &m.Name, &m.Job, &m.Wish1, &m.Wish2, &m.DynamicPriority); err != nil {
			return nil, fmt.Errorf("failed to scan roster member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster members: %w", err)
	}

	return members, nil
}

// GetPolicies retrieves all per-slot policies of a raid tier
func (d *DB) GetPolicies(ctx context.Context, tierID string) ([]db.Policy, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT tier_id, position, slot, policy
		FROM member_policy
		WHERE tier_id = $1
	`, tierID)
	if err != nil {
		return nil, fmt.Errorf("failed to query member policies: %w", err)
	}
	defer rows.Close()

	var policies []db.Policy
	for rows.Next() {
		var p db.Policy
		if err := rows.Scan(&p.TierID, &p.Position, &p.Slot, &p.Policy); err != nil {
			return nil, fmt.Errorf("failed to scan member policy: %w", err)
		}
		policies = append(policies, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member policies: %w", err)
	}

	return policies, nil
}
