package db

import "context"

// RosterStore defines the roster read operations. Roster administration
// happens elsewhere; the engine side only ever reads snapshots.
type RosterStore interface {
	GetMembers(ctx context.Context, tierID string) ([]Member, error)
	GetPolicies(ctx context.Context, tierID string) ([]Policy, error)
}

// AllocationStore defines the allocation history operations.
type AllocationStore interface {
	GetAllocations(ctx context.Context, tierID string) ([]Allocation, error)

	// ConfirmAllocations appends the record batch and applies the dynamic
	// priority deltas (keyed by position) atomically: on failure neither
	// records nor increments may be partially applied.
	ConfirmAllocations(ctx context.Context, tierID string, allocations []Allocation, priorityDeltas map[string]int) error
}

// Database combines all store interfaces.
type Database interface {
	RosterStore
	AllocationStore
}
