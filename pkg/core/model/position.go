package model

import "fmt"

// Position is one of the 8 fixed party positions of a raid roster.
type Position string

const (
	PositionMT Position = "MT"
	PositionST Position = "ST"
	PositionH1 Position = "H1"
	PositionH2 Position = "H2"
	PositionD1 Position = "D1"
	PositionD2 Position = "D2"
	PositionD3 Position = "D3"
	PositionD4 Position = "D4"
)

// Positions returns all positions in display order.
func Positions() []Position {
	return []Position{
		PositionMT, PositionST,
		PositionH1, PositionH2,
		PositionD1, PositionD2, PositionD3, PositionD4,
	}
}

func (p Position) IsValid() bool {
	switch p {
	case PositionMT, PositionST, PositionH1, PositionH2,
		PositionD1, PositionD2, PositionD3, PositionD4:
		return true
	}
	return false
}

// Role is the coarse role category a position belongs to.
type Role string

const (
	RoleTank   Role = "tank"
	RoleHealer Role = "healer"
	RoleDPS    Role = "dps"
)

// Role returns the role category the position is permanently mapped to.
func (p Position) Role() Role {
	switch p {
	case PositionMT, PositionST:
		return RoleTank
	case PositionH1, PositionH2:
		return RoleHealer
	default:
		return RoleDPS
	}
}

// DefaultPriorityOrder is the default base-priority ranking of positions,
// highest priority first. Deployments can override it via configuration.
func DefaultPriorityOrder() []Position {
	return []Position{
		PositionD1, PositionD2, PositionD3, PositionD4,
		PositionMT, PositionST,
		PositionH1, PositionH2,
	}
}

// PriorityTable maps each position to its numeric base priority.
// The first position of the configured order gets the highest value.
type PriorityTable map[Position]int

// NewPriorityTable builds a priority table from an ordered position list.
// The order must be a permutation of all 8 positions.
func NewPriorityTable(order []Position) (PriorityTable, error) {
	if len(order) != len(Positions()) {
		return nil, fmt.Errorf("position order must contain all %d positions, got %d", len(Positions()), len(order))
	}

	table := make(PriorityTable, len(order))
	for i, pos := range order {
		if !pos.IsValid() {
			return nil, fmt.Errorf("unknown position %q in position order", pos)
		}
		if _, dup := table[pos]; dup {
			return nil, fmt.Errorf("duplicate position %q in position order", pos)
		}
		table[pos] = len(order) - i
	}

	return table, nil
}

// BasePriority returns the base priority for a position.
func (t PriorityTable) BasePriority(pos Position) int {
	return t[pos]
}

// Order returns the positions ranked by base priority, highest first.
func (t PriorityTable) Order() []Position {
	order := make([]Position, len(t))
	for pos, prio := range t {
		order[len(t)-prio] = pos
	}
	return order
}
