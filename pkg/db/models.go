package db

import "time"

// Member is a database roster member record.
type Member struct {
	TierID          string
	Position        string
	Name            string
	Job             string
	Wish1           string
	Wish2           string
	DynamicPriority int
}

// Policy is a database per-slot policy record for one member.
type Policy struct {
	TierID   string
	Position string
	Slot     string
	Policy   string
}

// Allocation is a database allocation history record. The status string
// values are the stable wire format shared with the core model.
type Allocation struct {
	ID        string
	TierID    string
	Position  string
	Slot      string
	Status    string
	Layer     int
	Week      int
	Weapon    string
	CreatedAt time.Time
}
