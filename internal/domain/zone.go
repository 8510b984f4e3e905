package domain

import "time"

// Zone is a named resource that at most one actor can hold at a time.
type Zone struct {
	Name      string
	IsLocked  bool
	CreatedBy string
	CreatedAt time.Time
}

// ZoneState is the derived lifecycle state of a zone.
type ZoneState string

const (
	ZoneStateFree   ZoneState = "free"
	ZoneStateLocked ZoneState = "locked"
)

func (z Zone) State() ZoneState {
	if z.IsLocked {
		return ZoneStateLocked
	}
	return ZoneStateFree
}
