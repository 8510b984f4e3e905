package domain

import "time"

type LockKind string

const (
	LockKindReserve LockKind = "reserve"
	LockKindRelease LockKind = "release"
)

// Valid reports whether k is one of the known ledger kinds.
func (k LockKind) Valid() bool {
	return k == LockKindReserve || k == LockKindRelease
}

// LockEvent is one append-only ledger entry for a zone.
type LockEvent struct {
	ID         string
	ZoneName   string
	Actor      string
	Kind       LockKind
	OccurredAt time.Time
}
