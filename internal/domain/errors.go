package domain

import (
	"errors"
	"fmt"
)

var (
	ErrZoneNotFound       = errors.New("zone not found")
	ErrZoneAlreadyExists  = errors.New("zone already exists")
	ErrZoneAlreadyLocked  = errors.New("zone already locked")
	ErrZoneNotLocked      = errors.New("zone not locked")
	ErrNotHolder          = errors.New("actor does not hold the zone")
	ErrZoneNameRequired   = errors.New("zone name required")
	ErrActorRequired      = errors.New("actor required")
	ErrStorage            = errors.New("storage failure")
	ErrProfessionNotFound = errors.New("profession not found")
	ErrProfessionExists   = errors.New("profession already registered")
	ErrUnknownProfession  = errors.New("unknown profession")
	ErrInvalidLevel       = errors.New("invalid level")
	ErrPseudoRequired     = errors.New("pseudo required")
)

// ZoneLockedError is returned when a reservation hits a zone that is already held.
// Holder is empty when the ledger has no open reservation to attribute it to.
type ZoneLockedError struct {
	Zone   string
	Holder string
}

func (e *ZoneLockedError) Error() string {
	if e.Holder == "" {
		return fmt.Sprintf("zone %q already locked", e.Zone)
	}
	return fmt.Sprintf("zone %q already locked by %s", e.Zone, e.Holder)
}

func (e *ZoneLockedError) Is(target error) bool {
	return target == ErrZoneAlreadyLocked
}
