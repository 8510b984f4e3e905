package domain

import "time"

const (
	MinProfessionLevel = 1
	MaxProfessionLevel = 200
)

// Professions is the catalogue of crafting and gathering professions a member can declare.
var Professions = []string{
	"Alchimiste",
	"Bijoutier",
	"Bricoleur",
	"Bûcheron",
	"Chasseur",
	"Cordomage",
	"Cordonnier",
	"Costumage",
	"Façonneur",
	"Forgemage",
	"Forgeron",
	"Joaillomage",
	"Mineur",
	"Paysan",
	"Pêcheur",
	"Sculptemage",
	"Sculpteur",
	"Tailleur",
	"Façomage",
}

// IsKnownProfession reports whether name is part of the catalogue.
func IsKnownProfession(name string) bool {
	for _, p := range Professions {
		if p == name {
			return true
		}
	}
	return false
}

// Profession records the level a member (pseudo) has reached in one profession.
type Profession struct {
	Pseudo     string
	Profession string
	Level      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
