package technician

import "strings"

// Specialty is a closed tag set; free-text matching is deliberately not
// supported.
type Specialty string

const (
	SpecialtyMassage  Specialty = "massage"
	SpecialtyFacial   Specialty = "facial"
	SpecialtyBarber   Specialty = "barber"
	SpecialtyManicure Specialty = "manicure"
	SpecialtyWellness Specialty = "wellness"
	SpecialtyAll      Specialty = "all"
)

// ParseSpecialties decodes the stored comma-separated tag list, dropping
// anything outside the closed set.
func ParseSpecialties(s string) []Specialty {
	var out []Specialty
	for _, raw := range strings.Split(s, ",") {
		tag := Specialty(strings.TrimSpace(strings.ToLower(raw)))
		switch tag {
		case SpecialtyMassage, SpecialtyFacial, SpecialtyBarber, SpecialtyManicure, SpecialtyWellness, SpecialtyAll:
			out = append(out, tag)
		}
	}
	return out
}

// RequiredFor maps a service category to the specialty a technician must
// carry, with a wildcard fallback for everything uncategorized.
func RequiredFor(category string) Specialty {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "massage", "massages":
		return SpecialtyMassage
	case "facial", "facials", "skincare":
		return SpecialtyFacial
	case "barber", "barbering", "haircut":
		return SpecialtyBarber
	case "manicure", "nails", "pedicure":
		return SpecialtyManicure
	case "wellness", "meditation", "sauna":
		return SpecialtyWellness
	default:
		return SpecialtyAll
	}
}

// Qualifies reports whether the technician's tag list covers the
// required specialty, the wildcard counting for anything.
func Qualifies(tags []Specialty, required Specialty) bool {
	for _, t := range tags {
		if t == required || t == SpecialtyAll {
			return true
		}
	}
	return false
}
