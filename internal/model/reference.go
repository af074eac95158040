package model

// ReferenceKind names one mutable reference table.
type ReferenceKind string

const (
	KindAgency             ReferenceKind = "agency"
	KindManager            ReferenceKind = "manager"
	KindTrade              ReferenceKind = "trade"
	KindZone               ReferenceKind = "zone"
	KindArtisanStatus      ReferenceKind = "artisan_status"
	KindInterventionStatus ReferenceKind = "intervention_status"
)

// ParseReferenceKind validates a kind string coming from the outside.
func ParseReferenceKind(s string) (ReferenceKind, bool) {
	switch k := ReferenceKind(s); k {
	case KindAgency, KindManager, KindTrade, KindZone, KindArtisanStatus, KindInterventionStatus:
		return k, true
	}
	return "", false
}

// ReferenceEntity is one row of a reference table. Created lazily on first
// encounter and immutable within a mapping run.
type ReferenceEntity struct {
	ID             string        `json:"id"`
	Kind           ReferenceKind `json:"kind"`
	Name           string        `json:"name"`
	NormalizedName string        `json:"normalizedName"`
	Code           string        `json:"code,omitempty"`
}
