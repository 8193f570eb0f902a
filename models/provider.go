package models

// Service categories commonly carried by the directory. Synthesized providers
// may carry free-form categories outside this set.
const (
	CategoryDentist         = "dentist"
	CategoryHairdresser     = "hairdresser"
	CategoryCarRepair       = "car_repair"
	CategoryPhysicalTherapy = "physical_therapy"
)

// ProviderMetadata carries optional directory attributes that negotiations
// and ranking may surface but never require.
type ProviderMetadata struct {
	AcceptsInsurance bool   `bson:"acceptsInsurance,omitempty" json:"acceptsInsurance,omitempty"`
	HasParking       bool   `bson:"hasParking,omitempty" json:"hasParking,omitempty"`
	Specialty        string `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Waitlist         bool   `bson:"waitlist,omitempty" json:"waitlist,omitempty"`
	SameDay          bool   `bson:"sameDay,omitempty" json:"sameDay,omitempty"`
	Notes            string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Provider is a bookable entity owned by the directory. It is treated as
// immutable for the duration of any negotiation that references it.
type Provider struct {
	ID             string            `bson:"id" json:"id"`
	Name           string            `bson:"name" json:"name"`
	Phone          string            `bson:"phone" json:"phone,omitempty"`
	Category       string            `bson:"category" json:"category"`
	Rating         float64           `bson:"rating" json:"rating"`
	Address        string            `bson:"address" json:"address,omitempty"`
	DistanceMiles  float64           `bson:"distanceMiles" json:"distanceMiles"`
	AvailableSlots []LocalTime       `bson:"availableSlots" json:"availableSlots"`
	Metadata       *ProviderMetadata `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// RankedProvider wraps a Provider with its computed score and the subset of
// its slots matching the intent window. Derived on every ranking call, never
// persisted on its own.
type RankedProvider struct {
	Provider      Provider    `json:"provider"`
	FinalScore    float64     `json:"finalScore"`
	MatchingSlots []LocalTime `json:"matchingSlots"`
}
