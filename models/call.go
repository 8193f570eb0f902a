package models

// TranscriptLine is one turn of a simulated phone negotiation.
type TranscriptLine struct {
	Role    string `json:"role"` // "agent" or "receptionist"
	Message string `json:"message"`
	DelayMs int    `json:"delayMs"`
}

// CallResult is the outcome of one negotiation. Immutable after creation.
// WaitTimeMs always equals the sum of the transcript line delays; it is the
// only place call duration is derived from.
type CallResult struct {
	Success          bool             `json:"success"`
	ProviderID       string           `json:"providerId"`
	ProviderName     string           `json:"providerName,omitempty"`
	Message          string           `json:"message"`
	BookedSlot       *LocalTime       `json:"bookedSlot,omitempty"`
	AlternativeSlots []LocalTime      `json:"alternativeSlots,omitempty"`
	WaitTimeMs       int              `json:"waitTimeMs"`
	Transcript       []TranscriptLine `json:"transcript"`
}
