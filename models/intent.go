package models

// IntentStatus tracks where a search stands. The negotiation core never
// mutates it; only the calling layer moves it forward.
type IntentStatus string

const (
	IntentSearching IntentStatus = "searching"
	IntentCalling   IntentStatus = "calling"
	IntentBooked    IntentStatus = "booked"
	IntentFailed    IntentStatus = "failed"
)

// AppointmentIntent is the user's request: what service, when, and how far
// they are willing to travel.
type AppointmentIntent struct {
	ServiceType      string       `json:"serviceType"`
	Location         string       `json:"location,omitempty"`
	PreferredStart   LocalTime    `json:"preferredStart"`
	PreferredEnd     LocalTime    `json:"preferredEnd"`
	MaxDistanceMiles float64      `json:"maxDistanceMiles,omitempty"`
	Status           IntentStatus `json:"status"`
}
