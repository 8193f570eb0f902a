package models

import "time"

// SearchSession holds context between ranking and the follow-up calls of one
// appointment search, so later requests can omit parameters already supplied.
type SearchSession struct {
	SessionID          string            `json:"sessionId"`
	Intent             AppointmentIntent `json:"intent"`
	RankedProviders    []RankedProvider  `json:"rankedProviders"`
	RequestedSlot      *LocalTime        `json:"requestedSlot,omitempty"`
	ServiceDescription string            `json:"serviceDescription,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
}
