package models

import "time"

// CallState is the orchestration state of one provider during a swarm run.
type CallState string

const (
	CallPending   CallState = "pending"
	CallCalling   CallState = "calling"
	CallSuccess   CallState = "success"
	CallFailed    CallState = "failed"
	CallTimeout   CallState = "timeout"
	CallCancelled CallState = "cancelled"
)

// Terminal reports whether the state can no longer transition.
func (s CallState) Terminal() bool {
	switch s {
	case CallSuccess, CallFailed, CallTimeout, CallCancelled:
		return true
	}
	return false
}

// CallStatus is the orchestrator's bookkeeping for one provider. It lives for
// one swarm execution and is mutated only through the orchestrator's internal
// transition function.
type CallStatus struct {
	ProviderID   string      `json:"providerId"`
	ProviderName string      `json:"providerName"`
	State        CallState   `json:"state"`
	StartedAt    *time.Time  `json:"startedAt,omitempty"`
	CompletedAt  *time.Time  `json:"completedAt,omitempty"`
	Result       *CallResult `json:"result,omitempty"`
}

// SwarmConfig controls one swarm execution.
type SwarmConfig struct {
	MaxConcurrentCalls int  `json:"maxConcurrentCalls"`
	TimeoutMs          int  `json:"timeoutMs"` // per individual negotiation
	StopOnFirstSuccess bool `json:"stopOnFirstSuccess"`
	// RetryFailedCalls is accepted for forward compatibility; current
	// dispatch behavior ignores it.
	RetryFailedCalls bool `json:"retryFailedCalls"`
	// InterruptInFlight aborts in-flight negotiations the moment any call
	// succeeds, instead of only suppressing unstarted batches. Off by
	// default: cancellation is advisory bookkeeping.
	InterruptInFlight bool `json:"interruptInFlight"`
}

// DefaultSwarmConfig returns the standard dispatch settings.
func DefaultSwarmConfig() SwarmConfig {
	return SwarmConfig{
		MaxConcurrentCalls: 5,
		TimeoutMs:          15000,
		StopOnFirstSuccess: true,
	}
}

// Timeout converts the configured per-call timeout to a duration.
func (c SwarmConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// SwarmResult aggregates every CallStatus of one swarm run. Created once at
// the end of execution; immutable.
type SwarmResult struct {
	TotalProviders     int          `json:"totalProviders"`
	SuccessfulBookings []CallStatus `json:"successfulBookings"`
	FailedCalls        []CallStatus `json:"failedCalls"` // includes timeouts
	CancelledCalls     []CallStatus `json:"cancelledCalls"`
	BestMatch          *CallStatus  `json:"bestMatch,omitempty"`
	DurationMs         int64        `json:"durationMs"`
	CallStatuses       []CallStatus `json:"callStatuses"`
}
