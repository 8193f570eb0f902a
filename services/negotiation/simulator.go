package negotiation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	directoryRepo "bookline/database/repository/directory"
	"bookline/models"

	"go.uber.org/zap"
)

// Fixed stage delays of the negotiation state machine, in simulated
// milliseconds.
const (
	greetingDelayMs  = 500
	requestDelayMs   = 800
	availableDelayMs = 1000
	confirmDelayMs   = 500
	bookedDelayMs    = 800
	declineDelayMs   = 1000
)

// Business-hours and after-hours bounds, local hours.
const (
	afterHoursStart    = 22 // inclusive
	afterHoursEnd      = 7  // inclusive
	businessHoursStart = 8
	businessHoursEnd   = 18
)

// slotMatchWindow is how far from the requested slot a provider slot may be
// and still count as a match.
const slotMatchWindow = 60 * time.Minute

// NegotiationService simulates one phone negotiation with a provider.
type NegotiationService interface {
	Negotiate(ctx context.Context, providerID string, requestedSlot models.LocalTime, serviceDescription string) *models.CallResult
}

// Simulator implements NegotiationService. It fails soft: every call path,
// including an unknown provider id, yields a well-formed CallResult and never
// an error.
type Simulator struct {
	resolver directoryRepo.Resolver
	random   func() float64
	sleep    func(ctx context.Context, d time.Duration) error
	logger   *zap.Logger
}

// Option customizes a Simulator.
type Option func(*Simulator)

// WithRandom injects the availability draw. Tests pass a fixed or seeded
// source instead of the ambient generator.
func WithRandom(random func() float64) Option {
	return func(s *Simulator) { s.random = random }
}

// WithSleeper replaces the simulated-delay sleeper. Tests pass a no-op so a
// negotiation settles instantly; WaitTimeMs is unaffected since it is derived
// from the scripted delays, not measured.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Simulator) { s.sleep = sleep }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Simulator) { s.logger = logger }
}

func NewSimulator(resolver directoryRepo.Resolver, opts ...Option) *Simulator {
	s := &Simulator{
		resolver: resolver,
		random:   rand.Float64,
		sleep:    sleepContext,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// call accumulates one negotiation's transcript.
type call struct {
	sim    *Simulator
	result *models.CallResult
	vars   map[string]string
	err    error
}

// say appends a transcript line and suspends for its simulated delay. Once a
// suspension is interrupted, later lines are dropped.
func (c *call) say(ctx context.Context, role, line string, delayMs int) {
	if c.err != nil {
		return
	}
	c.result.Transcript = append(c.result.Transcript, models.TranscriptLine{
		Role:    role,
		Message: render(line, c.vars),
		DelayMs: delayMs,
	})
	c.result.WaitTimeMs += delayMs
	c.err = c.sim.sleep(ctx, time.Duration(delayMs)*time.Millisecond)
}

// Negotiate runs the scripted negotiation state machine for one provider:
// greeting, request, schedule lookup, then resolution. The returned result's
// WaitTimeMs equals the sum of its transcript delays.
func (s *Simulator) Negotiate(ctx context.Context, providerID string, requestedSlot models.LocalTime, serviceDescription string) *models.CallResult {
	result := &models.CallResult{ProviderID: providerID}

	provider, err := s.resolver.GetProvider(ctx, providerID)
	if err != nil {
		msg := "Provider not found"
		if !errors.Is(err, directoryRepo.ErrNotFound) {
			msg = fmt.Sprintf("Provider lookup failed: %v", err)
		}
		result.Message = msg
		result.Transcript = []models.TranscriptLine{{Role: "system", Message: msg}}
		return result
	}
	result.ProviderName = provider.Name

	personality := personalityFor(provider.Rating)
	s.logger.Debug("starting negotiation",
		zap.String("providerId", provider.ID),
		zap.String("tier", string(personality.Tier)),
		zap.String("requestedSlot", requestedSlot.String()))

	if serviceDescription == "" {
		serviceDescription = "an appointment"
	}
	c := &call{
		sim:    s,
		result: result,
		vars: map[string]string{
			"provider": provider.Name,
			"service":  serviceDescription,
			"slot":     requestedSlot.Display(),
		},
	}

	// Greeting and request.
	c.say(ctx, "receptionist", personality.Script.Greeting, greetingDelayMs)
	c.say(ctx, "agent", "Hi! I'm calling to book {service} for {slot}.", requestDelayMs)

	// Schedule lookup.
	c.say(ctx, "receptionist", personality.Script.Acknowledgment, personality.ThinkTimeMs)

	// Resolution. An after-hours request is rejected before any slot is
	// considered; otherwise a slot within the match window gets a
	// probability draw.
	matched, found := findNearbySlot(provider.AvailableSlots, requestedSlot)
	if isAfterHours(requestedSlot) {
		found = false
	}

	if found && s.random() < personality.BaseProbability+0.1 {
		c.vars["slot"] = matched.Display()
		c.say(ctx, "receptionist", personality.Script.Available, availableDelayMs)
		c.say(ctx, "agent", "Yes, please book it.", confirmDelayMs)
		c.say(ctx, "receptionist", personality.Script.Booked, bookedDelayMs)
		result.Success = true
		booked := matched
		result.BookedSlot = &booked
		result.Message = fmt.Sprintf("Booked %s at %s", matched.Display(), provider.Name)
		return s.finish(c)
	}

	if len(provider.AvailableSlots) > 0 {
		alternative := clampToBusinessHours(provider.AvailableSlots[0])
		c.vars["alternative"] = alternative.Display()
		c.say(ctx, "receptionist", personality.Script.Unavailable, declineDelayMs)
		result.AlternativeSlots = []models.LocalTime{alternative}
		result.Message = fmt.Sprintf("%s could not book the requested time; offered %s instead", provider.Name, alternative.Display())
		return s.finish(c)
	}

	c.say(ctx, "receptionist", personality.Script.NoSlots, declineDelayMs)
	result.Message = fmt.Sprintf("%s has no availability", provider.Name)
	return s.finish(c)
}

func (s *Simulator) finish(c *call) *models.CallResult {
	if c.err != nil {
		c.result.Success = false
		c.result.BookedSlot = nil
		c.result.Message = "Call interrupted"
	}
	return c.result
}

// isAfterHours reports whether the slot's local hour falls in the closed
// after-hours window [22:00, 07:00].
func isAfterHours(slot models.LocalTime) bool {
	h := slot.Hour()
	return h >= afterHoursStart || h <= afterHoursEnd
}

// findNearbySlot returns the first available slot within the match window of
// the requested time.
func findNearbySlot(slots []models.LocalTime, requested models.LocalTime) (models.LocalTime, bool) {
	for _, slot := range slots {
		diff := slot.Sub(requested)
		if diff < 0 {
			diff = -diff
		}
		if diff <= slotMatchWindow {
			return slot, true
		}
	}
	return models.LocalTime{}, false
}

// clampToBusinessHours moves a slot outside [08:00, 18:00] to the same
// calendar day at 10:00, so the agent never proposes an unreasonable
// alternative.
func clampToBusinessHours(slot models.LocalTime) models.LocalTime {
	if h := slot.Hour(); h < businessHoursStart || h > businessHoursEnd {
		return slot.AtHour(10)
	}
	return slot
}
