package swarm

import (
	"context"
	"sync"
	"time"

	directoryRepo "bookline/database/repository/directory"
	"bookline/models"
	"bookline/services/negotiation"

	"go.uber.org/zap"
)

// SwarmService dispatches negotiations concurrently across many providers
// and aggregates their outcomes. It has no fatal error path: every execution
// returns a well-formed SwarmResult.
type SwarmService interface {
	Execute(ctx context.Context, providers []models.Provider, requestedSlot models.LocalTime, serviceDescription string, cfg models.SwarmConfig) *models.SwarmResult
	Single(ctx context.Context, provider models.Provider, requestedSlot models.LocalTime, serviceDescription string, cfg models.SwarmConfig) *models.CallStatus
}

// DefaultSwarmService implements SwarmService.
type DefaultSwarmService struct {
	negotiator negotiation.NegotiationService
	resolver   directoryRepo.Resolver
	observer   Observer
	logger     *zap.Logger
}

// Option customizes a DefaultSwarmService.
type Option func(*DefaultSwarmService)

// WithObserver registers a synchronous status-change callback.
func WithObserver(obs Observer) Option {
	return func(s *DefaultSwarmService) { s.observer = obs }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *DefaultSwarmService) { s.logger = logger }
}

// NewSwarmService wires the orchestrator. The resolver is only consulted for
// the rating tie-break when selecting the best match.
func NewSwarmService(negotiator negotiation.NegotiationService, resolver directoryRepo.Resolver, opts ...Option) *DefaultSwarmService {
	s := &DefaultSwarmService{
		negotiator: negotiator,
		resolver:   resolver,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute runs negotiations in sequential batches of cfg.MaxConcurrentCalls,
// preserving input order. Every call races its negotiation against the
// per-call timeout. A batch settles fully before early-stop is evaluated;
// on early stop, providers in batches not yet started are marked cancelled.
func (s *DefaultSwarmService) Execute(ctx context.Context, providers []models.Provider, requestedSlot models.LocalTime, serviceDescription string, cfg models.SwarmConfig) *models.SwarmResult {
	started := time.Now()
	if cfg.MaxConcurrentCalls <= 0 {
		cfg.MaxConcurrentCalls = models.DefaultSwarmConfig().MaxConcurrentCalls
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = models.DefaultSwarmConfig().TimeoutMs
	}

	r := newRun(providers, s.observer)
	s.logger.Info("swarm dispatch starting",
		zap.Int("providers", len(providers)),
		zap.Int("maxConcurrentCalls", cfg.MaxConcurrentCalls),
		zap.Bool("stopOnFirstSuccess", cfg.StopOnFirstSuccess))

	// In-flight interruption only observes the stop channel when enabled;
	// a nil channel blocks forever in the select below.
	var interrupt <-chan struct{}
	if cfg.InterruptInFlight {
		interrupt = r.stopCh
	}

	for start := 0; start < len(providers); start += cfg.MaxConcurrentCalls {
		end := start + cfg.MaxConcurrentCalls
		if end > len(providers) {
			end = len(providers)
		}
		batch := providers[start:end]

		var wg sync.WaitGroup
		for _, p := range batch {
			r.transition(p.ID, models.CallCalling, nil)
			wg.Add(1)
			go func(p models.Provider) {
				defer wg.Done()
				s.dispatch(ctx, r, p, requestedSlot, serviceDescription, cfg, interrupt)
			}(p)
		}
		wg.Wait()

		if cfg.StopOnFirstSuccess && batchHasSuccess(r, batch) {
			r.cancelPending()
			break
		}
	}

	result := s.aggregate(ctx, r)
	result.DurationMs = time.Since(started).Milliseconds()
	s.logger.Info("swarm dispatch finished",
		zap.Int("successful", len(result.SuccessfulBookings)),
		zap.Int("failed", len(result.FailedCalls)),
		zap.Int("cancelled", len(result.CancelledCalls)),
		zap.Int64("durationMs", result.DurationMs))
	return result
}

// Single is the degenerate one-provider execution: one batch, the timeout
// still applied, no early-stop to evaluate.
func (s *DefaultSwarmService) Single(ctx context.Context, provider models.Provider, requestedSlot models.LocalTime, serviceDescription string, cfg models.SwarmConfig) *models.CallStatus {
	result := s.Execute(ctx, []models.Provider{provider}, requestedSlot, serviceDescription, cfg)
	st := result.CallStatuses[0]
	return &st
}

// dispatch runs one negotiation with its timeout race and records the
// outcome. If the timer or an interruption wins, the negotiation context is
// cancelled so the simulated call unwinds at its next delay.
func (s *DefaultSwarmService) dispatch(ctx context.Context, r *run, p models.Provider, requestedSlot models.LocalTime, serviceDescription string, cfg models.SwarmConfig, interrupt <-chan struct{}) {
	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	resCh := make(chan *models.CallResult, 1)
	go func() {
		resCh <- s.negotiator.Negotiate(callCtx, p.ID, requestedSlot, serviceDescription)
	}()

	timer := time.NewTimer(cfg.Timeout())
	defer timer.Stop()

	select {
	case res := <-resCh:
		state := models.CallFailed
		if res.Success {
			state = models.CallSuccess
		}
		r.transition(p.ID, state, res)
		if res.Success && cfg.InterruptInFlight {
			r.interrupt()
		}
	case <-timer.C:
		cancel()
		s.logger.Warn("negotiation timed out", zap.String("providerId", p.ID))
		r.transition(p.ID, models.CallTimeout, nil)
	case <-interrupt:
		cancel()
		r.transition(p.ID, models.CallCancelled, nil)
	}
}

func batchHasSuccess(r *run, batch []models.Provider) bool {
	for _, p := range batch {
		if r.state(p.ID) == models.CallSuccess {
			return true
		}
	}
	return false
}

// aggregate partitions the final statuses and selects the best match: the
// success with the earliest booked slot, ties broken by higher provider
// rating, then by input order.
func (s *DefaultSwarmService) aggregate(ctx context.Context, r *run) *models.SwarmResult {
	statuses := r.snapshot()
	result := &models.SwarmResult{
		TotalProviders: len(statuses),
		CallStatuses:   statuses,
	}

	var best *models.CallStatus
	var bestRating float64
	for i := range statuses {
		st := statuses[i]
		switch st.State {
		case models.CallSuccess:
			result.SuccessfulBookings = append(result.SuccessfulBookings, st)
			rating := s.lookupRating(ctx, st.ProviderID)
			if best == nil || betterMatch(st, rating, *best, bestRating) {
				chosen := st
				best = &chosen
				bestRating = rating
			}
		case models.CallCancelled:
			result.CancelledCalls = append(result.CancelledCalls, st)
		default:
			result.FailedCalls = append(result.FailedCalls, st)
		}
	}
	result.BestMatch = best
	return result
}

// betterMatch reports whether candidate strictly beats current; equal slots
// and ratings keep the earlier input order.
func betterMatch(candidate models.CallStatus, candidateRating float64, current models.CallStatus, currentRating float64) bool {
	cs, bs := candidate.Result.BookedSlot, current.Result.BookedSlot
	if cs.Before(*bs) {
		return true
	}
	if bs.Before(*cs) {
		return false
	}
	return candidateRating > currentRating
}

func (s *DefaultSwarmService) lookupRating(ctx context.Context, providerID string) float64 {
	if s.resolver == nil {
		return 0
	}
	p, err := s.resolver.GetProvider(ctx, providerID)
	if err != nil {
		return 0
	}
	return p.Rating
}
