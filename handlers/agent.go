package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	directoryRepo "bookline/database/repository/directory"
	"bookline/models"
	"bookline/services/ranking"
	"bookline/services/session"
	"bookline/services/swarm"
	"bookline/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AgentHandler exposes the booking agent's core operations over HTTP.
type AgentHandler struct {
	Ranker    ranking.RankingService
	Swarm     swarm.SwarmService
	Directory directoryRepo.Directory
	Resolver  directoryRepo.Resolver
	Sessions  session.Store
	Defaults  models.SwarmConfig
	Logger    *zap.Logger
}

func NewAgentHandler(ranker ranking.RankingService, swarmSvc swarm.SwarmService, directory directoryRepo.Directory, resolver directoryRepo.Resolver, sessions session.Store, defaults models.SwarmConfig, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{
		Ranker:    ranker,
		Swarm:     swarmSvc,
		Directory: directory,
		Resolver:  resolver,
		Sessions:  sessions,
		Defaults:  defaults,
		Logger:    logger,
	}
}

// Search ranks candidate providers for an intent and opens a search session.
func (h *AgentHandler) Search(c *gin.Context) {
	var input struct {
		Intent    models.AppointmentIntent `json:"intent"`
		Providers []models.Provider        `json:"providers"`
		Weights   *ranking.Weights         `json:"weights"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	providers := input.Providers
	if len(providers) == 0 {
		var err error
		providers, err = h.Directory.ListByCategory(c.Request.Context(), input.Intent.ServiceType)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to load providers", err.Error())
			return
		}
	}

	ranked := h.Ranker.Rank(providers, input.Intent, input.Weights)

	input.Intent.Status = models.IntentSearching
	sess := &models.SearchSession{
		SessionID:       session.NewSessionID(),
		Intent:          input.Intent,
		RankedProviders: ranked,
		CreatedAt:       time.Now(),
	}
	if err := h.Sessions.Put(c.Request.Context(), sess); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to store search session", err.Error())
		return
	}

	h.Logger.Info("search session created",
		zap.String("sessionId", sess.SessionID),
		zap.String("serviceType", input.Intent.ServiceType),
		zap.Int("candidates", len(ranked)))
	c.JSON(http.StatusOK, gin.H{
		"sessionID": sess.SessionID,
		"providers": ranked,
	})
}

// Call runs a single negotiation: one provider, one batch, timeout applied.
// Missing parameters are filled from the referenced (or latest) session.
func (h *AgentHandler) Call(c *gin.Context) {
	var input struct {
		SessionID          string            `json:"sessionID"`
		ProviderID         string            `json:"providerId"`
		RequestedSlot      *models.LocalTime `json:"requestedSlot"`
		ServiceDescription string            `json:"serviceDescription"`
		TimeoutMs          *int              `json:"timeoutMs"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.ProviderID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "providerId is required")
		return
	}

	sess := h.loadSession(c, input.SessionID)
	slot, desc := fillFromSession(sess, input.RequestedSlot, input.ServiceDescription)
	if slot.IsZero() {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "requestedSlot is required")
		return
	}

	cfg := h.Defaults
	cfg.StopOnFirstSuccess = false
	if input.TimeoutMs != nil {
		cfg.TimeoutMs = *input.TimeoutMs
	}

	// An unknown id still dispatches; the negotiation resolves it to a soft
	// "Provider not found" outcome.
	provider := models.Provider{ID: input.ProviderID}
	if p, err := h.Resolver.GetProvider(c.Request.Context(), input.ProviderID); err == nil {
		provider = *p
	}

	status := h.Swarm.Single(c.Request.Context(), provider, slot, desc, cfg)
	h.rememberCall(c, sess, slot, desc)
	c.JSON(http.StatusOK, gin.H{"call": status})
}

// Dispatch runs a swarm across many providers and returns the aggregate.
func (h *AgentHandler) Dispatch(c *gin.Context) {
	var input struct {
		SessionID          string            `json:"sessionID"`
		ProviderIDs        []string          `json:"providerIds"`
		RequestedSlot      *models.LocalTime `json:"requestedSlot"`
		ServiceDescription string            `json:"serviceDescription"`
		MaxConcurrentCalls *int              `json:"maxConcurrentCalls"`
		TimeoutMs          *int              `json:"timeoutMs"`
		StopOnFirstSuccess *bool             `json:"stopOnFirstSuccess"`
		InterruptInFlight  *bool             `json:"interruptInFlight"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sess := h.loadSession(c, input.SessionID)
	slot, desc := fillFromSession(sess, input.RequestedSlot, input.ServiceDescription)
	if slot.IsZero() {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "requestedSlot is required")
		return
	}

	var providers []models.Provider
	switch {
	case len(input.ProviderIDs) > 0:
		for _, id := range input.ProviderIDs {
			if p, err := h.Resolver.GetProvider(c.Request.Context(), id); err == nil {
				providers = append(providers, *p)
			} else {
				providers = append(providers, models.Provider{ID: id})
			}
		}
	case sess != nil:
		for _, rp := range sess.RankedProviders {
			providers = append(providers, rp.Provider)
		}
	default:
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "providerIds or an active session is required")
		return
	}

	cfg := h.Defaults
	if input.MaxConcurrentCalls != nil {
		cfg.MaxConcurrentCalls = *input.MaxConcurrentCalls
	}
	if input.TimeoutMs != nil {
		cfg.TimeoutMs = *input.TimeoutMs
	}
	if input.StopOnFirstSuccess != nil {
		cfg.StopOnFirstSuccess = *input.StopOnFirstSuccess
	}
	if input.InterruptInFlight != nil {
		cfg.InterruptInFlight = *input.InterruptInFlight
	}

	result := h.Swarm.Execute(c.Request.Context(), providers, slot, desc, cfg)
	h.rememberCall(c, sess, slot, desc)
	c.JSON(http.StatusOK, gin.H{"swarm": result})
}

// loadSession fetches the referenced session, falling back to the latest one.
// A missing session is not an error; callers may supply everything inline.
func (h *AgentHandler) loadSession(c *gin.Context, sessionID string) *models.SearchSession {
	var (
		sess *models.SearchSession
		err  error
	)
	if sessionID != "" {
		sess, err = h.Sessions.Get(c.Request.Context(), sessionID)
	} else {
		sess, err = h.Sessions.Last(c.Request.Context())
	}
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		h.Logger.Warn("session lookup failed", zap.Error(err))
	}
	return sess
}

// fillFromSession backfills the requested slot and service description from
// session state.
func fillFromSession(sess *models.SearchSession, slot *models.LocalTime, desc string) (models.LocalTime, string) {
	var out models.LocalTime
	if slot != nil {
		out = *slot
	} else if sess != nil && sess.RequestedSlot != nil {
		out = *sess.RequestedSlot
	}
	if desc == "" && sess != nil {
		if sess.ServiceDescription != "" {
			desc = sess.ServiceDescription
		} else {
			desc = sess.Intent.ServiceType
		}
	}
	return out, desc
}

// rememberCall stores the effective parameters back on the session so the
// next request can omit them.
func (h *AgentHandler) rememberCall(c *gin.Context, sess *models.SearchSession, slot models.LocalTime, desc string) {
	if sess == nil {
		return
	}
	sess.RequestedSlot = &slot
	sess.ServiceDescription = desc
	sess.Intent.Status = models.IntentCalling
	if err := h.Sessions.Put(c.Request.Context(), sess); err != nil {
		h.Logger.Warn("failed to update search session",
			zap.String("sessionId", sess.SessionID), zap.Error(err))
	}
}

// GetProvider resolves a provider through the directory chain.
func (h *AgentHandler) GetProvider(c *gin.Context) {
	id := c.Param("id")
	p, err := h.Resolver.GetProvider(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "provider not found", fmt.Sprintf("no provider with id %s", id))
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "provider lookup failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": p})
}
