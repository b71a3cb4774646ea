package wagers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/chris/wager-escrow/pkg/api"
	"github.com/chris/wager-escrow/pkg/escrow"
	"github.com/chris/wager-escrow/pkg/handlers/respond"
	"github.com/chris/wager-escrow/pkg/mapping"
	"github.com/chris/wager-escrow/pkg/middleware"
	"github.com/chris/wager-escrow/pkg/models"
	"github.com/chris/wager-escrow/pkg/scheduler"
)

// Ledger is the part of escrow.Ledger the wager endpoints use.
type Ledger interface {
	Arbiter() string
	CreateWager(ctx context.Context, call escrow.Call, terms string) (uint64, error)
	AcceptWager(ctx context.Context, call escrow.Call, id uint64) error
	CancelWager(ctx context.Context, call escrow.Call, id uint64) error
	ResolveWager(ctx context.Context, call escrow.Call, id uint64, outcome bool) error
	WagerCount(ctx context.Context) (uint64, error)
	WagerTerms(ctx context.Context, id uint64) (string, error)
	Wager(ctx context.Context, id uint64) (*escrow.Wager, error)
	OpenWagers(ctx context.Context) ([]*escrow.Wager, error)
	MatchedWagers(ctx context.Context) ([]*escrow.Wager, error)
	Participations(ctx context.Context, identity string) ([]uint64, error)
	Events(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
}

var _ Ledger = (*escrow.Ledger)(nil)

// WagersHandler holds the dependencies for wager-related handlers.
type WagersHandler struct {
	Ledger    Ledger
	Scheduler scheduler.ResolutionScheduler
}

// NewWagersHandler creates a new WagersHandler. sched may be nil, in which
// case delayed resolution is unavailable.
func NewWagersHandler(ledger Ledger, sched scheduler.ResolutionScheduler) *WagersHandler {
	return &WagersHandler{Ledger: ledger, Scheduler: sched}
}

// caller returns the identity of the caller or writes a 401.
func caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.Caller(r.Context())
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, respond.KindUnauthorized, fmt.Sprintf("missing %s header", middleware.CallerHeader))
	}
	return id, ok
}

// CreateWager opens a new wager with the caller's stake in custody.
func (h *WagersHandler) CreateWager(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	var body api.NewWager
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	id, err := h.Ledger.CreateWager(r.Context(), escrow.Call{Caller: who, Payment: body.Stake}, body.Terms)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	h.respondWager(w, r, http.StatusCreated, id)
}

// AcceptWager matches an open wager with the caller as challenger.
func (h *WagersHandler) AcceptWager(w http.ResponseWriter, r *http.Request, wagerId uint64) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	var body api.AcceptWager
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := h.Ledger.AcceptWager(r.Context(), escrow.Call{Caller: who, Payment: body.Stake}, wagerId); err != nil {
		respond.Error(w, r, err)
		return
	}
	h.respondWager(w, r, http.StatusOK, wagerId)
}

// CancelWager withdraws an open wager and refunds its creator.
func (h *WagersHandler) CancelWager(w http.ResponseWriter, r *http.Request, wagerId uint64) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.Ledger.CancelWager(r.Context(), escrow.Call{Caller: who}, wagerId); err != nil {
		respond.Error(w, r, err)
		return
	}
	h.respondWager(w, r, http.StatusOK, wagerId)
}

// ResolveWager pays out a matched wager now, or schedules the resolution
// on the queue when a delay is given.
func (h *WagersHandler) ResolveWager(w http.ResponseWriter, r *http.Request, wagerId uint64) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	var body api.ResolveWager
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if body.DelaySeconds != nil && *body.DelaySeconds != 0 {
		h.scheduleResolution(w, r, who, wagerId, body.Outcome, *body.DelaySeconds)
		return
	}

	if err := h.Ledger.ResolveWager(r.Context(), escrow.Call{Caller: who}, wagerId, body.Outcome); err != nil {
		respond.Error(w, r, err)
		return
	}
	h.respondWager(w, r, http.StatusOK, wagerId)
}

// scheduleResolution runs the checks the queued resolution would fail on
// before enqueueing it. The queued request is checked again when it runs.
func (h *WagersHandler) scheduleResolution(w http.ResponseWriter, r *http.Request, who string, wagerId uint64, outcome bool, delaySeconds int) {
	// Range-check the seconds before converting; large values overflow a Duration.
	if delaySeconds < 0 || delaySeconds > int(scheduler.MaxDelay/time.Second) {
		respond.Fail(w, http.StatusBadRequest, respond.KindInvalidDelay, scheduler.ErrInvalidDelay.Error())
		return
	}
	delay := time.Duration(delaySeconds) * time.Second
	if h.Scheduler == nil {
		respond.Fail(w, http.StatusServiceUnavailable, respond.KindUnavailable, "delayed resolution is not configured")
		return
	}
	if who != h.Ledger.Arbiter() {
		respond.Error(w, r, fmt.Errorf("resolve wager %d: %w", wagerId, escrow.ErrUnauthorized))
		return
	}

	wager, err := h.Ledger.Wager(r.Context(), wagerId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if wager.Status() != models.MATCHED {
		respond.Error(w, r, fmt.Errorf("resolve wager %d: %w", wagerId, escrow.ErrNotMatched))
		return
	}

	req := &scheduler.ResolutionRequest{WagerID: wagerId, Outcome: outcome, RequestedBy: who}
	if err := h.Scheduler.ScheduleResolution(r.Context(), req, delay); err != nil {
		slog.ErrorContext(r.Context(), "failed to schedule resolution", "wager_id", wagerId, "error", err)
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusAccepted, api.ResolutionScheduled{
		WagerId:      wagerId,
		Outcome:      outcome,
		DelaySeconds: delaySeconds,
	})
}

// GetWager returns the full state of a wager.
func (h *WagersHandler) GetWager(w http.ResponseWriter, r *http.Request, wagerId uint64) {
	h.respondWager(w, r, http.StatusOK, wagerId)
}

// GetWagerTerms returns the terms reference of a wager.
func (h *WagersHandler) GetWagerTerms(w http.ResponseWriter, r *http.Request, wagerId uint64) {
	terms, err := h.Ledger.WagerTerms(r.Context(), wagerId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, api.WagerTerms{Id: wagerId, Terms: terms})
}

// GetWagerCount returns the number of wagers ever created.
func (h *WagersHandler) GetWagerCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.Ledger.WagerCount(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, api.WagerCount{Count: n})
}

func (h *WagersHandler) ListOpenWagers(w http.ResponseWriter, r *http.Request) {
	h.respondWagers(w, r, h.Ledger.OpenWagers)
}

func (h *WagersHandler) ListMatchedWagers(w http.ResponseWriter, r *http.Request) {
	h.respondWagers(w, r, h.Ledger.MatchedWagers)
}

// ListParticipations returns the wagers a user created or accepted, in join order.
func (h *WagersHandler) ListParticipations(w http.ResponseWriter, r *http.Request, userId string) {
	ids, err := h.Ledger.Participations(r.Context(), userId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if ids == nil {
		ids = []uint64{}
	}
	respond.JSON(w, http.StatusOK, api.Participations{UserId: userId, WagerIds: ids})
}

// ListEvents returns committed events in emission order.
func (h *WagersHandler) ListEvents(w http.ResponseWriter, r *http.Request, params api.ListEventsParams) {
	if params.Limit != nil && *params.Limit < 0 {
		respond.BadRequest(w, "limit must not be negative")
		return
	}
	events, err := h.Ledger.Events(r.Context(), mapping.ToDomainEventFilter(params))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	apiEvents := make([]*api.Event, len(events))
	for i, e := range events {
		apiEvents[i] = mapping.ToApiEvent(&e)
	}
	respond.JSON(w, http.StatusOK, apiEvents)
}

func (h *WagersHandler) respondWager(w http.ResponseWriter, r *http.Request, status int, id uint64) {
	wager, err := h.Ledger.Wager(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, status, mapping.ToApiWager(wager))
}

func (h *WagersHandler) respondWagers(w http.ResponseWriter, r *http.Request, list func(context.Context) ([]*escrow.Wager, error)) {
	wagers, err := list(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiWagers(wagers))
}
