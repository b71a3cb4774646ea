// Package escrow implements the wager ledger: custody of stakes between two
// parties and their release by a fixed arbiter.
package escrow

import (
	"context"
	"math"
	"time"

	"github.com/chris/wager-escrow/pkg/models"
	"github.com/chris/wager-escrow/pkg/storage"
)

// MaxStake bounds a single stake so that the pool of two stakes fits in an int64.
const MaxStake = math.MaxInt64 / 2

// Call carries what the execution environment supplies with each operation.
type Call struct {
	Caller  string
	Payment int64
}

// CommitHook runs after a unit of work committed, with the events it emitted.
type CommitHook func(ctx context.Context, events []models.Event)

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the clock used for wager and event timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithObserver adds an observer that is told about every operation.
func WithObserver(o Observer) Option {
	return func(l *Ledger) {
		l.observers = append(l.observers, o)
	}
}

// WithCommitHook adds a hook that receives committed events.
func WithCommitHook(h CommitHook) Option {
	return func(l *Ledger) {
		l.hooks = append(l.hooks, h)
	}
}

// Ledger owns the wager state machine. All state lives in the store; the
// ledger itself only holds the arbiter fixed at construction.
type Ledger struct {
	store     storage.LedgerStore
	arbiter   string
	now       func() time.Time
	observers []Observer
	hooks     []CommitHook
}

// New creates a Ledger whose wagers can only be resolved by arbiter.
func New(store storage.LedgerStore, arbiter string, opts ...Option) *Ledger {
	l := &Ledger{
		store:   store,
		arbiter: arbiter,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Arbiter returns the identity allowed to resolve wagers.
func (l *Ledger) Arbiter() string {
	return l.arbiter
}

func (l *Ledger) observe(ctx context.Context, op OperationName, wagerID uint64, call Call, amount int64, err error, start time.Time) {
	if len(l.observers) == 0 {
		return
	}
	o := Operation{
		Name:     op,
		WagerID:  wagerID,
		Caller:   call.Caller,
		Amount:   amount,
		Err:      err,
		Kind:     KindOf(err),
		Duration: time.Since(start),
	}
	for _, obs := range l.observers {
		obs.ObserveOperation(ctx, o)
	}
}

func (l *Ledger) notify(ctx context.Context, events []models.Event) {
	if len(events) == 0 {
		return
	}
	for _, h := range l.hooks {
		h(ctx, events)
	}
}
