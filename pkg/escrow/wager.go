package escrow

import (
	"fmt"
	"time"

	"github.com/chris/wager-escrow/pkg/models"
	"github.com/chris/wager-escrow/pkg/storage"
)

// State is the lifecycle state of a wager. Each status carries exactly the
// fields that are meaningful in it, so a Matched wager always has a
// challenger and an Open one never does.
type State interface {
	Status() models.WagerStatus
	isState()
}

// Open wagers wait for a challenger.
type Open struct{}

// Matched wagers hold both stakes until the arbiter resolves them.
type Matched struct {
	Challenger      string
	ChallengerStake int64
}

// Resolved is terminal. The pool went to Winner.
type Resolved struct {
	Challenger      string
	ChallengerStake int64
	Winner          string
	Outcome         bool
}

// Cancelled is terminal. The creator's stake was refunded.
type Cancelled struct{}

func (Open) Status() models.WagerStatus      { return models.OPEN }
func (Matched) Status() models.WagerStatus   { return models.MATCHED }
func (Resolved) Status() models.WagerStatus  { return models.RESOLVED }
func (Cancelled) Status() models.WagerStatus { return models.CANCELLED }

func (Open) isState()      {}
func (Matched) isState()   {}
func (Resolved) isState()  {}
func (Cancelled) isState() {}

// Wager is a validated wager. Fields other than State and UpdatedAt never
// change after creation.
type Wager struct {
	ID           uint64
	Creator      string
	Terms        string
	CreatorStake int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	State        State
}

func (w *Wager) Status() models.WagerStatus {
	return w.State.Status()
}

// Challenger returns the challenger if the wager was ever matched.
func (w *Wager) Challenger() (string, bool) {
	switch s := w.State.(type) {
	case Matched:
		return s.Challenger, true
	case Resolved:
		return s.Challenger, true
	}
	return "", false
}

func (w *Wager) ChallengerStake() int64 {
	switch s := w.State.(type) {
	case Matched:
		return s.ChallengerStake
	case Resolved:
		return s.ChallengerStake
	}
	return 0
}

// Custody is the value the ledger currently holds for this wager.
func (w *Wager) Custody() int64 {
	switch w.State.(type) {
	case Open:
		return w.CreatorStake
	case Matched:
		return w.CreatorStake + w.ChallengerStake()
	}
	return 0
}

// Record flattens the wager for persistence.
func (w *Wager) Record() *models.Wager {
	r := &models.Wager{
		ID:           w.ID,
		Creator:      w.Creator,
		Terms:        w.Terms,
		Status:       w.Status(),
		CreatorStake: w.CreatorStake,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
	switch s := w.State.(type) {
	case Matched:
		r.Challenger = &s.Challenger
		r.ChallengerStake = s.ChallengerStake
	case Resolved:
		r.Challenger = &s.Challenger
		r.ChallengerStake = s.ChallengerStake
		r.Winner = &s.Winner
		r.Outcome = &s.Outcome
	}
	return r
}

// FromRecord rebuilds a wager from its persisted form and rejects records
// that break the wager invariants.
func FromRecord(r *models.Wager) (*Wager, error) {
	w := &Wager{
		ID:           r.ID,
		Creator:      r.Creator,
		Terms:        r.Terms,
		CreatorStake: r.CreatorStake,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	corrupt := func(reason string) error {
		return fmt.Errorf("wager %d: %s: %w", r.ID, reason, storage.ErrCorrupt)
	}

	if r.CreatorStake <= 0 {
		return nil, corrupt("non-positive creator stake")
	}

	matched := r.Challenger != nil
	if matched != (r.ChallengerStake == r.CreatorStake) {
		return nil, corrupt("challenger and challenger stake disagree")
	}
	if !matched && r.ChallengerStake != 0 {
		return nil, corrupt("challenger stake without challenger")
	}

	switch r.Status {
	case models.OPEN, models.CANCELLED:
		if matched || r.Winner != nil || r.Outcome != nil {
			return nil, corrupt(string(r.Status) + " wager has challenger or winner")
		}
		if r.Status == models.OPEN {
			w.State = Open{}
		} else {
			w.State = Cancelled{}
		}
	case models.MATCHED:
		if !matched || r.Winner != nil || r.Outcome != nil {
			return nil, corrupt("matched wager without challenger or with winner")
		}
		w.State = Matched{Challenger: *r.Challenger, ChallengerStake: r.ChallengerStake}
	case models.RESOLVED:
		if !matched || r.Winner == nil || r.Outcome == nil {
			return nil, corrupt("resolved wager without challenger, winner or outcome")
		}
		want := *r.Challenger
		if *r.Outcome {
			want = r.Creator
		}
		if *r.Winner != want {
			return nil, corrupt("winner does not follow outcome")
		}
		w.State = Resolved{
			Challenger:      *r.Challenger,
			ChallengerStake: r.ChallengerStake,
			Winner:          *r.Winner,
			Outcome:         *r.Outcome,
		}
	default:
		return nil, corrupt(fmt.Sprintf("unknown status %q", r.Status))
	}
	return w, nil
}
