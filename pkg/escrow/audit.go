package escrow

import (
	"context"
	"fmt"
	"time"
)

// Violation is a broken ledger invariant found by Audit.
type Violation struct {
	WagerID uint64 `json:"wager_id"`
	Problem string `json:"problem"`
}

// Report is the result of an Audit.
type Report struct {
	WagerCount      uint64      `json:"wager_count"`
	Wagers          int         `json:"wagers"`
	Open            int         `json:"open"`
	Matched         int         `json:"matched"`
	Custody         int64       `json:"custody"`
	ExpectedCustody int64       `json:"expected_custody"`
	Violations      []Violation `json:"violations,omitempty"`
	Stale           []uint64    `json:"stale,omitempty"`
}

// OK reports whether no invariant was broken.
func (r *Report) OK() bool {
	return len(r.Violations) == 0 && r.Custody == r.ExpectedCustody
}

// Audit checks a consistent snapshot of every wager and both indices and
// reports broken invariants. Matched wagers last updated more than
// staleAfter ago are listed as stale; a zero staleAfter disables that check.
// When the ledger keeps changing during the read the error wraps
// storage.ErrConflict and no report is produced.
func (l *Ledger) Audit(ctx context.Context, staleAfter time.Duration) (*Report, error) {
	snap, err := l.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot ledger: %w", err)
	}
	count, custody := snap.WagerCount, snap.Custody
	records, open, matched := snap.Wagers, snap.Open, snap.Matched

	r := &Report{
		WagerCount: count,
		Wagers:     len(records),
		Open:       len(open),
		Matched:    len(matched),
		Custody:    custody,
	}
	flag := func(id uint64, format string, args ...any) {
		r.Violations = append(r.Violations, Violation{WagerID: id, Problem: fmt.Sprintf(format, args...)})
	}

	inOpen := membership(open)
	inMatched := membership(matched)
	seen := make(map[uint64]bool, len(records))
	cutoff := l.now().Add(-staleAfter)

	for i := range records {
		rec := &records[i]
		seen[rec.ID] = true
		if rec.ID == 0 || rec.ID > count {
			flag(rec.ID, "id outside 1..%d", count)
		}

		w, err := FromRecord(rec)
		if err != nil {
			flag(rec.ID, "%v", err)
			continue
		}
		r.ExpectedCustody += w.Custody()

		_, isOpen := w.State.(Open)
		if isOpen != inOpen[w.ID] {
			flag(w.ID, "status %s but open index membership is %t", w.Status(), inOpen[w.ID])
		}
		_, isMatched := w.State.(Matched)
		if isMatched != inMatched[w.ID] {
			flag(w.ID, "status %s but matched index membership is %t", w.Status(), inMatched[w.ID])
		}
		if isMatched && staleAfter > 0 && w.UpdatedAt.Before(cutoff) {
			r.Stale = append(r.Stale, w.ID)
		}
	}

	for id := uint64(1); id <= count; id++ {
		if !seen[id] {
			flag(id, "allocated id has no record")
		}
	}
	for id := range inOpen {
		if !seen[id] {
			flag(id, "open index references a missing wager")
		}
	}
	for id := range inMatched {
		if !seen[id] {
			flag(id, "matched index references a missing wager")
		}
	}
	if len(open) != len(inOpen) || len(matched) != len(inMatched) {
		flag(0, "index contains duplicate ids")
	}
	if custody != r.ExpectedCustody {
		flag(0, "custody holds %d, open and matched stakes sum to %d", custody, r.ExpectedCustody)
	}
	return r, nil
}

func membership(ids []uint64) map[uint64]bool {
	m := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
