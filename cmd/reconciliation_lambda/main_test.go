package main

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chris/wager-escrow/pkg/escrow"
	"github.com/chris/wager-escrow/pkg/storage"
	"github.com/stretchr/testify/assert"
)

type fakeAuditor struct {
	report *escrow.Report
	err    error
}

func (f fakeAuditor) Audit(ctx context.Context, staleAfter time.Duration) (*escrow.Report, error) {
	return f.report, f.err
}

func TestHandleRequest(t *testing.T) {
	tests := []struct {
		name    string
		auditor fakeAuditor
		wantErr error
	}{
		{
			name:    "Clean",
			auditor: fakeAuditor{report: &escrow.Report{Wagers: 2, Custody: 200, ExpectedCustody: 200}},
		},
		{
			name:    "Stale only",
			auditor: fakeAuditor{report: &escrow.Report{Stale: []uint64{4}}},
		},
		{
			name: "Violations",
			auditor: fakeAuditor{report: &escrow.Report{
				Violations: []escrow.Violation{{WagerID: 1, Problem: "open wager missing from open index"}},
			}},
			wantErr: ErrInvariantViolated,
		},
		{
			name:    "Custody drift",
			auditor: fakeAuditor{report: &escrow.Report{Custody: 90, ExpectedCustody: 100}},
			wantErr: ErrInvariantViolated,
		},
		{
			name:    "Ledger busy",
			auditor: fakeAuditor{err: fmt.Errorf("failed to snapshot ledger: %w", storage.ErrConflict)},
		},
		{
			name:    "Audit fails",
			auditor: fakeAuditor{err: assert.AnError},
			wantErr: assert.AnError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := &Handler{Ledger: tc.auditor, StaleAfter: time.Hour}
			err := h.HandleRequest(context.Background())
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
