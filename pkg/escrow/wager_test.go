package escrow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/chris/wager-escrow/pkg/models"
	"github.com/chris/wager-escrow/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestFromRecord(t *testing.T) {
	valid := []struct {
		name   string
		record models.Wager
		want   State
	}{
		{"Open", models.Wager{ID: 1, Creator: "A", Status: models.OPEN, CreatorStake: 5}, Open{}},
		{"Cancelled", models.Wager{ID: 1, Creator: "A", Status: models.CANCELLED, CreatorStake: 5}, Cancelled{}},
		{
			"Matched",
			models.Wager{ID: 1, Creator: "A", Status: models.MATCHED, CreatorStake: 5, Challenger: ptr("B"), ChallengerStake: 5},
			Matched{Challenger: "B", ChallengerStake: 5},
		},
		{
			"Resolved",
			models.Wager{ID: 1, Creator: "A", Status: models.RESOLVED, CreatorStake: 5, Challenger: ptr("B"), ChallengerStake: 5, Winner: ptr("B"), Outcome: ptr(false)},
			Resolved{Challenger: "B", ChallengerStake: 5, Winner: "B", Outcome: false},
		},
	}
	for _, tc := range valid {
		t.Run(tc.name, func(t *testing.T) {
			w, err := FromRecord(&tc.record)
			require.NoError(t, err)
			assert.Equal(t, tc.want, w.State)
			assert.Equal(t, &tc.record, w.Record())
		})
	}

	corrupt := []struct {
		name   string
		record models.Wager
	}{
		{"Zero stake", models.Wager{ID: 1, Status: models.OPEN}},
		{"Open with challenger", models.Wager{ID: 1, Status: models.OPEN, CreatorStake: 5, Challenger: ptr("B"), ChallengerStake: 5}},
		{"Matched without challenger", models.Wager{ID: 1, Status: models.MATCHED, CreatorStake: 5}},
		{"Unequal stakes", models.Wager{ID: 1, Status: models.MATCHED, CreatorStake: 5, Challenger: ptr("B"), ChallengerStake: 4}},
		{"Resolved without winner", models.Wager{ID: 1, Status: models.RESOLVED, CreatorStake: 5, Challenger: ptr("B"), ChallengerStake: 5}},
		{"Winner contradicts outcome", models.Wager{ID: 1, Creator: "A", Status: models.RESOLVED, CreatorStake: 5, Challenger: ptr("B"), ChallengerStake: 5, Winner: ptr("B"), Outcome: ptr(true)}},
		{"Cancelled with winner", models.Wager{ID: 1, Status: models.CANCELLED, CreatorStake: 5, Winner: ptr("A")}},
		{"Unknown status", models.Wager{ID: 1, Status: "PENDING", CreatorStake: 5}},
	}
	for _, tc := range corrupt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromRecord(&tc.record)
			assert.ErrorIs(t, err, storage.ErrCorrupt)
		})
	}
}

func TestCustody(t *testing.T) {
	w := &Wager{CreatorStake: 7, State: Open{}}
	assert.Equal(t, int64(7), w.Custody())
	w.State = Matched{Challenger: "B", ChallengerStake: 7}
	assert.Equal(t, int64(14), w.Custody())
	w.State = Resolved{Challenger: "B", ChallengerStake: 7, Winner: "B"}
	assert.Zero(t, w.Custody())
	w.State = Cancelled{}
	assert.Zero(t, w.Custody())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindNotMatched, KindOf(fmt.Errorf("resolve wager 1: %w", ErrNotMatched)))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("commit: %w", storage.ErrConflict)))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}
