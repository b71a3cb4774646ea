package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/wager-escrow/pkg/escrow"
	"github.com/chris/wager-escrow/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	calls []escrow.Call
	errs  map[uint64]error
}

func (f *fakeLedger) ResolveWager(ctx context.Context, call escrow.Call, id uint64, outcome bool) error {
	f.calls = append(f.calls, call)
	return f.errs[id]
}

func record(id, body string) events.SQSMessage {
	return events.SQSMessage{MessageId: id, Body: body}
}

func TestHandleRequest(t *testing.T) {
	ledger := &fakeLedger{errs: map[uint64]error{
		2: fmt.Errorf("resolve wager 2: %w", escrow.ErrNotMatched),
		3: fmt.Errorf("commit: %w", storage.ErrConflict),
		4: fmt.Errorf("resolve wager 4: %w", escrow.ErrUnauthorized),
		5: assert.AnError,
		6: fmt.Errorf("load wager 6: %w", storage.ErrCorrupt),
	}}
	h := &Handler{Ledger: ledger}

	resp, err := h.HandleRequest(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
		record("m1", `{"wager_id":1,"outcome":true,"requested_by":"oracle"}`),
		record("m2", `{"wager_id":2,"outcome":true,"requested_by":"oracle"}`),
		record("m3", `{"wager_id":3,"outcome":false,"requested_by":"oracle"}`),
		record("m4", `{"wager_id":4,"outcome":false,"requested_by":"mallory"}`),
		record("m5", `{"wager_id":5,"outcome":false,"requested_by":"oracle"}`),
		record("m6", `garbage`),
		record("m7", `{"wager_id":6,"outcome":true,"requested_by":"oracle"}`),
	}})
	require.NoError(t, err)

	assert.Equal(t, []events.SQSBatchItemFailure{{ItemIdentifier: "m3"}, {ItemIdentifier: "m5"}}, resp.BatchItemFailures)
	require.Len(t, ledger.calls, 6)
	assert.Equal(t, "mallory", ledger.calls[3].Caller)
}
