package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// MaxDelay is the longest delay SQS accepts for a single message.
const MaxDelay = 15 * time.Minute

// ErrInvalidDelay is returned for delays that are negative or above MaxDelay.
var ErrInvalidDelay = errors.New("delay must be between 0 and 15 minutes")

// ResolutionRequest asks for a matched wager to be resolved later. The
// request is replayed with RequestedBy as the caller, so only requests made
// by the arbiter can succeed.
type ResolutionRequest struct {
	WagerID     uint64 `json:"wager_id"`
	Outcome     bool   `json:"outcome"`
	RequestedBy string `json:"requested_by"`
}

// ErrMalformedRequest is returned for queued messages that are not a valid ResolutionRequest.
var ErrMalformedRequest = errors.New("malformed resolution request")

// DecodeResolutionRequest parses a queued message body.
func DecodeResolutionRequest(body string) (*ResolutionRequest, error) {
	var req ResolutionRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if req.WagerID == 0 || req.RequestedBy == "" {
		return nil, fmt.Errorf("%w: wager_id and requested_by are required", ErrMalformedRequest)
	}
	return &req, nil
}

// ResolutionScheduler defines the interface for a component that schedules
// a wager resolution for later processing.
type ResolutionScheduler interface {
	// ScheduleResolution enqueues a resolution to be applied after delay.
	ScheduleResolution(ctx context.Context, req *ResolutionRequest, delay time.Duration) error
}
