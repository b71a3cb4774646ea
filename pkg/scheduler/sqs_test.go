package scheduler_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/wager-escrow/pkg/scheduler"
	"github.com/chris/wager-escrow/pkg/scheduler/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const queueURL = "https://sqs.us-east-1.amazonaws.com/123456789012/resolutions"

func TestScheduleResolution(t *testing.T) {
	ctx := context.Background()
	req := &scheduler.ResolutionRequest{WagerID: 7, Outcome: true, RequestedBy: "oracle"}

	t.Run("Success", func(t *testing.T) {
		mockSQS := mocks.NewSQSAPI(t)
		mockSQS.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
			var got scheduler.ResolutionRequest
			if err := json.Unmarshal([]byte(*in.MessageBody), &got); err != nil {
				return false
			}
			return *in.QueueUrl == queueURL &&
				in.DelaySeconds == 90 &&
				got == *req &&
				*in.MessageAttributes["wager_id"].StringValue == "7"
		})).Return(&sqs.SendMessageOutput{}, nil)

		s := scheduler.NewSQSScheduler(mockSQS, queueURL)
		require.NoError(t, s.ScheduleResolution(ctx, req, 90*time.Second))
	})

	t.Run("Invalid delay", func(t *testing.T) {
		s := scheduler.NewSQSScheduler(mocks.NewSQSAPI(t), queueURL)
		assert.ErrorIs(t, s.ScheduleResolution(ctx, req, scheduler.MaxDelay+time.Second), scheduler.ErrInvalidDelay)
		assert.ErrorIs(t, s.ScheduleResolution(ctx, req, -time.Second), scheduler.ErrInvalidDelay)
	})

	t.Run("Send fails", func(t *testing.T) {
		mockSQS := mocks.NewSQSAPI(t)
		mockSQS.On("SendMessage", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		s := scheduler.NewSQSScheduler(mockSQS, queueURL)
		err := s.ScheduleResolution(ctx, req, 0)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to send message to SQS")
	})
}

func TestDecodeResolutionRequest(t *testing.T) {
	req, err := scheduler.DecodeResolutionRequest(`{"wager_id":3,"outcome":false,"requested_by":"oracle"}`)
	require.NoError(t, err)
	assert.Equal(t, &scheduler.ResolutionRequest{WagerID: 3, Outcome: false, RequestedBy: "oracle"}, req)

	for _, body := range []string{`not json`, `{"outcome":true,"requested_by":"oracle"}`, `{"wager_id":3}`} {
		_, err := scheduler.DecodeResolutionRequest(body)
		assert.ErrorIs(t, err, scheduler.ErrMalformedRequest, body)
	}
}
