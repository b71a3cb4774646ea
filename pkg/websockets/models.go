package websockets

import "github.com/chris/wager-escrow/pkg/models"

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeWagerEvent carries a committed wager event.
	MessageTypeWagerEvent MessageType = "wagerEvent"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// WagerEventPayload is the payload for a wagerEvent message.
type WagerEventPayload struct {
	Seq        uint64           `json:"seq"`
	Name       models.EventName `json:"name"`
	WagerID    uint64           `json:"wager_id"`
	Actor      string           `json:"actor"`
	Challenger string           `json:"challenger,omitempty"`
	Winner     string           `json:"winner,omitempty"`
	Stake      int64            `json:"stake,omitempty"`
	Pool       int64            `json:"pool,omitempty"`
}

// NewWagerEventMessage wraps a committed event for publishing.
func NewWagerEventMessage(e models.Event) Message {
	return Message{
		Type: MessageTypeWagerEvent,
		Payload: WagerEventPayload{
			Seq:        e.Seq,
			Name:       e.Name,
			WagerID:    e.WagerID,
			Actor:      e.Actor,
			Challenger: e.Challenger,
			Winner:     e.Winner,
			Stake:      e.Stake,
			Pool:       e.Pool,
		},
	}
}
