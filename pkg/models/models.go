package models

import (
	"time"
)

// WagerStatus defines the possible states of a wager.
type WagerStatus string

const (
	OPEN      WagerStatus = "OPEN"
	MATCHED   WagerStatus = "MATCHED"
	RESOLVED  WagerStatus = "RESOLVED"
	CANCELLED WagerStatus = "CANCELLED"
)

// Wager is the persisted form of a wager.
// It includes dynamodbav tags for marshalling.
type Wager struct {
	ID              uint64      `json:"id" dynamodbav:"id"`
	Creator         string      `json:"creator" dynamodbav:"creator"`
	Terms           string      `json:"terms" dynamodbav:"terms"`
	Status          WagerStatus `json:"status" dynamodbav:"status"`
	CreatorStake    int64       `json:"creator_stake" dynamodbav:"creator_stake"`
	Challenger      *string     `json:"challenger,omitempty" dynamodbav:"challenger,omitempty"`
	ChallengerStake int64       `json:"challenger_stake" dynamodbav:"challenger_stake"`
	Winner          *string     `json:"winner,omitempty" dynamodbav:"winner,omitempty"`
	Outcome         *bool       `json:"outcome,omitempty" dynamodbav:"outcome,omitempty"`
	CreatedAt       time.Time   `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" dynamodbav:"updated_at"`
}

// Index names a wager index.
type Index string

const (
	IndexOpen    Index = "open"
	IndexMatched Index = "matched"
)

// EscrowAccount is the ledger account that holds custodied stakes.
const EscrowAccount = "escrow"

// Wallet represents the internal domain model for a user's wallet.
type Wallet struct {
	UserId    string    `json:"user_id" dynamodbav:"user_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Balance   int64     `json:"balance" dynamodbav:"balance"`
	Version   int64     `json:"version" dynamodbav:"version"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// EntryKind describes why value moved.
type EntryKind string

const (
	EntryStake  EntryKind = "STAKE"
	EntryRefund EntryKind = "REFUND"
	EntryPayout EntryKind = "PAYOUT"
)

// LedgerEntry represents a single entry in the double-entry custody ledger.
type LedgerEntry struct {
	EntryID     string    `json:"entry_id" dynamodbav:"entry_id"`
	WagerID     uint64    `json:"wager_id" dynamodbav:"wager_id"`
	Kind        EntryKind `json:"kind" dynamodbav:"kind"`
	AccountID   string    `json:"account_id" dynamodbav:"account_id"`
	Debit       int64     `json:"debit,omitempty" dynamodbav:"debit,omitempty"`
	Credit      int64     `json:"credit,omitempty" dynamodbav:"credit,omitempty"`
	Description string    `json:"description" dynamodbav:"description"`
	Timestamp   time.Time `json:"timestamp" dynamodbav:"timestamp"`
	GSI1PK      string    `json:"-" dynamodbav:"gsi1pk"`
}

// EventName identifies a wager state transition.
type EventName string

const (
	WagerCreated   EventName = "WagerCreated"
	WagerAccepted  EventName = "WagerAccepted"
	WagerCancelled EventName = "WagerCancelled"
	WagerResolved  EventName = "WagerResolved"
)

// Event is an append-only record of a committed transition. Seq is assigned
// at commit and orders events globally.
type Event struct {
	Seq        uint64    `json:"seq" dynamodbav:"seq"`
	ID         string    `json:"id" dynamodbav:"id"`
	Name       EventName `json:"name" dynamodbav:"name"`
	WagerID    uint64    `json:"wager_id" dynamodbav:"wager_id"`
	Actor      string    `json:"actor" dynamodbav:"actor"`
	Creator    string    `json:"creator,omitempty" dynamodbav:"creator,omitempty"`
	Challenger string    `json:"challenger,omitempty" dynamodbav:"challenger,omitempty"`
	Winner     string    `json:"winner,omitempty" dynamodbav:"winner,omitempty"`
	Terms      *string   `json:"terms,omitempty" dynamodbav:"terms"` // set on WagerCreated, even when empty
	Stake      int64     `json:"stake,omitempty" dynamodbav:"stake,omitempty"`
	Pool       int64     `json:"pool,omitempty" dynamodbav:"pool,omitempty"`
	Outcome    *bool     `json:"outcome,omitempty" dynamodbav:"outcome,omitempty"`
	Timestamp  time.Time `json:"timestamp" dynamodbav:"timestamp"`
	GSI1PK     string    `json:"-" dynamodbav:"gsi1pk"`
}

// EventFilter narrows an event listing. Zero values match everything.
type EventFilter struct {
	WagerID *uint64
	Actor   string
	Limit   int
}

// Matches reports whether e passes the filter, ignoring Limit.
func (f EventFilter) Matches(e Event) bool {
	if f.WagerID != nil && e.WagerID != *f.WagerID {
		return false
	}
	if f.Actor != "" && e.Actor != f.Actor {
		return false
	}
	return true
}
