package mapping

import (
	"github.com/chris/wager-escrow/pkg/api"
	"github.com/chris/wager-escrow/pkg/escrow"
	"github.com/chris/wager-escrow/pkg/models"
)

// ToApiWager converts a domain Wager to an API Wager model.
func ToApiWager(w *escrow.Wager) *api.Wager {
	r := w.Record()
	return &api.Wager{
		Id:              r.ID,
		Creator:         r.Creator,
		Terms:           r.Terms,
		Status:          api.WagerStatus(r.Status),
		CreatorStake:    r.CreatorStake,
		Challenger:      r.Challenger,
		ChallengerStake: r.ChallengerStake,
		Winner:          r.Winner,
		Outcome:         r.Outcome,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ToApiWagers converts a list of domain wagers.
func ToApiWagers(ws []*escrow.Wager) []*api.Wager {
	out := make([]*api.Wager, len(ws))
	for i, w := range ws {
		out[i] = ToApiWager(w)
	}
	return out
}

// ToApiEvent converts a domain Event to an API Event model. Empty optional
// fields are omitted.
func ToApiEvent(e *models.Event) *api.Event {
	return &api.Event{
		Seq:        e.Seq,
		Id:         e.ID,
		Name:       api.EventName(e.Name),
		WagerId:    e.WagerID,
		Actor:      e.Actor,
		Creator:    optional(e.Creator),
		Challenger: optional(e.Challenger),
		Winner:     optional(e.Winner),
		Terms:      e.Terms,
		Stake:      optional(e.Stake),
		Pool:       optional(e.Pool),
		Outcome:    e.Outcome,
		Timestamp:  e.Timestamp,
	}
}

// ToApiWallet converts a domain Wallet model to an API Wallet model.
func ToApiWallet(wallet *models.Wallet) *api.Wallet {
	return &api.Wallet{
		UserId:    wallet.UserId,
		Name:      optional(wallet.Name),
		Balance:   wallet.Balance,
		Version:   wallet.Version,
		CreatedAt: optional(wallet.CreatedAt),
	}
}

// ToDomainNewWallet converts an API NewWallet model to a domain Wallet
// model seeded with the given balance.
func ToDomainNewWallet(newWallet *api.NewWallet, seed int64) *models.Wallet {
	wallet := &models.Wallet{
		UserId:  newWallet.UserId,
		Balance: seed,
		Version: 1,
	}
	if newWallet.Name != nil {
		wallet.Name = *newWallet.Name
	}
	return wallet
}

// ToApiLedgerEntry converts a domain LedgerEntry to an API LedgerEntry model.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	kind := api.LedgerEntryKind(entry.Kind)
	return &api.LedgerEntry{
		EntryId:     &entry.EntryID,
		WagerId:     &entry.WagerID,
		Kind:        &kind,
		AccountId:   &entry.AccountID,
		Debit:       &entry.Debit,
		Credit:      &entry.Credit,
		Description: &entry.Description,
		Timestamp:   &entry.Timestamp,
	}
}

// ToDomainEventFilter converts the query parameters of an event listing.
func ToDomainEventFilter(params api.ListEventsParams) models.EventFilter {
	var f models.EventFilter
	f.WagerID = params.WagerId
	if params.Actor != nil {
		f.Actor = *params.Actor
	}
	if params.Limit != nil {
		f.Limit = *params.Limit
	}
	return f
}

func optional[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
