package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/wager-escrow/pkg/config"
	"github.com/chris/wager-escrow/pkg/escrow"
	"github.com/chris/wager-escrow/pkg/storage"
	dydbstore "github.com/chris/wager-escrow/pkg/storage/dynamodb"
)

// ErrInvariantViolated is returned when the audit found broken invariants,
// so the scheduled invocation shows up as failed.
var ErrInvariantViolated = errors.New("ledger audit found invariant violations")

// Auditor runs the ledger audit.
type Auditor interface {
	Audit(ctx context.Context, staleAfter time.Duration) (*escrow.Report, error)
}

// Handler reconciles the ledger on a schedule.
type Handler struct {
	Ledger     Auditor
	StaleAfter time.Duration
}

// HandleRequest is triggered by an EventBridge Schedule.
func (h *Handler) HandleRequest(ctx context.Context) error {
	log.Println("Starting ledger reconciliation...")

	report, err := h.Ledger.Audit(ctx, h.StaleAfter)
	if errors.Is(err, storage.ErrConflict) {
		log.Printf("Ledger busy, audit inconclusive; retrying on the next run: %v", err)
		return nil
	}
	if err != nil {
		log.Printf("ERROR: audit failed: %v", err)
		return err
	}

	log.Printf("Audited %d wagers (%d open, %d matched), custody %d, expected %d",
		report.Wagers, report.Open, report.Matched, report.Custody, report.ExpectedCustody)

	for _, id := range report.Stale {
		log.Printf("WARN: wager %d has been matched for more than %s without a resolution", id, h.StaleAfter)
	}
	for _, v := range report.Violations {
		log.Printf("ERROR: wager %d: %s", v.WagerID, v.Problem)
	}

	if !report.OK() {
		return ErrInvariantViolated
	}

	log.Println("Reconciliation finished.")
	return nil
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.Store.Backend = config.BackendDynamoDB
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), dydbstore.Tables{
		Wagers:      cfg.DynamoDB.WagersTable,
		Index:       cfg.DynamoDB.IndexTable,
		Wallets:     cfg.DynamoDB.WalletsTable,
		Ledger:      cfg.DynamoDB.LedgerTable,
		Events:      cfg.DynamoDB.EventsTable,
		Connections: cfg.DynamoDB.ConnectionsTable,
	})

	h := &Handler{
		Ledger:     escrow.New(store, cfg.Escrow.Arbiter),
		StaleAfter: cfg.StaleAfter(),
	}
	lambda.Start(h.HandleRequest)
}
