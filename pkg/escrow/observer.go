package escrow

import (
	"context"
	"log/slog"
	"time"
)

// OperationName identifies a ledger operation.
type OperationName string

const (
	OpCreate  OperationName = "create"
	OpAccept  OperationName = "accept"
	OpCancel  OperationName = "cancel"
	OpResolve OperationName = "resolve"
)

// Operation describes one finished state-changing call, successful or not.
type Operation struct {
	Name     OperationName
	WagerID  uint64
	Caller   string
	Amount   int64
	Err      error
	Kind     Kind
	Duration time.Duration
}

// Observer receives a callback for every state-changing operation.
type Observer interface {
	ObserveOperation(ctx context.Context, op Operation)
}

// LogObserver writes operations to a structured logger.
type LogObserver struct {
	Logger *slog.Logger
}

func (o LogObserver) ObserveOperation(ctx context.Context, op Operation) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{
		slog.String("op", string(op.Name)),
		slog.Uint64("wager_id", op.WagerID),
		slog.String("caller", op.Caller),
		slog.Int64("amount", op.Amount),
		slog.String("latency", op.Duration.String()),
	}
	switch op.Kind {
	case KindNone:
		logger.InfoContext(ctx, "wager operation committed", attrs...)
	case KindInternal, KindConflict:
		logger.ErrorContext(ctx, "wager operation failed", append(attrs, slog.String("kind", string(op.Kind)), slog.Any("error", op.Err))...)
	default:
		logger.WarnContext(ctx, "wager operation rejected", append(attrs, slog.String("kind", string(op.Kind)), slog.Any("error", op.Err))...)
	}
}
