// Package respond writes JSON bodies and the error envelope shared by all handlers.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/chris/wager-escrow/pkg/api"
	"github.com/chris/wager-escrow/pkg/escrow"
)

// Kinds that only exist at the HTTP boundary.
const (
	KindBadRequest   = "BadRequest"
	KindUnauthorized = "Unauthenticated"
	KindWalletExists = "WalletExists"
	KindUnavailable  = "Unavailable"
	KindInvalidDelay = "InvalidDelay"
)

var statuses = map[escrow.Kind]int{
	escrow.KindInvalidStake:      http.StatusBadRequest,
	escrow.KindStakeMismatch:     http.StatusBadRequest,
	escrow.KindSelfMatch:         http.StatusBadRequest,
	escrow.KindUnauthorized:      http.StatusForbidden,
	escrow.KindNotFound:          http.StatusNotFound,
	escrow.KindWalletNotFound:    http.StatusNotFound,
	escrow.KindNotOpen:           http.StatusConflict,
	escrow.KindNotMatched:        http.StatusConflict,
	escrow.KindAlreadyMatched:    http.StatusConflict,
	escrow.KindConflict:          http.StatusConflict,
	escrow.KindInsufficientFunds: http.StatusUnprocessableEntity,
}

// Status maps an error kind to its HTTP status code.
func Status(kind escrow.Kind) int {
	if s, ok := statuses[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// Error classifies err and writes the matching status and error envelope.
// Internal errors are logged.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := escrow.KindOf(err)
	status := Status(kind)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	Fail(w, status, string(kind), err.Error())
}

// Fail writes an error envelope with an explicit status and kind.
func Fail(w http.ResponseWriter, status int, kind, message string) {
	JSON(w, status, api.Error{Kind: kind, Message: message})
}

// BadRequest reports a malformed request.
func BadRequest(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, KindBadRequest, message)
}
