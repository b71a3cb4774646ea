package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chris/wager-escrow/pkg/api"
	"github.com/chris/wager-escrow/pkg/escrow"
	"github.com/chris/wager-escrow/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{fmt.Errorf("create wager: %w", escrow.ErrInvalidStake), http.StatusBadRequest, "InvalidStake"},
		{fmt.Errorf("accept wager 1: %w", escrow.ErrStakeMismatch), http.StatusBadRequest, "StakeMismatch"},
		{fmt.Errorf("accept wager 1: %w", escrow.ErrSelfMatch), http.StatusBadRequest, "SelfMatch"},
		{fmt.Errorf("resolve wager 1: %w", escrow.ErrUnauthorized), http.StatusForbidden, "Unauthorized"},
		{fmt.Errorf("wager 9: %w", escrow.ErrNotFound), http.StatusNotFound, "NotFound"},
		{fmt.Errorf("collect: %w", storage.ErrWalletNotFound), http.StatusNotFound, "WalletNotFound"},
		{fmt.Errorf("cancel wager 1: %w", escrow.ErrNotOpen), http.StatusConflict, "NotOpen"},
		{fmt.Errorf("resolve wager 1: %w", escrow.ErrNotMatched), http.StatusConflict, "NotMatched"},
		{fmt.Errorf("accept wager 1: %w", escrow.ErrAlreadyMatched), http.StatusConflict, "AlreadyMatched"},
		{fmt.Errorf("commit: %w", storage.ErrConflict), http.StatusConflict, "Conflict"},
		{fmt.Errorf("collect: %w", storage.ErrInsufficientFunds), http.StatusUnprocessableEntity, "InsufficientFunds"},
		{errors.New("dynamodb unavailable"), http.StatusInternalServerError, "Internal"},
	}
	for _, tc := range tests {
		t.Run(tc.kind, func(t *testing.T) {
			rr := httptest.NewRecorder()
			Error(rr, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)

			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var body api.Error
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tc.kind, body.Kind)
			assert.Equal(t, tc.err.Error(), body.Message)
		})
	}
}
