package ledger

import (
	"fmt"
	"strings"
)

// Action identifies which engine operation a request targets.
type Action string

const (
	ActionDeposit  Action = "deposit"
	ActionWithdraw Action = "withdraw"
	ActionTransfer Action = "transfer"
)

// ValidateRequest rejects requests whose required account-number fields are
// missing for the given action, before the engine is invoked. Deposits need a
// destination, withdrawals a source, transfers both. Pure and idempotent:
// the same request always yields the same result.
func ValidateRequest(req TransactionRequest, action Action) error {
	switch Action(strings.ToLower(string(action))) {
	case ActionDeposit:
		if invalidAccountNo(req.ToAccountNo) {
			return fmt.Errorf("%w: deposit account number is invalid", ErrPolicyViolation)
		}
	case ActionWithdraw:
		if invalidAccountNo(req.FromAccountNo) {
			return fmt.Errorf("%w: withdraw account number is invalid", ErrPolicyViolation)
		}
	case ActionTransfer:
		if invalidAccountNo(req.FromAccountNo) || invalidAccountNo(req.ToAccountNo) {
			return fmt.Errorf("%w: transfer account number is invalid", ErrPolicyViolation)
		}
	default:
		return fmt.Errorf("%w: unknown action %q", ErrPolicyViolation, action)
	}
	return nil
}

func invalidAccountNo(accountNo string) bool {
	return strings.TrimSpace(accountNo) == ""
}
