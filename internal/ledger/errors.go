package ledger

import "errors"

// Domain errors returned by the engine. The HTTP adapter maps each kind to a
// status code; the engine itself never deals in transport concerns. All are
// terminal for the operation except ErrStoreTimeout, which callers may retry.
var (
	// ErrAccountNotFound: the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrCustomerNotFound: the account's owning customer record is missing.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrUnauthenticated: no principal is attached to the request.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnauthorized: the principal does not own the account being debited
	// or credited from its own side.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidAmount: the amount is non-positive, malformed, or finer than
	// the account currency permits.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrPolicyViolation: a business rule blocked the operation; the wrapped
	// message names the rule and, where applicable, the threshold.
	ErrPolicyViolation = errors.New("policy violation")

	// ErrInsufficientFunds: the source balance cannot cover the amount. This
	// is re-checked under the account lock, not only at initial read.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrStoreTimeout: the store did not answer within its deadline. The
	// operation was not applied and may be retried.
	ErrStoreTimeout = errors.New("store timed out")
)
