package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/surbhisaraf/customer-banking-service/internal/money"
)

// Limits holds the transfer thresholds in currency units. They are engine
// configuration so operations teams can tune them without a code change.
type Limits struct {
	SameCustomer  decimal.Decimal
	CrossCustomer decimal.Decimal
}

// DefaultLimits returns the standard thresholds: 100,000 between accounts of
// the same customer, 15,000 to another customer's account. Both inclusive.
func DefaultLimits() Limits {
	return Limits{
		SameCustomer:  decimal.NewFromInt(100_000),
		CrossCustomer: decimal.NewFromInt(15_000),
	}
}

// Policy is the set of pure business rules gating ledger operations. It holds
// no state beyond its configured limits and performs no I/O.
type Policy struct {
	limits Limits
}

func NewPolicy(limits Limits) Policy {
	return Policy{limits: limits}
}

// IsOwnedBy reports whether the account's owning customer is linked to the
// given principal username.
func (p Policy) IsOwnedBy(owner *Customer, principal string) bool {
	return owner != nil && owner.OwnerUsername == principal
}

// AllowsDebit reports whether funds may leave the account. Savings accounts
// accept deposits and incoming transfers only.
func (p Policy) AllowsDebit(account *Account) bool {
	return account.AccountType != AccountTypeSaving
}

// WithinTransferLimit reports whether the amount is at or below the threshold
// for the transfer kind. The boundary itself is allowed.
func (p Policy) WithinTransferLimit(amount money.Money, sameCustomer bool) bool {
	return amount.Amount.LessThanOrEqual(p.TransferLimit(sameCustomer))
}

// TransferLimit returns the applicable threshold, for limit checks and for
// stating the boundary in violation messages.
func (p Policy) TransferLimit(sameCustomer bool) decimal.Decimal {
	if sameCustomer {
		return p.limits.SameCustomer
	}
	return p.limits.CrossCustomer
}

// HasSufficientFunds reports whether the account balance covers the amount.
func (p Policy) HasSufficientFunds(account *Account, amount money.Money) bool {
	cmp, err := account.Balance.Cmp(amount)
	if err != nil {
		return false
	}
	return cmp >= 0
}
