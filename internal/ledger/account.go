package ledger

import "github.com/surbhisaraf/customer-banking-service/internal/money"

// AccountType distinguishes regular current accounts from savings accounts.
// Savings accounts cannot be debited by withdrawals or outgoing transfers.
type AccountType string

const (
	AccountTypeRegular AccountType = "REGULAR"
	AccountTypeSaving  AccountType = "SAVING"
)

// Account is the write model the engine mutates. AccountNo, AccountType and
// Currency are fixed at creation; the engine only ever changes Balance.
type Account struct {
	AccountNo       string      `json:"accountNo"`
	OwnerCustomerID string      `json:"-"`
	AccountType     AccountType `json:"accountType"`
	Balance         money.Money `json:"balance"`
	Currency        string      `json:"currency"`
}

// Clone returns an independent copy of the account.
func (a *Account) Clone() *Account {
	cp := *a
	return &cp
}

// Customer links accounts to an authentication principal. Accounts reference
// their customer by ID; the object graph is never embedded in either direction.
type Customer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	OwnerUsername string `json:"-"`
}

// TransactionRequest is the engine-facing shape of a money movement request.
// Which account fields are required depends on the action; see ValidateRequest.
type TransactionRequest struct {
	FromAccountNo string
	ToAccountNo   string
	Amount        money.Money
}
