package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	appErrors "github.com/GCrispino/ledger/internal/errors"
)

// BranchCode is shared by every account.
const BranchCode = "0001"

const (
	DefaultWithdrawalLimit      = 500
	DefaultWithdrawalCountLimit = 3
)

type AccountKind string

const (
	AccountKindBasic    AccountKind = "basic"
	AccountKindChecking AccountKind = "checking"
)

// CheckingLimits holds the fields a checking account adds on top of a basic one.
type CheckingLimits struct {
	WithdrawalLimit      decimal.Decimal
	WithdrawalCountLimit int
}

// check enforces the per-withdrawal amount limit first, then the withdrawal
// count over the whole history. The count never resets.
func (l *CheckingLimits) check(amount decimal.Decimal, h *History) error {
	if amount.GreaterThan(l.WithdrawalLimit) {
		return appErrors.ErrExceedsWithdrawalLimit
	}
	if h.Count(KindWithdrawal) >= l.WithdrawalCountLimit {
		return appErrors.ErrWithdrawalCountExceeded
	}
	return nil
}

type Account struct {
	number   int
	branch   string
	balance  decimal.Decimal
	client   *Client
	history  *History
	checking *CheckingLimits
}

// NewAccount creates a basic account with zero balance owned by client.
// The account is not added to the client's list.
func NewAccount(client *Client, number int) *Account {
	return &Account{
		number:  number,
		branch:  BranchCode,
		balance: decimal.Zero,
		client:  client,
		history: newHistory(),
	}
}

type CheckingOption func(*CheckingLimits)

func WithWithdrawalLimit(limit decimal.Decimal) CheckingOption {
	return func(l *CheckingLimits) { l.WithdrawalLimit = limit }
}

func WithWithdrawalCountLimit(n int) CheckingOption {
	return func(l *CheckingLimits) { l.WithdrawalCountLimit = n }
}

func NewCheckingAccount(client *Client, number int, opts ...CheckingOption) *Account {
	a := NewAccount(client, number)
	a.checking = &CheckingLimits{
		WithdrawalLimit:      decimal.NewFromInt(DefaultWithdrawalLimit),
		WithdrawalCountLimit: DefaultWithdrawalCountLimit,
	}
	for _, opt := range opts {
		opt(a.checking)
	}
	return a
}

func (a *Account) Number() int              { return a.number }
func (a *Account) BranchCode() string       { return a.branch }
func (a *Account) Balance() decimal.Decimal { return a.balance }
func (a *Account) Client() *Client          { return a.client }
func (a *Account) History() *History        { return a.history }

func (a *Account) Kind() AccountKind {
	if a.checking != nil {
		return AccountKindChecking
	}
	return AccountKindBasic
}

// Limits returns a copy of the checking limits, or nil for a basic account.
func (a *Account) Limits() *CheckingLimits {
	if a.checking == nil {
		return nil
	}
	l := *a.checking
	return &l
}

// Deposit adds amount to the balance. It does not touch the history.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return appErrors.ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	return nil
}

// Withdraw subtracts amount from the balance. Checking accounts apply their
// limits before the balance rule.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if a.checking != nil {
		if err := a.checking.check(amount, a.history); err != nil {
			return err
		}
	}
	return a.withdraw(amount)
}

func (a *Account) withdraw(amount decimal.Decimal) error {
	if amount.GreaterThan(a.balance) {
		return appErrors.ErrInsufficientFunds
	}
	if !amount.IsPositive() {
		return appErrors.ErrInvalidAmount
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

func (a *Account) String() string {
	holder := ""
	if a.client != nil {
		holder = a.client.Name()
	}
	return fmt.Sprintf("Branch:\t%s\nAccount:\t%d\nHolder:\t%s", a.branch, a.number, holder)
}
