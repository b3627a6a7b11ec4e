package ledger

import "github.com/shopspring/decimal"

type TransactionKind string

const (
	KindDeposit    TransactionKind = "Deposit"
	KindWithdrawal TransactionKind = "Withdrawal"
)

// Transaction is a value applied to an account. The set of implementations is
// closed: Deposit and Withdrawal.
type Transaction interface {
	Amount() decimal.Decimal
	Kind() TransactionKind
	// Apply runs the transaction against the account and records it in the
	// account history only when the account accepted it.
	Apply(account *Account) error

	transaction()
}

type Deposit struct {
	amount decimal.Decimal
}

func NewDeposit(amount decimal.Decimal) Deposit {
	return Deposit{amount: amount}
}

func (d Deposit) Amount() decimal.Decimal { return d.amount }
func (d Deposit) Kind() TransactionKind   { return KindDeposit }
func (d Deposit) transaction()            {}

func (d Deposit) Apply(account *Account) error {
	if err := account.Deposit(d.amount); err != nil {
		return err
	}
	account.History().Record(d)
	return nil
}

type Withdrawal struct {
	amount decimal.Decimal
}

func NewWithdrawal(amount decimal.Decimal) Withdrawal {
	return Withdrawal{amount: amount}
}

func (w Withdrawal) Amount() decimal.Decimal { return w.amount }
func (w Withdrawal) Kind() TransactionKind   { return KindWithdrawal }
func (w Withdrawal) transaction()            {}

func (w Withdrawal) Apply(account *Account) error {
	if err := account.Withdraw(w.amount); err != nil {
		return err
	}
	account.History().Record(w)
	return nil
}
