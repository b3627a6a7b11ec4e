package clients

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"

	"github.com/GCrispino/ledger/internal/database/repository"
	appErrors "github.com/GCrispino/ledger/internal/errors"
	"github.com/GCrispino/ledger/internal/ledger"
	"github.com/GCrispino/ledger/internal/models"
)

const birthDateLayout = "02-01-2006"

// Journal receives an audit copy of every applied transaction.
type Journal interface {
	Append(ctx context.Context, entry models.JournalEntry) error
}

type Limits struct {
	WithdrawalLimit      decimal.Decimal
	WithdrawalCountLimit int
}

type ClientUsecase struct {
	repo    *repository.Clients
	journal Journal
	limits  Limits

	// mu serialises ledger mutation; the ledger types themselves are not
	// safe for concurrent use.
	mu          sync.Mutex
	lastAccount int
}

// NewClientUsecase builds the use case. journal may be nil.
func NewClientUsecase(repo *repository.Clients, journal Journal, limits Limits) *ClientUsecase {
	return &ClientUsecase{repo: repo, journal: journal, limits: limits}
}

func (c *ClientUsecase) RegisterIndividualClient(ctx context.Context, req models.CreateClientRequest) (*models.ClientResponse, error) {
	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("error parsing birth date: %w", err)
	}

	client := ledger.NewIndividualClient(req.Name, birthDate, req.NationalID, req.Address)
	if err := c.repo.Save(client); err != nil {
		return nil, fmt.Errorf("error registering client: %w", err)
	}

	log.Debugj(log.JSON{"event": "client_registered", "national_id": req.NationalID})
	return toClientResponse(client), nil
}

// ListClients returns registered clients in registration order.
func (c *ClientUsecase) ListClients(ctx context.Context) []models.ClientResponse {
	registered := c.repo.List()
	out := make([]models.ClientResponse, len(registered))
	for i, client := range registered {
		out[i] = *toClientResponse(client)
	}
	return out
}

func (c *ClientUsecase) OpenCheckingAccount(ctx context.Context, nationalID string) (*models.AccountResponse, error) {
	client, err := c.repo.FindByNationalID(nationalID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastAccount++
	account := ledger.NewCheckingAccount(client, c.lastAccount,
		ledger.WithWithdrawalLimit(c.limits.WithdrawalLimit),
		ledger.WithWithdrawalCountLimit(c.limits.WithdrawalCountLimit),
	)
	client.AddAccount(account)

	log.Debugj(log.JSON{"event": "account_opened", "national_id": nationalID, "account": account.String()})
	return toAccountResponse(account), nil
}

func (c *ClientUsecase) ListAccounts(ctx context.Context, nationalID string) ([]models.AccountResponse, error) {
	client, err := c.repo.FindByNationalID(nationalID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	accounts := client.Accounts()
	out := make([]models.AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = *toAccountResponse(a)
	}
	return out, nil
}

func (c *ClientUsecase) CreateAccountTransaction(
	ctx context.Context,
	nationalID string,
	number int,
	value decimal.Decimal,
	transactionType models.TransactionType,
) (*models.CreateAccountTransactionResponse, error) {
	var tx ledger.Transaction
	switch transactionType {
	case models.TransactionTypeCredit:
		tx = ledger.NewDeposit(value)
	case models.TransactionTypeDebit:
		tx = ledger.NewWithdrawal(value)
	default:
		return nil, fmt.Errorf("unknown transaction type %q", transactionType)
	}

	client, err := c.repo.FindByNationalID(nationalID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	account, err := findAccount(client, number)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if err := client.PerformTransaction(account, tx); err != nil {
		c.mu.Unlock()
		log.Debugj(log.JSON{"event": "transaction_rejected", "number": number, "kind": tx.Kind(), "reason": err.Error()})
		return nil, fmt.Errorf("error creating account transaction: %w", err)
	}
	entries := account.History().Entries()
	c.mirror(ctx, nationalID, number, len(entries), entries[len(entries)-1])
	res := &models.CreateAccountTransactionResponse{
		Balance:       account.Balance(),
		HistoryLength: len(entries),
	}
	c.mu.Unlock()

	return res, nil
}

func (c *ClientUsecase) GetAccountStatement(ctx context.Context, nationalID string, number int) (*models.GetAccountStatementResponse, error) {
	client, err := c.repo.FindByNationalID(nationalID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	account, err := findAccount(client, number)
	if err != nil {
		return nil, err
	}

	entries := account.History().Entries()
	txs := make([]models.StatementTransaction, len(entries))
	for i, e := range entries {
		txs[i] = models.StatementTransaction{
			Kind:   string(e.Kind),
			Amount: e.Amount,
			Date:   e.Timestamp,
		}
	}

	return &models.GetAccountStatementResponse{
		Balance: models.Balance{
			Total: account.Balance(),
			Date:  time.Now(),
		},
		Transactions: txs,
	}, nil
}

// mirror copies a record to the journal. It must be called with c.mu held so
// rows reach the journal in ledger order. Journal failures are logged only;
// the in-memory ledger stays authoritative.
func (c *ClientUsecase) mirror(ctx context.Context, nationalID string, number, sequence int, rec ledger.Record) {
	if c.journal == nil {
		return
	}
	err := c.journal.Append(ctx, models.JournalEntry{
		NationalID:    nationalID,
		AccountNumber: number,
		Sequence:      sequence,
		Kind:          string(rec.Kind),
		Amount:        rec.Amount,
		Timestamp:     rec.Timestamp,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		log.Errorj(log.JSON{"event": "journal_append_failed", "number": number, "error": err.Error()})
	}
}

func findAccount(client *ledger.Client, number int) (*ledger.Account, error) {
	for _, a := range client.Accounts() {
		if a.Number() == number {
			return a, nil
		}
	}
	return nil, appErrors.ErrAccountNotFound
}

func toClientResponse(client *ledger.Client) *models.ClientResponse {
	ind := client.Individual()
	return &models.ClientResponse{
		Name:       ind.FullName,
		BirthDate:  ind.BirthDate.Format(birthDateLayout),
		NationalID: ind.NationalID,
		Address:    client.Address,
	}
}

func toAccountResponse(a *ledger.Account) *models.AccountResponse {
	res := &models.AccountResponse{
		Number:  a.Number(),
		Branch:  a.BranchCode(),
		Holder:  a.Client().Name(),
		Kind:    string(a.Kind()),
		Balance: a.Balance(),
	}
	if l := a.Limits(); l != nil {
		res.WithdrawalLimit = l.WithdrawalLimit
		res.WithdrawalCountLimit = l.WithdrawalCountLimit
	}
	return res
}
