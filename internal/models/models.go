package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeCredit TransactionType = "c"
	TransactionTypeDebit  TransactionType = "d"
)

// JournalEntry is the audit copy of one applied transaction. Sequence is the
// 1-based position of the record in the account history.
type JournalEntry struct {
	NationalID    string
	AccountNumber int
	Sequence      int
	Kind          string
	Amount        decimal.Decimal
	Timestamp     string
	CreatedAt     time.Time
}

// request/response models
type CreateClientRequest struct {
	Name       string `json:"name" validate:"required"`
	BirthDate  string `json:"birth_date" validate:"required,datetime=02-01-2006"`
	NationalID string `json:"national_id" validate:"required,numeric"`
	Address    string `json:"address" validate:"required"`
}

type ClientResponse struct {
	Name       string `json:"name"`
	BirthDate  string `json:"birth_date"`
	NationalID string `json:"national_id"`
	Address    string `json:"address"`
}

type AccountResponse struct {
	Number               int             `json:"number"`
	Branch               string          `json:"branch"`
	Holder               string          `json:"holder"`
	Kind                 string          `json:"kind"`
	Balance              decimal.Decimal `json:"balance"`
	WithdrawalLimit      decimal.Decimal `json:"withdrawal_limit"`
	WithdrawalCountLimit int             `json:"withdrawal_count_limit"`
}

type CreateAccountTransactionRequest struct {
	Value decimal.Decimal `json:"value"`
	Type  TransactionType `json:"type" validate:"required,oneof=c d"`
}

type CreateAccountTransactionResponse struct {
	Balance       decimal.Decimal `json:"balance"`
	HistoryLength int             `json:"history_length"`
}

type GetAccountStatementResponse struct {
	Balance      Balance                `json:"balance"`
	Transactions []StatementTransaction `json:"transactions"`
}

type Balance struct {
	Total decimal.Decimal `json:"total"`
	Date  time.Time       `json:"statement_date"`
}

type StatementTransaction struct {
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
}
