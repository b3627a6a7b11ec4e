package repository

import (
	"context"
	"fmt"

	"github.com/labstack/gommon/log"

	"github.com/GCrispino/ledger/internal/database/connection"
	"github.com/GCrispino/ledger/internal/models"
)

// Journal writes an audit copy of applied transactions. It is never read back
// into the ledger.
type Journal struct {
	dbConn *connection.DBConn
}

func NewJournal(conn *connection.DBConn) *Journal {
	return &Journal{conn}
}

func (j *Journal) Append(ctx context.Context, entry models.JournalEntry) error {
	tx, err := j.dbConn.Conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}

	var txErr error
	defer func() {
		if txErr != nil {
			if err := tx.Rollback(); err != nil {
				log.Errorf("error rolling back journal transaction: %v", err)
			}
		}
	}()

	insertQuery := `
      INSERT INTO ledger_journal (national_id, account_number, sequence, kind, amount, recorded_at, created_at)
      VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

	_, err = tx.ExecContext(ctx, insertQuery,
		entry.NationalID,
		entry.AccountNumber,
		entry.Sequence,
		entry.Kind,
		entry.Amount.String(),
		entry.Timestamp,
		entry.CreatedAt,
	)
	if err != nil {
		txErr = fmt.Errorf("error running journal insert query: %w", err)
		return txErr
	}

	// a failed commit already ends the transaction, nothing to roll back
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error commiting transaction: %w", err)
	}

	return nil
}
