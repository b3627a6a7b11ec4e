package connection

import (
	"context"
	"database/sql"
	"fmt"

	backoff "github.com/cenkalti/backoff/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"

	"github.com/GCrispino/ledger/internal/utils"
)

type DBConn struct {
	Conn *sql.DB
}

// NewDBConn opens a pool for driverName ("postgres" or "pgx") and pings it,
// retrying with exponential backoff while the database comes up.
func NewDBConn(ctx context.Context, driverName, connString string) (*DBConn, error) {
	db, err := sql.Open(driverName, connString)
	if err != nil {
		return nil, fmt.Errorf("Could not connect to db: %w", err)
	}

	ping := func() error {
		if err := db.PingContext(ctx); err != nil {
			log.Warnf("database not ready: %v", err)
			return err
		}
		return nil
	}
	if err := backoff.Retry(ping, backoff.WithContext(utils.DefaultBackoff(), ctx)); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging db: %w", err)
	}

	return &DBConn{Conn: db}, nil
}

func (c *DBConn) Close() error {
	return c.Conn.Close()
}
