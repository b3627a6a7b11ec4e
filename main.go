package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/ulule/limiter/v3"
	_ "go.uber.org/automaxprocs"

	"github.com/GCrispino/ledger/internal/config"
	database "github.com/GCrispino/ledger/internal/database/connection"
	"github.com/GCrispino/ledger/internal/database/migrations"
	"github.com/GCrispino/ledger/internal/database/repository"
	"github.com/GCrispino/ledger/internal/server"
	"github.com/GCrispino/ledger/internal/usecases/clients"
)

func main() {
	args := os.Args
	lArgs := len(args)
	if lArgs > 2 {
		fmt.Println("USAGE: ./ledger <port>")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	log.SetLevel(cfg.LogLevel)

	bindAddr := cfg.Port
	if lArgs == 2 {
		bindAddr = args[1]
	}
	if !strings.HasPrefix(bindAddr, ":") {
		bindAddr = ":" + bindAddr
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		panic(fmt.Errorf("invalid RATE_LIMIT: %w", err))
	}

	var journal clients.Journal
	var dbConn *database.DBConn
	if cfg.JournalEnabled() {
		dbConn, err = database.NewDBConn(context.Background(), cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			panic(err)
		}

		if err := migrations.Up(dbConn.Conn); err != nil {
			panic(err)
		}
		journal = repository.NewJournal(dbConn)
	}

	clientsRepo := repository.NewClients()
	clientsUsecase := clients.NewClientUsecase(clientsRepo, journal, clients.Limits{
		WithdrawalLimit:      cfg.WithdrawalLimit,
		WithdrawalCountLimit: cfg.WithdrawalCountLimit,
	})

	s := server.NewServer(clientsUsecase, rate)
	s.Logger.SetLevel(cfg.LogLevel)

	err = s.Start(bindAddr)
	// Fatal exits without running deferred calls
	if dbConn != nil {
		if cerr := dbConn.Close(); cerr != nil {
			s.Logger.Error("error closing db connection: ", cerr)
		}
	}
	s.Logger.Fatal(err)
}
