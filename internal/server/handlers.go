package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	appErrors "github.com/GCrispino/ledger/internal/errors"
	"github.com/GCrispino/ledger/internal/models"
)

var errorStatuses = []struct {
	target error
	status int
}{
	{appErrors.ErrInvalidAmount, http.StatusUnprocessableEntity},
	{appErrors.ErrInsufficientFunds, http.StatusUnprocessableEntity},
	{appErrors.ErrExceedsWithdrawalLimit, http.StatusUnprocessableEntity},
	{appErrors.ErrWithdrawalCountExceeded, http.StatusUnprocessableEntity},
	{appErrors.ErrClientNotFound, http.StatusNotFound},
	{appErrors.ErrAccountNotFound, http.StatusNotFound},
	{appErrors.ErrClientAlreadyExists, http.StatusConflict},
}

// toHTTPError maps ledger errors to HTTP errors carrying the rule's message.
// Anything unknown is returned as is and ends up as a 500.
func toHTTPError(err error) error {
	for _, es := range errorStatuses {
		if errors.Is(err, es.target) {
			return echo.NewHTTPError(es.status, es.target.Error()).SetInternal(err)
		}
	}
	return err
}

func getAccountNumberFromRequest(c echo.Context) (int, error) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid account number").SetInternal(err)
	}
	return number, nil
}

func (s *Server) CreateClientHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(models.CreateClientRequest)
		if err := c.Bind(req); err != nil {
			return err
		}
		if err := c.Validate(req); err != nil {
			return err
		}

		res, err := s.clients.RegisterIndividualClient(c.Request().Context(), *req)
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(http.StatusCreated, res)
	}
}

func (s *Server) ListClientsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, s.clients.ListClients(c.Request().Context()))
	}
}

func (s *Server) OpenAccountHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := s.clients.OpenCheckingAccount(c.Request().Context(), c.Param("id"))
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(http.StatusCreated, res)
	}
}

func (s *Server) ListAccountsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := s.clients.ListAccounts(c.Request().Context(), c.Param("id"))
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(http.StatusOK, res)
	}
}

func (s *Server) CreateTransactionHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		number, err := getAccountNumberFromRequest(c)
		if err != nil {
			return err
		}

		req := new(models.CreateAccountTransactionRequest)
		if err := c.Bind(req); err != nil {
			return err
		}
		if err := c.Validate(req); err != nil {
			return err
		}

		res, err := s.clients.CreateAccountTransaction(
			c.Request().Context(),
			c.Param("id"), number,
			req.Value, req.Type,
		)
		if err != nil {
			return toHTTPError(err)
		}

		s.Echo.Logger.Debug("response:", res)
		return c.JSON(http.StatusOK, res)
	}
}

func (s *Server) GetStatementHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		number, err := getAccountNumberFromRequest(c)
		if err != nil {
			return err
		}

		res, err := s.clients.GetAccountStatement(c.Request().Context(), c.Param("id"), number)
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(http.StatusOK, res)
	}
}
