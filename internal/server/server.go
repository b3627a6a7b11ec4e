package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/color"
	"github.com/labstack/gommon/log"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"github.com/valyala/fasttemplate"

	"github.com/GCrispino/ledger/internal/usecases/clients"
)

const errorLogFormat = "${time_rfc3339} ${id} ${remote_ip} ${method} ${uri} ${status} ${latency_human} ${error}\n"

type Server struct {
	*echo.Echo
	clients *clients.ClientUsecase
}

func NewServer(clientsUsecase *clients.ClientUsecase, rate limiter.Rate) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(ErrorLoggerWithConfig(middleware.LoggerConfig{}))
	e.Use(RateLimit(limiter.New(memory.NewStore(), rate)))
	e.Logger.SetLevel(log.ERROR)
	e.JSONSerializer = DefaultJSONSerializer{}
	e.Validator = &requestValidator{validate: validator.New()}

	s := &Server{e, clientsUsecase}

	s.registerHandlers()

	return s
}

// ErrorLoggerWithConfig logs one line per request that ended in an error.
// Successful requests are not logged.
func ErrorLoggerWithConfig(config middleware.LoggerConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}
	if config.Format == "" {
		config.Format = errorLogFormat
	}

	template := fasttemplate.New(config.Format, "${", "}")
	colorer := color.New()
	colorer.SetOutput(config.Output)
	pool := &sync.Pool{
		New: func() interface{} {
			return bytes.NewBuffer(make([]byte, 256))
		},
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			if err == nil {
				return nil
			}
			c.Error(err)
			stop := time.Now()

			req := c.Request()
			res := c.Response()
			buf := pool.Get().(*bytes.Buffer)
			buf.Reset()
			defer pool.Put(buf)

			if _, tErr := template.ExecuteFunc(buf, func(w io.Writer, tag string) (int, error) {
				switch tag {
				case "time_rfc3339":
					return buf.WriteString(time.Now().Format(time.RFC3339))
				case "id":
					id := req.Header.Get(echo.HeaderXRequestID)
					if id == "" {
						id = res.Header().Get(echo.HeaderXRequestID)
					}
					return buf.WriteString(id)
				case "remote_ip":
					return buf.WriteString(c.RealIP())
				case "method":
					return buf.WriteString(req.Method)
				case "uri":
					return buf.WriteString(req.RequestURI)
				case "status":
					n := res.Status
					s := colorer.Green(n)
					switch {
					case n >= 500:
						s = colorer.Red(n)
					case n >= 400:
						s = colorer.Yellow(n)
					}
					return buf.WriteString(s)
				case "error":
					// Error may contain invalid JSON e.g. `"`
					b, _ := json.Marshal(err.Error())
					b = b[1 : len(b)-1]
					return buf.Write(b)
				case "latency_human":
					return buf.WriteString(stop.Sub(start).String())
				}
				return 0, nil
			}); tErr != nil {
				return nil
			}

			if config.Output == nil {
				_, _ = c.Logger().Output().Write(buf.Bytes())
				return nil
			}
			_, _ = config.Output.Write(buf.Bytes())
			return nil
		}
	}
}

// RateLimit rejects requests once the caller's IP has used up its rate.
func RateLimit(l *limiter.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			lctx, err := l.Get(c.Request().Context(), ip)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "rate limit check failed").SetInternal(err)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

			if lctx.Reached {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

// DefaultJSONSerializer implements JSON encoding using goccy/go-json.
type DefaultJSONSerializer struct{}

// Serialize converts an interface into a json and writes it to the response.
// You can optionally use the indent parameter to produce pretty JSONs.
func (d DefaultJSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

// Deserialize reads a JSON from a request body and converts it into an interface.
func (d DefaultJSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if ute, ok := err.(*json.UnmarshalTypeError); ok {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Unmarshal type error: expected=%v, got=%v, field=%v, offset=%v", ute.Type, ute.Value, ute.Field, ute.Offset)).SetInternal(err)
	} else if se, ok := err.(*json.SyntaxError); ok {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Syntax error: offset=%v, error=%v", se.Offset, se.Error())).SetInternal(err)
	}
	return err
}

func (s *Server) registerHandlers() {
	s.POST("/clients", s.CreateClientHandler())
	s.GET("/clients", s.ListClientsHandler())
	s.POST("/clients/:id/accounts", s.OpenAccountHandler())
	s.GET("/clients/:id/accounts", s.ListAccountsHandler())
	s.POST("/clients/:id/accounts/:number/transactions", s.CreateTransactionHandler())
	s.GET("/clients/:id/accounts/:number/statement", s.GetStatementHandler())
}
