package api

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/time/rate"
)

type Options struct {
	// RateLimit is requests per second per client IP; 0 disables limiting.
	RateLimit float64
	LogLevel  log.Lvl
}

// NewServer builds the echo instance with middleware and routes.
func NewServer(h *Handler, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = goccyJSON{}
	e.Logger.SetLevel(opts.LogLevel)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	if opts.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(opts.RateLimit))))
	}

	h.RegisterRoutes(e)
	return e
}

// goccyJSON is an echo.JSONSerializer backed by goccy/go-json.
type goccyJSON struct{}

func (goccyJSON) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (goccyJSON) Deserialize(c echo.Context, i interface{}) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err)).SetInternal(err)
	}
	return nil
}
