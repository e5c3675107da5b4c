package http

import (
	"log/slog"
	"net/http"
	"time"

	"tracker/internal/generated/servers"
	"tracker/internal/pkg/observability"

	"github.com/go-chi/httprate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/unrolled/secure"
)

// RouterConfig wires the echo instance.
type RouterConfig struct {
	Server             *Server
	Resolver           ScopeResolver
	JWTSecret          string
	RateLimitPerMinute int
	Production         bool
	Metrics            *observability.Metrics
	Logger             *slog.Logger
}

// NewRouter builds the echo instance: health, metrics and swagger endpoints
// are public, the API routes require a bearer token and a request matching
// the OpenAPI document.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpErrorHandler(cfg.Logger)

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        cfg.Production,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !cfg.Production,
	})

	e.Use(middleware.Recover())
	e.Use(cfg.Metrics.EchoMiddleware())
	e.Use(echo.WrapMiddleware(secureMiddleware.Handler))
	if cfg.RateLimitPerMinute > 0 {
		e.Use(echo.WrapMiddleware(httprate.Limit(
			cfg.RateLimitPerMinute,
			time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		)))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))

	swaggerHandler, err := SwaggerHandler(swagger)
	if err != nil {
		return nil, err
	}
	e.GET("/swagger/*", swaggerHandler)

	validator, err := RequestValidator(swagger)
	if err != nil {
		return nil, err
	}

	api := e.Group("", AuthMiddleware(cfg.JWTSecret, cfg.Resolver, cfg.Logger), validator)
	servers.RegisterHandlers(api, cfg.Server)

	return e, nil
}
