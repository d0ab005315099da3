package http

import (
	"fmt"
	"net/http"

	"storefront/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires the API, the webhooks and the operational endpoints
// (/health, /metrics, /openapi.json) into one echo instance.
func NewRouter(server *Server, auth JWTConfig, gatherer prometheus.Gatherer, logger *zap.Logger) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	e.Use(middleware.RequestID())
	e.Use(AccessLog(logger))
	e.Use(middleware.Recover())
	e.Use(BearerAuth(auth))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, swagger)
	})

	servers.RegisterHandlers(e, server)

	return e, nil
}
