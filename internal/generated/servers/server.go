package servers

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// (POST /api/v1/orders/{orderId}/process)
	ProcessOrder(ctx echo.Context, orderId OrderId) error
	// (GET /api/v1/orders/{orderId}/tracking)
	GetOrderTracking(ctx echo.Context, orderId OrderId) error
	// (POST /api/v1/stores/{storeId}/orders/{orderId}/shipment)
	CreateShipment(ctx echo.Context, storeId openapi_types.UUID, orderId OrderId) error
	// Payment gateway notification
	// (POST /webhooks/payments)
	ReceivePaymentNotification(ctx echo.Context) error
	// Carrier status notification
	// (POST /webhooks/shipments)
	ReceiveShipmentNotification(ctx echo.Context, params ReceiveShipmentNotificationParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var value openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return value, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.GetOrder(ctx, orderId)
}

// ProcessOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ProcessOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.ProcessOrder(ctx, orderId)
}

// GetOrderTracking converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderTracking(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.GetOrderTracking(ctx, orderId)
}

// CreateShipment converts echo context to params.
func (w *ServerInterfaceWrapper) CreateShipment(ctx echo.Context) error {
	storeId, err := bindUUID(ctx, "storeId")
	if err != nil {
		return err
	}
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.CreateShipment(ctx, storeId, orderId)
}

// ReceivePaymentNotification converts echo context to params.
func (w *ServerInterfaceWrapper) ReceivePaymentNotification(ctx echo.Context) error {
	return w.Handler.ReceivePaymentNotification(ctx)
}

// ReceiveShipmentNotification converts echo context to params.
func (w *ServerInterfaceWrapper) ReceiveShipmentNotification(ctx echo.Context) error {
	var params ReceiveShipmentNotificationParams

	if values := ctx.Request().Header.Values("X-Carrier-Signature"); len(values) > 0 {
		var signature string
		if len(values) != 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Expected one value for X-Carrier-Signature")
		}
		err := runtime.BindStyledParameterWithOptions("simple", "X-Carrier-Signature", values[0], &signature,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter X-Carrier-Signature: %s", err))
		}
		params.XCarrierSignature = &signature
	}

	return w.Handler.ReceiveShipmentNotification(ctx, params)
}

// EchoRouter is an interface that wraps the methods of echo.Echo and echo.Group
// so handlers can be registered on either.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/process", wrapper.ProcessOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId/tracking", wrapper.GetOrderTracking)
	router.POST(baseURL+"/api/v1/stores/:storeId/orders/:orderId/shipment", wrapper.CreateShipment)
	router.POST(baseURL+"/webhooks/payments", wrapper.ReceivePaymentNotification)
	router.POST(baseURL+"/webhooks/shipments", wrapper.ReceiveShipmentNotification)
}

//go:embed openapi.yaml
var rawSpec []byte

var (
	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
)

// GetSwagger returns the parsed and validated OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		swagger, swaggerErr = loader.LoadFromData(rawSpec)
		if swaggerErr != nil {
			swaggerErr = fmt.Errorf("error loading OpenAPI document: %w", swaggerErr)
			return
		}
		if err := swagger.Validate(context.Background()); err != nil {
			swaggerErr = fmt.Errorf("invalid OpenAPI document: %w", err)
		}
	})
	return swagger, swaggerErr
}
