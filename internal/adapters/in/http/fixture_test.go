package http_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/pkg/metrics"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testJWTSecret = "test-secret"
	testIssuer    = "storefront-test"
)

type fixture struct {
	router   *echo.Echo
	registry *prometheus.Registry

	payments  *MockPaymentReconciler
	shipments *MockShipmentReconciler
	processor *MockOrderProcessor
	shipper   *MockOrderShipper
	details   *MockOrderDetailsReader
	tracking  *MockTrackingReader
}

func newFixture(t *testing.T, config httpadapter.ServerConfig) *fixture {
	t.Helper()

	f := &fixture{
		registry:  prometheus.NewRegistry(),
		payments:  &MockPaymentReconciler{},
		shipments: &MockShipmentReconciler{},
		processor: &MockOrderProcessor{},
		shipper:   &MockOrderShipper{},
		details:   &MockOrderDetailsReader{},
		tracking:  &MockTrackingReader{},
	}

	server := httpadapter.NewServer(config, httpadapter.Handlers{
		PaymentReconciler:  f.payments,
		ShipmentReconciler: f.shipments,
		OrderProcessor:     f.processor,
		OrderShipper:       f.shipper,
		OrderDetails:       f.details,
		Tracking:           f.tracking,
	}, metrics.New(f.registry), zap.NewNop())

	router, err := httpadapter.NewRouter(server, httpadapter.JWTConfig{
		Secret: testJWTSecret,
		Issuer: testIssuer,
	}, f.registry, zap.NewNop())
	require.NoError(t, err)
	f.router = router

	t.Cleanup(func() {
		f.payments.AssertExpectations(t)
		f.shipments.AssertExpectations(t)
		f.processor.AssertExpectations(t)
		f.shipper.AssertExpectations(t)
		f.details.AssertExpectations(t)
		f.tracking.AssertExpectations(t)
	})

	return f
}

func (f *fixture) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) assertWebhookCount(t *testing.T, source, outcome string, want int) {
	t.Helper()
	expected := fmt.Sprintf(`
# HELP %[1]s Webhook notifications received, by source and outcome
# TYPE %[1]s counter
%[1]s{outcome=%[2]q,source=%[3]q} %[4]d
`, metrics.WebhookNotificationsTotal, outcome, source, want)
	require.NoError(t, testutil.GatherAndCompare(f.registry, strings.NewReader(expected), metrics.WebhookNotificationsTotal))
}

func bearer(t *testing.T, subject string, expiresIn time.Duration, secret string) map[string]string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    testIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return map[string]string{echo.HeaderAuthorization: "Bearer " + signed}
}

func signBody(body, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}
