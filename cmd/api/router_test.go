package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportify-backend/internal/config"
	"sportify-backend/internal/infrastructure/database"
	"sportify-backend/pkg/container"
)

func newTestRouter(t *testing.T, secret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:      config.AppConfig{Environment: "test", Version: "9.9.9"},
		Redis:    config.RedisConfig{Host: "127.0.0.1:1"},
		Razorpay: config.RazorpayConfig{KeySecret: secret, Timeout: time.Second},
		Payment: config.PaymentConfig{
			DefaultCurrency: "INR",
			IdempotencyTTL:  time.Hour,
			IssuedOrderTTL:  time.Hour,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	c, err := container.Build(context.Background(), cfg, &database.DBConfig{})
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	return SetupRouter(c)
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "9.9.9", body["version"])

	services := body["services"].(map[string]interface{})
	assert.Equal(t, "disabled", services["database"].(map[string]interface{})["status"])
	assert.Equal(t, "missing", services["gateway"].(map[string]interface{})["status"])
	assert.Equal(t, "memory", services["cache"].(map[string]interface{})["kind"])
}

func TestRouter_FunctionPreflight(t *testing.T) {
	r := newTestRouter(t, "")

	for _, path := range []string{
		"/functions/v1/create-razorpay-order",
		"/functions/v1/verify-razorpay-payment",
		"/functions/v1/create-user",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, path, nil))

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Empty(t, w.Body.String(), path)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}
}

func TestRouter_MissingCredentials(t *testing.T) {
	r := newTestRouter(t, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/functions/v1/create-razorpay-order", bytes.NewBufferString(`{"amount":50000}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "PAY_CONFIG")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/functions/v1/verify-razorpay-payment",
		bytes.NewBufferString(`{"razorpayOrderId":"order_A","razorpayPaymentId":"pay_B","razorpaySignature":"5d33b96455a6ead0af3c0f6572b254947c79433521179346d4ecc511f37da2fb"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestRouter_VerifyKnownVector(t *testing.T) {
	r := newTestRouter(t, "s3cr3t")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/functions/v1/verify-razorpay-payment",
		bytes.NewBufferString(`{"razorpayOrderId":"order_A","razorpayPaymentId":"pay_B","razorpaySignature":"5d33b96455a6ead0af3c0f6572b254947c79433521179346d4ecc511f37da2fb"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestRouter_ProvisioningDisabled(t *testing.T) {
	r := newTestRouter(t, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/functions/v1/create-user",
		bytes.NewBufferString(`{"email":"a@b.co","password":"secret1","name":"A","userType":"user"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"user provisioning is not configured"}`, w.Body.String())
}
