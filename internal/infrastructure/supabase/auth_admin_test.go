package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *AuthAdminClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewAuthAdminClient(srv.URL+"/", "service-role-key", time.Second)
	require.NoError(t, err)
	return client
}

func TestAuthAdminClient_CreateUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/admin/users", r.URL.Path)
		assert.Equal(t, "service-role-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-role-key", r.Header.Get("Authorization"))

		var params CreateUserParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "coach@sportify.test", params.Email)
		assert.True(t, params.EmailConfirm)
		assert.Equal(t, "professional", params.UserMetadata["user_type"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"0b7c1f5e-1111-4d2a-9c3e-123456789abc","aud":"authenticated","role":"authenticated","email":"coach@sportify.test","user_metadata":{"name":"Coach","user_type":"professional"},"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}`))
	})

	user, err := client.CreateUser(context.Background(), CreateUserParams{
		Email:        "coach@sportify.test",
		Password:     "secret123",
		EmailConfirm: true,
		UserMetadata: map[string]interface{}{"name": "Coach", "user_type": "professional"},
	})

	require.NoError(t, err)
	assert.Equal(t, "0b7c1f5e-1111-4d2a-9c3e-123456789abc", user.ID)
	assert.Equal(t, "coach@sportify.test", user.Email)
	assert.Equal(t, "professional", user.UserMetadata["user_type"])
}

func TestAuthAdminClient_CreateUser_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"code":422,"error_code":"email_exists","msg":"A user with this email address has already been registered"}`))
	})

	_, err := client.CreateUser(context.Background(), CreateUserParams{Email: "dup@sportify.test", Password: "secret123"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "email_exists", apiErr.Code)
	assert.Equal(t, "A user with this email address has already been registered", err.Error())
}

func TestAuthAdminClient_LegacyErrorShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid service key"}`))
	})

	_, err := client.CreateUser(context.Background(), CreateUserParams{Email: "a@b.c", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, "Invalid service key", err.Error())
}

func TestNewAuthAdminClient_NotConfigured(t *testing.T) {
	_, err := NewAuthAdminClient("", "key", time.Second)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAuthAdminClient_GetUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "service-role-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer caller-access-token", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"id":"caller-admin","aud":"authenticated","email":"admin@sportify.test"}`))
	})

	user, err := client.GetUser(context.Background(), "caller-access-token")

	require.NoError(t, err)
	assert.Equal(t, "caller-admin", user.ID)
}

func TestAuthAdminClient_GetUser_SignedOut(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code":403,"error_code":"session_not_found","msg":"Session from session_id claim in JWT does not exist"}`))
	})

	_, err := client.GetUser(context.Background(), "revoked-token")

	require.Error(t, err)
	assert.True(t, IsRejection(err))
	assert.Contains(t, err.Error(), "session_id")
}

func TestIsRejection(t *testing.T) {
	assert.True(t, IsRejection(&APIError{StatusCode: http.StatusUnauthorized}))
	assert.False(t, IsRejection(&APIError{StatusCode: http.StatusBadGateway}))
	assert.False(t, IsRejection(errors.New("dial tcp: connection refused")))
}
