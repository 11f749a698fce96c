package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("supabase auth admin is not configured")

// CreateUserParams is the body of POST /auth/v1/admin/users.
type CreateUserParams struct {
	Email        string                 `json:"email"`
	Password     string                 `json:"password"`
	EmailConfirm bool                   `json:"email_confirm"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
}

// User is the identity returned by the auth admin API.
type User struct {
	ID               string                 `json:"id"`
	Aud              string                 `json:"aud,omitempty"`
	Role             string                 `json:"role,omitempty"`
	Email            string                 `json:"email"`
	EmailConfirmedAt *time.Time             `json:"email_confirmed_at,omitempty"`
	UserMetadata     map[string]interface{} `json:"user_metadata,omitempty"`
	AppMetadata      map[string]interface{} `json:"app_metadata,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// APIError is a non-2xx answer from the auth server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth admin returned HTTP %d", e.StatusCode)
	}
	return e.Message
}

// AuthAdminClient calls the GoTrue admin API with the service role key.
type AuthAdminClient struct {
	baseURL        string
	serviceRoleKey string
	httpClient     *http.Client
}

func NewAuthAdminClient(baseURL, serviceRoleKey string, timeout time.Duration) (*AuthAdminClient, error) {
	if baseURL == "" || serviceRoleKey == "" {
		return nil, ErrNotConfigured
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &AuthAdminClient{
		baseURL:        strings.TrimRight(baseURL, "/"),
		serviceRoleKey: serviceRoleKey,
		httpClient:     &http.Client{Timeout: timeout},
	}, nil
}

// CreateUser creates an identity. EmailConfirm=true skips the verification email.
func (c *AuthAdminClient) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	bodyJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/admin/users", bytes.NewReader(bodyJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.serviceRoleKey)

	return c.doUser(httpReq)
}

// GetUser asks the auth server who accessToken belongs to. Signed-out
// sessions and tokens signed with keys this service does not hold are
// answered with an *APIError.
func (c *AuthAdminClient) GetUser(ctx context.Context, accessToken string) (*User, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)

	return c.doUser(httpReq)
}

func (c *AuthAdminClient) doUser(httpReq *http.Request) (*User, error) {
	httpReq.Header.Set("apikey", c.serviceRoleKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call auth API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, bodyBytes)
	}

	var user User
	if err := json.Unmarshal(bodyBytes, &user); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("auth response has no user id")
	}

	return &user, nil
}

// IsRejection reports whether err is the auth server refusing the token,
// as opposed to the server being unreachable.
func IsRejection(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// GoTrue has used several error shapes across versions.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var raw struct {
		ErrorCode        string `json:"error_code"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}

	apiErr.Code = raw.ErrorCode
	for _, m := range []string{raw.Msg, raw.Message, raw.ErrorDescription, raw.Error} {
		if m != "" {
			apiErr.Message = m
			break
		}
	}
	return apiErr
}
