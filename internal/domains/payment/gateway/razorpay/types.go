package razorpay

import (
	"encoding/json"
	"fmt"
)

// =====================================================
// RAZORPAY WIRE TYPES
// =====================================================

type createOrderBody struct {
	Amount   json.RawMessage   `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type errorEnvelope struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
		Field       string `json:"field"`
		Source      string `json:"source"`
		Reason      string `json:"reason"`
	} `json:"error"`
}

// APIError is a non-2xx answer from the Razorpay API.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
	Field       string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("razorpay returned HTTP %d", e.StatusCode)
	}
	return e.Description
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		if len(body) > 0 {
			apiErr.Description = string(body)
		}
		return apiErr
	}

	apiErr.Code = env.Error.Code
	apiErr.Description = env.Error.Description
	apiErr.Field = env.Error.Field
	return apiErr
}
