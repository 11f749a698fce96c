package razorpay

import (
	"fmt"
	"strings"
	"time"
)

// =====================================================
// RAZORPAY CONFIGURATION
// =====================================================

type Config struct {
	KeyID     string        // Public key id, used as basic auth user
	KeySecret string        // Secret, basic auth password and HMAC key
	APIURL    string        // Base URL (default: https://api.razorpay.com)
	Timeout   time.Duration // Per request upper bound
}

const (
	DefaultAPIURL  = "https://api.razorpay.com"
	DefaultTimeout = 10 * time.Second
)

// NewConfig creates Razorpay configuration
func NewConfig(keyID, keySecret, apiURL string, timeout time.Duration) *Config {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Config{
		KeyID:     keyID,
		KeySecret: keySecret,
		APIURL:    strings.TrimRight(apiURL, "/"),
		Timeout:   timeout,
	}
}

// Validate validates configuration
func (c *Config) Validate() error {
	if c.KeyID == "" {
		return fmt.Errorf("razorpay KEY_ID is required")
	}
	if c.KeySecret == "" {
		return fmt.Errorf("razorpay KEY_SECRET is required")
	}
	if c.APIURL == "" {
		return fmt.Errorf("razorpay API URL is required")
	}
	return nil
}

// GetOrdersURL returns the order creation endpoint
func (c *Config) GetOrdersURL() string {
	return c.APIURL + "/v1/orders"
}
