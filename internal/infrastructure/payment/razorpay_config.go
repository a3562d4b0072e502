package payment

import "errors"

const razorpayDefaultBaseURL = "https://api.razorpay.com/v1"

// RazorpayConfig contains credentials for the Razorpay Orders API and its
// webhook verification.
type RazorpayConfig struct {
	// KeyID is the API key ID, used as the basic-auth username
	KeyID string
	// KeySecret is the API key secret, used as the basic-auth password
	KeySecret string
	// WebhookSecret keys the HMAC the gateway sends in X-Razorpay-Signature
	WebhookSecret string
	// BaseURL overrides the API endpoint, mainly for tests
	BaseURL string
}

// Errors for configuration validation
var (
	ErrRazorpayMissingKeyID         = errors.New("razorpay: missing key ID")
	ErrRazorpayMissingKeySecret     = errors.New("razorpay: missing key secret")
	ErrRazorpayMissingWebhookSecret = errors.New("razorpay: missing webhook secret")
)

// Validate validates the configuration
func (c *RazorpayConfig) Validate() error {
	if c.KeyID == "" {
		return ErrRazorpayMissingKeyID
	}
	if c.KeySecret == "" {
		return ErrRazorpayMissingKeySecret
	}
	if c.WebhookSecret == "" {
		return ErrRazorpayMissingWebhookSecret
	}
	return nil
}

// Endpoint returns the configured base URL or the production default.
func (c *RazorpayConfig) Endpoint() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return razorpayDefaultBaseURL
}
