package rentalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"rently/models"
)

// SigninRedirect is where a client is sent after credential invalidation.
const SigninRedirect = "/signin"

// CredentialSource supplies the bearer credential for authenticated requests.
// Invalidate must be idempotent: after a 401 the credential is cleared once
// and Token reports absent from then on, so a follow-up request goes out
// unauthenticated instead of looping.
type CredentialSource interface {
	Token(ctx context.Context) (string, bool)
	Invalidate(ctx context.Context) error
}

// Client talks to the upstream rental API. Retry is deliberately absent:
// every failure class is surfaced and recovery is user-initiated.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Creds   CredentialSource
	Logger  *zap.Logger
}

// NewClient builds a client with a bounded per-request timeout.
func NewClient(baseURL string, timeout time.Duration, creds CredentialSource, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Creds:   creds,
		Logger:  logger,
	}
}

// SubmitBooking posts the assembled payload and returns the confirmation.
func (c *Client) SubmitBooking(ctx context.Context, req BookingRequest) (*models.BookingConfirmation, error) {
	var conf models.BookingConfirmation
	if err := c.do(ctx, http.MethodPost, "/bookings", req, &conf); err != nil {
		return nil, err
	}
	c.Logger.Info("booking submitted",
		zap.String("bookingId", conf.BookingID),
		zap.String("carId", req.CarID))
	return &conf, nil
}

// CreatePaymentIntent asks the upstream API for a provider-hosted payment
// page. The success/cancel URLs carry the booking id back to the client.
func (c *Client) CreatePaymentIntent(ctx context.Context, bookingID string, amount float64, successURL, cancelURL string) (*models.PaymentIntentHandle, error) {
	payload := paymentIntentRequest{
		BookingID:  bookingID,
		Amount:     amount,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	}
	var handle models.PaymentIntentHandle
	if err := c.do(ctx, http.MethodPost, "/payments/create-intent", payload, &handle); err != nil {
		return nil, err
	}
	if handle.BookingID == "" {
		handle.BookingID = bookingID
	}
	return &handle, nil
}

// FetchAddOns retrieves the backend's add-on catalog so local keys can be
// resolved against authoritative ids.
func (c *Client) FetchAddOns(ctx context.Context) ([]models.AddOn, error) {
	var out []models.AddOn
	if err := c.do(ctx, http.MethodGet, "/addons", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// validationBody is the upstream's 422 shape: a message plus a map of field
// names to one or more messages.
type validationBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Creds != nil {
		if token, ok := c.Creds.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &APIError{Message: "the booking service is unreachable, please try again"}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: "failed to read response"}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return &APIError{Status: resp.StatusCode, Message: "unexpected response from booking service"}
		}
		return nil

	case resp.StatusCode == http.StatusUnauthorized:
		// Clear the stored credential once and hand back a redirect intent.
		if c.Creds != nil {
			if err := c.Creds.Invalidate(ctx); err != nil {
				c.Logger.Warn("failed to invalidate credential", zap.Error(err))
			}
		}
		c.Logger.Warn("credential rejected by rental API", zap.String("path", path))
		return &AuthRequiredError{Redirect: SigninRedirect}

	case resp.StatusCode == http.StatusUnprocessableEntity:
		var vb validationBody
		if err := json.Unmarshal(data, &vb); err == nil && len(vb.Errors) > 0 {
			fields := make(map[string]string, len(vb.Errors))
			for field, msgs := range vb.Errors {
				if len(msgs) > 0 {
					fields[field] = msgs[0]
				}
			}
			return &ValidationError{Fields: fields}
		}
		return &ValidationError{Fields: map[string]string{}}

	default:
		msg := extractMessage(data)
		c.Logger.Warn("rental API request failed",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
}

func extractMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return "booking request failed, please try again"
}
