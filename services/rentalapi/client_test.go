package rentalapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rently/models"
)

// memCreds is an in-memory CredentialSource for tests.
type memCreds struct {
	token       string
	invalidated int
}

func (m *memCreds) Token(ctx context.Context) (string, bool) {
	return m.token, m.token != ""
}

func (m *memCreds) Invalidate(ctx context.Context) error {
	m.token = ""
	m.invalidated++
	return nil
}

func testRequest() BookingRequest {
	return BookingRequest{
		CarID:            "v-1",
		PickupLocationID: "LHR",
		ReturnLocationID: "LHR",
		PickupDatetime:   "2030-06-10 10:00:00",
		ReturnDatetime:   "2030-06-13 10:00:00",
		PackageID:        "2",
		Addons:           []AddonLine{{ID: "101", Quantity: 1}},
	}
}

func TestSubmitBookingSuccess(t *testing.T) {
	var gotAuth string
	var gotBody BookingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/bookings", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"booking_id":  "BK-42",
			"status":      "confirmed",
			"total_price": 221.0,
			"currency":    "USD",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, &memCreds{token: "tok-1"}, zap.NewNop())
	conf, err := client.SubmitBooking(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "v-1", gotBody.CarID)
	assert.Equal(t, "2030-06-10 10:00:00", gotBody.PickupDatetime)
	assert.Equal(t, "BK-42", conf.BookingID)
	assert.Equal(t, "confirmed", conf.Status)
	assert.InDelta(t, 221.0, conf.TotalPrice, 1e-9)
}

func TestSubmitBookingValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "validation failed",
			"errors": map[string][]string{
				"customer_email":  {"is invalid", "is required"},
				"pickup_datetime": {"must be in the future"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil, zap.NewNop())
	_, err := client.SubmitBooking(context.Background(), testRequest())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	// One message per field, first wins.
	assert.Equal(t, "is invalid", vErr.Fields["customer_email"])
	assert.Equal(t, "must be in the future", vErr.Fields["pickup_datetime"])
	assert.Len(t, vErr.Fields, 2)
}

func TestSubmitBookingUnauthorizedInvalidatesOnce(t *testing.T) {
	var authHeaders []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	creds := &memCreds{token: "stale"}
	client := NewClient(srv.URL, time.Second, creds, zap.NewNop())

	_, err := client.SubmitBooking(context.Background(), testRequest())
	var aErr *AuthRequiredError
	require.ErrorAs(t, err, &aErr)
	assert.Equal(t, SigninRedirect, aErr.Redirect)
	assert.Equal(t, 1, creds.invalidated)

	// A follow-up request must go out without the stale credential, not loop
	// on re-auth.
	_, err = client.SubmitBooking(context.Background(), testRequest())
	require.ErrorAs(t, err, &aErr)

	require.Len(t, authHeaders, 2)
	assert.Equal(t, "Bearer stale", authHeaders[0])
	assert.Empty(t, authHeaders[1])
}

func TestSubmitBookingServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "car no longer available"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil, zap.NewNop())
	_, err := client.SubmitBooking(context.Background(), testRequest())

	var aErr *APIError
	require.ErrorAs(t, err, &aErr)
	assert.Equal(t, http.StatusInternalServerError, aErr.Status)
	assert.Equal(t, "car no longer available", aErr.Message)
}

func TestSubmitBookingServerErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil, zap.NewNop())
	_, err := client.SubmitBooking(context.Background(), testRequest())

	var aErr *APIError
	require.ErrorAs(t, err, &aErr)
	assert.NotEmpty(t, aErr.Message, "a user-facing message is always present")
}

func TestSubmitBookingUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := NewClient(srv.URL, time.Second, nil, zap.NewNop())
	_, err := client.SubmitBooking(context.Background(), testRequest())

	var aErr *APIError
	require.ErrorAs(t, err, &aErr)
	assert.NotEmpty(t, aErr.Message)
}

func TestCreatePaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payments/create-intent", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "BK-42", body["booking_id"])
		assert.Equal(t, "https://rently.example/ok?booking_id=BK-42", body["success_url"])

		json.NewEncoder(w).Encode(map[string]any{
			"intentId":    "pi_123",
			"checkoutUrl": "https://pay.example/pi_123",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil, zap.NewNop())
	handle, err := client.CreatePaymentIntent(context.Background(), "BK-42", 221,
		"https://rently.example/ok?booking_id=BK-42", "https://rently.example/cancel?booking_id=BK-42")
	require.NoError(t, err)

	assert.Equal(t, "pi_123", handle.IntentID)
	assert.Equal(t, "https://pay.example/pi_123", handle.CheckoutURL)
	// The booking id is backfilled when the upstream omits it.
	assert.Equal(t, "BK-42", handle.BookingID)
}

func TestFetchAddOns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/addons", r.URL.Path)
		json.NewEncoder(w).Encode([]models.AddOn{
			{ID: "201", Name: "Ski Rack", Slug: "ski-rack", Price: 7, PricingKind: models.PricePerDay},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil, zap.NewNop())
	addOns, err := client.FetchAddOns(context.Background())
	require.NoError(t, err)
	require.Len(t, addOns, 1)
	assert.Equal(t, "201", addOns[0].ID)
}
