package rentalapi

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rently/models"
)

func TestAssembleBookingRequest(t *testing.T) {
	pickup := time.Date(2030, 6, 10, 10, 0, 0, 0, time.Local)
	ret := time.Date(2030, 6, 13, 10, 30, 0, 0, time.Local)

	draft := models.BookingDraft{
		SelectedCar: &models.CarSelection{CarID: "v-1", Name: "Toyota Corolla"},
		Step1: &models.TripDetails{
			PickupLocationID: "LHR",
			ReturnLocationID: "CDG",
		},
		Step3: &models.CustomerDetails{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		},
	}

	req := AssembleBookingRequest(draft, pickup, ret, "2", []AddonLine{{ID: "101", Quantity: 1}})

	assert.Equal(t, "v-1", req.CarID)
	assert.Equal(t, "LHR", req.PickupLocationID)
	assert.Equal(t, "CDG", req.ReturnLocationID)
	assert.Equal(t, "2030-06-10 10:00:00", req.PickupDatetime)
	assert.Equal(t, "2030-06-13 10:30:00", req.ReturnDatetime)
	assert.Equal(t, "2", req.PackageID)
	assert.Equal(t, []AddonLine{{ID: "101", Quantity: 1}}, req.Addons)
	assert.Equal(t, "ada@example.com", req.CustomerEmail)
	assert.Equal(t, "Ada Lovelace", req.CustomerName)
}

func TestAssembleBookingRequestNilAddonsEncodesAsEmptyList(t *testing.T) {
	pickup := time.Date(2030, 6, 10, 10, 0, 0, 0, time.Local)
	ret := pickup.Add(24 * time.Hour)

	req := AssembleBookingRequest(models.BookingDraft{}, pickup, ret, "", nil)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	// The upstream expects "addons":[] rather than null.
	assert.Contains(t, string(data), `"addons":[]`)
	assert.NotContains(t, string(data), `"package_id"`)
}

func TestAssembleBookingRequestSingleName(t *testing.T) {
	pickup := time.Date(2030, 6, 10, 10, 0, 0, 0, time.Local)
	draft := models.BookingDraft{
		Step3: &models.CustomerDetails{FirstName: "Ada"},
	}

	req := AssembleBookingRequest(draft, pickup, pickup.Add(24*time.Hour), "", nil)
	assert.Equal(t, "Ada", req.CustomerName)
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2030, 1, 2, 3, 4, 5, 0, time.Local)
	assert.Equal(t, "2030-01-02 03:04:05", FormatDateTime(ts))
}

func TestValidationErrorMessageIsStable(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"pickup_datetime": "must be in the future",
		"customer_email":  "is invalid",
	}}
	// Field order in the message is alphabetical regardless of map iteration.
	assert.Equal(t,
		"booking rejected: customer_email: is invalid; pickup_datetime: must be in the future",
		err.Error())
}
