package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rently/models"
)

func TestMergeStepIntoEmptyDraft(t *testing.T) {
	draft, err := MergeStep(models.BookingDraft{}, models.StepCustomer, map[string]any{
		"firstName": "Ada",
		"email":     "ada@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, draft.Step3)
	assert.Equal(t, "Ada", draft.Step3.FirstName)
	assert.Equal(t, "ada@example.com", draft.Step3.Email)
}

func TestMergeStepNeverDropsFields(t *testing.T) {
	draft, err := MergeStep(models.BookingDraft{}, models.StepCustomer, map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
	})
	require.NoError(t, err)

	// A later partial that only touches the phone must keep everything else.
	draft, err = MergeStep(draft, models.StepCustomer, map[string]any{"phone": "+44 20 1234"})
	require.NoError(t, err)

	assert.Equal(t, "Ada", draft.Step3.FirstName)
	assert.Equal(t, "Lovelace", draft.Step3.LastName)
	assert.Equal(t, "ada@example.com", draft.Step3.Email)
	assert.Equal(t, "+44 20 1234", draft.Step3.Phone)
}

func TestMergeStepIdempotent(t *testing.T) {
	partial := map[string]any{
		"pickupLocationId": "LHR",
		"pickupAt":         "2026-03-01 10:00:00",
	}

	once, err := MergeStep(models.BookingDraft{}, models.StepTrip, partial)
	require.NoError(t, err)
	twice, err := MergeStep(once, models.StepTrip, partial)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestMergeStepLeavesSiblingsAlone(t *testing.T) {
	draft, err := MergeStep(models.BookingDraft{}, models.StepTrip, map[string]any{"pickupLocationId": "LHR"})
	require.NoError(t, err)
	draft, err = MergeStep(draft, models.StepCoverage, map[string]any{"planKey": "standard"})
	require.NoError(t, err)

	require.NotNil(t, draft.Step1)
	assert.Equal(t, "LHR", draft.Step1.PickupLocationID)
	require.NotNil(t, draft.Step2)
	assert.Equal(t, "standard", draft.Step2.PlanKey)
	assert.Nil(t, draft.Step3)
}

func TestMergeStepDoesNotMutateInput(t *testing.T) {
	original, err := MergeStep(models.BookingDraft{}, models.StepTrip, map[string]any{"pickupLocationId": "LHR"})
	require.NoError(t, err)

	_, err = MergeStep(original, models.StepTrip, map[string]any{"pickupLocationId": "CDG"})
	require.NoError(t, err)

	assert.Equal(t, "LHR", original.Step1.PickupLocationID)
}

func TestMergeStepUnknownKey(t *testing.T) {
	_, err := MergeStep(models.BookingDraft{}, "step9", map[string]any{"x": 1})
	assert.Error(t, err)
}

func TestStepGating(t *testing.T) {
	draft := models.BookingDraft{}

	// The car selection is always reachable; nothing later is.
	assert.True(t, CanEnterStep(draft, models.StepSelectedCar))
	assert.False(t, CanEnterStep(draft, models.StepTrip))
	assert.False(t, CanEnterStep(draft, models.StepPayment))

	var err error
	draft, err = MergeStep(draft, models.StepSelectedCar, map[string]any{"carId": "v-1"})
	require.NoError(t, err)
	assert.True(t, CanEnterStep(draft, models.StepTrip))
	assert.False(t, CanEnterStep(draft, models.StepCoverage))

	draft, err = MergeStep(draft, models.StepTrip, map[string]any{"pickupAt": "2026-03-01 10:00:00"})
	require.NoError(t, err)
	assert.True(t, CanEnterStep(draft, models.StepCoverage))

	assert.Equal(t, models.StepCoverage, FirstMissingStep(draft))
}

func TestFirstMissingStepComplete(t *testing.T) {
	draft := models.BookingDraft{}
	var err error
	for _, key := range []string{models.StepSelectedCar, models.StepTrip, models.StepCoverage, models.StepCustomer, models.StepPayment} {
		draft, err = MergeStep(draft, key, map[string]any{"placeholder": "x"})
		require.NoError(t, err)
	}
	assert.Equal(t, "", FirstMissingStep(draft))
}
