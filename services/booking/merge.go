package booking

import (
	"encoding/json"
	"fmt"

	"rently/models"
)

// stepOrder is the wizard's navigation order. A step is reachable only when
// every step before it has a non-empty sub-record (existence check only;
// field-level validation belongs to the HTTP binding layer).
var stepOrder = []string{
	models.StepSelectedCar,
	models.StepTrip,
	models.StepCoverage,
	models.StepCustomer,
	models.StepPayment,
}

// MergeStep shallow-merges partial into the draft's sub-record for stepKey
// and returns a new draft. Fields of the existing sub-record that partial
// does not mention survive; sibling steps are untouched. The input draft is
// not mutated.
func MergeStep(draft models.BookingDraft, stepKey string, partial map[string]any) (models.BookingDraft, error) {
	cur, err := stepRecord(&draft, stepKey)
	if err != nil {
		return draft, err
	}

	merged := map[string]any{}
	if cur != nil {
		raw, err := json.Marshal(cur)
		if err != nil {
			return draft, fmt.Errorf("failed to encode step %s: %w", stepKey, err)
		}
		if err := json.Unmarshal(raw, &merged); err != nil {
			return draft, fmt.Errorf("failed to decode step %s: %w", stepKey, err)
		}
	}
	for k, v := range partial {
		merged[k] = v
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return draft, fmt.Errorf("failed to encode merged step %s: %w", stepKey, err)
	}

	switch stepKey {
	case models.StepSelectedCar:
		var s models.CarSelection
		if err := json.Unmarshal(raw, &s); err != nil {
			return draft, fmt.Errorf("invalid fields for %s: %w", stepKey, err)
		}
		draft.SelectedCar = &s
	case models.StepTrip:
		var s models.TripDetails
		if err := json.Unmarshal(raw, &s); err != nil {
			return draft, fmt.Errorf("invalid fields for %s: %w", stepKey, err)
		}
		draft.Step1 = &s
	case models.StepCoverage:
		var s models.CoverageSelection
		if err := json.Unmarshal(raw, &s); err != nil {
			return draft, fmt.Errorf("invalid fields for %s: %w", stepKey, err)
		}
		draft.Step2 = &s
	case models.StepCustomer:
		var s models.CustomerDetails
		if err := json.Unmarshal(raw, &s); err != nil {
			return draft, fmt.Errorf("invalid fields for %s: %w", stepKey, err)
		}
		draft.Step3 = &s
	case models.StepPayment:
		var s models.PaymentPreferences
		if err := json.Unmarshal(raw, &s); err != nil {
			return draft, fmt.Errorf("invalid fields for %s: %w", stepKey, err)
		}
		draft.Step4 = &s
	}

	return draft, nil
}

// stepRecord returns the current sub-record for stepKey, or nil when the step
// has never been touched. Unknown step keys are rejected.
func stepRecord(draft *models.BookingDraft, stepKey string) (any, error) {
	switch stepKey {
	case models.StepSelectedCar:
		if draft.SelectedCar == nil {
			return nil, nil
		}
		return draft.SelectedCar, nil
	case models.StepTrip:
		if draft.Step1 == nil {
			return nil, nil
		}
		return draft.Step1, nil
	case models.StepCoverage:
		if draft.Step2 == nil {
			return nil, nil
		}
		return draft.Step2, nil
	case models.StepCustomer:
		if draft.Step3 == nil {
			return nil, nil
		}
		return draft.Step3, nil
	case models.StepPayment:
		if draft.Step4 == nil {
			return nil, nil
		}
		return draft.Step4, nil
	default:
		return nil, fmt.Errorf("unknown step key %q", stepKey)
	}
}

// StepComplete reports whether the step has a sub-record.
func StepComplete(draft models.BookingDraft, stepKey string) bool {
	rec, err := stepRecord(&draft, stepKey)
	return err == nil && rec != nil
}

// CanEnterStep reports whether all steps before stepKey are complete.
func CanEnterStep(draft models.BookingDraft, stepKey string) bool {
	for _, key := range stepOrder {
		if key == stepKey {
			return true
		}
		if !StepComplete(draft, key) {
			return false
		}
	}
	// Unknown keys are never reachable.
	return false
}

// FirstMissingStep returns the first step key without data, or "" when the
// draft is submittable.
func FirstMissingStep(draft models.BookingDraft) string {
	for _, key := range stepOrder {
		if !StepComplete(draft, key) {
			return key
		}
	}
	return ""
}
