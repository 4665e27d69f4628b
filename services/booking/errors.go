package booking

import "fmt"

// WizardError is a typed error surfaced by the booking wizard.
type WizardError struct {
	Code    string
	Message string
}

func (e *WizardError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrInvalidRange blocks pricing and submission when the return instant does
// not follow the pickup instant.
var ErrInvalidRange = &WizardError{
	Code:    "invalidRange",
	Message: "return time must be strictly after pickup time",
}

// ErrDraftNotFound signals that no draft exists for the session.
var ErrDraftNotFound = &WizardError{
	Code:    "draftNotFound",
	Message: "no booking draft for this session",
}

func NewStepGateError(stepKey string) error {
	return &WizardError{
		Code:    "stepNotReachable",
		Message: fmt.Sprintf("step %q requires all previous steps to be filled in", stepKey),
	}
}

func NewIncompleteDraftError(missing string) error {
	return &WizardError{
		Code:    "incompleteDraft",
		Message: fmt.Sprintf("cannot submit booking: step %q has no data", missing),
	}
}
