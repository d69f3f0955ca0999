package entities

import "errors"

// Domain errors
var (
	ErrBeneficiaryNotFound    = errors.New("beneficiary not found")
	ErrWorkerNotFound         = errors.New("worker not found")
	ErrAlertNotFound          = errors.New("alert not found")
	ErrInvalidAlertTransition = errors.New("invalid alert status transition")
	ErrEmptyTranscript        = errors.New("transcript is empty")
)
