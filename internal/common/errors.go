package common

import "errors"

// Sentinel errors shared by every service. Handlers map them to transport codes
// with HTTPStatus and GRPCStatus, so services only ever wrap them.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrAlreadyLiked      = errors.New("already liked")
	ErrNotLiked          = errors.New("not liked")
	ErrAccountDisabled   = errors.New("account disabled")
	ErrEmailNotVerified  = errors.New("email not verified")
	ErrOTPInvalid        = errors.New("invalid or expired code")
	ErrOTPCooldown       = errors.New("please wait before requesting a new code")
	ErrProfanity         = errors.New("watch your profanity")
	ErrUnavailable       = errors.New("service unavailable")
)
