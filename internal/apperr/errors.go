package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrNotFound indicates that the requested delivery or notification does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidTransition indicates a delivery status change the lifecycle
// state machine does not permit.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrOfferPending indicates an offer was presented while another decision
// is still pending.
var ErrOfferPending = errors.New("offer already pending")

// ErrOfferExpired indicates the offer's decision deadline has passed.
var ErrOfferExpired = errors.New("offer expired")

// ErrFetchFailed indicates the remote notification fetch failed.
var ErrFetchFailed = errors.New("notification fetch failed")

// ErrMarkFailed indicates the remote mark-read call failed.
var ErrMarkFailed = errors.New("notification mark failed")
