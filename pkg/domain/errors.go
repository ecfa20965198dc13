package domain

import "errors"

// ErrInvalidInput is returned when generator or runner input violates its contract.
// Callers are expected to keep their prior valid state when they see it.
var ErrInvalidInput = errors.New("invalid input")

// ErrUnknownAlgorithm is returned when an algorithm ID has no registered runner.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// ErrRunnerInternal signals a defect inside a runner (e.g. an index out of range).
// The run is aborted and no partial step list is returned.
var ErrRunnerInternal = errors.New("runner internal error")

// ErrInvalidTransition is returned when a playback operation is not valid in the current status.
var ErrInvalidTransition = errors.New("invalid playback transition")

// ErrExternalService is returned when the explanation service fails (network, auth, rate limit).
var ErrExternalService = errors.New("external service error")

// ErrMissingCredential is returned when the explanation service has no API key configured.
var ErrMissingCredential = errors.New("missing credential")

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// ErrSettingNotFound is returned when a settings key has no stored value.
var ErrSettingNotFound = errors.New("setting not found")
