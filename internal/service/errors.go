package service

import "errors"

// ErrInvalidInput marks request payloads the services refuse to store.
// Handlers map it to a 400.
var ErrInvalidInput = errors.New("invalid input")
