package stt

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers failures before a response was received.
	ErrTransport = errors.New("transcription transport failure")
	// ErrStatus is matched by every *StatusError.
	ErrStatus = errors.New("transcription service returned non-success status")
	// ErrMalformedResponse means the body lacked the expected verbose fields.
	ErrMalformedResponse = errors.New("malformed transcription response")
)

// StatusError carries the HTTP status and body of a rejected request.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("transcription service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("transcription service returned status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}
