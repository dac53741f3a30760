package ai

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCompletion is returned when the provider answered without any text.
var ErrEmptyCompletion = errors.New("empty completion")

// GatewayError describes a failed provider call.
type GatewayError struct {
	Op     string
	Model  string
	Status int
	Err    error
}

func (e *GatewayError) Error() string {
	var b strings.Builder
	b.WriteString("ai ")
	b.WriteString(e.Op)
	if e.Model != "" {
		fmt.Fprintf(&b, " [%s]", e.Model)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// IsModelUnavailable reports whether err says the requested model is gone or cannot serve the call.
func IsModelUnavailable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "not supported")
}
