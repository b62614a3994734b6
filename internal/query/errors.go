package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUpstreamUnavailable is matched (via errors.Is) by every error returned
// when the dataset provider fails.
var ErrUpstreamUnavailable = errors.New("query: dataset provider unavailable")

// UpstreamError wraps a hospital store failure. Op names the failed read.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	op := e.Op
	if op == "" {
		op = "hospital store"
	}
	return fmt.Sprintf("query: %s: %v", op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrUpstreamUnavailable) hold for any UpstreamError.
func (e *UpstreamError) Is(target error) bool { return target == ErrUpstreamUnavailable }

// FieldError is a single rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every rejected field of one request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + " " + f.Message
	}
	return "query: invalid request: " + strings.Join(msgs, "; ")
}

// FieldMap returns the field messages keyed by field name. When a field was
// rejected more than once, the first message wins.
func (e *ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := m[f.Field]; !ok {
			m[f.Field] = f.Message
		}
	}
	return m
}

// Add records a rejected field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Has reports whether field has already been rejected.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Err returns e when any field was rejected, nil otherwise.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
