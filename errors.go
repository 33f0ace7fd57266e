package resultfu

import (
	"fmt"
	"strings"
)

// Level classifies the severity of an ErrorDetail. An absent level is treated
// as LevelError for classification purposes.
type Level string

const (
	LevelInfo     Level = "info"
	LevelWarning  Level = "warning"
	LevelError    Level = "error"
	LevelCritical Level = "critical"
)

// ErrorDetail provides structured information about one condition encountered
// while performing an operation.
type ErrorDetail struct {
	// A stable, machine-readable identifier for the kind of problem, e.g.
	// "NOT_FOUND" or "VALIDATION_ERROR".
	Code string `json:"code" msgpack:"code"`

	// A human-readable description of the problem.
	Message string `json:"message" msgpack:"message"`

	// The transport status code applicable to this problem, e.g. an HTTP
	// status. Zero means unspecified.
	Status int `json:"status,omitempty" msgpack:"status,omitempty"`

	// A pointer to the field or location the problem applies to. Primarily
	// used by validation errors.
	Path string `json:"path,omitempty" msgpack:"path,omitempty"`

	// The severity of the problem. When empty, the entry classifies as
	// LevelError.
	Level Level `json:"level,omitempty" msgpack:"level,omitempty"`

	// Free-form context about this occurrence of the problem.
	Meta map[string]any `json:"meta,omitempty" msgpack:"meta,omitempty"`

	// The underlying condition that caused this one, forming a chain back to
	// the root cause.
	Cause *ErrorDetail `json:"cause,omitempty" msgpack:"cause,omitempty"`
}

// classifiesAsError reports whether the entry counts against IsError. Entries
// with no level are treated as errors.
func (e ErrorDetail) classifiesAsError() bool {
	switch e.Level {
	case "", LevelError, LevelCritical:
		return true
	}
	return false
}

// An ErrorTemplate is a reusable recipe for an ErrorDetail. Message may
// contain placeholder tokens of the form {name}, filled in from
// BuildParams.Args.
type ErrorTemplate struct {
	Code    string
	Message string

	// The default status for errors built from this template. Optional.
	Status int

	// The default level for errors built from this template. Optional.
	Level Level
}

// DefineError returns a template for the given code and message. Status and
// level can be set on the returned value.
func DefineError(code, message string) ErrorTemplate {
	return ErrorTemplate{
		Code:    code,
		Message: message,
	}
}

// BuildParams customizes a single ErrorDetail built from a template. All
// fields are optional.
type BuildParams struct {
	// Values for the {name} placeholders in the template's message. Values
	// are stringified with fmt.Sprint.
	Args map[string]any

	// If non-empty, used verbatim instead of the template's message. No
	// placeholder interpolation is performed.
	Message string

	Status int
	Level  Level
	Path   string
	Meta   map[string]any
	Cause  *ErrorDetail
}

// Build produces an ErrorDetail from the template. It may be called with no
// arguments when the template's message has no placeholders.
func (t ErrorTemplate) Build(params ...BuildParams) ErrorDetail {
	var p BuildParams
	if len(params) > 0 {
		p = params[0]
	}

	message := p.Message
	if message == "" {
		message = interpolate(t.Message, p.Args)
	}

	status := t.Status
	if p.Status != 0 {
		status = p.Status
	}

	level := t.Level
	if p.Level != "" {
		level = p.Level
	}

	return ErrorDetail{
		Code:    t.Code,
		Message: message,
		Status:  status,
		Path:    p.Path,
		Level:   level,
		Meta:    p.Meta,
		Cause:   p.Cause,
	}
}

func interpolate(template string, args map[string]any) string {
	if len(args) == 0 || !strings.Contains(template, "{") {
		return template
	}
	out := template
	for name, value := range args {
		out = strings.ReplaceAll(out, "{"+name+"}", fmt.Sprint(value))
	}
	return out
}

// A FieldError names one field that failed validation.
type FieldError struct {
	Path    string
	Message string
}

const validationFallbackMessage = "Validation failed"

// ValidationErrors builds an error Result with one VALIDATION_ERROR entry per
// field, in input order. An empty per-field message falls back to a generic
// one.
func ValidationErrors[T any](fields []FieldError) Result[T] {
	details := make([]ErrorDetail, len(fields))
	for i, field := range fields {
		message := field.Message
		if message == "" {
			message = validationFallbackMessage
		}
		details[i] = ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: message,
			Status:  400,
			Path:    field.Path,
		}
	}
	return Err[T](details...)
}
