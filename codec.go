package resultfu

import (
	"encoding/json"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// compactError is the compact wire form of an ErrorDetail: single-letter keys
// for the scalar fields, with meta and cause keeping their names. Keeping the
// two shapes as a struct pair with one recursive converter in each direction
// guarantees the formats can't drift apart.
type compactError struct {
	Code    string         `json:"c"`
	Message string         `json:"m"`
	Status  int            `json:"s,omitempty"`
	Path    string         `json:"p,omitempty"`
	Level   Level          `json:"l,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
	Cause   *compactError  `json:"cause,omitempty"`
}

func (e ErrorDetail) compact() compactError {
	out := compactError{
		Code:    e.Code,
		Message: e.Message,
		Status:  e.Status,
		Path:    e.Path,
		Level:   e.Level,
		Meta:    e.Meta,
	}
	if e.Cause != nil {
		cause := e.Cause.compact()
		out.Cause = &cause
	}
	return out
}

func (e compactError) expand() ErrorDetail {
	out := ErrorDetail{
		Code:    e.Code,
		Message: e.Message,
		Status:  e.Status,
		Path:    e.Path,
		Level:   e.Level,
		Meta:    e.Meta,
	}
	if e.Cause != nil {
		cause := e.Cause.expand()
		out.Cause = &cause
	}
	return out
}

// Encode converts the Result into its wire document: an "errors" key that is
// always present, "data" and "status" only when set, and every meta key
// flattened into the top level. Meta keys are copied last, so a meta entry
// named like a reserved key shadows it, matching the object-spread semantics
// consumers of this format already rely on.
func Encode[T any](r Result[T], compact bool) map[string]any {
	doc := make(map[string]any, len(r.meta)+3)

	if compact {
		encoded := make([]compactError, len(r.errors))
		for i, e := range r.errors {
			encoded[i] = e.compact()
		}
		doc["errors"] = encoded
	} else {
		encoded := r.errors
		if encoded == nil {
			encoded = []ErrorDetail{}
		}
		doc["errors"] = encoded
	}

	if r.data != nil {
		doc["data"] = *r.data
	}
	if r.status != 0 {
		doc["status"] = r.status
	}
	for k, v := range r.meta {
		doc[k] = v
	}
	return doc
}

// EncodeJSON marshals the Result's wire document.
func EncodeJSON[T any](r Result[T], compact bool) ([]byte, error) {
	return jsoniter.Marshal(Encode(r, compact))
}

// DecodeJSON parses a wire document in either the verbose or the compact
// format, detected automatically. It never returns an error: malformed input
// yields an INVALID_JSON error Result instead, so a decode failure flows
// through the same channel as any other failure.
func DecodeJSON[T any](input []byte) Result[T] {
	var fields map[string]json.RawMessage
	if err := jsoniter.Unmarshal(input, &fields); err != nil {
		return invalidInput[T]("INVALID_JSON", errors.Wrap(err, "error parsing result document"))
	}
	if fields == nil {
		return invalidInput[T]("INVALID_JSON", errors.New("result document must be an object"))
	}

	// A literal null unmarshals into a nil slice without complaint, so it has
	// to be rejected explicitly to keep the shape check meaningful.
	rawErrors, ok := fields["errors"]
	if !ok || isJSONNull(rawErrors) {
		return invalidInput[T]("INVALID_JSON", errors.New("result document has no errors array"))
	}
	var entries []json.RawMessage
	if err := jsoniter.Unmarshal(rawErrors, &entries); err != nil {
		return invalidInput[T]("INVALID_JSON", errors.Wrap(err, "error parsing errors array"))
	}

	details, err := decodeErrors(entries, rawErrors)
	if err != nil {
		return invalidInput[T]("INVALID_JSON", err)
	}

	var result Result[T]
	result.errors = details

	if raw, ok := fields["data"]; ok && !isJSONNull(raw) {
		var data T
		if err := jsoniter.Unmarshal(raw, &data); err != nil {
			return invalidInput[T]("INVALID_JSON", errors.Wrap(err, "error parsing result data"))
		}
		result.data = &data
	}

	if raw, ok := fields["status"]; ok && !isJSONNull(raw) {
		if err := jsoniter.Unmarshal(raw, &result.status); err != nil {
			return invalidInput[T]("INVALID_JSON", errors.Wrap(err, "error parsing result status"))
		}
	}

	for key, raw := range fields {
		switch key {
		case "errors", "data", "status":
			continue
		}
		var value any
		if err := jsoniter.Unmarshal(raw, &value); err != nil {
			return invalidInput[T]("INVALID_JSON", errors.Wrapf(err, "error parsing meta key %q", key))
		}
		if result.meta == nil {
			result.meta = Meta{}
		}
		result.meta[key] = value
	}

	return result
}

// decodeErrors expands the errors array into ErrorDetail values. The first
// entry decides the format for the whole array: if it has both "c" and "m"
// keys, every entry is treated as compact. A mixed-format array is not
// detected; this matches deployed consumers of the format, which apply the
// same first-entry heuristic.
func decodeErrors(entries []json.RawMessage, rawErrors json.RawMessage) ([]ErrorDetail, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	var first map[string]json.RawMessage
	if err := jsoniter.Unmarshal(entries[0], &first); err != nil {
		return nil, errors.Wrap(err, "error parsing error entry")
	}
	_, hasC := first["c"]
	_, hasM := first["m"]

	if hasC && hasM {
		var compacted []compactError
		if err := jsoniter.Unmarshal(rawErrors, &compacted); err != nil {
			return nil, errors.Wrap(err, "error parsing compact error entries")
		}
		details := make([]ErrorDetail, len(compacted))
		for i, e := range compacted {
			details[i] = e.expand()
		}
		return details, nil
	}

	var details []ErrorDetail
	if err := jsoniter.Unmarshal(rawErrors, &details); err != nil {
		return nil, errors.Wrap(err, "error parsing error entries")
	}
	return details, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return len(raw) == 4 && string(raw) == "null"
}

func invalidInput[T any](code string, err error) Result[T] {
	message := fmt.Sprintf("invalid result input: %s", code)
	if err != nil {
		message = err.Error()
	}
	return Result[T]{
		errors: []ErrorDetail{{
			Code:    code,
			Message: message,
			Status:  400,
			Level:   LevelError,
		}},
		status: 400,
	}
}
