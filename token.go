package resultfu

import (
	"encoding/base64"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"
)

// tokenDocument is the binary wire form used by the token codec. Unlike the
// JSON document, meta stays nested: the token is opaque to consumers, so
// there is no flattening contract to honor.
type tokenDocument[T any] struct {
	Data   *T            `msgpack:"data,omitempty"`
	Errors []ErrorDetail `msgpack:"errors,omitempty"`
	Status int           `msgpack:"status,omitempty"`
	Meta   Meta          `msgpack:"meta,omitempty"`
}

// EncodeToken serializes the Result into an opaque URL-safe string, suitable
// for carrying an outcome through a queue message or a redirect parameter.
func EncodeToken[T any](r Result[T]) (string, error) {
	b, err := msgpack.Marshal(tokenDocument[T]{
		Data:   r.data,
		Errors: r.errors,
		Status: r.status,
		Meta:   r.meta,
	})
	if err != nil {
		return "", errors.Wrap(err, "error marshaling result token")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodeToken parses a string produced by EncodeToken. Like DecodeJSON, it
// never returns an error: a malformed token yields an INVALID_TOKEN error
// Result.
func DecodeToken[T any](s string) Result[T] {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return invalidInput[T]("INVALID_TOKEN", errors.Wrap(err, "error decoding result token"))
	}
	var doc tokenDocument[T]
	if err := msgpack.Unmarshal(b, &doc); err != nil {
		return invalidInput[T]("INVALID_TOKEN", errors.Wrap(err, "error unmarshaling result token"))
	}
	return Result[T]{
		data:   doc.Data,
		errors: doc.Errors,
		status: doc.Status,
		meta:   doc.Meta,
	}
}
