// Package resultfu provides a small typed Result value for representing an
// operation's outcome (a success payload plus zero or more structured errors)
// in a uniform shape usable across transport boundaries, along with a dual
// verbose/compact JSON codec for it.
package resultfu

// Meta is an open-ended side channel attached to a Result. Well-known keys
// include "pagination", "traceId", and "timestamp", but any string-keyed
// entries are allowed.
type Meta map[string]any

// Pagination is the conventional shape for the "pagination" meta key.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// A Result bundles an operation's outcome: an optional payload, an ordered
// list of structured errors, an optional transport status, and optional
// metadata. Results are immutable once constructed; the With* builders and
// the transform operations return new values. A Result may therefore be
// shared freely across goroutines.
type Result[T any] struct {
	data   *T
	errors []ErrorDetail
	status int
	meta   Meta
}

// New constructs a Result storing the given fields verbatim. data may be nil,
// which signifies "no payload" rather than an error. status of zero means
// unspecified. The errors slice is not copied and must not be mutated
// afterwards.
func New[T any](data *T, errs []ErrorDetail, status int, meta Meta) Result[T] {
	return Result[T]{
		data:   data,
		errors: errs,
		status: status,
		meta:   meta,
	}
}

// OK returns a successful Result carrying the given payload.
func OK[T any](data T) Result[T] {
	return Result[T]{data: &data}
}

// Empty returns a successful Result with no payload, e.g. for a deletion that
// has nothing to report back.
func Empty[T any]() Result[T] {
	return Result[T]{}
}

// Err returns an error Result carrying the given entries, in order.
func Err[T any](errs ...ErrorDetail) Result[T] {
	return Result[T]{errors: errs}
}

// Data returns the payload and whether one is present.
func (r Result[T]) Data() (T, bool) {
	if r.data == nil {
		var zero T
		return zero, false
	}
	return *r.data, true
}

// Errors returns the Result's error entries. The returned slice must not be
// mutated.
func (r Result[T]) Errors() []ErrorDetail { return r.errors }

// Status returns the explicit transport status, or zero if none was set. See
// StatusOf for status inference.
func (r Result[T]) Status() int { return r.status }

// Meta returns the Result's metadata, or nil. The returned map must not be
// mutated.
func (r Result[T]) Meta() Meta { return r.meta }

// IsOK reports whether the Result carries no error entries at all. This is
// the success gate used by Map and FlatMap. Note that a Result carrying only
// warning-level entries is not OK by this predicate; use IsError for
// severity-aware classification.
func (r Result[T]) IsOK() bool { return len(r.errors) == 0 }

// IsOKWithData reports whether the Result is error-free and carries a
// payload, distinguishing "succeeded with no content" from "succeeded with a
// payload".
func (r Result[T]) IsOKWithData() bool { return len(r.errors) == 0 && r.data != nil }

// IsError reports whether any entry classifies as an error: its level is
// absent, LevelError, or LevelCritical. A Result whose entries are all
// warnings or notices is not an error by this predicate.
func (r Result[T]) IsError() bool {
	for _, e := range r.errors {
		if e.classifiesAsError() {
			return true
		}
	}
	return false
}

// HasWarning reports whether any entry has LevelWarning.
func (r Result[T]) HasWarning() bool {
	for _, e := range r.errors {
		if e.Level == LevelWarning {
			return true
		}
	}
	return false
}

// WithStatus returns a copy of the Result with the given explicit status.
func (r Result[T]) WithStatus(status int) Result[T] {
	r.status = status
	return r
}

// WithMeta returns a copy of the Result with the given metadata, replacing
// any existing metadata.
func (r Result[T]) WithMeta(meta Meta) Result[T] {
	r.meta = meta
	return r
}

// WithMetaValue returns a copy of the Result with one metadata entry added.
// The existing metadata map is never mutated.
func (r Result[T]) WithMetaValue(key string, value any) Result[T] {
	meta := make(Meta, len(r.meta)+1)
	for k, v := range r.meta {
		meta[k] = v
	}
	meta[key] = value
	r.meta = meta
	return r
}

// Map transforms the payload of a successful Result with fn, carrying status
// and meta through. fn is never invoked when the Result has error entries
// (they propagate as-is, with the payload dropped) or when it has no payload
// (nothing to transform). A non-nil error returned by fn, or a panic raised
// by it, never escapes to the caller: it is captured as a single MAP_ERROR
// entry with status 500, with meta carried through and the payload dropped.
func Map[T, U any](r Result[T], fn func(T) (U, error)) (out Result[U]) {
	if len(r.errors) > 0 {
		return Result[U]{errors: r.errors, status: r.status, meta: r.meta}
	}
	if r.data == nil {
		return Result[U]{status: r.status, meta: r.meta}
	}

	defer func() {
		if v := recover(); v != nil {
			out = transformFailure[U](r.meta, "MAP_ERROR", recoveredMessage(v))
		}
	}()

	mapped, err := fn(*r.data)
	if err != nil {
		return transformFailure[U](r.meta, "MAP_ERROR", err.Error())
	}
	return Result[U]{data: &mapped, status: r.status, meta: r.meta}
}

// FlatMap is like Map, but fn returns a complete Result which is passed
// through without wrapping, allowing chained operations to contribute their
// own errors, status, and meta. A panic in fn is captured as a FLATMAP_ERROR
// entry.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) (out Result[U]) {
	if len(r.errors) > 0 {
		return Result[U]{errors: r.errors, status: r.status, meta: r.meta}
	}
	if r.data == nil {
		return Result[U]{status: r.status, meta: r.meta}
	}

	defer func() {
		if v := recover(); v != nil {
			out = transformFailure[U](r.meta, "FLATMAP_ERROR", recoveredMessage(v))
		}
	}()

	return fn(*r.data)
}

func transformFailure[U any](meta Meta, code, message string) Result[U] {
	return Result[U]{
		errors: []ErrorDetail{{
			Code:    code,
			Message: message,
			Status:  500,
			Level:   LevelError,
		}},
		status: 500,
		meta:   meta,
	}
}

func recoveredMessage(v any) string {
	switch v := v.(type) {
	case error:
		return v.Error()
	case string:
		return v
	}
	return "transform failed"
}
