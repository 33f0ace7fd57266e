package resultfu

import "net/http"

// StatusOf returns the transport status code that best represents the Result.
// An explicit status always wins. An error-free Result maps to 200 or 204
// depending on payload presence. Otherwise the first entry with a server
// error status decides, then the first entry with any status, then 400.
func StatusOf[T any](r Result[T]) int {
	if r.status != 0 {
		return r.status
	}
	if len(r.errors) == 0 {
		if r.data != nil {
			return http.StatusOK
		}
		return http.StatusNoContent
	}
	for _, e := range r.errors {
		if e.Status >= http.StatusInternalServerError {
			return e.Status
		}
	}
	if r.errors[0].Status != 0 {
		return r.errors[0].Status
	}
	return http.StatusBadRequest
}
