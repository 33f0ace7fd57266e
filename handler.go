package resultfu

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// Responder configures how Results are written as HTTP responses.
type Responder struct {
	// If given, marshal failures are logged here. Otherwise the standard
	// logrus logger is used.
	Logger logrus.FieldLogger

	// If true, responses use the compact error encoding.
	Compact bool
}

func (rd *Responder) logger() logrus.FieldLogger {
	if rd != nil && rd.Logger != nil {
		return rd.Logger
	}
	return logrus.StandardLogger()
}

func (rd *Responder) compact() bool {
	return rd != nil && rd.Compact
}

// Respond writes the Result to w as a JSON response, with the status code
// chosen by StatusOf. A 204 response carries no body. rd may be nil for
// defaults. If the Result's payload or meta cannot be marshaled, a
// synthesized ENCODE_ERROR document is written with a 500 status instead,
// and the failure is logged.
func Respond[T any](w http.ResponseWriter, r Result[T], rd *Responder) {
	status := StatusOf(r)
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	body, err := EncodeJSON(r, rd.compact())
	if err != nil {
		rd.logger().WithError(err).Error("error marshaling result")
		status = http.StatusInternalServerError
		fallback := Err[T](ErrorDetail{
			Code:    "ENCODE_ERROR",
			Message: err.Error(),
			Status:  http.StatusInternalServerError,
			Level:   LevelError,
		})
		// The fallback document contains only strings, so this can't fail.
		body, _ = jsoniter.Marshal(Encode(fallback, rd.compact()))
	}

	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	w.Write(body)
}

// Handler adapts a function returning a Result into an http.Handler.
func Handler[T any](rd *Responder, fn func(r *http.Request) Result[T]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Respond(w, fn(r), rd)
	})
}
