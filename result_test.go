package resultfu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	Id   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

func TestPredicates(t *testing.T) {
	for name, tc := range map[string]struct {
		Result       Result[user]
		IsOK         bool
		IsOKWithData bool
		IsError      bool
		HasWarning   bool
	}{
		"OKWithData": {
			Result:       OK(user{Id: 1}),
			IsOK:         true,
			IsOKWithData: true,
		},
		"Empty": {
			Result: Empty[user](),
			IsOK:   true,
		},
		"Error": {
			Result:  Err[user](ErrorDetail{Code: "NOT_FOUND", Message: "missing", Status: 404}),
			IsError: true,
		},
		"ExplicitErrorLevel": {
			Result:  Err[user](ErrorDetail{Code: "X", Message: "x", Level: LevelError}),
			IsError: true,
		},
		"Critical": {
			Result:  Err[user](ErrorDetail{Code: "X", Message: "x", Level: LevelCritical}),
			IsError: true,
		},
		"WarningOnly": {
			Result:     Err[user](ErrorDetail{Code: "DEPRECATED", Message: "old field", Level: LevelWarning}),
			HasWarning: true,
		},
		"InfoOnly": {
			Result: Err[user](ErrorDetail{Code: "NOTE", Message: "fyi", Level: LevelInfo}),
		},
		"WarningThenError": {
			Result: Err[user](
				ErrorDetail{Code: "DEPRECATED", Message: "old field", Level: LevelWarning},
				ErrorDetail{Code: "BROKEN", Message: "broken"},
			),
			IsError:    true,
			HasWarning: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.IsOK, tc.Result.IsOK())
			assert.Equal(t, tc.IsOKWithData, tc.Result.IsOKWithData())
			assert.Equal(t, tc.IsError, tc.Result.IsError())
			assert.Equal(t, tc.HasWarning, tc.Result.HasWarning())
			assert.Equal(t, tc.IsOK, len(tc.Result.Errors()) == 0)
		})
	}
}

func TestResult_Data(t *testing.T) {
	data, ok := OK(user{Id: 1}).Data()
	assert.True(t, ok)
	assert.Equal(t, user{Id: 1}, data)

	_, ok = Empty[user]().Data()
	assert.False(t, ok)

	_, ok = Err[user](ErrorDetail{Code: "X", Message: "x"}).Data()
	assert.False(t, ok)
}

func TestResult_With(t *testing.T) {
	r := OK(user{Id: 1})
	r2 := r.WithStatus(201).WithMetaValue("traceId", "abc")

	assert.Equal(t, 0, r.Status())
	assert.Nil(t, r.Meta())

	assert.Equal(t, 201, r2.Status())
	assert.Equal(t, Meta{"traceId": "abc"}, r2.Meta())

	r3 := r2.WithMetaValue("timestamp", "2020-01-01T00:00:00Z")
	assert.Equal(t, Meta{"traceId": "abc"}, r2.Meta())
	assert.Equal(t, Meta{"traceId": "abc", "timestamp": "2020-01-01T00:00:00Z"}, r3.Meta())

	r4 := r3.WithMeta(Meta{"pagination": Pagination{Page: 1, PageSize: 10, Total: 42}})
	assert.Equal(t, Meta{"pagination": Pagination{Page: 1, PageSize: 10, Total: 42}}, r4.Meta())
}

func TestMap(t *testing.T) {
	meta := Meta{"traceId": "abc"}
	r := Map(OK(user{Id: 1, Name: "ada"}).WithStatus(200).WithMeta(meta), func(u user) (string, error) {
		return u.Name, nil
	})
	require.True(t, r.IsOKWithData())
	data, _ := r.Data()
	assert.Equal(t, "ada", data)
	assert.Equal(t, 200, r.Status())
	assert.Equal(t, meta, r.Meta())
}

func TestMap_ShortCircuits(t *testing.T) {
	invocations := 0
	fn := func(u user) (string, error) {
		invocations++
		return u.Name, nil
	}

	detail := ErrorDetail{Code: "NOT_FOUND", Message: "missing", Status: 404}
	r := Map(Err[user](detail).WithStatus(404).WithMetaValue("traceId", "abc"), fn)
	assert.Equal(t, []ErrorDetail{detail}, r.Errors())
	assert.Equal(t, 404, r.Status())
	assert.Equal(t, Meta{"traceId": "abc"}, r.Meta())
	_, ok := r.Data()
	assert.False(t, ok)

	r = Map(Empty[user]().WithStatus(204).WithMetaValue("traceId", "abc"), fn)
	assert.True(t, r.IsOK())
	assert.False(t, r.IsOKWithData())
	assert.Equal(t, 204, r.Status())
	assert.Equal(t, Meta{"traceId": "abc"}, r.Meta())

	assert.Equal(t, 0, invocations)
}

func TestMap_Failure(t *testing.T) {
	for name, fn := range map[string]func(user) (string, error){
		"Error": func(user) (string, error) {
			return "", fmt.Errorf("boom")
		},
		"Panic": func(user) (string, error) {
			panic("boom")
		},
		"PanicError": func(user) (string, error) {
			panic(fmt.Errorf("boom"))
		},
	} {
		t.Run(name, func(t *testing.T) {
			r := Map(OK(user{Id: 1}).WithMetaValue("traceId", "abc"), fn)
			require.Len(t, r.Errors(), 1)
			assert.Equal(t, ErrorDetail{
				Code:    "MAP_ERROR",
				Message: "boom",
				Status:  500,
				Level:   LevelError,
			}, r.Errors()[0])
			assert.Equal(t, 500, r.Status())
			assert.Equal(t, Meta{"traceId": "abc"}, r.Meta())
			_, ok := r.Data()
			assert.False(t, ok)
		})
	}
}

func TestMap_PanicFallbackMessage(t *testing.T) {
	r := Map(OK(user{Id: 1}), func(user) (string, error) {
		panic(42)
	})
	require.Len(t, r.Errors(), 1)
	assert.Equal(t, "MAP_ERROR", r.Errors()[0].Code)
	assert.Equal(t, "transform failed", r.Errors()[0].Message)
}

func TestFlatMap(t *testing.T) {
	expected := OK("ada").WithStatus(201).WithMetaValue("traceId", "xyz")
	r := FlatMap(OK(user{Id: 1, Name: "ada"}), func(u user) Result[string] {
		return expected
	})
	assert.Equal(t, expected, r)

	inner := Err[string](ErrorDetail{Code: "DOWNSTREAM", Message: "nope", Status: 502})
	r = FlatMap(OK(user{Id: 1}), func(u user) Result[string] {
		return inner
	})
	assert.Equal(t, inner, r)
}

func TestFlatMap_ShortCircuits(t *testing.T) {
	invocations := 0
	fn := func(u user) Result[string] {
		invocations++
		return OK(u.Name)
	}

	detail := ErrorDetail{Code: "X", Message: "x"}
	r := FlatMap(Err[user](detail), fn)
	assert.Equal(t, []ErrorDetail{detail}, r.Errors())

	r = FlatMap(Empty[user](), fn)
	assert.True(t, r.IsOK())
	assert.False(t, r.IsOKWithData())

	assert.Equal(t, 0, invocations)
}

func TestFlatMap_Panic(t *testing.T) {
	r := FlatMap(OK(user{Id: 1}).WithMetaValue("traceId", "abc"), func(user) Result[string] {
		panic("boom")
	})
	require.Len(t, r.Errors(), 1)
	assert.Equal(t, ErrorDetail{
		Code:    "FLATMAP_ERROR",
		Message: "boom",
		Status:  500,
		Level:   LevelError,
	}, r.Errors()[0])
	assert.Equal(t, 500, r.Status())
	assert.Equal(t, Meta{"traceId": "abc"}, r.Meta())
}

func TestMap_Chained(t *testing.T) {
	invocations := 0
	r := Err[user](ErrorDetail{Code: "NOT_FOUND", Message: "missing", Status: 404})
	step1 := Map(r, func(u user) (int, error) {
		invocations++
		return u.Id, nil
	})
	step2 := FlatMap(step1, func(id int) Result[string] {
		invocations++
		return OK(fmt.Sprint(id))
	})
	step3 := Map(step2, func(s string) (string, error) {
		invocations++
		return s + "!", nil
	})

	assert.Equal(t, 0, invocations)
	assert.Equal(t, r.Errors(), step3.Errors())
}
