package schemas

import (
	"time"
)

const (
	REPORT_TYPE_CONVERSION  = "conversion"
	REPORT_TYPE_SOURCES     = "sources"
	REPORT_TYPE_BOTTLENECKS = "bottlenecks"
	REPORT_TYPE_ATTRIBUTION = "attribution"
	REPORT_TYPE_TRENDS      = "trends"
	REPORT_TYPE_SUMMARY     = "summary"
)

type ApiResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// DateRange is an inclusive window. Reversed ranges are accepted and match nothing.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: start, End: end}
}

// Days is the number of whole days between Start and End.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

type ResultStatus string

const (
	RESULT_STATUS_OK     ResultStatus = "ok"
	RESULT_STATUS_FAILED ResultStatus = "failed"
)

// Result carries an analytic value together with an explicit outcome. A failed
// result still holds a well-typed zero or empty Value.
type Result[T any] struct {
	Value  T            `json:"value"`
	Status ResultStatus `json:"status"`
	Error  string       `json:"error,omitempty"`
}

func Succeeded[T any](value T) Result[T] {
	return Result[T]{Value: value, Status: RESULT_STATUS_OK}
}

func Failed[T any](value T, err error) Result[T] {
	result := Result[T]{Value: value, Status: RESULT_STATUS_FAILED}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

func (r Result[T]) OK() bool {
	return r.Status == RESULT_STATUS_OK
}
