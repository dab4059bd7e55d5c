package request

import "fmt"

// Status is the phase of a request.
type Status int

const (
	// Loading means an attempt is in flight, or no key was requested yet.
	Loading Status = iota
	// Success means the last attempt returned data.
	Success
	// Error means the last attempt failed.
	Error
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is an immutable snapshot of a request. Data is meaningful only
// under Success and Err only under Error; both are zero while Loading.
type State[T any] struct {
	Data   T
	Status Status
	Err    error
}

// IsLoading reports whether the state is Loading.
func (s State[T]) IsLoading() bool { return s.Status == Loading }

// IsSuccess reports whether the state is Success.
func (s State[T]) IsSuccess() bool { return s.Status == Success }

// IsError reports whether the state is Error.
func (s State[T]) IsError() bool { return s.Status == Error }

func loading[T any]() State[T] {
	return State[T]{Status: Loading}
}

func succeeded[T any](data T) State[T] {
	return State[T]{Data: data, Status: Success}
}

func failed[T any](err error) State[T] {
	return State[T]{Status: Error, Err: err}
}
