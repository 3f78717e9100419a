package models

// OutcomeKind distinguishes the three results of reading a cookie slot.
type OutcomeKind int

const (
	OutcomeAbsent OutcomeKind = iota
	OutcomeSuccess
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailed:
		return "failed"
	default:
		return "absent"
	}
}

// Outcome is the result of a best-effort read: Success(value), Absent, or
// Failed(reason). Store reads return it; the service collapses it to
// data-or-nothing so Absent and Failed never reach callers as errors.
type Outcome[T any] struct {
	kind   OutcomeKind
	value  T
	reason error
}

// Success wraps a decoded value.
func Success[T any](value T) Outcome[T] {
	return Outcome[T]{kind: OutcomeSuccess, value: value}
}

// Absent reports that nothing is stored.
func Absent[T any]() Outcome[T] {
	return Outcome[T]{kind: OutcomeAbsent}
}

// Failed reports that something was stored but could not be used.
func Failed[T any](reason error) Outcome[T] {
	return Outcome[T]{kind: OutcomeFailed, reason: reason}
}

func (o Outcome[T]) Kind() OutcomeKind {
	return o.kind
}

// Value returns the wrapped value and true only for Success.
func (o Outcome[T]) Value() (T, bool) {
	return o.value, o.kind == OutcomeSuccess
}

// Reason returns the failure cause for Failed outcomes and nil otherwise.
func (o Outcome[T]) Reason() error {
	return o.reason
}
