package result

// Result is a tagged union of Success(value) and Failure(kind, cause).
// The zero value is a failure of KindUnknown.
type Result[T any] struct {
	value T
	ok    bool
	kind  ErrorKind
	cause error
}

// Success wraps a value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Failure builds a failed result. Kinds outside the declared set are
// normalised to KindUnknown so every failure carries exactly one kind.
func Failure[T any](kind ErrorKind, cause error) Result[T] {
	if !kind.Valid() {
		kind = KindUnknown
	}
	return Result[T]{kind: kind, cause: cause}
}

// IsSuccess reports whether r holds a value.
func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// Value returns the wrapped value and true on success, or the zero value and
// false on failure.
func (r Result[T]) Value() (T, bool) {
	if !r.ok {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Kind returns the failure kind. It is empty on success.
func (r Result[T]) Kind() ErrorKind {
	if r.ok {
		return ""
	}
	if r.kind == "" {
		return KindUnknown
	}
	return r.kind
}

// Cause returns the underlying error of a failure, if one was recorded.
func (r Result[T]) Cause() error {
	if r.ok {
		return nil
	}
	return r.cause
}

// Err returns nil on success and an *Error otherwise.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	if e, isErr := r.cause.(*Error); isErr && e.Kind == r.Kind() {
		return e
	}
	return &Error{Kind: r.Kind(), Err: r.cause}
}

// Map applies fn to the value of a successful result and carries failures
// through unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if v, ok := r.Value(); ok {
		return Success(fn(v))
	}
	return Failure[U](r.Kind(), r.Cause())
}
