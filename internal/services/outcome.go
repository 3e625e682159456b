package services

// Outcome is the result of a best-effort lookup. A degraded outcome carries
// the default value that was substituted and the error that forced it.
type Outcome[T any] struct {
	Value T
	Cause error
}

// Ok wraps a genuine result.
func Ok[T any](value T) Outcome[T] {
	return Outcome[T]{Value: value}
}

// Degraded wraps a default value substituted because of cause.
func Degraded[T any](value T, cause error) Outcome[T] {
	return Outcome[T]{Value: value, Cause: cause}
}

// IsDegraded reports whether the value is a fallback.
func (o Outcome[T]) IsDegraded() bool {
	return o.Cause != nil
}
