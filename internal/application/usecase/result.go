package usecase

// Result carries the outcome of one fetch of a fan-out so the caller can inspect
// success and failure explicitly.
type Result[T any] struct {
	Value T
	Err   error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

func (r Result[T]) IsOk() bool {
	return r.Err == nil
}

// ValueOr returns the value on success and fallback otherwise.
func (r Result[T]) ValueOr(fallback T) T {
	if r.Err != nil {
		return fallback
	}
	return r.Value
}
