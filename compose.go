package redux

// Compose combines unary functions from right to left.
// Compose(a, b, c)(x) is equivalent to a(b(c(x))): the rightmost function
// receives the original argument, every other function receives the previous
// result, and the leftmost produces the final value.
//
// Compose() returns the identity function and Compose(f) returns f itself.
// The order is load-bearing for middleware: wrappers listed left to right
// each wrap the next one, so the leftmost ends up outermost.
func Compose[T any](fns ...func(T) T) func(T) T {
	switch len(fns) {
	case 0:
		return func(v T) T { return v }
	case 1:
		return fns[0]
	default:
		return func(v T) T {
			for i := len(fns) - 1; i >= 0; i-- {
				v = fns[i](v)
			}
			return v
		}
	}
}
