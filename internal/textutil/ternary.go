package textutil

// Ternary returns whenTrue if cond holds and whenFalse otherwise. Both
// arguments are evaluated.
func Ternary[T any](cond bool, whenTrue, whenFalse T) T {
	if cond {
		return whenTrue
	}
	return whenFalse
}
