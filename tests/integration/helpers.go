package integration

import "github.com/eigerco/intsafe/internal/safemath"

// values tags each argument for evaluator calls in these tests.
func values[T safemath.Integer](vs ...T) []safemath.Value {
	out := make([]safemath.Value, 0, len(vs))
	for _, v := range vs {
		out = append(out, safemath.NewValue(v))
	}
	return out
}
