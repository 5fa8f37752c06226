package safemath

import (
	"errors"
	"unsafe"
)

var (
	ErrOverflow               = errors.New("number overflow")
	ErrDivideByZero           = errors.New("division by zero")
	ErrSignedOverflowDivision = errors.New("signed division overflow")
	ErrInvalidShiftAmount     = errors.New("invalid shift amount")
	ErrUnsafeCast             = errors.New("unsafe cast")
)

// Unsigned is the set of fixed-width unsigned integer types.
type Unsigned interface {
	uint8 | uint16 | uint32 | uint64
}

// Signed is the set of fixed-width signed integer types.
type Signed interface {
	int8 | int16 | int32 | int64
}

// Integer is the set of all fixed-width integer types the package operates on.
type Integer interface {
	Signed | Unsigned
}

func bitsOf[T Integer]() uint {
	var zero T
	return uint(unsafe.Sizeof(zero)) * 8
}

func signedType[T Integer]() bool {
	// ^0 is -1 for signed types and the maximum value for unsigned ones.
	return ^T(0) < 0
}

func minOf[T Integer]() T {
	if !signedType[T]() {
		return 0
	}
	return ^T(0) << (bitsOf[T]() - 1)
}

func maxOf[T Integer]() T {
	if signedType[T]() {
		return ^minOf[T]()
	}
	return ^T(0)
}

// Add returns a+b, or ok=false if the sum is not representable in T.
func Add[T Integer](a, b T) (T, bool) {
	if b > 0 && a > maxOf[T]()-b {
		return 0, false
	}
	if b < 0 && a < minOf[T]()-b {
		return 0, false
	}
	return a + b, true
}

// Sub returns a-b, or ok=false if the difference is not representable in T.
func Sub[T Integer](a, b T) (T, bool) {
	if b < 0 && a > maxOf[T]()+b {
		return 0, false
	}
	if b > 0 && a < minOf[T]()+b {
		return 0, false
	}
	return a - b, true
}

// Mul returns a*b, or ok=false if the product is not representable in T.
// Each sign combination is checked against the relevant bound using
// division, so the check itself cannot overflow.
func Mul[T Integer](a, b T) (T, bool) {
	switch {
	case a > 0 && b > 0:
		if a > maxOf[T]()/b {
			return 0, false
		}
	case a > 0:
		if b < minOf[T]()/a {
			return 0, false
		}
	case b > 0:
		if a < minOf[T]()/b {
			return 0, false
		}
	default:
		if a != 0 && b < maxOf[T]()/a {
			return 0, false
		}
	}
	return a * b, true
}

// Div returns a/b. It fails on a zero divisor and on the single signed
// quotient that overflows, min/-1.
func Div[T Integer](a, b T) (T, bool) {
	if b == 0 {
		return 0, false
	}
	if signedType[T]() && a == minOf[T]() && b+1 == 0 {
		return 0, false
	}
	return a / b, true
}

// Mod returns a%b, with the same failure conditions as Div.
func Mod[T Integer](a, b T) (T, bool) {
	if b == 0 {
		return 0, false
	}
	if signedType[T]() && a == minOf[T]() && b+1 == 0 {
		return 0, false
	}
	return a % b, true
}

// Shl returns a<<b. The shift count must lie in [0, bits). Negative values
// of a are rejected for signed types, as is any shift that would move a set
// bit out of range.
func Shl[T Integer](a, b T) (T, bool) {
	if b < 0 || b >= T(bitsOf[T]()) {
		return 0, false
	}
	if a < 0 {
		return 0, false
	}
	if a > maxOf[T]()>>b {
		return 0, false
	}
	return a << b, true
}

// Shr returns a>>b. The shift count must lie in [0, bits). Right-shifting a
// negative value has no portable exact result, so negative a is rejected for
// signed types.
func Shr[T Integer](a, b T) (T, bool) {
	if b < 0 || b >= T(bitsOf[T]()) {
		return 0, false
	}
	if a < 0 {
		return 0, false
	}
	return a >> b, true
}

// Increment adds one to *v in place. On overflow *v is left untouched.
func Increment[T Integer](v *T) bool {
	r, ok := Add(*v, 1)
	if !ok {
		return false
	}
	*v = r
	return true
}

// Decrement subtracts one from *v in place. On underflow *v is left untouched.
func Decrement[T Integer](v *T) bool {
	r, ok := Sub(*v, 1)
	if !ok {
		return false
	}
	*v = r
	return true
}

// AddSaturate returns a+b clamped to the representable range of T.
func AddSaturate[T Integer](a, b T) T {
	r, ok := Add(a, b)
	if ok {
		return r
	}
	if b > 0 {
		return maxOf[T]()
	}
	return minOf[T]()
}

// SubSaturate returns a-b clamped to the representable range of T.
func SubSaturate[T Integer](a, b T) T {
	r, ok := Sub(a, b)
	if ok {
		return r
	}
	if b > 0 {
		return minOf[T]()
	}
	return maxOf[T]()
}

// MulSaturate returns a*b clamped to the representable range of T.
func MulSaturate[T Integer](a, b T) T {
	r, ok := Mul(a, b)
	if ok {
		return r
	}
	if (a > 0) == (b > 0) {
		return maxOf[T]()
	}
	return minOf[T]()
}

// Abs returns the absolute value of a, or ok=false for the one signed value
// whose negation is not representable.
func Abs[T Signed](a T) (T, bool) {
	if a == minOf[T]() {
		return 0, false
	}
	if a < 0 {
		return -a, true
	}
	return a, true
}
