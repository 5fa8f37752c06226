package safemath

import (
	"errors"
	"fmt"
	"strconv"
)

// Value is an integer of a known Kind widened into a uint64 container.
// Signed kinds are stored sign-extended, so narrowing the bits back to the
// kind's width always reproduces the original value.
type Value struct {
	kind Kind
	bits uint64
}

// NewValue wraps a fixed-width integer in a Value tagged with its kind.
func NewValue[T Integer](v T) Value {
	switch x := any(v).(type) {
	case uint8:
		return Value{U8, uint64(x)}
	case int8:
		return Value{S8, uint64(int64(x))}
	case uint16:
		return Value{U16, uint64(x)}
	case int16:
		return Value{S16, uint64(int64(x))}
	case uint32:
		return Value{U32, uint64(x)}
	case int32:
		return Value{S32, uint64(int64(x))}
	case uint64:
		return Value{U64, x}
	case int64:
		return Value{S64, uint64(x)}
	}
	panic("unreachable")
}

// KindOf returns the Kind tag for the fixed-width integer type T.
func KindOf[T Integer]() Kind {
	var zero T
	return NewValue(zero).kind
}

// Kind returns the value's kind tag.
func (v Value) Kind() Kind {
	return v.kind
}

// Uint64 returns the raw widened bits.
func (v Value) Uint64() uint64 {
	return v.bits
}

// Int64 returns the bits reinterpreted as a signed value. Only meaningful
// for signed kinds, where the container is sign-extended.
func (v Value) Int64() int64 {
	return int64(v.bits)
}

func (v Value) String() string {
	if v.kind.IsSigned() {
		return fmt.Sprintf("%d%s", int64(v.bits), v.kind)
	}
	return fmt.Sprintf("%d%s", v.bits, v.kind)
}

// As narrows v to the fixed-width type T, going through the same
// representability check as Cast.
func As[T Integer](v Value) (T, bool) {
	c, err := Cast(v, KindOf[T]())
	if err != nil {
		return 0, false
	}
	return T(c.bits), true
}

// Cast converts v to the destination kind if its value is exactly
// representable there, and returns ErrUnsafeCast otherwise. The check is
// operation-agnostic and conservative: a negative signed value never casts
// to an unsigned kind, whatever the caller intends to do with the result.
func Cast(v Value, dst Kind) (Value, error) {
	if !dst.valid() {
		return Value{}, fmt.Errorf("invalid destination kind %s", dst)
	}
	if v.kind == dst {
		return v, nil
	}
	if v.kind.IsSigned() {
		sv := int64(v.bits)
		if sv < 0 {
			if !dst.IsSigned() || sv < dst.Min() {
				return Value{}, fmt.Errorf("cannot represent %s as %s: %w", v, dst, ErrUnsafeCast)
			}
			return Value{dst, uint64(sv)}, nil
		}
		if uint64(sv) > dst.Max() {
			return Value{}, fmt.Errorf("cannot represent %s as %s: %w", v, dst, ErrUnsafeCast)
		}
		return Value{dst, uint64(sv)}, nil
	}
	if v.bits > dst.Max() {
		return Value{}, fmt.Errorf("cannot represent %s as %s: %w", v, dst, ErrUnsafeCast)
	}
	return Value{dst, v.bits}, nil
}

// ParseValue parses a decimal (or 0x/0o/0b prefixed) literal as a value of
// the given kind. Out-of-range literals are reported as unsafe casts.
func ParseValue(s string, k Kind) (Value, error) {
	if !k.valid() {
		return Value{}, fmt.Errorf("invalid kind %s", k)
	}
	if k.IsSigned() {
		n, err := strconv.ParseInt(s, 0, int(k.Bits()))
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return Value{}, fmt.Errorf("cannot represent %s as %s: %w", s, k, ErrUnsafeCast)
			}
			return Value{}, fmt.Errorf("invalid %s literal %q", k, s)
		}
		return Value{k, uint64(n)}, nil
	}
	n, err := strconv.ParseUint(s, 0, int(k.Bits()))
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Value{}, fmt.Errorf("cannot represent %s as %s: %w", s, k, ErrUnsafeCast)
		}
		return Value{}, fmt.Errorf("invalid %s literal %q", k, s)
	}
	return Value{k, n}, nil
}

// Op selects one of the checked binary operations.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpShl
	OpShr
)

var opNames = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpShl: "<<",
	OpShr: ">>",
}

func (op Op) String() string {
	if int(op) >= len(opNames) {
		return fmt.Sprintf("op(%d)", uint8(op))
	}
	return opNames[op]
}

// ParseOp parses an operator token.
func ParseOp(s string) (Op, error) {
	for op, name := range opNames {
		if s == name {
			return Op(op), nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

// Apply unifies both operands into Unify(a.Kind(), b.Kind()) via Cast and
// applies the checked operation; the result carries the unified kind.
// Failures are reported with the sentinel matching the violated
// precondition and nothing partial is produced.
func Apply(op Op, a, b Value) (Value, error) {
	work := Unify(a.kind, b.kind)
	lhs, err := Cast(a, work)
	if err != nil {
		return Value{}, err
	}
	rhs, err := Cast(b, work)
	if err != nil {
		return Value{}, err
	}
	switch work {
	case U8:
		return applyAs[uint8](op, lhs, rhs)
	case S8:
		return applyAs[int8](op, lhs, rhs)
	case U16:
		return applyAs[uint16](op, lhs, rhs)
	case S16:
		return applyAs[int16](op, lhs, rhs)
	case U32:
		return applyAs[uint32](op, lhs, rhs)
	case S32:
		return applyAs[int32](op, lhs, rhs)
	case U64:
		return applyAs[uint64](op, lhs, rhs)
	case S64:
		return applyAs[int64](op, lhs, rhs)
	}
	return Value{}, fmt.Errorf("invalid operand kind %s", work)
}

func applyAs[T Integer](op Op, a, b Value) (Value, error) {
	x, y := T(a.bits), T(b.bits)
	r, ok := applyOp(op, x, y)
	if !ok {
		return Value{}, fmt.Errorf("%s %s %s: %w", a, op, b, opError(op, x, y))
	}
	return NewValue(r), nil
}

func applyOp[T Integer](op Op, a, b T) (T, bool) {
	switch op {
	case OpAdd:
		return Add(a, b)
	case OpSub:
		return Sub(a, b)
	case OpMul:
		return Mul(a, b)
	case OpDiv:
		return Div(a, b)
	case OpMod:
		return Mod(a, b)
	case OpShl:
		return Shl(a, b)
	case OpShr:
		return Shr(a, b)
	}
	return 0, false
}

// opError classifies a failed operation into the error taxonomy.
func opError[T Integer](op Op, a, b T) error {
	switch op {
	case OpDiv, OpMod:
		if b == 0 {
			return ErrDivideByZero
		}
		return ErrSignedOverflowDivision
	case OpShl, OpShr:
		if b < 0 || b >= T(bitsOf[T]()) {
			return ErrInvalidShiftAmount
		}
		return ErrOverflow
	default:
		return ErrOverflow
	}
}
