package safemath

import (
	"fmt"
	"math"
)

// Kind identifies one of the eight fixed-width integer types. Width,
// signedness and bounds are derived from the tag; nothing else is stored.
type Kind uint8

const (
	U8 Kind = iota
	S8
	U16
	S16
	U32
	S32
	U64
	S64
)

var kindNames = [...]string{
	U8:  "u8",
	S8:  "s8",
	U16: "u16",
	S16: "s16",
	U32: "u32",
	S32: "s32",
	U64: "u64",
	S64: "s64",
}

func (k Kind) valid() bool {
	return k <= S64
}

// Bits returns the width of the kind in bits.
func (k Kind) Bits() uint {
	return 8 << (uint(k) >> 1)
}

// IsSigned reports whether the kind is a signed type.
func (k Kind) IsSigned() bool {
	return k&1 == 1
}

// Min returns the smallest representable value of the kind. It is zero for
// unsigned kinds.
func (k Kind) Min() int64 {
	if !k.IsSigned() {
		return 0
	}
	return int64(-1) << (k.Bits() - 1)
}

// Max returns the largest representable value of the kind, widened to uint64.
func (k Kind) Max() uint64 {
	if k.IsSigned() {
		return uint64(1)<<(k.Bits()-1) - 1
	}
	if k.Bits() == 64 {
		return math.MaxUint64
	}
	return uint64(1)<<k.Bits() - 1
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Unify returns the kind a mixed-kind binary operation is carried out in:
// the wider of the two, with unsigned winning at equal width. Whether the
// operands actually fit the unified kind is Cast's decision; a negative
// value losing to an unsigned kind is rejected there.
func Unify(a, b Kind) Kind {
	if a == b {
		return a
	}
	if a.Bits() != b.Bits() {
		if a.Bits() > b.Bits() {
			return a
		}
		return b
	}
	if !a.IsSigned() {
		return a
	}
	return b
}

// ParseKind parses a type marker of the form [su](8|16|32|64), for example
// "u8" or "s32".
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if s == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown type marker %q", s)
}
