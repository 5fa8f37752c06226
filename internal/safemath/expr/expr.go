// Package expr evaluates compact arithmetic expressions described by a
// format string, applying the checked operations from the safemath package
// left to right with no operator precedence.
//
// The grammar is
//
//	expression := marker? (operator marker?)*
//	marker     := [su](8|16|32|64)
//	operator   := '+' | '-' | '*' | '/' | '%' | '<<' | '>>'
//
// with whitespace between tokens ignored. A leading marker fixes the default
// kind for the whole expression; without one the default is s32. A marker
// after an operator types the next operand only, and the default is restored
// for later operands. When an operand's kind differs from the accumulator's,
// the step runs in safemath.Unify of the two, so mixed expressions widen and
// a signed negative accumulator can never enter an unsigned step.
package expr

import (
	"errors"
	"fmt"

	"github.com/eigerco/intsafe/internal/safemath"
)

var (
	ErrMalformedExpression = errors.New("malformed expression")
	ErrArgumentCount       = errors.New("wrong number of operands")
)

// step is one parsed (operator, operand kind) pair. The kind is the
// expression default unless a marker followed the operator.
type step struct {
	op   safemath.Op
	kind safemath.Kind
}

// Program is a parsed format string: the expression's default kind and the
// ordered operation steps. It is immutable once built and may be reused
// across Run calls.
type Program struct {
	kind  safemath.Kind
	steps []step
}

// Parse builds a Program from a format string. Malformed input is rejected
// before any operand would be consumed.
func Parse(format string) (*Program, error) {
	s := scanner{src: format}
	s.skipSpace()
	if s.done() {
		return nil, fmt.Errorf("empty format: %w", ErrMalformedExpression)
	}

	p := &Program{kind: safemath.S32}
	if k, ok, err := s.marker(); err != nil {
		return nil, err
	} else if ok {
		p.kind = k
	}

	for {
		s.skipSpace()
		if s.done() {
			return p, nil
		}
		op, err := s.operator()
		if err != nil {
			return nil, err
		}
		s.skipSpace()
		st := step{op: op, kind: p.kind}
		if k, ok, err := s.marker(); err != nil {
			return nil, err
		} else if ok {
			st.kind = k
		}
		p.steps = append(p.steps, st)
	}
}

// ResultKind returns the kind the final accumulator carries: the expression
// default folded through each step's unification.
func (p *Program) ResultKind() safemath.Kind {
	k := p.kind
	for _, st := range p.steps {
		k = safemath.Unify(k, st.kind)
	}
	return k
}

// Operands returns the number of arguments the program consumes.
func (p *Program) Operands() int {
	return len(p.steps) + 1
}

// OperandKinds returns the kind expected at each argument position.
func (p *Program) OperandKinds() []safemath.Kind {
	kinds := make([]safemath.Kind, 0, p.Operands())
	kinds = append(kinds, p.kind)
	for _, st := range p.steps {
		kinds = append(kinds, st.kind)
	}
	return kinds
}

// Run evaluates the program over the given operands. Each argument is cast
// to the kind its position demands, each operation runs in the unified kind
// of accumulator and operand, and the first failed cast or operation aborts
// the whole evaluation with no partial result.
func (p *Program) Run(args []safemath.Value) (safemath.Value, error) {
	if len(args) != p.Operands() {
		return safemath.Value{}, fmt.Errorf("format needs %d operands, got %d: %w",
			p.Operands(), len(args), ErrArgumentCount)
	}

	acc, err := safemath.Cast(args[0], p.kind)
	if err != nil {
		return safemath.Value{}, fmt.Errorf("operand 0: %w", err)
	}
	for i, st := range p.steps {
		rhs, err := safemath.Cast(args[i+1], st.kind)
		if err != nil {
			return safemath.Value{}, fmt.Errorf("operand %d: %w", i+1, err)
		}
		acc, err = safemath.Apply(st.op, acc, rhs)
		if err != nil {
			return safemath.Value{}, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return acc, nil
}

// Evaluate parses and runs format over args in one call.
func Evaluate(format string, args ...safemath.Value) (safemath.Value, error) {
	p, err := Parse(format)
	if err != nil {
		return safemath.Value{}, err
	}
	return p.Run(args)
}

// EvaluateAs is Evaluate with the final result cast to dst.
func EvaluateAs(dst safemath.Kind, format string, args ...safemath.Value) (safemath.Value, error) {
	v, err := Evaluate(format, args...)
	if err != nil {
		return safemath.Value{}, err
	}
	return safemath.Cast(v, dst)
}

// scanner walks the format string byte by byte. The grammar has no
// lookahead beyond one character, so a position index is all the state
// it needs.
type scanner struct {
	src string
	pos int
}

func (s *scanner) done() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) skipSpace() {
	for !s.done() && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

// marker scans an optional type marker. It reports ok=false without
// consuming anything when the next token is not a marker; a marker that
// starts but does not finish is an error.
func (s *scanner) marker() (safemath.Kind, bool, error) {
	if s.done() {
		return 0, false, nil
	}
	c := s.src[s.pos]
	if c != 's' && c != 'u' {
		return 0, false, nil
	}
	start := s.pos
	s.pos++
	for !s.done() && s.src[s.pos] >= '0' && s.src[s.pos] <= '9' {
		s.pos++
	}
	k, err := safemath.ParseKind(s.src[start:s.pos])
	if err != nil {
		return 0, false, fmt.Errorf("position %d: %v: %w", start, err, ErrMalformedExpression)
	}
	return k, true, nil
}

func (s *scanner) operator() (safemath.Op, error) {
	c := s.src[s.pos]
	switch c {
	case '+':
		s.pos++
		return safemath.OpAdd, nil
	case '-':
		s.pos++
		return safemath.OpSub, nil
	case '*':
		s.pos++
		return safemath.OpMul, nil
	case '/':
		s.pos++
		return safemath.OpDiv, nil
	case '%':
		s.pos++
		return safemath.OpMod, nil
	case '<', '>':
		if s.pos+1 < len(s.src) && s.src[s.pos+1] == c {
			s.pos += 2
			if c == '<' {
				return safemath.OpShl, nil
			}
			return safemath.OpShr, nil
		}
	}
	return 0, fmt.Errorf("position %d: unexpected %q: %w", s.pos, c, ErrMalformedExpression)
}
