// Package bf implements the execution pipeline for the bf language: a
// lexer, an IR builder that folds runs and resolves bracket pairs, a
// dispatch-loop interpreter over the flat IR, and an AArch64/Linux JIT
// back-end.
package bf

import "unsafe"

// OpKind is one of the eight bf commands. There is no ninth kind; a
// closed switch over OpKind should never need a default case once a
// Program has been built by Build.
type OpKind uint8

const (
	Inc OpKind = iota
	Dec
	Left
	Right
	Input
	Output
	JmpFwdIfZero
	JmpBackIfNonZero
)

var opKindNames = map[OpKind]string{
	Inc:              "inc",
	Dec:              "dec",
	Left:             "left",
	Right:            "right",
	Input:            "input",
	Output:           "output",
	JmpFwdIfZero:     "jfz",
	JmpBackIfNonZero: "jnz",
}

func (k OpKind) String() string {
	if s, ok := opKindNames[k]; ok {
		return s
	}
	return "?unknown?"
}

// Foldable reports whether repeated occurrences of k are compressed
// into a single Op's Operand by the IR builder.
func (k OpKind) Foldable() bool {
	switch k {
	case Inc, Dec, Left, Right, Input, Output:
		return true
	default:
		return false
	}
}

// IsBracket reports whether k is one half of a matched branch pair.
// Bracket ops are never folded, even when two land adjacently.
func (k OpKind) IsBracket() bool {
	return k == JmpFwdIfZero || k == JmpBackIfNonZero
}

// Op is a single IR instruction: a kind plus an operand whose meaning
// depends on the kind. For Inc/Dec/Left/Right/Input/Output it is a
// repeat count; for the two bracket kinds it is the partner's IR
// index, one past the partner.
type Op struct {
	Kind    OpKind
	Operand int32
}

const opSize = unsafe.Sizeof(Op{})

func init() {
	if opSize != 8 {
		panic("bf: Op layout assumption violated")
	}
}

// Program is the ordered, folded, bracket-resolved IR sequence
// produced by Build. Its zero value is an empty, valid program.
type Program struct {
	Ops []Op
}

// Len returns the number of IR instructions in p.
func (p Program) Len() int { return len(p.Ops) }
