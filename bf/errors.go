package bf

import "fmt"

// BuildErrorKind enumerates the ways IR construction can fail.
type BuildErrorKind int

const (
	UnmatchedCloseBracket BuildErrorKind = iota
	UnmatchedOpenBracket
)

func (k BuildErrorKind) String() string {
	switch k {
	case UnmatchedCloseBracket:
		return "unmatched ']'"
	case UnmatchedOpenBracket:
		return "unmatched '['"
	default:
		return "?unknown build error?"
	}
}

// BuildError is returned by Build when a program's brackets do not
// match. IP is the IR index at which the excess ']' was found
// (UnmatchedCloseBracket); Remaining is the number of unclosed '['s
// left on the back-patching stack at end of input
// (UnmatchedOpenBracket).
type BuildError struct {
	Kind      BuildErrorKind
	IP        int
	Remaining int
}

func (e *BuildError) Error() string {
	switch e.Kind {
	case UnmatchedOpenBracket:
		return fmt.Sprintf("BUILD ERROR: %s (%d left unclosed)", e.Kind, e.Remaining)
	default:
		return fmt.Sprintf("BUILD ERROR: %s [IP:%d]", e.Kind, e.IP)
	}
}

// RuntimeErrorKind enumerates the ways interpretation can fail.
type RuntimeErrorKind int

const (
	DataPointerUnderflow RuntimeErrorKind = iota
	DataPointerOverflow
	InputError
	OutputError
	NonAsciiOutput
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case DataPointerUnderflow:
		return "data pointer is negative"
	case DataPointerOverflow:
		return "data pointer exceeded memory size"
	case InputError:
		return "cannot read from stdin"
	case OutputError:
		return "cannot write to stdout"
	case NonAsciiOutput:
		return "value is not in the ASCII range"
	default:
		return "?unknown runtime error?"
	}
}

// RuntimeError is returned by Interpret. IP is the IR index the
// instruction pointer held at the time of failure. Cause, when
// non-nil, is the underlying I/O error (InputError/OutputError);
// errors.Is/errors.As against Cause lets a caller distinguish e.g.
// io.EOF from other read failures.
type RuntimeError struct {
	Kind  RuntimeErrorKind
	IP    int
	Cause error
}

func (e *RuntimeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("RUNTIME ERROR: %s (%s) [IP:%d]", e.Kind, e.Cause, e.IP)
	}
	return fmt.Sprintf("RUNTIME ERROR: %s [IP:%d]", e.Kind, e.IP)
}

func (e *RuntimeError) Unwrap() error { return e.Cause }

// JitErrorKind enumerates the ways JIT compilation or invocation can
// fail.
type JitErrorKind int

const (
	UnsupportedPlatform JitErrorKind = iota
	MappingError
	BranchOutOfRange
)

func (k JitErrorKind) String() string {
	switch k {
	case UnsupportedPlatform:
		return "JIT compiler is not supported on this architecture/OS"
	case MappingError:
		return "failed to manage executable memory region"
	case BranchOutOfRange:
		return "branch displacement does not fit in 19 signed bits"
	default:
		return "?unknown jit error?"
	}
}

// JitError is returned by Compile and CompiledProgram.Invoke. IP is
// meaningful only for BranchOutOfRange, where it names the IR index of
// the offending bracket; it is -1 otherwise.
type JitError struct {
	Kind  JitErrorKind
	IP    int
	Cause error
}

func (e *JitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("JIT COMPILE ERROR: %s (%s)", e.Kind, e.Cause)
	}
	if e.IP >= 0 {
		return fmt.Sprintf("JIT COMPILE ERROR: %s [IP:%d]", e.Kind, e.IP)
	}
	return fmt.Sprintf("JIT COMPILE ERROR: %s", e.Kind)
}

func (e *JitError) Unwrap() error { return e.Cause }
