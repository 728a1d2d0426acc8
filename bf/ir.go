package bf

// Build lexes src and folds it into a Program, resolving bracket pairs
// by back-patching: runs of a foldable kind merge into the
// immediately preceding Op; a '[' pushes its own (not-yet-known)
// index onto addrStack and emits a placeholder; a ']' pops the
// matching index, patches both ops so each operand is "one index past
// the partner", and never folds.
func Build(src string) (Program, error) {
	lexer := NewLexer(src)
	ops := make([]Op, 0)
	var addrStack []int

	for {
		kind, ok := lexer.Next()
		if !ok {
			break
		}

		if kind.Foldable() && len(ops) > 0 && ops[len(ops)-1].Kind == kind {
			ops[len(ops)-1].Operand++
			continue
		}

		switch kind {
		case JmpFwdIfZero:
			addrStack = append(addrStack, len(ops))
			ops = append(ops, Op{Kind: kind, Operand: 0})
		case JmpBackIfNonZero:
			if len(addrStack) == 0 {
				return Program{}, &BuildError{Kind: UnmatchedCloseBracket, IP: len(ops)}
			}
			openIdx := addrStack[len(addrStack)-1]
			addrStack = addrStack[:len(addrStack)-1]
			closeIdx := len(ops)

			ops[openIdx].Operand = int32(closeIdx + 1)
			ops = append(ops, Op{Kind: kind, Operand: int32(openIdx + 1)})
		default:
			ops = append(ops, Op{Kind: kind, Operand: 1})
		}
	}

	if len(addrStack) != 0 {
		return Program{}, &BuildError{Kind: UnmatchedOpenBracket, Remaining: len(addrStack)}
	}

	return Program{Ops: ops}, nil
}
