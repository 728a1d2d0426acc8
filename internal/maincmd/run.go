package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/J3m3/bfvm/bf"
)

// run reads the bf source at path, builds its IR, and executes it with
// the interpreter or the JIT depending on useJIT. The JIT back-end
// performs its own read/write syscalls on file descriptors 0 and 1
// directly, so it ignores stdio.Stdin/stdio.Stdout; the interpreter is
// wired to those streams instead, letting a caller (tests, in
// particular) supply a non-terminal stdin/stdout.
func run(ctx context.Context, stdio mainer.Stdio, path string, useJIT bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	prog, err := bf.Build(string(src))
	if err != nil {
		return err
	}

	if !useJIT {
		return bf.Interpret(ctx, prog, stdio.Stdin, stdio.Stdout)
	}

	compiled, err := bf.Compile(prog)
	if err != nil {
		return err
	}
	defer compiled.Release()

	return compiled.Invoke()
}
