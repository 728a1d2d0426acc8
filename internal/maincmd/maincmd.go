// Package maincmd wires flag parsing, file reading and back-end
// selection into the single command this program exposes: run a bf
// source file against the process's standard streams.
package maincmd

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/mna/mainer"
)

const binName = "bfvm"

var shortUsage = fmt.Sprintf(`
usage: %s [--no-jit] <path>
Run '%[1]s --help' for details.
`, binName)

var longUsage = fmt.Sprintf(`usage: %s [--no-jit] <path>
       %[1]s -h|--help

Runs a bf program read from <path> against stdin/stdout.

Valid flag options are:
       -h --help     Show this help and exit.
       --no-jit      Use the interpreter even on linux/arm64, where the
                     JIT back-end would otherwise run by default.
`, binName)

// Cmd holds the parsed command line. It follows mainer's flag-struct
// convention: exported fields tagged with the flag names they bind,
// plus the SetArgs/SetFlags/Validate/Main quartet mainer.Parser and
// mainer.Main expect.
type Cmd struct {
	Help  bool `flag:"h,help"`
	NoJIT bool `flag:"no-jit"`

	args  []string
	flags map[string]bool
}

func (c *Cmd) SetArgs(args []string)          { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

func (c *Cmd) Validate() error {
	if c.Help {
		return nil
	}
	if len(c.args) != 1 {
		return fmt.Errorf("exactly one <path> argument is required, got %d", len(c.args))
	}
	return nil
}

// useJIT reports whether the JIT back-end should run: the flag wasn't
// negated and the process is on the one platform region_linux_arm64.go
// and jit_arm64.go actually support.
func (c *Cmd) useJIT() bool {
	return !c.NoJIT && runtime.GOOS == "linux" && runtime.GOARCH == "arm64"
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	if c.Help {
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := run(ctx, stdio, c.args[0], c.useJIT()); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return mainer.Failure
	}
	return mainer.Success
}
