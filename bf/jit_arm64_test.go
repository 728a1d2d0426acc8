package bf

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// jitSupported mirrors the gate bf/jit_stub.go's build tag encodes, but
// at runtime: these tests only mean anything where Compile can emit
// and execute real machine code.
func jitSupported() bool {
	return runtime.GOOS == "linux" && runtime.GOARCH == "arm64"
}

func TestJitInterpreterRoundTrip(t *testing.T) {
	if !jitSupported() {
		t.Skip("JIT back-end only runs on linux/arm64")
	}

	cases := []struct {
		name  string
		src   string
		stdin string
	}{
		{"no brackets", "+++---", ""},
		{"loop never entered", "[->+<]", ""},
		{"loop with output", "++[->+<]>.", ""},
		{"echo", ",.", "A"},
		{"longer echo", ",.,.,.", "xyz"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			prog, err := Build(c.src)
			require.NoError(t, err)

			var interpOut bytes.Buffer
			require.NoError(t, Interpret(context.Background(), prog, strings.NewReader(c.stdin), &interpOut))

			compiled, err := Compile(prog)
			require.NoError(t, err)
			defer compiled.Release()

			jitOut := runJIT(t, compiled, c.stdin)
			require.Equal(t, interpOut.String(), jitOut)
		})
	}
}

func TestJitCompileRejectsOutOfRangeBranch(t *testing.T) {
	if !jitSupported() {
		t.Skip("JIT back-end only runs on linux/arm64")
	}

	// A loop body with enough distinct, non-foldable op groups that the
	// matching cbz/cbnz pair's displacement overflows 19 bits.
	var body strings.Builder
	for i := 0; i < 40000; i++ {
		body.WriteString(">+<-")
	}
	prog, err := Build("[" + body.String() + "]")
	require.NoError(t, err)

	_, err = Compile(prog)
	require.Error(t, err)
	var je *JitError
	require.ErrorAs(t, err, &je)
	require.Equal(t, BranchOutOfRange, je.Kind)
}
