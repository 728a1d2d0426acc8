//go:build linux && arm64

package bf

import (
	"io"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

// runJIT invokes compiled with the process's real file descriptors 0
// and 1 temporarily redirected to pipes: the JIT reads/writes via raw
// read(2)/write(2) syscalls on fd 0/1 (bf/jit_arm64.go), bypassing any
// Go io.Reader/io.Writer, so exercising it from a test means
// redirecting the actual descriptors rather than swapping
// os.Stdin/os.Stdout.
func runJIT(t *testing.T, compiled *CompiledProgram, stdin string) string {
	t.Helper()

	savedIn, err := syscall.Dup(0)
	require.NoError(t, err)
	savedOut, err := syscall.Dup(1)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, syscall.Dup2(savedIn, 0))
		require.NoError(t, syscall.Dup2(savedOut, 1))
		syscall.Close(savedIn)
		syscall.Close(savedOut)
	}()

	inR, inW, err := os.Pipe()
	require.NoError(t, err)
	_, err = inW.WriteString(stdin)
	require.NoError(t, err)
	inW.Close()
	require.NoError(t, syscall.Dup2(int(inR.Fd()), 0))
	inR.Close()

	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	require.NoError(t, syscall.Dup2(int(outW.Fd()), 1))
	outW.Close()

	invokeErr := compiled.Invoke()

	// Restore descriptors before reading the captured output, so the
	// read end sees EOF once nothing else holds the write end open.
	require.NoError(t, syscall.Dup2(savedIn, 0))
	require.NoError(t, syscall.Dup2(savedOut, 1))

	out, readErr := io.ReadAll(outR)
	outR.Close()
	require.NoError(t, readErr)
	require.NoError(t, invokeErr)
	return string(out)
}
