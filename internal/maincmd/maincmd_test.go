package maincmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/mna/mainer"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

func TestValidateRequiresExactlyOnePath(t *testing.T) {
	c := &Cmd{}
	c.SetArgs(nil)
	assert(t, c.Validate() != nil, "expected an error with no path argument")

	c.SetArgs([]string{"a.bf", "b.bf"})
	assert(t, c.Validate() != nil, "expected an error with two path arguments")

	c.SetArgs([]string{"a.bf"})
	assert(t, c.Validate() == nil, "expected no error with one path argument")
}

func TestValidateAllowsHelpWithNoPath(t *testing.T) {
	c := &Cmd{Help: true}
	c.SetArgs(nil)
	assert(t, c.Validate() == nil, "--help should bypass the path requirement")
}

func TestUseJITRespectsNoJITFlag(t *testing.T) {
	c := &Cmd{NoJIT: true}
	assert(t, !c.useJIT(), "expected useJIT() to be false when --no-jit is set")
}

func TestUseJITOnlyOnLinuxArm64(t *testing.T) {
	c := &Cmd{}
	want := runtime.GOOS == "linux" && runtime.GOARCH == "arm64"
	assert(t, c.useJIT() == want, "useJIT() = %v, want %v on %s/%s", c.useJIT(), want, runtime.GOOS, runtime.GOARCH)
}

func TestRunInterpretsProgramAgainstStdio(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "echo.bf")
	assert(t, os.WriteFile(path, []byte(",."), 0o644) == nil, "failed to write test program")

	var out bytes.Buffer
	stdio := mainer.Stdio{Stdin: strings.NewReader("A"), Stdout: &out, Stderr: &bytes.Buffer{}}
	err := run(context.Background(), stdio, path, false)
	assert(t, err == nil, "unexpected error: %s", err)
	assert(t, out.String() == "A", "got %q, want %q", out.String(), "A")
}

func TestRunRejectsMissingFile(t *testing.T) {
	stdio := mainer.Stdio{Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := run(context.Background(), stdio, filepath.Join(t.TempDir(), "missing.bf"), false)
	assert(t, err != nil, "expected an error for a missing file")
}
