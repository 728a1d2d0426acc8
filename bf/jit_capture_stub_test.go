//go:build !(linux && arm64)

package bf

import "testing"

// runJIT is never called on this platform: jitSupported() gates every
// call site. It exists only so the test package compiles everywhere.
func runJIT(t *testing.T, compiled *CompiledProgram, stdin string) string {
	t.Helper()
	t.Skip("JIT back-end only runs on linux/arm64")
	return ""
}
