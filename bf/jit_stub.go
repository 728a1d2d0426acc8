//go:build !(linux && arm64)

package bf

// Compile always fails on platforms other than linux/arm64: the JIT
// back-end is scoped to 64-bit ARM on a POSIX kernel with anonymous
// executable mappings, and UnsupportedPlatform names exactly this
// case.
func Compile(prog Program) (*CompiledProgram, error) {
	return nil, &JitError{Kind: UnsupportedPlatform, IP: -1}
}
