//go:build !(linux && arm64)

package bf

// executableRegion is never constructed on an unsupported
// platform/OS: Compile returns *JitError{Kind: UnsupportedPlatform}
// before one would be needed. The type and its methods exist only so
// CompiledProgram (which has no build tag of its own) type-checks on
// every platform.
type executableRegion struct{}

func (r *executableRegion) makeExecutable() error { return &JitError{Kind: UnsupportedPlatform, IP: -1} }
func (r *executableRegion) call()                 {}
func (r *executableRegion) release() error        { return nil }
