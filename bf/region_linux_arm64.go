//go:build linux && arm64

package bf

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// executableRegion owns an anonymous mapping holding JIT-emitted code.
// It is writable at creation time and becomes executable (and
// non-writable) exactly once, the moment CompiledProgram.Invoke calls
// makeExecutable.
type executableRegion struct {
	mem []byte
}

// newExecutableRegion copies code into a fresh anonymous, writable
// mapping sized to fit it. Wired on golang.org/x/sys/unix rather than
// the standard library's bare syscall package for the richer mmap/
// mprotect flag constants it exposes.
func newExecutableRegion(code []byte) (*executableRegion, error) {
	mem, err := unix.Mmap(-1, 0, len(code), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, &JitError{Kind: MappingError, IP: -1, Cause: fmt.Errorf("mmap: %w", err)}
	}
	copy(mem, code)
	return &executableRegion{mem: mem}, nil
}

// makeExecutable transitions the region from writable to
// executable-and-read-only. It must be called at most once per
// region; CompiledProgram enforces that with a sync.Once.
func (r *executableRegion) makeExecutable() error {
	if err := unix.Mprotect(r.mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return &JitError{Kind: MappingError, IP: -1, Cause: fmt.Errorf("mprotect: %w", err)}
	}
	return nil
}

// funcval mirrors the layout the Go runtime uses for a closure-less
// function value: a single word holding the entry point. Building one
// by hand and reinterpreting its address as a func() is the standard
// way a Go program without cgo calls into a raw machine-code buffer.
type funcval struct {
	entry uintptr
}

// call invokes the region's first byte as a nullary C-ABI function.
// The generated code receives no arguments: the tape's absolute base
// address is baked into the prologue as an immediate, so there is
// nothing for Go to pass in.
func (r *executableRegion) call() {
	fv := funcval{entry: uintptr(unsafe.Pointer(&r.mem[0]))}
	fn := *(*func())(unsafe.Pointer(&fv))
	fn()
}

// release unmaps the backing memory. Safe to call multiple times; the
// second and later calls are no-ops once mem is nil.
func (r *executableRegion) release() error {
	if r.mem == nil {
		return nil
	}
	err := unix.Munmap(r.mem)
	r.mem = nil
	if err != nil {
		return &JitError{Kind: MappingError, IP: -1, Cause: fmt.Errorf("munmap: %w", err)}
	}
	return nil
}
