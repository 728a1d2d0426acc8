package bf

import "sync"

// CompiledProgram is a native routine emitted by Compile. Its backing
// region begins writable; Invoke transitions it to executable exactly
// once before the first call, following a writable -> executable ->
// (call)* lifecycle.
type CompiledProgram struct {
	region *executableRegion

	// tape anchors the generated code's data segment against the
	// garbage collector. Its address is baked into the routine's
	// prologue as a plain integer immediate, a reference the GC cannot
	// see; holding the slice here keeps the backing array reachable
	// for as long as the CompiledProgram itself is.
	tape []int32

	once      sync.Once
	invokeErr error
}

// Invoke makes the compiled routine's backing memory executable (only
// the first time this is called) and then calls it as a nullary
// C-ABI function. The routine performs its own I/O via direct
// read/write syscalls on file descriptors 0 and 1; it returns nothing
// to Go, so any failure it hits (e.g. a read past EOF) is simply an
// unhandled syscall error inside the generated code.
func (c *CompiledProgram) Invoke() error {
	c.once.Do(func() {
		c.invokeErr = c.region.makeExecutable()
	})
	if c.invokeErr != nil {
		return c.invokeErr
	}
	c.region.call()
	return nil
}

// Release unmaps the routine's backing memory. It is safe to call
// whether or not Invoke was ever called.
func (c *CompiledProgram) Release() error {
	return c.region.release()
}
