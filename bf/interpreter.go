package bf

import (
	"context"
	"io"
	"runtime/debug"
)

// MemSize is the fixed tape length: 2^16 cells.
const MemSize = 1 << 16

// cancelCheckInterval bounds how often the interpreter checks ctx for
// cancellation; checking every instruction would put a branch and a
// function call in the hottest loop in the package.
const cancelCheckInterval = 1 << 16

// Interpret executes prog against a fresh MemSize tape, reading from
// stdin and writing to stdout in program order. It returns nil on
// normal termination (ip reaches len(prog.Ops)) or a *RuntimeError on
// failure.
//
// ctx is checked periodically so a long-running program can be
// unwound by a caller, e.g. the CLI's signal handler; on cancellation
// Interpret returns ctx.Err() rather than a *RuntimeError.
func Interpret(ctx context.Context, prog Program, stdin io.Reader, stdout io.Writer) error {
	ops := prog.Ops
	memory := [MemSize]int32{}
	dp := 0
	ip := 0

	// The steady-state loop allocates nothing; disable the GC for its
	// duration so a collection never lands mid-run.
	gcPercent := debug.SetGCPercent(-1)
	defer debug.SetGCPercent(gcPercent)

	var byteBuf [1]byte
	steps := 0
	for ip < len(ops) {
		steps++
		if steps%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		op := ops[ip]
		switch op.Kind {
		case Inc:
			memory[dp] += op.Operand
		case Dec:
			memory[dp] -= op.Operand
		case Left:
			n := int(op.Operand)
			if dp < n {
				return &RuntimeError{Kind: DataPointerUnderflow, IP: ip}
			}
			dp -= n
		case Right:
			n := int(op.Operand)
			if dp+n >= MemSize {
				return &RuntimeError{Kind: DataPointerOverflow, IP: ip}
			}
			dp += n
		case Input:
			for i := int32(0); i < op.Operand; i++ {
				if _, err := io.ReadFull(stdin, byteBuf[:]); err != nil {
					return &RuntimeError{Kind: InputError, IP: ip, Cause: err}
				}
				memory[dp] = int32(byteBuf[0])
			}
		case Output:
			for i := int32(0); i < op.Operand; i++ {
				v := memory[dp]
				if v < 0 || v > 127 {
					return &RuntimeError{Kind: NonAsciiOutput, IP: ip}
				}
				byteBuf[0] = byte(v)
				if _, err := stdout.Write(byteBuf[:]); err != nil {
					return &RuntimeError{Kind: OutputError, IP: ip, Cause: err}
				}
			}
		case JmpFwdIfZero:
			if memory[dp] == 0 {
				ip = int(op.Operand)
				continue
			}
		case JmpBackIfNonZero:
			if memory[dp] != 0 {
				ip = int(op.Operand)
				continue
			}
		}
		ip++
	}
	return nil
}
