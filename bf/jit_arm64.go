//go:build linux && arm64

package bf

import (
	"unsafe"

	"github.com/J3m3/bfvm/internal/arm64"
)

// generator assembles one program's machine code into a single
// growing buffer. branchStack mirrors the IR builder's addrStack
// (bf/ir.go), but over machine-code byte offsets instead of IR
// indices: a second back-patching stack at the machine-code
// translation stage.
type generator struct {
	code        []byte
	branchStack []int
}

func (g *generator) emit(b []byte) int {
	off := len(g.code)
	g.code = append(g.code, b...)
	return off
}

// patchBranch overwrites the final instruction of the 3-instruction
// load/nop/branch sequence starting at tripleOff.
func (g *generator) patchBranch(tripleOff int, inst []byte) {
	copy(g.code[tripleOff+2*arm64.InstSize:tripleOff+3*arm64.InstSize], inst)
}

// Compile emits a native AArch64 routine equivalent to prog and copies
// it into a writable mapping; Invoke later makes that mapping
// executable. Each op becomes a fixed instruction sequence:
// Inc/Dec/Left/Right apply the folded Operand as one immediate, while
// Input/Output are unrolled per the folded Operand count rather than
// looped, the same way the interpreter iterates op.Operand times
// (bf/interpreter.go).
func Compile(prog Program) (*CompiledProgram, error) {
	tape := make([]int32, MemSize)
	tapeAddr := uint64(uintptr(unsafe.Pointer(&tape[0])))

	g := &generator{}
	g.emit(arm64.MovX19Imm64(tapeAddr))

	for ip, op := range prog.Ops {
		switch op.Kind {
		case Inc:
			g.emit(arm64.LdrW9AddrX19())
			g.emit(arm64.NOP())
			g.emit(arm64.MovX8Imm32(op.Operand))
			g.emit(arm64.AddW9W9W8())
			g.emit(arm64.StrW9AddrX19())
		case Dec:
			g.emit(arm64.LdrW9AddrX19())
			g.emit(arm64.NOP())
			g.emit(arm64.MovX8Imm32(op.Operand))
			g.emit(arm64.SubW9W9W8())
			g.emit(arm64.StrW9AddrX19())
		case Right:
			g.emit(arm64.MovX8Imm32(op.Operand * 4))
			g.emit(arm64.AddX19X19X8())
		case Left:
			g.emit(arm64.MovX8Imm32(op.Operand * 4))
			g.emit(arm64.SubX19X19X8())
		case Input:
			for i := int32(0); i < op.Operand; i++ {
				g.emit(arm64.SyscallRead())
			}
		case Output:
			for i := int32(0); i < op.Operand; i++ {
				g.emit(arm64.SyscallWrite())
			}
		case JmpFwdIfZero:
			tripleOff := g.emit(arm64.CbzBranch(0))
			g.branchStack = append(g.branchStack, tripleOff)
		case JmpBackIfNonZero:
			if len(g.branchStack) == 0 {
				// Build already validated bracket matching; a program
				// that reaches here would have failed in bf.Build.
				panic("bf: jit saw unmatched ']' in a built program")
			}
			openOff := g.branchStack[len(g.branchStack)-1]
			g.branchStack = g.branchStack[:len(g.branchStack)-1]
			closeOff := g.emit(arm64.CbnzBranch(0))

			delta := int32((closeOff-openOff)>>2) + 1
			if !arm64.FitsIn19Bits(delta) {
				return nil, &JitError{Kind: BranchOutOfRange, IP: ip}
			}
			g.patchBranch(openOff, arm64.EncodeCbz(delta))
			g.patchBranch(closeOff, arm64.EncodeCbnz(-delta))
		}
	}

	g.emit(arm64.RET())

	region, err := newExecutableRegion(g.code)
	if err != nil {
		return nil, err
	}
	return &CompiledProgram{region: region, tape: tape}, nil
}
