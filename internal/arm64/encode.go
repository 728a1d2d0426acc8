// Package arm64 is a small AArch64 instruction encoding sublibrary. It
// knows nothing about bf; it only turns register/immediate arguments
// into the handful of instruction forms the JIT back-end in package bf
// needs: immediate-materialization ladders, load/store on the data
// pointer register, register add/sub, near conditional branches, and
// the read/write syscall sequences.
//
// Every exported encoding function returns a fixed-size byte slice holding one
// or more little-endian-encoded instructions, ready to be appended to
// a code buffer. Register numbers below refer to the fixed convention
// the JIT uses: X19 holds the data pointer as an absolute address,
// X8/X9 are scratch.
package arm64

import "encoding/binary"

// InstSize is the width of one AArch64 instruction in bytes.
const InstSize = 4

// NOP encodes a no-op. The JIT emits one after every cell load to give
// older cores without hardware load-use forwarding a cycle to catch
// up; it may be dropped on targets where that hazard doesn't exist
// without changing program semantics.
func NOP() []byte {
	return []byte{0x1f, 0x20, 0x03, 0xd5}
}

// RET encodes a return to the link register, ending the emitted
// routine.
func RET() []byte {
	return []byte{0xc0, 0x03, 0x5f, 0xd6}
}

// AddX19X19X8 encodes ADD X19, X19, X8 (advance the data pointer by
// the scratch offset in X8).
func AddX19X19X8() []byte {
	return []byte{0x73, 0x02, 0x08, 0x8b}
}

// SubX19X19X8 encodes SUB X19, X19, X8 (retreat the data pointer by
// the scratch offset in X8).
func SubX19X19X8() []byte {
	return []byte{0x73, 0x02, 0x08, 0xcb}
}

// AddW9W9W8 encodes ADD W9, W9, W8 (cell += delta, 32-bit).
func AddW9W9W8() []byte {
	return []byte{0x29, 0x01, 0x08, 0x0b}
}

// SubW9W9W8 encodes SUB W9, W9, W8 (cell -= delta, 32-bit).
func SubW9W9W8() []byte {
	return []byte{0x29, 0x01, 0x08, 0x4b}
}

// LdrW9AddrX19 encodes LDR W9, [X19] (load the current cell).
func LdrW9AddrX19() []byte {
	return []byte{0x69, 0x02, 0x40, 0xb9}
}

// StrW9AddrX19 encodes STR W9, [X19] (store the current cell).
func StrW9AddrX19() []byte {
	return []byte{0x69, 0x02, 0x00, 0xb9}
}

func movzXnImm16(xn uint8, imm16 uint16) []byte {
	if xn >= 32 {
		panic("arm64: register out of range")
	}
	// sf=1 opc=10 (MOVZ), hw=00: 1101 0010 100i iiii iiii iiii iiir rrrr
	inst := uint32(0xd2800000) | uint32(xn) | (uint32(imm16) << 5)
	return le32(inst)
}

func movkXnImm16(xn uint8, imm16 uint16, lsl uint8) []byte {
	if xn >= 32 {
		panic("arm64: register out of range")
	}
	var hw uint32
	switch lsl {
	case 0:
		hw = 0
	case 16:
		hw = 1
	case 32:
		hw = 2
	case 48:
		hw = 3
	default:
		panic("arm64: invalid MOVK shift")
	}
	// sf=1 opc=11 (MOVK), hw in [22:21]
	inst := uint32(0xf2800000) | uint32(xn) | (uint32(imm16) << 5) | (hw << 21)
	return le32(inst)
}

func le32(inst uint32) []byte {
	b := make([]byte, InstSize)
	binary.LittleEndian.PutUint32(b, inst)
	return b
}

// MovX8Imm32 materializes a 32-bit signed operand into X8 with a
// MOVZ+MOVK pair. Used for the per-op arithmetic/shift immediates
// (Inc/Dec/Left/Right amounts).
func MovX8Imm32(operand int32) []byte {
	u := uint32(operand)
	out := make([]byte, 0, 2*InstSize)
	out = append(out, movzXnImm16(8, uint16(u))...)
	out = append(out, movkXnImm16(8, uint16(u>>16), 16)...)
	return out
}

// MovX19Imm64 materializes a 64-bit operand into X19 with a
// MOVZ+MOVK×3 ladder, covering all 64 bits. Used once, in the
// prologue, to load the tape's absolute base address.
func MovX19Imm64(operand uint64) []byte {
	out := make([]byte, 0, 4*InstSize)
	out = append(out, movzXnImm16(19, uint16(operand))...)
	out = append(out, movkXnImm16(19, uint16(operand>>16), 16)...)
	out = append(out, movkXnImm16(19, uint16(operand>>32), 32)...)
	out = append(out, movkXnImm16(19, uint16(operand>>48), 48)...)
	return out
}

// SyscallWrite emits the five-instruction sequence for
// write(fd=1, buf=X19, len=1): the JIT's Output op writes the single
// byte at the current cell address to standard output.
func SyscallWrite() []byte {
	return []byte{
		0x20, 0x00, 0x80, 0xd2, // mov x0, #1
		0xe1, 0x03, 0x13, 0xaa, // mov x1, x19
		0x22, 0x00, 0x80, 0xd2, // mov x2, #1
		0x08, 0x08, 0x80, 0xd2, // mov x8, #64 (sys_write)
		0x01, 0x00, 0x00, 0xd4, // svc #0
	}
}

// SyscallRead emits the five-instruction sequence for
// read(fd=0, buf=X19, len=1): the JIT's Input op reads a single byte
// from standard input into the current cell address.
func SyscallRead() []byte {
	return []byte{
		0x00, 0x00, 0x80, 0xd2, // mov x0, #0
		0xe1, 0x03, 0x13, 0xaa, // mov x1, x19
		0x22, 0x00, 0x80, 0xd2, // mov x2, #1
		0xe8, 0x07, 0x80, 0xd2, // mov x8, #63 (sys_read)
		0x01, 0x00, 0x00, 0xd4, // svc #0
	}
}

// encode19 masks a signed displacement, measured in instructions, into
// the 19-bit two's-complement field CBZ/CBNZ expect.
func encode19(disp19 int32) uint32 {
	return uint32(disp19) & 0x7ffff
}

// EncodeCbz encodes CBZ X9, #disp19 on its own (64-bit form; the
// preceding 32-bit load into W9 zero-extends into X9, so comparing X9
// against zero is equivalent to comparing the 32-bit cell value).
// Exported separately from CbzBranch so a back-patcher can overwrite
// just this one instruction once a branch target is known.
func EncodeCbz(disp19 int32) []byte {
	inst := uint32(0xb4000000) | 9 | (encode19(disp19) << 5)
	return le32(inst)
}

// EncodeCbnz encodes CBNZ X9, #disp19 on its own.
func EncodeCbnz(disp19 int32) []byte {
	inst := uint32(0xb5000000) | 9 | (encode19(disp19) << 5)
	return le32(inst)
}

// CbzBranch encodes the JmpFwdIfZero triple: load the current cell,
// a load-use hazard nop, then a forward conditional branch that is
// taken when the cell is zero. disp19 is the displacement in
// instructions from this triple's own cbz.
func CbzBranch(disp19 int32) []byte {
	out := make([]byte, 0, 3*InstSize)
	out = append(out, LdrW9AddrX19()...)
	out = append(out, NOP()...)
	out = append(out, EncodeCbz(disp19)...)
	return out
}

// CbnzBranch encodes the JmpBackIfNonZero triple: load the current
// cell, a load-use hazard nop, then a backward conditional branch
// that is taken when the cell is non-zero.
func CbnzBranch(disp19 int32) []byte {
	out := make([]byte, 0, 3*InstSize)
	out = append(out, LdrW9AddrX19()...)
	out = append(out, NOP()...)
	out = append(out, EncodeCbnz(disp19)...)
	return out
}

// BranchTripleSize is the size in bytes of one CbzBranch/CbnzBranch
// triple (load + nop + branch).
const BranchTripleSize = 3 * InstSize

// FitsIn19Bits reports whether disp, a displacement measured in
// instructions, fits the signed 19-bit immediate CBZ/CBNZ encode.
func FitsIn19Bits(disp int32) bool {
	const lo, hi = -(1 << 18), (1 << 18) - 1
	return disp >= lo && disp <= hi
}
