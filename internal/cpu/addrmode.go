// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cpu

// AddrMode identifies one of the twelve addressing modes the decoder
// recognizes.
type AddrMode uint8

const (
	AddrImplied AddrMode = iota
	AddrImmediate
	AddrZeroPage
	AddrZeroPageX
	AddrZeroPageY
	AddrRelative
	AddrAbsolute
	AddrAbsoluteX
	AddrAbsoluteY
	AddrIndirect
	AddrIndirectX // (zp,X)
	AddrIndirectY // (zp),Y
)

// capability bits, carried over from the addressing-mode metadata table
// of the system this decoder is modeled on.
const (
	capResolve uint8 = 1 << iota
	capAbs
	capZpg
	capInd
	capX
	capY
	capNoIndex
)

type modeInfo struct {
	name string
	caps uint8
	// operandLen is the number of bytes following the opcode byte.
	operandLen int
}

var modeTable = map[AddrMode]modeInfo{
	AddrImplied:   {"impl", 0, 0},
	AddrImmediate: {"imm", 0, 1},
	AddrZeroPage:  {"zpg", capResolve | capZpg | capNoIndex, 1},
	AddrZeroPageX: {"zpg,X", capResolve | capZpg | capX, 1},
	AddrZeroPageY: {"zpg,Y", capResolve | capZpg | capY, 1},
	AddrRelative:  {"rel", capResolve | capNoIndex, 1},
	AddrAbsolute:  {"abs", capResolve | capAbs | capNoIndex, 2},
	AddrAbsoluteX: {"abs,X", capResolve | capAbs | capX, 2},
	AddrAbsoluteY: {"abs,Y", capResolve | capAbs | capY, 2},
	AddrIndirect:  {"ind", capResolve | capInd | capNoIndex, 2},
	AddrIndirectX: {"X,ind", capResolve | capInd | capX, 1},
	AddrIndirectY: {"ind,Y", capResolve | capInd | capY, 1},
}

// String renders the addressing mode's short name, as used in disassembly.
func (m AddrMode) String() string {
	return modeTable[m].name
}

// OperandLen returns the number of bytes following the opcode byte for
// this addressing mode.
func (m AddrMode) OperandLen() int {
	return modeTable[m].operandLen
}

// InstructionLen returns the full instruction length in bytes, including
// the opcode byte.
func (m AddrMode) InstructionLen() int {
	return 1 + m.OperandLen()
}

// Resolves reports whether this mode computes an effective address
// (as opposed to operating on an immediate value or implicitly).
func (m AddrMode) Resolves() bool {
	return modeTable[m].caps&capResolve != 0
}
