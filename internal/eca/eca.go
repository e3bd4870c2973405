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

// Package eca names the bytecode instruction set of a small interpreted
// loader encountered embedded in ROM, and registers trace hooks at its
// interpreter's read/operand-capture points so a session can watch it
// execute without disassembling the loader's own bytecode stream.
package eca

import (
	"fmt"

	"github.com/kenshaw/c64run/internal/cpu"
)

// InstructionCount is the number of defined bytecode instructions.
const InstructionCount = 0x14

// Mnemonics gives a short disassembly-style name for each bytecode,
// indexed by opcode.
var Mnemonics = [InstructionCount]string{
	"GOTO", "AND", "GOSUB", "JSR", "LDA", "LDA", "GOTOZ", "STA",
	"SUB", "JMP", "RET", "ARR", "ASL", "INC", "ADD", "DCRACW",
	"GOTONZ", "SUB", "GOTOGE", "LDXY",
}

// Mnemonic returns the disassembly mnemonic for a bytecode, or "???"
// if it is out of range.
func Mnemonic(opcode byte) string {
	if int(opcode) >= InstructionCount {
		return "???"
	}
	return Mnemonics[opcode]
}

// Interpreter entry points this package's hooks attach to.
const (
	addrBytecodePostRead = 0xC51A // A holds the just-fetched instruction
	addrOperandWordReady = 0xC56D // $22:$23 holds a word operand
	addrExitBitspread    = 0xC7AA
)

// RegisterTraceHooks registers pre-execution hooks at the interpreter's
// instruction-fetch and word-operand points and at the entry of its
// bit-spread routine, logging each through m's trace sink. readIP and
// readOperandWord are callbacks that read the loader's own
// IP and pending-operand variables out of RAM (their addresses are an
// implementation detail of the loader this package doesn't otherwise
// model).
func RegisterTraceHooks(m *cpu.Machine, readIP, readOperandWord func() uint16) error {
	if m.Hooks == nil {
		return fmt.Errorf("eca: machine has no hook table")
	}
	m.Hooks.Register(&cpu.Hook{
		PC:   addrBytecodePostRead,
		Type: cpu.HookExec,
		Name: "eca: read bytecode",
		Fn: func(mm *cpu.Machine, h *cpu.Hook) {
			ip := readIP()
			byc := mm.Banks.Read(ip)
			mm.Trace.Emit(fmt.Sprintf("ECA IP=%04X inst %02X '%s'", ip, byc, Mnemonic(byc)))
		},
	})
	m.Hooks.Register(&cpu.Hook{
		PC:   addrOperandWordReady,
		Type: cpu.HookExec,
		Name: "eca: capture word operand",
		Fn: func(mm *cpu.Machine, h *cpu.Hook) {
			ip := readIP() - 2
			op := readOperandWord()
			mm.Trace.Emit(fmt.Sprintf("ECA IP=%04X word %04X", ip, op))
		},
	})
	m.Hooks.Register(&cpu.Hook{
		PC:   addrExitBitspread,
		Type: cpu.HookExec,
		Name: "eca: bit spread routine",
		Fn: func(mm *cpu.Machine, h *cpu.Hook) {
			mm.Trace.Emit("ECA: bit spread routine reached")
		},
	})
	return nil
}
