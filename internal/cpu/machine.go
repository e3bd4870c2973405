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

import (
	"fmt"
	"strings"

	"github.com/btcsuite/goleveldb/leveldb/errors"

	"github.com/kenshaw/c64run/internal/bits"
	"github.com/kenshaw/c64run/internal/memory"
	"github.com/kenshaw/c64run/internal/trace"
)

// DefaultICLimit is the safety cap on executed instructions, enforced
// whenever EnforceICLimit is set, matching the instruction-count ceiling
// of the system this interpreter is modeled on.
const DefaultICLimit = 0x400000

// KernalBand is the lowest address the ROM-call trampoline intercepts.
const KernalBand = 0xF000

// ROMCaller substitutes high-level semantics for a KERNAL entry point
// instead of letting the interpreter execute ROM code. Call is invoked
// with the machine paused at the moment PC would have entered the
// KERNAL band via JMP or JSR.
type ROMCaller interface {
	Call(m *Machine, addr uint16) error
}

// Machine is the single owned aggregate: registers, banked memory, the
// hook table, the ROM-call recursion depth and an optional trace sink.
// It has no knowledge of the serial bus or drive; those are wired in
// through ROMCaller by the package that assembles a full emulator.
type Machine struct {
	Reg   Registers
	Banks *memory.Banks
	Hooks *HookTable

	ROMCall        ROMCaller
	romCallLevel   int
	StopPC         uint16
	HasStopPC      bool
	ICLimit        uint64
	EnforceICLimit bool

	Trace trace.Sink
}

// NewMachine constructs a Machine over the given banked address space.
func NewMachine(banks *memory.Banks) *Machine {
	return &Machine{
		Banks: banks,
		Hooks: &HookTable{},
		Trace: trace.NopSink{},
	}
}

// ErrStackOverflow and ErrStackUnderflow are returned by push/pull.
var (
	ErrStackOverflow  = errors.New("cpu: stack overflow on push")
	ErrStackUnderflow = errors.New("cpu: stack underflow on pull")
)

func (m *Machine) fetch() byte {
	b := m.Banks.Read(m.Reg.PC)
	m.Reg.PC++
	return b
}

// push writes value to 0x0100+S and decrements S. S==0 before the push
// is a fatal overflow.
func (m *Machine) push(value byte) error {
	if m.Reg.S == 0 {
		return ErrStackOverflow
	}
	m.Banks.Write(0x0100+uint16(m.Reg.S), value)
	m.Reg.S--
	return nil
}

// pull increments S and reads 0x0100+S. S==0xFF before the pull is a
// fatal underflow. pull never touches N/Z; callers that want PLA's
// flag update call SetNZ themselves.
func (m *Machine) pull() (byte, error) {
	if m.Reg.S == 0xFF {
		return 0, ErrStackUnderflow
	}
	m.Reg.S++
	return m.Banks.Read(0x0100 + uint16(m.Reg.S)), nil
}

func (m *Machine) push16(w uint16) error {
	if err := m.push(byte(w >> 8)); err != nil {
		return err
	}
	return m.push(byte(w))
}

func (m *Machine) pull16() (uint16, error) {
	lo, err := m.pull()
	if err != nil {
		return 0, err
	}
	hi, err := m.pull()
	if err != nil {
		return 0, err
	}
	return bits.ToWord(lo, hi), nil
}

// Step fetches, decodes and executes exactly one instruction, firing any
// registered pre-Exec hook first and emitting a trace line afterward.
// It returns false when the machine has reached its stop condition.
func (m *Machine) Step() (bool, error) {
	if m.HasStopPC && m.Reg.PC == m.StopPC {
		return false, nil
	}
	if m.EnforceICLimit && m.Reg.IC >= m.ICLimit {
		return false, fmt.Errorf("cpu: instruction count limit %d reached at PC=%04X", m.ICLimit, m.Reg.PC)
	}

	pc := m.Reg.PC
	m.Hooks.firePre(m, pc, HookExec)

	d, err := m.decode()
	if err != nil {
		return false, fmt.Errorf("%w at PC=%04X IC=%d", err, pc, m.Reg.IC)
	}

	if err := m.execute(d); err != nil {
		return false, fmt.Errorf("%w (%s) at PC=%04X IC=%d", err, d.Mnemonic, pc, m.Reg.IC)
	}

	m.Reg.IC++
	m.emitTrace(d)
	return true, nil
}

// Run steps until Step reports the stop condition or an error.
func (m *Machine) Run() error {
	for {
		more, err := m.Step()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// emitTrace renders one trace line in the format: PC, raw opcode bytes
// padded to three, mnemonic and operand, register snapshot, flag
// string, instruction counter.
func (m *Machine) emitTrace(d Decoded) {
	if _, off := m.Trace.(trace.NopSink); off {
		return
	}
	var raw strings.Builder
	for i := 0; i < 3; i++ {
		if i > 0 {
			raw.WriteByte(' ')
		}
		if i < len(d.Raw) {
			fmt.Fprintf(&raw, "%02X", d.Raw[i])
		} else {
			raw.WriteString("  ")
		}
	}
	line := fmt.Sprintf("%04X  %s  %-4s %-12s A:%02X X:%02X Y:%02X SP:%02X %s  %08X",
		d.PC, raw.String(), d.Mnemonic, operandText(d), m.Reg.A, m.Reg.X, m.Reg.Y, m.Reg.S, m.Reg.FlagString(), m.Reg.IC)
	m.Trace.Emit(line)
}

func operandText(d Decoded) string {
	switch d.Mode {
	case AddrImplied:
		return ""
	case AddrImmediate:
		return fmt.Sprintf("#$%02X", d.Immediate)
	case AddrZeroPage, AddrZeroPageX, AddrZeroPageY, AddrIndirectX, AddrIndirectY:
		return fmt.Sprintf("$%02X", d.Raw[1])
	case AddrRelative:
		return fmt.Sprintf("$%04X", d.EffAddr)
	case AddrAbsolute, AddrAbsoluteX, AddrAbsoluteY, AddrIndirect:
		return fmt.Sprintf("$%04X", bits.ToWord(d.Raw[1], d.Raw[2]))
	default:
		return ""
	}
}
