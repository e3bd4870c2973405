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

import "github.com/btcsuite/goleveldb/leveldb/errors"

// ErrUnsupportedInstruction marks a decoded mnemonic/mode combination
// the executor does not know how to run — should be unreachable given a
// correct OpTable, but guards against a future table typo.
var ErrUnsupportedInstruction = errors.New("cpu: unsupported instruction/mode combination")

// ErrInterruptUnsupported is returned by BRK/RTI, which this core never
// models.
var ErrInterruptUnsupported = errors.New("cpu: interrupts are not supported")

var immediateFamily = map[string]bool{
	"ADC": true, "SBC": true, "CMP": true, "CPX": true, "CPY": true,
	"ORA": true, "AND": true, "EOR": true, "LDA": true, "LDX": true, "LDY": true,
}

func (m *Machine) execute(d Decoded) error {
	switch d.Mode {
	case AddrImplied:
		return m.execImplied(d)
	case AddrRelative:
		return m.execBranch(d)
	case AddrImmediate:
		return m.applyImmediateFamily(d.Mnemonic, d.Immediate)
	default:
		return m.execAddressed(d)
	}
}

// operand reads the byte an addressed instruction operates on.
func (m *Machine) operand(d Decoded) byte {
	return m.Banks.Read(d.EffAddr)
}

func (m *Machine) execAddressed(d Decoded) error {
	if immediateFamily[d.Mnemonic] {
		return m.applyImmediateFamily(d.Mnemonic, m.operand(d))
	}
	switch d.Mnemonic {
	case "STA":
		m.Banks.Write(d.EffAddr, m.Reg.A)
	case "STX":
		m.Banks.Write(d.EffAddr, m.Reg.X)
	case "STY":
		m.Banks.Write(d.EffAddr, m.Reg.Y)
	case "BIT":
		// Reads memory and sets N/V/Z from it; the reference source
		// this core corrects instead stored P to memory.
		v := m.operand(d)
		m.Reg.SetFlag(FlagZero, m.Reg.A&v == 0)
		m.Reg.SetFlag(FlagNegative, v&0x80 != 0)
		m.Reg.SetFlag(FlagOverflow, v&0x40 != 0)
	case "INC":
		v := m.operand(d) + 1
		m.Banks.Write(d.EffAddr, v)
		m.Reg.SetNZ(v)
	case "DEC":
		// The reference source computes RAM[addr]+1 here too, the same
		// as INC; this core uses the correct -1.
		v := m.operand(d) - 1
		m.Banks.Write(d.EffAddr, v)
		m.Reg.SetNZ(v)
	case "ASL":
		v := m.bitwiseASL(m.operand(d))
		m.Banks.Write(d.EffAddr, v)
	case "LSR":
		v := m.bitwiseLSR(m.operand(d))
		m.Banks.Write(d.EffAddr, v)
	case "ROL":
		v := m.bitwiseROL(m.operand(d))
		m.Banks.Write(d.EffAddr, v)
	case "ROR":
		v := m.bitwiseROR(m.operand(d))
		m.Banks.Write(d.EffAddr, v)
	case "JMP":
		return m.jump(d.EffAddr)
	case "JSR":
		return m.jsr(d.EffAddr)
	default:
		return ErrUnsupportedInstruction
	}
	return nil
}

// applyImmediateFamily runs the shared semantic for every instruction
// that can take either an immediate byte or a memory-resolved byte.
func (m *Machine) applyImmediateFamily(mnemonic string, value byte) error {
	switch mnemonic {
	case "ADC":
		m.Reg.A = m.add(m.Reg.A, value, false)
	case "SBC":
		m.Reg.A = m.add(m.Reg.A, ^value, false)
	case "CMP":
		m.add(m.Reg.A, ^value, true)
	case "CPX":
		m.add(m.Reg.X, ^value, true)
	case "CPY":
		m.add(m.Reg.Y, ^value, true)
	case "ORA":
		m.Reg.A |= value
		m.Reg.SetNZ(m.Reg.A)
	case "AND":
		m.Reg.A &= value
		m.Reg.SetNZ(m.Reg.A)
	case "EOR":
		m.Reg.A ^= value
		m.Reg.SetNZ(m.Reg.A)
	case "LDA":
		m.Reg.A = value
		m.Reg.SetNZ(m.Reg.A)
	case "LDX":
		m.Reg.X = value
		m.Reg.SetNZ(m.Reg.X)
	case "LDY":
		m.Reg.Y = value
		m.Reg.SetNZ(m.Reg.Y)
	default:
		return ErrUnsupportedInstruction
	}
	return nil
}

// add is the single shared helper behind ADC/SBC/CMP/CPX/CPY: operand is
// already complemented by the caller for subtraction. isCompare skips
// the accumulator/overflow writeback CMP-family instructions must not
// perform.
func (m *Machine) add(reg, operand byte, isCompare bool) byte {
	carry := uint16(0)
	if isCompare {
		carry = 1
	} else if m.Reg.GetFlag(FlagCarry) {
		carry = 1
	}
	sum := uint16(reg) + uint16(operand) + carry
	result := byte(sum)
	m.Reg.SetFlag(FlagCarry, sum >= 0x100)
	m.Reg.SetNZ(result)
	if !isCompare {
		m.Reg.SetFlag(FlagOverflow, (reg^result)&(operand^result)&0x80 != 0)
		return result
	}
	return reg
}

func (m *Machine) bitwiseASL(v byte) byte {
	m.Reg.SetFlag(FlagCarry, v&0x80 != 0)
	v <<= 1
	m.Reg.SetNZ(v)
	return v
}

func (m *Machine) bitwiseLSR(v byte) byte {
	m.Reg.SetFlag(FlagCarry, v&0x01 != 0)
	v >>= 1
	m.Reg.SetNZ(v)
	return v
}

func (m *Machine) bitwiseROL(v byte) byte {
	carryIn := byte(0)
	if m.Reg.GetFlag(FlagCarry) {
		carryIn = 1
	}
	m.Reg.SetFlag(FlagCarry, v&0x80 != 0)
	v = v<<1 | carryIn
	m.Reg.SetNZ(v)
	return v
}

func (m *Machine) bitwiseROR(v byte) byte {
	carryIn := byte(0)
	if m.Reg.GetFlag(FlagCarry) {
		carryIn = 0x80
	}
	m.Reg.SetFlag(FlagCarry, v&0x01 != 0)
	v = v>>1 | carryIn
	m.Reg.SetNZ(v)
	return v
}

func (m *Machine) execImplied(d Decoded) error {
	switch d.Mnemonic {
	case "TAX":
		m.Reg.X = m.Reg.A
		m.Reg.SetNZ(m.Reg.X)
	case "TAY":
		m.Reg.Y = m.Reg.A
		m.Reg.SetNZ(m.Reg.Y)
	case "TXA":
		m.Reg.A = m.Reg.X
		m.Reg.SetNZ(m.Reg.A)
	case "TYA":
		m.Reg.A = m.Reg.Y
		m.Reg.SetNZ(m.Reg.A)
	case "TSX":
		// The reference source sets N/Z from A here; this core uses X.
		m.Reg.X = m.Reg.S
		m.Reg.SetNZ(m.Reg.X)
	case "TXS":
		m.Reg.S = m.Reg.X // never updates N/Z
	case "PHA":
		return m.push(m.Reg.A)
	case "PHP":
		return m.push(m.Reg.P | FlagBreak | FlagUnused)
	case "PLA":
		v, err := m.pull()
		if err != nil {
			return err
		}
		m.Reg.A = v
		m.Reg.SetNZ(m.Reg.A)
	case "PLP":
		v, err := m.pull()
		if err != nil {
			return err
		}
		// The reference source calls its generic "pull" helper here,
		// which always recomputes N/Z; that clobbers P on a PLP. This
		// core restores P verbatim instead.
		m.Reg.P = v
	case "CLC":
		m.Reg.SetFlag(FlagCarry, false)
	case "SEC":
		m.Reg.SetFlag(FlagCarry, true)
	case "CLV":
		m.Reg.SetFlag(FlagOverflow, false)
	case "CLD":
		m.Reg.SetFlag(FlagDecimal, false)
	case "SED":
		m.Reg.SetFlag(FlagDecimal, true)
	case "CLI":
		m.Reg.SetFlag(FlagInterrupt, false)
	case "SEI":
		m.Reg.SetFlag(FlagInterrupt, true)
	case "INX":
		m.Reg.X++
		m.Reg.SetNZ(m.Reg.X)
	case "INY":
		m.Reg.Y++
		m.Reg.SetNZ(m.Reg.Y)
	case "DEX":
		m.Reg.X--
		m.Reg.SetNZ(m.Reg.X)
	case "DEY":
		m.Reg.Y--
		m.Reg.SetNZ(m.Reg.Y)
	case "ASL":
		m.Reg.A = m.bitwiseASL(m.Reg.A)
	case "LSR":
		m.Reg.A = m.bitwiseLSR(m.Reg.A)
	case "ROL":
		m.Reg.A = m.bitwiseROL(m.Reg.A)
	case "ROR":
		m.Reg.A = m.bitwiseROR(m.Reg.A)
	case "NOP":
		// no-op
	case "RTS":
		return m.rts()
	case "BRK", "RTI":
		return ErrInterruptUnsupported
	default:
		return ErrUnsupportedInstruction
	}
	return nil
}

func (m *Machine) execBranch(d Decoded) error {
	var taken bool
	switch d.Mnemonic {
	case "BPL":
		taken = !m.Reg.GetFlag(FlagNegative)
	case "BMI":
		taken = m.Reg.GetFlag(FlagNegative)
	case "BVC":
		taken = !m.Reg.GetFlag(FlagOverflow)
	case "BVS":
		taken = m.Reg.GetFlag(FlagOverflow)
	case "BCC":
		taken = !m.Reg.GetFlag(FlagCarry)
	case "BCS":
		taken = m.Reg.GetFlag(FlagCarry)
	case "BNE":
		taken = !m.Reg.GetFlag(FlagZero)
	case "BEQ":
		taken = m.Reg.GetFlag(FlagZero)
	default:
		return ErrUnsupportedInstruction
	}
	if taken {
		m.Reg.PC = d.EffAddr
	}
	return nil
}

// jump sets PC to addr directly, or — when addr lands in the KERNAL
// band — detours through the ROM trampoline and performs a synthetic
// RTS-like unwind so the instruction leaves the stack exactly as it
// found it.
func (m *Machine) jump(addr uint16) error {
	if addr < KernalBand || m.ROMCall == nil {
		m.Reg.PC = addr
		return nil
	}
	return m.romDetour(addr)
}

// jsr pushes the return address (the address of the last byte of the
// JSR instruction) then jumps, same as real 6502 JSR. A KERNAL-band
// target is handed to romDetour instead, which pushes that same return
// address itself before calling the trampoline — jsr must not push
// twice, or the synthetic RTS romDetour performs only unwinds one of
// the two pushes and leaks stack space on every ROM call.
func (m *Machine) jsr(addr uint16) error {
	if addr >= KernalBand && m.ROMCall != nil {
		return m.romDetour(addr)
	}
	if err := m.push16(m.Reg.PC - 1); err != nil {
		return err
	}
	m.Reg.PC = addr
	return nil
}

// romDetour pushes a synthetic return address, invokes the ROM
// trampoline, then performs the RTS half of the round trip so the
// effective stack depth and PC match a real subroutine that ran and
// returned.
func (m *Machine) romDetour(addr uint16) error {
	if err := m.push16(m.Reg.PC - 1); err != nil {
		return err
	}
	m.romCallLevel++
	err := m.ROMCall.Call(m, addr)
	m.romCallLevel--
	if err != nil {
		return err
	}
	return m.rts()
}

// RomCallLevel reports the current ROM-trampoline recursion depth, used
// to indent trace output for nested calls (e.g. LOAD calling LISTEN
// calling SECOND).
func (m *Machine) RomCallLevel() int {
	return m.romCallLevel
}

func (m *Machine) rts() error {
	addr, err := m.pull16()
	if err != nil {
		return err
	}
	m.Reg.PC = addr + 1
	return nil
}
