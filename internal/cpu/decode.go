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

	"github.com/btcsuite/goleveldb/leveldb/errors"

	"github.com/kenshaw/c64run/internal/bits"
)

// ErrIllegalOpcode is returned when the fetched opcode has no entry in
// OpTable.
var ErrIllegalOpcode = errors.New("cpu: illegal opcode")

// Decoded holds everything the executor needs to run one instruction:
// the instruction descriptor, its raw bytes (for tracing) and, when the
// addressing mode resolves, the effective address.
type Decoded struct {
	PC        uint16
	Opcode    byte
	Mnemonic  string
	Mode      AddrMode
	Raw       []byte
	EffAddr   uint16
	Immediate byte
	resolved  bool
}

// decode fetches and decodes the instruction at m.Reg.PC, advancing PC
// past the full instruction but not yet executing it.
func (m *Machine) decode() (Decoded, error) {
	pc := m.Reg.PC
	opcode := m.fetch()
	inst := OpTable[opcode]
	if inst.Mnemonic == "" {
		return Decoded{}, fmt.Errorf("%w: %s", ErrIllegalOpcode, hexByte(opcode))
	}

	d := Decoded{PC: pc, Opcode: opcode, Mnemonic: inst.Mnemonic, Mode: inst.Mode}
	d.Raw = append(d.Raw, opcode)

	switch inst.Mode {
	case AddrImplied:
		// no operand

	case AddrImmediate:
		d.Immediate = m.fetch()
		d.Raw = append(d.Raw, d.Immediate)

	case AddrZeroPage:
		zp := m.fetch()
		d.Raw = append(d.Raw, zp)
		d.EffAddr = uint16(zp)
		d.resolved = true

	case AddrZeroPageX:
		zp := m.fetch()
		d.Raw = append(d.Raw, zp)
		d.EffAddr = uint16(byte(zp + m.Reg.X))
		d.resolved = true

	case AddrZeroPageY:
		zp := m.fetch()
		d.Raw = append(d.Raw, zp)
		d.EffAddr = uint16(byte(zp + m.Reg.Y))
		d.resolved = true

	case AddrRelative:
		rel := m.fetch()
		d.Raw = append(d.Raw, rel)
		d.EffAddr = m.Reg.PC + uint16(int8(rel))
		d.resolved = true

	case AddrAbsolute:
		lo, hi := m.fetch(), m.fetch()
		d.Raw = append(d.Raw, lo, hi)
		d.EffAddr = bits.ToWord(lo, hi)
		d.resolved = true

	case AddrAbsoluteX:
		lo, hi := m.fetch(), m.fetch()
		d.Raw = append(d.Raw, lo, hi)
		d.EffAddr = bits.ToWord(lo, hi) + uint16(m.Reg.X)
		d.resolved = true

	case AddrAbsoluteY:
		lo, hi := m.fetch(), m.fetch()
		d.Raw = append(d.Raw, lo, hi)
		d.EffAddr = bits.ToWord(lo, hi) + uint16(m.Reg.Y)
		d.resolved = true

	case AddrIndirect:
		lo, hi := m.fetch(), m.fetch()
		d.Raw = append(d.Raw, lo, hi)
		d.EffAddr = m.deref(bits.ToWord(lo, hi))
		d.resolved = true

	case AddrIndirectX:
		zp := m.fetch()
		d.Raw = append(d.Raw, zp)
		d.EffAddr = m.zpDeref(byte(zp + m.Reg.X))
		d.resolved = true

	case AddrIndirectY:
		zp := m.fetch()
		d.Raw = append(d.Raw, zp)
		d.EffAddr = m.zpDeref(zp) + uint16(m.Reg.Y)
		d.resolved = true
	}

	return d, nil
}

// deref reads a little-endian pointer out of RAM at addr, matching the
// zero-page-wrap-free semantics of the system this decoder is modeled
// on (the classic indirect-JMP page-boundary bug is not emulated).
func (m *Machine) deref(addr uint16) uint16 {
	lo := m.Banks.Read(addr)
	hi := m.Banks.Read(addr + 1)
	return bits.ToWord(lo, hi)
}

// zpDeref reads a little-endian pointer out of zero page at zp, wrapping
// within zero page rather than crossing into page 1.
func (m *Machine) zpDeref(zp byte) uint16 {
	lo := m.Banks.Read(uint16(zp))
	hi := m.Banks.Read(uint16(byte(zp + 1)))
	return bits.ToWord(lo, hi)
}

func hexByte(b byte) string {
	const digits = "0123456789ABCDEF"
	return "0x" + string([]byte{digits[b>>4], digits[b&0xF]})
}
