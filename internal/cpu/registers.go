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

// Package cpu implements a MOS 6502 interpreter scoped to the subset a
// Commodore 64 KERNAL-bound loader actually exercises: banked memory,
// stack/flag discipline, execution hooks and a ROM-call trampoline.
// Interrupts, decimal mode and cycle timing are not modeled.
package cpu

// Flag bit masks for the P register. Bit 5 is unused; PHP pushes it set,
// but nothing forces it set in P itself.
const (
	FlagNegative  byte = 0x80
	FlagOverflow  byte = 0x40
	FlagUnused    byte = 0x20
	FlagBreak     byte = 0x10
	FlagDecimal   byte = 0x08
	FlagInterrupt byte = 0x04
	FlagZero      byte = 0x02
	FlagCarry     byte = 0x01
)

// Registers is the 6502 register file plus the instruction counter.
type Registers struct {
	A, X, Y byte
	S       byte // stack index; effective address is 0x0100+S
	PC      uint16
	P       byte
	IC      uint64
}

// GetFlag reports whether the given flag bit is set in P.
func (r *Registers) GetFlag(flag byte) bool {
	return r.P&flag != 0
}

// SetFlag sets or clears the given flag bit in P.
func (r *Registers) SetFlag(flag byte, v bool) {
	if v {
		r.P |= flag
	} else {
		r.P &^= flag
	}
}

// SetNZ sets the Negative and Zero flags from value, per the common 6502
// convention: Z reflects value==0, N reflects bit 7 of value.
func (r *Registers) SetNZ(value byte) {
	r.SetFlag(FlagZero, value == 0)
	r.SetFlag(FlagNegative, value&0x80 != 0)
}

// FlagString renders P as an 8-character "NV-BDIZC" string, '.' for a
// cleared bit. Bit 5 (unused) and bit 4 (break) are not live CPU state
// and are always rendered as '-' and '.' respectively, matching the
// trace format used by the reference tracer.
func (r *Registers) FlagString() string {
	bits := [8]struct {
		mask byte
		ch   byte
	}{
		{FlagNegative, 'N'},
		{FlagOverflow, 'V'},
		{0, '-'},
		{0, '.'},
		{FlagDecimal, 'D'},
		{FlagInterrupt, 'I'},
		{FlagZero, 'Z'},
		{FlagCarry, 'C'},
	}
	out := make([]byte, 8)
	for i, b := range bits {
		switch {
		case b.mask == 0:
			out[i] = b.ch
		case r.P&b.mask != 0:
			out[i] = b.ch
		default:
			out[i] = '.'
		}
	}
	return string(out)
}
