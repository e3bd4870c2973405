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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kenshaw/c64run/internal/memory"
)

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	banks, err := memory.NewBanks(make([]byte, memory.CharSize), make([]byte, memory.BasicSize), make([]byte, memory.KernalSize))
	assert.NoError(t, err)
	m := NewMachine(banks)
	assert.NoError(t, m.Hooks.Freeze())
	m.Reg.S = 0xFF
	return m
}

func load(m *Machine, addr uint16, bytes ...byte) {
	for i, b := range bytes {
		m.Banks.Write(addr+uint16(i), b)
	}
}

func TestADCSetsOverflowWithoutCarry(t *testing.T) {
	m := newTestMachine(t)
	m.Reg.PC = 0x0800
	load(m, 0x0800, 0x69, 0x7F) // ADC #$7F
	m.Reg.A = 0x01
	ok, err := m.Step()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x80), m.Reg.A)
	assert.True(t, m.Reg.GetFlag(FlagOverflow))
	assert.True(t, m.Reg.GetFlag(FlagNegative))
	assert.False(t, m.Reg.GetFlag(FlagCarry))
}

func TestSBCBorrowsWithClearedCarry(t *testing.T) {
	m := newTestMachine(t)
	m.Reg.PC = 0x0800
	load(m, 0x0800, 0xE9, 0x01) // SBC #$01
	m.Reg.A = 0x00
	m.Reg.SetFlag(FlagCarry, false)
	ok, err := m.Step()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xFE), m.Reg.A)
	assert.False(t, m.Reg.GetFlag(FlagCarry))
}

func TestCMPLeavesAccumulatorUnchanged(t *testing.T) {
	m := newTestMachine(t)
	m.Reg.PC = 0x0800
	load(m, 0x0800, 0xC9, 0x10) // CMP #$10
	m.Reg.A = 0x10
	ok, err := m.Step()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x10), m.Reg.A)
	assert.True(t, m.Reg.GetFlag(FlagZero))
	assert.True(t, m.Reg.GetFlag(FlagCarry))
}

func TestBITDoesNotStoreToMemory(t *testing.T) {
	m := newTestMachine(t)
	m.Reg.PC = 0x0800
	load(m, 0x0800, 0x24, 0x10) // BIT $10
	m.Banks.Write(0x0010, 0xC0)
	m.Reg.A = 0xFF
	m.Reg.P = 0
	ok, err := m.Step()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xC0), m.Banks.Read(0x0010))
	assert.True(t, m.Reg.GetFlag(FlagNegative))
	assert.True(t, m.Reg.GetFlag(FlagOverflow))
	assert.False(t, m.Reg.GetFlag(FlagZero))
}

func TestDECDecrements(t *testing.T) {
	m := newTestMachine(t)
	m.Reg.PC = 0x0800
	load(m, 0x0800, 0xC6, 0x20) // DEC $20
	m.Banks.Write(0x0020, 0x01)
	ok, err := m.Step()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x00), m.Banks.Read(0x0020))
	assert.True(t, m.Reg.GetFlag(FlagZero))
}

func TestTSXCopiesStackPointerIntoX(t *testing.T) {
	m := newTestMachine(t)
	m.Reg.PC = 0x0800
	load(m, 0x0800, 0xBA) // TSX
	m.Reg.S = 0x42
	m.Reg.A = 0x99
	ok, err := m.Step()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x42), m.Reg.X)
	assert.Equal(t, byte(0x99), m.Reg.A)
}

func TestPLPRestoresPVerbatim(t *testing.T) {
	m := newTestMachine(t)
	m.Reg.PC = 0x0800
	load(m, 0x0800, 0x28) // PLP
	assert.NoError(t, m.push(0x00))
	ok, err := m.Step()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x00), m.Reg.P)
}

func TestJSRandRTSRoundTrip(t *testing.T) {
	m := newTestMachine(t)
	m.Reg.PC = 0x0800
	load(m, 0x0800, 0x20, 0x00, 0x09) // JSR $0900
	load(m, 0x0900, 0x60)             // RTS
	startS := m.Reg.S

	ok, err := m.Step()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0900), m.Reg.PC)

	ok, err = m.Step()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0803), m.Reg.PC)
	assert.Equal(t, startS, m.Reg.S)
}

func TestBranchSignExtension(t *testing.T) {
	m := newTestMachine(t)
	m.Reg.PC = 0x0800
	load(m, 0x0800, 0xD0, 0xFE) // BNE -2 (infinite loop back to self)
	m.Reg.SetFlag(FlagZero, false)
	ok, err := m.Step()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0800), m.Reg.PC)
}

func TestBranchNotTakenFallsThrough(t *testing.T) {
	m := newTestMachine(t)
	m.Reg.PC = 0x0800
	load(m, 0x0800, 0xD0, 0xFE) // BNE -2
	m.Reg.SetFlag(FlagZero, true)
	ok, err := m.Step()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0802), m.Reg.PC)
}

type stubROMCaller struct {
	calledAddr uint16
	calls      int
}

func (s *stubROMCaller) Call(m *Machine, addr uint16) error {
	s.calledAddr = addr
	s.calls++
	return nil
}

func TestJSRIntoKernalBandDetoursAndUnwinds(t *testing.T) {
	m := newTestMachine(t)
	stub := &stubROMCaller{}
	m.ROMCall = stub
	m.Reg.PC = 0x0800
	load(m, 0x0800, 0x20, 0xD2, 0xFF) // JSR $FFD2 (BSOUT)
	load(m, 0x0803, 0xEA)             // NOP, next instruction after the call

	startS := m.Reg.S
	ok, err := m.Step()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, uint16(0xFFD2), stub.calledAddr)
	assert.Equal(t, uint16(0x0803), m.Reg.PC)
	assert.Equal(t, startS, m.Reg.S)
}
