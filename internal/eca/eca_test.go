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

package eca

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kenshaw/c64run/internal/cpu"
	"github.com/kenshaw/c64run/internal/memory"
)

type capturingSink struct {
	lines []string
}

func (c *capturingSink) Emit(line string) {
	c.lines = append(c.lines, line)
}

func TestMnemonicInRange(t *testing.T) {
	assert.Equal(t, "GOTO", Mnemonic(0x00))
	assert.Equal(t, "LDXY", Mnemonic(0x13))
}

func TestMnemonicOutOfRange(t *testing.T) {
	assert.Equal(t, "???", Mnemonic(0xFF))
}

func newTestMachine(t *testing.T) *cpu.Machine {
	t.Helper()
	banks, err := memory.NewBanks(make([]byte, memory.CharSize), make([]byte, memory.BasicSize), make([]byte, memory.KernalSize))
	assert.NoError(t, err)
	return cpu.NewMachine(banks)
}

// fire runs every hook registered for (pc, Exec), as the executor does
// when PC reaches pc.
func fire(t *testing.T, m *cpu.Machine, pc uint16) {
	t.Helper()
	hooks, err := m.Hooks.Lookup(pc, cpu.HookExec)
	assert.NoError(t, err)
	for _, h := range hooks {
		h.Fn(m, h)
	}
}

func TestRegisterTraceHooksFiresAtBytecodeFetch(t *testing.T) {
	m := newTestMachine(t)
	sink := &capturingSink{}
	m.Trace = sink
	m.Banks.Write(0x4000, 0x02) // the "current instruction" the stub IP points at

	err := RegisterTraceHooks(m, func() uint16 { return 0x4000 }, func() uint16 { return 0xBEEF })
	assert.NoError(t, err)
	assert.NoError(t, m.Hooks.Freeze())

	fire(t, m, 0xC51A)
	assert.Len(t, sink.lines, 1)
	assert.Contains(t, sink.lines[0], "GOSUB")

	fire(t, m, 0xC56D)
	assert.Len(t, sink.lines, 2)
	assert.Contains(t, sink.lines[1], "BEEF")

	fire(t, m, 0xC7AA)
	assert.Len(t, sink.lines, 3)
	assert.Contains(t, sink.lines[2], "bit spread")
}

func TestRegisterTraceHooksRejectsNilHookTable(t *testing.T) {
	m := newTestMachine(t)
	m.Hooks = nil
	err := RegisterTraceHooks(m, func() uint16 { return 0 }, func() uint16 { return 0 })
	assert.Error(t, err)
}
