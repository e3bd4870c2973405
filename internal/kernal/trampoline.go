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

package kernal

import (
	"fmt"

	"github.com/kenshaw/c64run/internal/cpu"
	"github.com/kenshaw/c64run/internal/drive"
	"github.com/kenshaw/c64run/internal/serial"
	"github.com/kenshaw/c64run/internal/trace"
)

// Trampoline implements cpu.ROMCaller: it substitutes high-level
// semantics for the KERNAL entry points a serial-bus-bound loader
// actually calls, rather than executing ROM code.
type Trampoline struct {
	Bus   *serial.Bus
	Drive *drive.Drive
	Trace trace.Sink

	pendingSecondary byte
}

// NewTrampoline wires a trampoline to the given bus and drive.
func NewTrampoline(bus *serial.Bus, d *drive.Drive) *Trampoline {
	return &Trampoline{Bus: bus, Drive: d, Trace: trace.NopSink{}}
}

func (t *Trampoline) log(m *cpu.Machine, format string, args ...interface{}) {
	prefix := ""
	for i := 0; i < m.RomCallLevel(); i++ {
		prefix += ">"
	}
	t.Trace.Emit(prefix + fmt.Sprintf(format, args...))
}

func (t *Trampoline) romError(m *cpu.Machine, code int) {
	m.Banks.Write(RAMStatus, byte(code))
	m.Reg.SetFlag(cpu.FlagCarry, true)
}

func (t *Trampoline) ok(m *cpu.Machine) {
	m.Reg.SetFlag(cpu.FlagCarry, false)
}

// Call dispatches addr to its synthesized KERNAL behavior.
func (t *Trampoline) Call(m *cpu.Machine, addr uint16) error {
	t.log(m, "ROM %04X", addr)
	switch addr {
	case AddrCHKIN:
		return t.chkin(m)
	case AddrGETIN:
		m.Reg.A = 0x30 // stub: no keyboard buffer model
		t.ok(m)
	case AddrCLRCHN:
		return t.clrchn(m)
	case AddrBSOUT:
		return t.bsout(m)
	case AddrCIOUT:
		return t.ciout(m)
	case AddrSECOND, AddrTKSA:
		return t.second(m)
	case AddrLISTEN:
		t.listen(m)
	case AddrUNLSN:
		return t.unlsn(m)
	case AddrTALK:
		t.talk(m)
	case AddrACPTR, AddrBASIN:
		return t.acptr(m)
	case AddrUNTLK:
		t.Bus.Clear()
		t.ok(m)
	case AddrSETNAM:
		t.setnam(m)
	case AddrSETLFS:
		t.setlfs(m)
	case AddrLOAD:
		return t.load(m)
	case AddrOPEN:
		return t.open(m)
	case AddrCLOSE:
		return t.close(m)
	case AddrCLALL:
		m.Banks.Write(RAMLdtnd, 0)
		return t.clrchn(m)
	default:
		return fmt.Errorf("kernal: unsupported ROM entry point %04X", addr)
	}
	return nil
}

func (t *Trampoline) chkin(m *cpu.Machine) error {
	idx := t.lookupFileNumber(m, m.Reg.X)
	if idx < 0 {
		t.romError(m, ErrFileNotOpen)
		return nil
	}
	t.fetchFileTableEntry(m, idx)
	device := m.Banks.Read(RAMFa)
	if device >= 8 {
		t.talkDevice(device)
		sa := m.Banks.Read(RAMSa)
		if int8(sa) >= 0 {
			t.pendingSecondary = sa
		}
	}
	t.ok(m)
	return nil
}

func (t *Trampoline) clrchn(m *cpu.Machine) error {
	if m.Banks.Read(RAMDflto) > 3 {
		if err := t.unlsn(m); err != nil {
			return err
		}
	}
	if m.Banks.Read(RAMDfltn) > 3 {
		t.Bus.Clear()
	}
	m.Banks.Write(RAMDfltn, 0)
	m.Banks.Write(RAMDflto, 3)
	t.ok(m)
	return nil
}

func (t *Trampoline) bsout(m *cpu.Machine) error {
	device := m.Banks.Read(RAMDflto)
	if device < 4 {
		t.log(m, "screen: %02X", m.Reg.A)
		t.ok(m)
		return nil
	}
	return t.ciout(m)
}

func (t *Trampoline) ciout(m *cpu.Machine) error {
	if !t.Bus.IsListening() || t.Bus.Device() < 8 {
		t.romError(m, ErrDeviceNotPresent)
		return nil
	}
	if err := t.Drive.CIOUT(m.Reg.A); err != nil {
		return err
	}
	t.ok(m)
	return nil
}

func (t *Trampoline) second(m *cpu.Machine) error {
	if !t.Bus.IsListening() && !t.Bus.IsTalking() {
		t.romError(m, ErrDeviceNotPresent)
		return nil
	}
	t.pendingSecondary = m.Reg.A
	t.ok(m)
	return nil
}

func (t *Trampoline) listen(m *cpu.Machine) {
	t.Bus.SetListener(m.Reg.A)
	if m.Reg.A >= 8 {
		t.Drive.Listen()
	}
	t.ok(m)
}

func (t *Trampoline) talk(m *cpu.Machine) {
	t.talkDevice(m.Reg.A)
	t.ok(m)
}

func (t *Trampoline) talkDevice(device byte) {
	t.Bus.SetTalker(device)
}

func (t *Trampoline) unlsn(m *cpu.Machine) error {
	if t.Bus.Device() >= 8 {
		if err := t.Drive.Unlsn(t.pendingSecondary); err != nil {
			return err
		}
	}
	t.Bus.Clear()
	t.ok(m)
	return nil
}

func (t *Trampoline) acptr(m *cpu.Machine) error {
	if !t.Bus.IsTalking() || t.Bus.Device() < 8 {
		t.romError(m, ErrDeviceNotPresent)
		return nil
	}
	channel := int(t.pendingSecondary & 0x0F)
	b, err := t.Drive.ACPTR(channel)
	if err != nil {
		return err
	}
	m.Reg.A = b
	t.ok(m)
	return nil
}

func (t *Trampoline) setnam(m *cpu.Machine) {
	m.Banks.Write(RAMFnlen, m.Reg.A)
	m.Banks.Write(RAMFnadr, m.Reg.X)
	m.Banks.Write(RAMFnadr+1, m.Reg.Y)
	t.ok(m)
}

func (t *Trampoline) setlfs(m *cpu.Machine) {
	m.Banks.Write(RAMLa, m.Reg.A)
	m.Banks.Write(RAMFa, m.Reg.X)
	m.Banks.Write(RAMSa, m.Reg.Y)
	t.ok(m)
}

// readFilename reconstructs the filename string SETNAM pointed at.
func (t *Trampoline) readFilename(m *cpu.Machine) string {
	n := int(m.Banks.Read(RAMFnlen))
	addr := m.Banks.Read16(RAMFnadr)
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[i] = m.Banks.Read(addr + uint16(i))
	}
	return string(buf)
}

func (t *Trampoline) open(m *cpu.Machine) error {
	la := m.Banks.Read(RAMLa)
	if t.lookupFileNumber(m, la) >= 0 {
		t.romError(m, ErrFileOpen)
		return nil
	}
	count := int(m.Banks.Read(RAMLdtnd))
	if count >= MaxOpenFiles {
		t.romError(m, ErrTooManyFiles)
		return nil
	}
	fa := m.Banks.Read(RAMFa)
	sa := m.Banks.Read(RAMSa) | 0x60
	m.Banks.Write(RAMLat+uint16(count), la)
	m.Banks.Write(RAMFat+uint16(count), fa)
	m.Banks.Write(RAMSat+uint16(count), sa)
	m.Banks.Write(RAMLdtnd, byte(count+1))

	if fa >= 8 {
		channel := int(sa & 0x0F)
		filename := t.readFilename(m)
		t.Drive.Listen()
		if len(filename) == 0 || filename[0] != '#' {
			t.romError(m, ErrMissingFileName)
			return nil
		}
		if err := t.Drive.OpenChannel(channel, filename[1:]); err != nil {
			return err
		}
	}
	t.ok(m)
	return nil
}

func (t *Trampoline) close(m *cpu.Machine) error {
	idx := t.lookupFileNumber(m, m.Reg.X)
	if idx < 0 {
		t.romError(m, ErrFileNotOpen)
		return nil
	}
	fa := m.Banks.Read(RAMFat + uint16(idx))
	sa := m.Banks.Read(RAMSat + uint16(idx))
	if fa >= 8 {
		t.Drive.CloseChannel(int(sa & 0x0F))
	}
	t.removeFileTableEntry(m, idx)
	t.ok(m)
	return nil
}

func (t *Trampoline) lookupFileNumber(m *cpu.Machine, la byte) int {
	count := int(m.Banks.Read(RAMLdtnd))
	for i := 0; i < count; i++ {
		if m.Banks.Read(RAMLat+uint16(i)) == la {
			return i
		}
	}
	return -1
}

func (t *Trampoline) fetchFileTableEntry(m *cpu.Machine, idx int) {
	m.Banks.Write(RAMLa, m.Banks.Read(RAMLat+uint16(idx)))
	m.Banks.Write(RAMFa, m.Banks.Read(RAMFat+uint16(idx)))
	m.Banks.Write(RAMSa, m.Banks.Read(RAMSat+uint16(idx)))
}

func (t *Trampoline) removeFileTableEntry(m *cpu.Machine, idx int) {
	count := int(m.Banks.Read(RAMLdtnd))
	last := count - 1
	if idx != last {
		m.Banks.Write(RAMLat+uint16(idx), m.Banks.Read(RAMLat+uint16(last)))
		m.Banks.Write(RAMFat+uint16(idx), m.Banks.Read(RAMFat+uint16(last)))
		m.Banks.Write(RAMSat+uint16(idx), m.Banks.Read(RAMSat+uint16(last)))
	}
	m.Banks.Write(RAMLdtnd, byte(last))
}
