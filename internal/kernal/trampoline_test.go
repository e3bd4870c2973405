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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kenshaw/c64run/internal/cpu"
	"github.com/kenshaw/c64run/internal/drive"
	"github.com/kenshaw/c64run/internal/memory"
	"github.com/kenshaw/c64run/internal/serial"
)

func newTestSetup(t *testing.T) (*cpu.Machine, *Trampoline) {
	t.Helper()
	banks, err := memory.NewBanks(make([]byte, memory.CharSize), make([]byte, memory.BasicSize), make([]byte, memory.KernalSize))
	assert.NoError(t, err)
	m := cpu.NewMachine(banks)
	assert.NoError(t, m.Hooks.Freeze())
	bus := &serial.Bus{}
	tr := NewTrampoline(bus, drive.NewDrive())
	m.ROMCall = tr
	return m, tr
}

func setname(m *cpu.Machine, name string) {
	addr := uint16(0x0300)
	for i := 0; i < len(name); i++ {
		m.Banks.Write(addr+uint16(i), name[i])
	}
	m.Reg.A = byte(len(name))
	m.Reg.X = byte(addr)
	m.Reg.Y = byte(addr >> 8)
}

func TestSETNAMAndSETLFSPopulateRAMVars(t *testing.T) {
	m, tr := newTestSetup(t)
	setname(m, "TEST")
	assert.NoError(t, tr.Call(m, AddrSETNAM))
	assert.Equal(t, byte(4), m.Banks.Read(RAMFnlen))

	m.Reg.A, m.Reg.X, m.Reg.Y = 1, 8, 0
	assert.NoError(t, tr.Call(m, AddrSETLFS))
	assert.Equal(t, byte(1), m.Banks.Read(RAMLa))
	assert.Equal(t, byte(8), m.Banks.Read(RAMFa))
	assert.Equal(t, byte(0), m.Banks.Read(RAMSa))
	assert.False(t, m.Reg.GetFlag(cpu.FlagCarry))
}

func TestOpenDirectBufferRequest(t *testing.T) {
	m, tr := newTestSetup(t)
	setname(m, "#0")
	assert.NoError(t, tr.Call(m, AddrSETNAM))
	m.Reg.A, m.Reg.X, m.Reg.Y = 2, 8, 15
	assert.NoError(t, tr.Call(m, AddrSETLFS))

	assert.NoError(t, tr.Call(m, AddrOPEN))
	assert.False(t, m.Reg.GetFlag(cpu.FlagCarry))
	assert.Equal(t, byte(1), m.Banks.Read(RAMLdtnd))
}

func TestOpenRejectsDuplicateLogicalFileNumber(t *testing.T) {
	m, tr := newTestSetup(t)
	setname(m, "#0")
	assert.NoError(t, tr.Call(m, AddrSETNAM))
	m.Reg.A, m.Reg.X, m.Reg.Y = 2, 8, 15
	assert.NoError(t, tr.Call(m, AddrSETLFS))
	assert.NoError(t, tr.Call(m, AddrOPEN))

	setname(m, "#1")
	assert.NoError(t, tr.Call(m, AddrSETNAM))
	m.Reg.A, m.Reg.X, m.Reg.Y = 2, 8, 15
	assert.NoError(t, tr.Call(m, AddrSETLFS))
	assert.NoError(t, tr.Call(m, AddrOPEN))
	assert.True(t, m.Reg.GetFlag(cpu.FlagCarry))
	assert.Equal(t, byte(ErrFileOpen), m.Banks.Read(RAMStatus))
}

func TestOpenRejectsTooManyFiles(t *testing.T) {
	m, tr := newTestSetup(t)
	for i := 0; i < MaxOpenFiles; i++ {
		setname(m, "#0")
		assert.NoError(t, tr.Call(m, AddrSETNAM))
		m.Reg.A, m.Reg.X, m.Reg.Y = byte(i), 8, 15
		assert.NoError(t, tr.Call(m, AddrSETLFS))
		assert.NoError(t, tr.Call(m, AddrOPEN))
	}
	setname(m, "#0")
	assert.NoError(t, tr.Call(m, AddrSETNAM))
	m.Reg.A, m.Reg.X, m.Reg.Y = byte(MaxOpenFiles), 8, 15
	assert.NoError(t, tr.Call(m, AddrSETLFS))
	assert.NoError(t, tr.Call(m, AddrOPEN))
	assert.True(t, m.Reg.GetFlag(cpu.FlagCarry))
	assert.Equal(t, byte(ErrTooManyFiles), m.Banks.Read(RAMStatus))
}

func TestCloseRemovesFileTableEntryAndFreesBuffer(t *testing.T) {
	m, tr := newTestSetup(t)
	setname(m, "#0")
	assert.NoError(t, tr.Call(m, AddrSETNAM))
	m.Reg.A, m.Reg.X, m.Reg.Y = 2, 8, 15
	assert.NoError(t, tr.Call(m, AddrSETLFS))
	assert.NoError(t, tr.Call(m, AddrOPEN))
	assert.Equal(t, byte(1), m.Banks.Read(RAMLdtnd))

	m.Reg.X = 2
	assert.NoError(t, tr.Call(m, AddrCLOSE))
	assert.False(t, m.Reg.GetFlag(cpu.FlagCarry))
	assert.Equal(t, byte(0), m.Banks.Read(RAMLdtnd))
}

func TestCloseUnknownFileNumberReportsError(t *testing.T) {
	m, tr := newTestSetup(t)
	m.Reg.X = 9
	assert.NoError(t, tr.Call(m, AddrCLOSE))
	assert.True(t, m.Reg.GetFlag(cpu.FlagCarry))
	assert.Equal(t, byte(ErrFileNotOpen), m.Banks.Read(RAMStatus))
}

func TestCLALLClearsOpenFileCount(t *testing.T) {
	m, tr := newTestSetup(t)
	setname(m, "#0")
	assert.NoError(t, tr.Call(m, AddrSETNAM))
	m.Reg.A, m.Reg.X, m.Reg.Y = 2, 8, 15
	assert.NoError(t, tr.Call(m, AddrSETLFS))
	assert.NoError(t, tr.Call(m, AddrOPEN))

	assert.NoError(t, tr.Call(m, AddrCLALL))
	assert.Equal(t, byte(0), m.Banks.Read(RAMLdtnd))
}

func TestCHKINRoutesToSerialDeviceAndSetsTalker(t *testing.T) {
	m, tr := newTestSetup(t)
	setname(m, "#0")
	assert.NoError(t, tr.Call(m, AddrSETNAM))
	m.Reg.A, m.Reg.X, m.Reg.Y = 3, 8, 15
	assert.NoError(t, tr.Call(m, AddrSETLFS))
	assert.NoError(t, tr.Call(m, AddrOPEN))

	m.Reg.X = 3
	assert.NoError(t, tr.Call(m, AddrCHKIN))
	assert.False(t, m.Reg.GetFlag(cpu.FlagCarry))
	assert.True(t, tr.Bus.IsTalking())
	assert.Equal(t, byte(8), tr.Bus.Device())
}

func TestCHKINUnknownFileReportsFileNotOpen(t *testing.T) {
	m, tr := newTestSetup(t)
	m.Reg.X = 5
	assert.NoError(t, tr.Call(m, AddrCHKIN))
	assert.True(t, m.Reg.GetFlag(cpu.FlagCarry))
	assert.Equal(t, byte(ErrFileNotOpen), m.Banks.Read(RAMStatus))
}

func TestLISTENTALKAndUNLSNDriveBusState(t *testing.T) {
	m, tr := newTestSetup(t)
	m.Reg.A = 8
	assert.NoError(t, tr.Call(m, AddrLISTEN))
	assert.True(t, tr.Bus.IsListening())
	assert.Equal(t, byte(8), tr.Bus.Device())

	m.Reg.A = 'I'
	assert.NoError(t, tr.Call(m, AddrCIOUT))
	m.Reg.A = 0x6F // SECOND on the command channel
	assert.NoError(t, tr.Call(m, AddrSECOND))

	assert.NoError(t, tr.Call(m, AddrUNLSN))
	assert.False(t, tr.Bus.IsListening())

	m.Reg.A = 8
	assert.NoError(t, tr.Call(m, AddrTALK))
	assert.True(t, tr.Bus.IsTalking())
}

func TestSECONDSetsPendingSecondaryAddress(t *testing.T) {
	m, tr := newTestSetup(t)
	m.Reg.A = 8
	assert.NoError(t, tr.Call(m, AddrLISTEN))
	m.Reg.A = 0x6F
	assert.NoError(t, tr.Call(m, AddrSECOND))
	assert.Equal(t, byte(0x6F), tr.pendingSecondary)
	assert.False(t, m.Reg.GetFlag(cpu.FlagCarry))
}

func TestSECONDWithoutActiveBusReportsDeviceNotPresent(t *testing.T) {
	m, tr := newTestSetup(t)
	m.Reg.A = 0x6F
	assert.NoError(t, tr.Call(m, AddrSECOND))
	assert.True(t, m.Reg.GetFlag(cpu.FlagCarry))
	assert.Equal(t, byte(ErrDeviceNotPresent), m.Banks.Read(RAMStatus))
}

func TestCIOUTForwardsToDriveCommandBuffer(t *testing.T) {
	m, tr := newTestSetup(t)
	m.Reg.A = 8
	assert.NoError(t, tr.Call(m, AddrLISTEN))
	tr.Drive.Listen()

	m.Reg.A = 'I'
	assert.NoError(t, tr.Call(m, AddrCIOUT))
	assert.False(t, m.Reg.GetFlag(cpu.FlagCarry))
	assert.Equal(t, []byte{'I'}, tr.Drive.CommandBuffer)
}

func TestCIOUTWithoutListenerReportsDeviceNotPresent(t *testing.T) {
	m, tr := newTestSetup(t)
	m.Reg.A = 'I'
	assert.NoError(t, tr.Call(m, AddrCIOUT))
	assert.True(t, m.Reg.GetFlag(cpu.FlagCarry))
	assert.Equal(t, byte(ErrDeviceNotPresent), m.Banks.Read(RAMStatus))
}

func TestACPTRReadsCommandChannelResponse(t *testing.T) {
	m, tr := newTestSetup(t)
	tr.Drive.CommandRecv = 0x42
	m.Reg.A = 8
	assert.NoError(t, tr.Call(m, AddrTALK))
	tr.pendingSecondary = 0x6F // channel 15

	assert.NoError(t, tr.Call(m, AddrACPTR))
	assert.False(t, m.Reg.GetFlag(cpu.FlagCarry))
	assert.Equal(t, byte(0x42), m.Reg.A)
}

func TestBSOUTToScreenDeviceNeverTouchesBus(t *testing.T) {
	m, tr := newTestSetup(t)
	m.Banks.Write(RAMDflto, 3)
	m.Reg.A = 'X'
	assert.NoError(t, tr.Call(m, AddrBSOUT))
	assert.False(t, m.Reg.GetFlag(cpu.FlagCarry))
	assert.Equal(t, byte(0), tr.Bus.Active)
}

func TestCLRCHNRestoresDefaultChannels(t *testing.T) {
	m, tr := newTestSetup(t)
	m.Banks.Write(RAMDflto, 8)
	m.Banks.Write(RAMDfltn, 8)
	assert.NoError(t, tr.Call(m, AddrCLRCHN))
	assert.Equal(t, byte(3), m.Banks.Read(RAMDflto))
	assert.Equal(t, byte(0), m.Banks.Read(RAMDfltn))
}

func TestCLRCHNDispatchesPendingCloseToDrive(t *testing.T) {
	m, tr := newTestSetup(t)
	setname(m, "#0")
	assert.NoError(t, tr.Call(m, AddrSETNAM))
	m.Reg.A, m.Reg.X, m.Reg.Y = 2, 8, 2
	assert.NoError(t, tr.Call(m, AddrSETLFS))
	assert.NoError(t, tr.Call(m, AddrOPEN))
	assert.Equal(t, 2, tr.Drive.BufferChannels[0])

	m.Reg.A = 8
	assert.NoError(t, tr.Call(m, AddrLISTEN))
	m.Reg.A = drive.SecondaryClose | 0x02
	assert.NoError(t, tr.Call(m, AddrSECOND))

	m.Banks.Write(RAMDflto, 8)
	assert.NoError(t, tr.Call(m, AddrCLRCHN))
	assert.False(t, m.Reg.GetFlag(cpu.FlagCarry))
	assert.Equal(t, -1, tr.Drive.BufferChannels[0])
	assert.Equal(t, byte(3), m.Banks.Read(RAMDflto))
	assert.False(t, tr.Bus.IsListening())
}

func TestCLALLDispatchesPendingCloseToDrive(t *testing.T) {
	m, tr := newTestSetup(t)
	setname(m, "#0")
	assert.NoError(t, tr.Call(m, AddrSETNAM))
	m.Reg.A, m.Reg.X, m.Reg.Y = 2, 8, 2
	assert.NoError(t, tr.Call(m, AddrSETLFS))
	assert.NoError(t, tr.Call(m, AddrOPEN))
	assert.Equal(t, 2, tr.Drive.BufferChannels[0])

	m.Reg.A = 8
	assert.NoError(t, tr.Call(m, AddrLISTEN))
	m.Reg.A = drive.SecondaryClose | 0x02
	assert.NoError(t, tr.Call(m, AddrSECOND))

	m.Banks.Write(RAMDflto, 8)
	assert.NoError(t, tr.Call(m, AddrCLALL))
	assert.False(t, m.Reg.GetFlag(cpu.FlagCarry))
	assert.Equal(t, -1, tr.Drive.BufferChannels[0])
	assert.Equal(t, byte(0), m.Banks.Read(RAMLdtnd))
}

func TestUnsupportedEntryPointReturnsError(t *testing.T) {
	m, tr := newTestSetup(t)
	err := tr.Call(m, 0x1234)
	assert.Error(t, err)
}

func TestErrorMessageLookup(t *testing.T) {
	assert.Equal(t, "FILE NOT FOUND", ErrorMessage(ErrFileNotFound))
	assert.Equal(t, "", ErrorMessage(99))
	assert.Equal(t, "", ErrorMessage(-1))
}
