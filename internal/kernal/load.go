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
	"github.com/kenshaw/c64run/internal/bits"
	"github.com/kenshaw/c64run/internal/cpu"
)

// load resolves LOAD against the mounted disk image: it finds the
// SETNAM'd filename in the directory, walks its sector chain, and
// installs the bytes at the file's own embedded load address when the
// SETLFS secondary address is 0, or at the X:Y address passed to LOAD
// otherwise.
func (t *Trampoline) load(m *cpu.Machine) error {
	filename := t.readFilename(m)
	sa := m.Banks.Read(RAMSa)
	device := m.Banks.Read(RAMFa)
	if device < 8 {
		t.romError(m, ErrDeviceNotPresent)
		return nil
	}
	if t.Drive.Image == nil {
		t.romError(m, ErrDeviceNotPresent)
		return nil
	}

	entries, err := t.Drive.ReadDirectory()
	if err != nil {
		return err
	}
	var firstTrack, firstSector byte
	found := false
	for _, e := range entries {
		if e.Name == filename {
			firstTrack, firstSector = e.FirstTrack, e.FirstSector
			found = true
			break
		}
	}
	if !found {
		t.romError(m, ErrFileNotFound)
		return nil
	}

	data, err := t.Drive.ReadFile(firstTrack, firstSector)
	if err != nil {
		return err
	}
	if len(data) < 2 {
		t.romError(m, ErrFileNotFound)
		return nil
	}

	embeddedAddr := bits.ToWord(data[0], data[1])
	body := data[2:]

	// sa (LOAD's secondary address) 0 means "honor the file's own
	// embedded load address"; nonzero means "load at X:Y instead."
	loadAddr := embeddedAddr
	if sa != 0 {
		loadAddr = bits.ToWord(m.Reg.X, m.Reg.Y)
	}

	top := uint32(loadAddr) + uint32(len(body))
	if top >= 0x10000 {
		t.romError(m, ErrFileNotFound)
		return nil
	}
	for i, b := range body {
		m.Banks.Write(loadAddr+uint16(i), b)
	}

	end := top
	if end%0x100 != 0 {
		end = (end + 0xFF) &^ 0xFF
	}
	m.Banks.Write(RAMEndProg, byte(end))
	m.Banks.Write(RAMEndProg+1, byte(end>>8))
	m.Reg.X = byte(end)
	m.Reg.Y = byte(end >> 8)
	t.ok(m)
	return nil
}
