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

// Package loader parses the two ways a session can be seeded: a raw PRG
// file, or a captured register/RAM/disk snapshot.
package loader

import (
	"github.com/btcsuite/goleveldb/leveldb/errors"

	"github.com/kenshaw/c64run/internal/bits"
	"github.com/kenshaw/c64run/internal/cpu"
	"github.com/kenshaw/c64run/internal/memory"
)

var (
	ErrShortPRG        = errors.New("loader: PRG file has no load address")
	ErrPRGTooLarge     = errors.New("loader: PRG program does not fit in RAM")
	ErrRegisterSize    = errors.New("loader: register snapshot must be 7 bytes")
	ErrRAMSize         = errors.New("loader: RAM snapshot must be 65536 bytes")
)

// PRGResult carries what the caller needs after a PRG load: the address
// execution should start at, and the page-rounded end of the loaded
// data (mirrored into X:Y by the caller to match KERNAL LOAD's
// contract).
type PRGResult struct {
	LoadAddr uint16
	EndAddr  uint16
}

// LoadPRG copies a PRG file's data into RAM starting at its embedded
// load address. EndAddr is the load address plus data length, rounded
// up to the next page boundary unless already page-aligned.
func LoadPRG(banks *memory.Banks, data []byte) (PRGResult, error) {
	if len(data) < 2 {
		return PRGResult{}, ErrShortPRG
	}
	loadAddr := bits.ToWord(data[0], data[1])
	body := data[2:]

	top := uint32(loadAddr) + uint32(len(body))
	if top >= memory.RAMSize {
		return PRGResult{}, ErrPRGTooLarge
	}
	for i, b := range body {
		banks.Write(loadAddr+uint16(i), b)
	}

	end := top
	if end%0x100 != 0 {
		end = (end + 0xFF) &^ 0xFF
	}
	if end >= memory.RAMSize {
		return PRGResult{}, ErrPRGTooLarge
	}
	return PRGResult{LoadAddr: loadAddr, EndAddr: uint16(end)}, nil
}

// LoadRegisters populates reg from an exact 7-byte snapshot in the
// order pc_lo, pc_hi, A, X, Y, S, P.
func LoadRegisters(reg *cpu.Registers, data []byte) error {
	if len(data) != 7 {
		return ErrRegisterSize
	}
	reg.PC = bits.ToWord(data[0], data[1])
	reg.A = data[2]
	reg.X = data[3]
	reg.Y = data[4]
	reg.S = data[5]
	reg.P = data[6]
	return nil
}

// LoadRAM installs an exact 65536-byte RAM image.
func LoadRAM(banks *memory.Banks, data []byte) error {
	if len(data) != memory.RAMSize {
		return ErrRAMSize
	}
	copy(banks.RAM[:], data)
	return nil
}
