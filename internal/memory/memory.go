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

// Package memory implements the C64 banked address space: 64 KiB of RAM
// plus the character, BASIC and KERNAL ROM images, switched by the low
// three bits of RAM location $0001.
package memory

import (
	"fmt"

	"github.com/btcsuite/goleveldb/leveldb/errors"

	"github.com/kenshaw/c64run/internal/bits"
)

const (
	// RAMSize is the full 16-bit address space.
	RAMSize = 0x10000

	// CharSize, BasicSize and KernalSize are the fixed ROM image sizes.
	CharSize   = 0x1000
	BasicSize  = 0x2000
	KernalSize = 0x2000

	charBegin   = 0xD000
	charEnd     = 0xDFFF
	basicBegin  = 0xA000
	basicEnd    = 0xBFFF
	kernalBegin = 0xE000
	kernalEnd   = 0xFFFF

	// BankSelectAddr is the RAM location whose low 3 bits choose the
	// active bank configuration.
	BankSelectAddr = 0x0001
)

// ErrROMSize is returned when a ROM image does not match its fixed size.
var ErrROMSize = errors.New("memory: wrong ROM image size")

// bank describes which ROM windows are visible for one of the eight
// configurations selected by RAM[$0001] & 0x07.
type bank struct {
	char, basic, kernal bool
}

// banks is indexed by the 3-bit bank selector. The mapping matches the
// real C64's PLA: 0 and 4 are both "all RAM", 5 exposes I/O (modeled
// here as RAM since I/O devices are out of scope).
var banks = [8]bank{
	0: {false, false, false},
	1: {true, false, false},
	2: {true, false, true},
	3: {true, true, true},
	4: {false, false, false},
	5: {false, false, false},
	6: {false, false, true},
	7: {false, true, true},
}

// Banks is the C64 address space: one flat RAM array plus the three ROM
// images, read through the bank-select path.
type Banks struct {
	RAM    [RAMSize]byte
	Char   [CharSize]byte
	Basic  [BasicSize]byte
	Kernal [KernalSize]byte
}

// NewBanks allocates a Banks with the given ROM contents installed. Each
// slice must be exactly the declared size of its ROM image.
func NewBanks(char, basic, kernal []byte) (*Banks, error) {
	if len(char) != CharSize {
		return nil, fmt.Errorf("%w: chargen image must be %d bytes", ErrROMSize, CharSize)
	}
	if len(basic) != BasicSize {
		return nil, fmt.Errorf("%w: basic image must be %d bytes", ErrROMSize, BasicSize)
	}
	if len(kernal) != KernalSize {
		return nil, fmt.Errorf("%w: kernal image must be %d bytes", ErrROMSize, KernalSize)
	}
	b := &Banks{}
	copy(b.Char[:], char)
	copy(b.Basic[:], basic)
	copy(b.Kernal[:], kernal)
	return b, nil
}

// bankSelect returns the active bank configuration.
func (b *Banks) bankSelect() bank {
	return banks[b.RAM[BankSelectAddr]&0x07]
}

// Read implements the banked load path described for the address space:
// ROM windows take priority over RAM when visible in the active bank,
// otherwise the RAM byte is returned.
func (b *Banks) Read(addr uint16) byte {
	sel := b.bankSelect()
	switch {
	case sel.char && addr >= charBegin && addr <= charEnd:
		return b.Char[addr-charBegin]
	case sel.basic && addr >= basicBegin && addr <= basicEnd:
		return b.Basic[addr-basicBegin]
	case sel.kernal && addr >= kernalBegin && addr <= kernalEnd:
		return b.Kernal[addr-kernalBegin]
	default:
		return b.RAM[addr]
	}
}

// Write always stores to RAM; ROM windows are never intercepted on write.
func (b *Banks) Write(addr uint16, value byte) {
	b.RAM[addr] = value
}

// Read16 reads a little-endian word through the banked path.
func (b *Banks) Read16(addr uint16) uint16 {
	lo := b.Read(addr)
	hi := b.Read(addr + 1)
	return bits.ToWord(lo, hi)
}
