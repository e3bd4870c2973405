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

// Package forthdump walks a Forth dictionary linked list captured in a
// RAM image and renders a word list. It does not disassemble code
// fields; resolving a word's body into Forth source is out of scope
// here, same as it is for the decompiler this package is a shallow
// stand-in for.
package forthdump

import (
	"fmt"

	"github.com/btcsuite/goleveldb/leveldb/errors"

	"github.com/kenshaw/c64run/internal/bits"
)

// nameLenMask isolates the name length from a dictionary header's
// length-and-flags byte; the remaining high bits carry IMMEDIATE and
// SMUDGE flags.
const (
	nameLenMask   = 0x1F
	flagImmediate = 0x80
	flagSmudge    = 0x20
)

var ErrBrokenChain = errors.New("forthdump: dictionary link chain does not terminate")

// Word is one decoded dictionary entry.
type Word struct {
	Addr      uint16
	Link      uint16
	Name      string
	Immediate bool
	Smudged   bool
	CodeField uint16
}

// WalkDictionary follows the link field from latest (the address of
// the most recently defined word, typically a named RAM variable like
// CURRENT or LATEST) back through the dictionary until a link of zero,
// reading ram via a simple byte-addressed accessor.
func WalkDictionary(ram []byte, latest uint16) ([]Word, error) {
	var words []Word
	addr := latest
	seen := map[uint16]bool{}
	for addr != 0 {
		if seen[addr] {
			return nil, ErrBrokenChain
		}
		seen[addr] = true

		w, err := decodeWord(ram, addr)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
		addr = w.Link
	}
	return words, nil
}

func decodeWord(ram []byte, addr uint16) (Word, error) {
	if int(addr)+3 > len(ram) {
		return Word{}, fmt.Errorf("forthdump: header at %04X runs past RAM", addr)
	}
	link := bits.ToWord(ram[addr], ram[addr+1])
	lenByte := ram[addr+2]
	nameLen := int(lenByte & nameLenMask)
	nameStart := int(addr) + 3
	if nameStart+nameLen+2 > len(ram) {
		return Word{}, fmt.Errorf("forthdump: name/codefield at %04X runs past RAM", addr)
	}
	name := string(ram[nameStart : nameStart+nameLen])
	cfa := uint16(nameStart + nameLen)
	codeField := bits.ToWord(ram[cfa], ram[cfa+1])
	return Word{
		Addr:      addr,
		Link:      link,
		Name:      name,
		Immediate: lenByte&flagImmediate != 0,
		Smudged:   lenByte&flagSmudge != 0,
		CodeField: codeField,
	}, nil
}
