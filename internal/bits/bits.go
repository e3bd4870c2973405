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

// Package bits provides the little-endian word helpers shared by the
// CPU, the ROM trampoline and the disk subsystem.
package bits

// Lo returns the low byte of a 16-bit word.
func Lo(w uint16) byte {
	return byte(w & 0x00FF)
}

// Hi returns the high byte of a 16-bit word.
func Hi(w uint16) byte {
	return byte(w >> 8)
}

// ToWord packs a low/high byte pair into a 16-bit word.
func ToWord(lo, hi byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// PageOf returns the 256-byte page a word falls in.
func PageOf(w uint16) uint16 {
	return w & 0xFF00
}

// CrossesPage reports whether base and result lie in different pages.
func CrossesPage(base, result uint16) bool {
	return PageOf(base) != PageOf(result)
}
