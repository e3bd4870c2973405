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

// Package serial tracks which device is talking or listening on the
// IEC serial bus, the minimal state the ROM trampoline and the 1541
// model need to agree on who a byte transfer is with.
package serial

// Bit flags packed into Bus.Active alongside a 5-bit device number.
const (
	Talker   byte = 0x40
	Listener byte = 0x20
	deviceMask byte = 0x1F
)

// Bus holds the single "active address" byte the KERNAL's serial
// primitives latch: which role (talker/listener) is active and for
// which device number.
type Bus struct {
	Active byte
}

// SetListener marks device as the active listener.
func (b *Bus) SetListener(device byte) {
	b.Active = Listener | (device & deviceMask)
}

// SetTalker marks device as the active talker.
func (b *Bus) SetTalker(device byte) {
	b.Active = Talker | (device & deviceMask)
}

// Clear drops the active address (UNTLK/UNLSN with no residual state).
func (b *Bus) Clear() {
	b.Active = 0
}

// Device returns the 5-bit device number of the active address.
func (b *Bus) Device() byte {
	return b.Active & deviceMask
}

// IsListening reports whether the active address is a listener.
func (b *Bus) IsListening() bool {
	return b.Active&Listener != 0
}

// IsTalking reports whether the active address is a talker.
func (b *Bus) IsTalking() bool {
	return b.Active&Talker != 0
}
