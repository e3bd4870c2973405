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

package serial

import "testing"

func TestSetListener(t *testing.T) {
	var b Bus
	b.SetListener(8)
	if !b.IsListening() {
		t.Fatal("expected IsListening after SetListener")
	}
	if b.IsTalking() {
		t.Fatal("did not expect IsTalking after SetListener")
	}
	if got := b.Device(); got != 8 {
		t.Fatalf("Device() = %d, want 8", got)
	}
}

func TestSetTalker(t *testing.T) {
	var b Bus
	b.SetTalker(9)
	if !b.IsTalking() {
		t.Fatal("expected IsTalking after SetTalker")
	}
	if b.IsListening() {
		t.Fatal("did not expect IsListening after SetTalker")
	}
	if got := b.Device(); got != 9 {
		t.Fatalf("Device() = %d, want 9", got)
	}
}

func TestClear(t *testing.T) {
	var b Bus
	b.SetListener(8)
	b.Clear()
	if b.IsListening() || b.IsTalking() {
		t.Fatal("expected Clear to drop both listener and talker state")
	}
	if got := b.Device(); got != 0 {
		t.Fatalf("Device() after Clear = %d, want 0", got)
	}
}

func TestSetListenerMasksDeviceNumber(t *testing.T) {
	var b Bus
	b.SetListener(0xFF)
	if got := b.Device(); got != 0x1F {
		t.Fatalf("Device() = %#02x, want masked to 5 bits (1F)", got)
	}
}
