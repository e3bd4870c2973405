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

package bits

import "testing"

func TestLoHi(t *testing.T) {
	if got := Lo(0x1234); got != 0x34 {
		t.Errorf("Lo(0x1234) = %02X, want 34", got)
	}
	if got := Hi(0x1234); got != 0x12 {
		t.Errorf("Hi(0x1234) = %02X, want 12", got)
	}
}

func TestToWord(t *testing.T) {
	if got := ToWord(0x34, 0x12); got != 0x1234 {
		t.Errorf("ToWord(34, 12) = %04X, want 1234", got)
	}
}

func TestPageOf(t *testing.T) {
	if got := PageOf(0x12FF); got != 0x1200 {
		t.Errorf("PageOf(12FF) = %04X, want 1200", got)
	}
}

func TestCrossesPage(t *testing.T) {
	if CrossesPage(0x12F0, 0x1205) != true {
		t.Error("expected a crossing from 12F0 to 1205")
	}
	if CrossesPage(0x1200, 0x12FF) != false {
		t.Error("expected no crossing within the same page")
	}
}
