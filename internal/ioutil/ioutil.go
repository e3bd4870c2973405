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

// Package ioutil holds the small file-reading helpers shared by the
// command-line front ends: every input this emulator reads (ROM
// images, PRG files, snapshots, disk images) has a fixed or
// fixed-by-header size, so loading it is "read exactly N bytes or
// fail" rather than a general streaming read.
package ioutil

import (
	"fmt"
	"os"
)

// ReadExact reads path and requires its length to be exactly size.
func ReadExact(path string, size int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) != size {
		return nil, fmt.Errorf("ioutil: %s: expected exactly %d bytes, got %d", path, size, len(data))
	}
	return data, nil
}

// MustSize validates a byte slice already in memory against an exact
// expected size, for callers that received data some other way (e.g.
// a snapshot field already split out of a larger buffer).
func MustSize(data []byte, size int, what string) error {
	if len(data) != size {
		return fmt.Errorf("ioutil: %s: expected exactly %d bytes, got %d", what, size, len(data))
	}
	return nil
}

// ReadAtLeast reads path and requires its length to be at least size,
// for inputs with a fixed-size header followed by variable content
// (e.g. a PRG file's 2-byte load address).
func ReadAtLeast(path string, size int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < size {
		return nil, fmt.Errorf("ioutil: %s: expected at least %d bytes, got %d", path, size, len(data))
	}
	return data, nil
}

// WriteExact writes data to path, failing if data is not exactly size
// bytes — used when persisting a snapshot field whose size is part of
// the format's contract.
func WriteExact(path string, data []byte, size int) error {
	if len(data) != size {
		return fmt.Errorf("ioutil: %s: refusing to write %d bytes, expected exactly %d", path, len(data), size)
	}
	return os.WriteFile(path, data, 0644)
}
