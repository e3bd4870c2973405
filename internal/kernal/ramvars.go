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

// Package kernal synthesizes the externally observable effect of the
// Commodore 64 KERNAL's serial-bus-facing entry points instead of
// executing the ROM code at those addresses.
package kernal

// RAM-resident KERNAL variables the trampoline reads and writes. Names
// match the KERNAL's own zero-page/low-RAM variable labels.
const (
	RAMStatus  = 0x90 // ST: I/O status byte
	RAMVerck   = 0x93 // verify/load flag
	RAMXsav    = 0x97
	RAMLdtnd   = 0x98 // number of open logical files
	RAMDfltn   = 0x99 // default input device
	RAMDflto   = 0x9A // default output device
	RAMEndProg = 0xAE // end of loaded program (low/high at AE/AF)

	RAMStal   = 0xC1
	RAMMemuss = 0xC3

	RAMFnlen = 0xB7 // filename length
	RAMLa    = 0xB8 // logical file number
	RAMSa    = 0xB9 // secondary address
	RAMFa    = 0xBA // device number
	RAMFnadr = 0xBB // filename pointer (low/high at BB/BC)

	RAMLat = 0x259 // logical file number table, one byte per slot
	RAMFat = 0x263 // device number table
	RAMSat = 0x26D // secondary address table

	MaxOpenFiles = 10
)

// Entry-point addresses this trampoline recognizes.
const (
	AddrCHKIN  = 0xFFC6
	AddrGETIN  = 0xFFE4
	AddrCLRCHN = 0xFFCC
	AddrBSOUT  = 0xFFD2
	AddrCIOUT  = 0xFFA8
	AddrSECOND = 0xFF93
	AddrLISTEN = 0xFFB1
	AddrUNLSN  = 0xFFAE
	AddrTALK   = 0xFFB4
	AddrTKSA   = 0xFF96
	AddrACPTR  = 0xFFA5
	AddrUNTLK  = 0xFFAB
	AddrSETNAM = 0xFFBD
	AddrSETLFS = 0xFFBA
	AddrLOAD   = 0xFFD5
	AddrOPEN   = 0xFFC0
	AddrCLOSE  = 0xFFC3
	AddrCLALL  = 0xFFE7
	// AddrBASIN is not in the entry-point table of the system this
	// trampoline emulates, but the ROM it ships with does reach it for
	// serial-device character input; it forwards to ACPTR the same way
	// BSOUT forwards to CIOUT.
	AddrBASIN = 0xFFCF
)

// Soft KERNAL error codes, written to RAMStatus alongside a set carry.
const (
	ErrTooManyFiles    = 1
	ErrFileOpen        = 2
	ErrFileNotOpen     = 3
	ErrFileNotFound    = 4
	ErrDeviceNotPresent = 5
	ErrNotInputFile    = 6
	ErrNotOutputFile   = 7
	ErrMissingFileName = 8
	ErrBadDeviceNumber = 9
)

var errorMessages = [10]string{
	0: "",
	1: "TOO MANY FILES",
	2: "FILE OPEN",
	3: "FILE NOT OPEN",
	4: "FILE NOT FOUND",
	5: "DEVICE NOT PRESENT",
	6: "NOT INPUT FILE",
	7: "NOT OUTPUT FILE",
	8: "MISSING FILE NAME",
	9: "BAD DEVICE #",
}

// ErrorMessage returns the KERNAL error string for a soft-error code.
func ErrorMessage(code int) string {
	if code < 0 || code >= len(errorMessages) {
		return ""
	}
	return errorMessages[code]
}
