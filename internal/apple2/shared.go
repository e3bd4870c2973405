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

// Package apple2 walks an Apple DOS 3.3 ".dsk" image's catalog and
// extracts files from it, with detokenizers for Integer and Applesoft
// BASIC program listings.
package apple2

import "github.com/btcsuite/goleveldb/leveldb/errors"

const (
	// ImageSize is the fixed size of a 35-track, 16-sector-per-track,
	// 256-byte-sector DOS 3.3 disk image.
	ImageSize = 143360

	SectorSize      = 256
	sectorsPerTrack = 16
	trackSize       = sectorsPerTrack * SectorSize
	trackCount      = 35

	entriesPerSector = 7
	tsListEntries    = 122

	vtocTrack  = 0x11
	vtocSector = 0

	// File type bits, the low 3 (ignoring the lock bit) of a catalog
	// entry's type byte.
	FileTypeText      = 0
	FileTypeInteger   = 1
	FileTypeApplesoft = 2
	FileTypeBinary    = 4
)

var (
	ErrBadImageSize = errors.New("apple2: .dsk image must be 143360 bytes")
	ErrSectorRange  = errors.New("apple2: track/sector out of range")
	ErrBadFileType  = errors.New("apple2: invalid file type byte")
)

// sectorOffset returns the byte offset of (track,sector) within a DSK
// image: tracks are stored in order, sectors in order within a track.
func sectorOffset(track, sector int) (int, bool) {
	if track < 0 || track >= trackCount || sector < 0 || sector >= sectorsPerTrack {
		return 0, false
	}
	return track*trackSize + sector*SectorSize, true
}

// FileTypeLetter renders a catalog type byte the way the catalog
// listing does: I/A/B/T, with locked files reported separately.
func FileTypeLetter(typeByte byte) (letter byte, locked bool, err error) {
	locked = typeByte&0x80 != 0
	switch typeByte & 0x7F {
	case FileTypeText:
		return 'T', locked, nil
	case FileTypeInteger:
		return 'I', locked, nil
	case FileTypeApplesoft:
		return 'A', locked, nil
	case FileTypeBinary:
		return 'B', locked, nil
	default:
		return 0, locked, ErrBadFileType
	}
}
