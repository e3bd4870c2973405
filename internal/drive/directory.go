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

package drive

import (
	"strings"

	"github.com/kenshaw/c64run/internal/bits"
)

const (
	directoryTrack  = 18
	directorySector = 1
	entriesPerSect  = 8
	entrySize       = 32
)

// DirEntry is one 1541 directory entry, decoded per the documented
// field offsets.
type DirEntry struct {
	FileType      byte // low 3 bits of the type byte
	Locked        bool
	Closed        bool
	FirstTrack    byte
	FirstSector   byte
	Name          string
	SectorCount   uint16
	RelSideTrack  byte
	RelSideSector byte
	RelRecordLen  byte
}

// ReadDirectory walks the directory sector chain starting at (18,1) and
// returns every non-empty entry.
func (d *Drive) ReadDirectory() ([]DirEntry, error) {
	if d.Image == nil {
		return nil, ErrNoImageMounted
	}
	var entries []DirEntry
	track, sector := directoryTrack, directorySector
	seen := map[[2]int]bool{}
	for track != 0 {
		key := [2]int{track, sector}
		if seen[key] {
			break // chain loop guard; a well-formed image never does this
		}
		seen[key] = true

		off, ok := ByteOffset(track, sector)
		if !ok {
			return nil, ErrSectorRange
		}
		sec := d.Image[off : off+SectorSize]
		nextTrack, nextSector := int(sec[0]), int(sec[1])

		for i := 0; i < entriesPerSect; i++ {
			e := sec[i*entrySize : (i+1)*entrySize]
			if e[3] == 0 {
				continue // empty slot: no first-block track
			}
			entries = append(entries, decodeDirEntry(e))
		}
		track, sector = nextTrack, nextSector
	}
	return entries, nil
}

func decodeDirEntry(e []byte) DirEntry {
	typeByte := e[2]
	name := make([]byte, 0, 16)
	for _, c := range e[5:21] {
		if c == 0xA0 {
			continue
		}
		name = append(name, c)
	}
	return DirEntry{
		FileType:      typeByte & 0x07,
		Locked:        typeByte&0x40 != 0,
		Closed:        typeByte&0x80 != 0,
		FirstTrack:    e[3],
		FirstSector:   e[4],
		Name:          strings.TrimRight(string(name), " "),
		SectorCount:   bits.ToWord(e[30], e[31]),
		RelSideTrack:  e[21],
		RelSideSector: e[22],
		RelRecordLen:  e[23],
	}
}

// ReadFile follows a file's sector chain to completion and returns its
// data bytes, with the chain-terminating sector's "next sector" field
// reinterpreted as a trailing byte count per the 1541 convention.
func (d *Drive) ReadFile(firstTrack, firstSector byte) ([]byte, error) {
	if d.Image == nil {
		return nil, ErrNoImageMounted
	}
	var out []byte
	track, sector := int(firstTrack), int(firstSector)
	seen := map[[2]int]bool{}
	for track != 0 {
		key := [2]int{track, sector}
		if seen[key] {
			return nil, ErrSectorRange
		}
		seen[key] = true

		off, ok := ByteOffset(track, sector)
		if !ok {
			return nil, ErrSectorRange
		}
		sec := d.Image[off : off+SectorSize]
		nextTrack, nextSector := int(sec[0]), int(sec[1])
		if nextTrack == 0 {
			// terminal sector: "sector" holds the used-byte count.
			used := nextSector
			if used < 2 || used > SectorSize {
				return nil, ErrSectorRange
			}
			out = append(out, sec[2:used]...)
			break
		}
		out = append(out, sec[2:SectorSize]...)
		track, sector = nextTrack, nextSector
	}
	return out, nil
}
