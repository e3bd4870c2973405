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

package apple2

import "strings"

// CatalogEntry is one decoded directory entry.
type CatalogEntry struct {
	Type        byte
	Locked      bool
	Name        string
	SectorCount int
	tsTrack     byte
	tsSector    byte
}

// Image wraps a mounted .dsk byte image.
type Image struct {
	data []byte
}

// NewImage validates and wraps a raw .dsk image.
func NewImage(data []byte) (*Image, error) {
	if len(data) != ImageSize {
		return nil, ErrBadImageSize
	}
	return &Image{data: data}, nil
}

func (img *Image) sector(track, sector int) ([]byte, error) {
	off, ok := sectorOffset(track, sector)
	if !ok {
		return nil, ErrSectorRange
	}
	return img.data[off : off+SectorSize], nil
}

// Catalog walks the VTOC's directory-sector chain and returns every
// in-use entry (first-tslist-track nonzero).
func (img *Image) Catalog() ([]CatalogEntry, error) {
	vtoc, err := img.sector(vtocTrack, vtocSector)
	if err != nil {
		return nil, err
	}
	track, sector := int(vtoc[0x11]), int(vtoc[0x12])

	var out []CatalogEntry
	seen := map[[2]int]bool{}
	for track != 0 || sector != 0 {
		key := [2]int{track, sector}
		if seen[key] {
			break
		}
		seen[key] = true

		sec, err := img.sector(track, sector)
		if err != nil {
			return nil, err
		}
		nextTrack, nextSector := int(sec[1]), int(sec[2])
		for e := 0; e < entriesPerSector; e++ {
			entry := sec[0x0B+e*0x23 : 0x0B+(e+1)*0x23]
			if entry[0] == 0 {
				continue // never created
			}
			if entry[0] == 0xFF {
				continue // deleted
			}
			out = append(out, decodeCatalogEntry(entry))
		}
		track, sector = nextTrack, nextSector
	}
	return out, nil
}

func decodeCatalogEntry(e []byte) CatalogEntry {
	name := make([]byte, 0, 30)
	for _, c := range e[3 : 3+30] {
		name = append(name, c&0x7F)
	}
	return CatalogEntry{
		Type:        e[2] & 0x7F,
		Locked:      e[2]&0x80 != 0,
		Name:        strings.TrimRight(string(name), " "),
		SectorCount: int(e[0x21]),
		tsTrack:     e[0],
		tsSector:    e[1],
	}
}

// ExtractFile walks entry's track/sector list and returns the file's
// raw sector data, concatenated in track/sector-list order.
func (img *Image) ExtractFile(entry CatalogEntry) ([]byte, error) {
	var out []byte
	tsTrack, tsSector := int(entry.tsTrack), int(entry.tsSector)
	seen := map[[2]int]bool{}
	for tsTrack != 0 || tsSector != 0 {
		key := [2]int{tsTrack, tsSector}
		if seen[key] {
			return nil, ErrSectorRange
		}
		seen[key] = true

		tsl, err := img.sector(tsTrack, tsSector)
		if err != nil {
			return nil, err
		}
		for i := 0; i < tsListEntries; i++ {
			st, ss := tsl[0x0C+i*2], tsl[0x0C+i*2+1]
			if st == 0 && ss == 0 {
				continue // unused slot: sparse/short file
			}
			data, err := img.sector(int(st), int(ss))
			if err != nil {
				return nil, err
			}
			out = append(out, data...)
		}
		tsTrack, tsSector = int(tsl[1]), int(tsl[2])
	}
	return out, nil
}
