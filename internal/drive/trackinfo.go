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

// TrackInfo describes one 1541 track: how many 256-byte sectors it
// holds and where its first sector falls in the flat .d64 image.
type TrackInfo struct {
	Track           int
	Sectors         int
	SectorOffset    int
	ByteOffset      int
}

// ImageSize is the exact size of a standard 35-track .d64 image.
const ImageSize = 174848

// SectorSize is the fixed 1541 sector size.
const SectorSize = 256

// tracks is the canonical 40-track 1541 zone table: 21 sectors/track for
// tracks 1-17, 19 for 18-24, 18 for 25-30, 17 for 31-40. Tracks beyond
// 35 are the non-standard extension some .d64 variants carry; standard
// images only use the first 35.
var tracks [40]TrackInfo

func init() {
	sectorsForZone := func(t int) int {
		switch {
		case t <= 17:
			return 21
		case t <= 24:
			return 19
		case t <= 30:
			return 18
		default:
			return 17
		}
	}
	sectorOffset, byteOffset := 0, 0
	for t := 1; t <= 40; t++ {
		n := sectorsForZone(t)
		tracks[t-1] = TrackInfo{Track: t, Sectors: n, SectorOffset: sectorOffset, ByteOffset: byteOffset}
		sectorOffset += n
		byteOffset += n * SectorSize
	}
}

// Track returns the geometry for the given 1-based track number.
func Track(track int) (TrackInfo, bool) {
	if track < 1 || track > 40 {
		return TrackInfo{}, false
	}
	return tracks[track-1], true
}

// ByteOffset returns the flat-image byte offset of (track, sector).
func ByteOffset(track, sector int) (int, bool) {
	ti, ok := Track(track)
	if !ok || sector < 0 || sector >= ti.Sectors {
		return 0, false
	}
	return ti.ByteOffset + sector*SectorSize, true
}

// StandardSectorCount is the sum of sectors(t) for t in [1,35], the
// canonical 1541 capacity in sectors.
func StandardSectorCount() int {
	n := 0
	for t := 1; t <= 35; t++ {
		ti, _ := Track(t)
		n += ti.Sectors
	}
	return n
}
