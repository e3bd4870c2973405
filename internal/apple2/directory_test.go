package apple2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildTestDsk() []byte {
	img := make([]byte, ImageSize)
	vtocOff, _ := sectorOffset(vtocTrack, vtocSector)
	img[vtocOff+0x11] = 17
	img[vtocOff+0x12] = 15

	dirOff, _ := sectorOffset(17, 15)
	entry := img[dirOff+0x0B : dirOff+0x0B+0x23]
	entry[0] = 1  // first tslist track
	entry[1] = 2  // first tslist sector
	entry[2] = FileTypeBinary
	copy(entry[3:], []byte("HELLO"))
	for i := 3 + 5; i < 3+30; i++ {
		entry[i] = ' '
	}
	entry[0x21] = 1

	tsOff, _ := sectorOffset(1, 2)
	ts := img[tsOff : tsOff+SectorSize]
	ts[0x0C] = 3
	ts[0x0D] = 4

	dataOff, _ := sectorOffset(3, 4)
	img[dataOff] = 0xCA
	img[dataOff+1] = 0xFE

	return img
}

func TestCatalogAndExtractFile(t *testing.T) {
	img, err := NewImage(buildTestDsk())
	assert.NoError(t, err)

	entries, err := img.Catalog()
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "HELLO", entries[0].Name)
	assert.False(t, entries[0].Locked)

	letter, locked, err := FileTypeLetter(entries[0].Type)
	assert.NoError(t, err)
	assert.False(t, locked)
	assert.Equal(t, byte('B'), letter)

	data, err := img.ExtractFile(entries[0])
	assert.NoError(t, err)
	assert.Equal(t, byte(0xCA), data[0])
	assert.Equal(t, byte(0xFE), data[1])
}

func TestNewImageRejectsBadSize(t *testing.T) {
	_, err := NewImage(make([]byte, 100))
	assert.Error(t, err)
}

func TestListApplesoftSimpleLine(t *testing.T) {
	// line: next-addr != 0, line number 10, "PRINT " token ($BA?), then ...
	data := []byte{
		0x00, 0x08, // next line addr (nonzero, any placeholder)
		0x0A, 0x00, // line number 10
		0xBA, // PRINT token ($80+0x3A = $BA)
		'"', 'H', 'I', '"',
		0x00, // end of line
		0x00, 0x00, // end of program
	}
	out, err := ListApplesoft(data)
	assert.NoError(t, err)
	assert.Contains(t, out, "PRINT")
	assert.Contains(t, out, `"HI"`)
}
