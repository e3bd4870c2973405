package ioutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadExact(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "data.bin")
	assert.NoError(t, WriteExact(p, []byte{1, 2, 3, 4}, 4))

	data, err := ReadExact(p, 4)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)

	_, err = ReadExact(p, 5)
	assert.Error(t, err)
}

func TestWriteExactRejectsWrongSize(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "data.bin")
	assert.Error(t, WriteExact(p, []byte{1, 2, 3}, 4))
}

func TestReadAtLeast(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "prg.bin")
	assert.NoError(t, WriteExact(p, []byte{0x01, 0x08, 0xAA}, 3))

	data, err := ReadAtLeast(p, 2)
	assert.NoError(t, err)
	assert.Len(t, data, 3)

	_, err = ReadAtLeast(p, 10)
	assert.Error(t, err)
}

func TestMustSize(t *testing.T) {
	assert.NoError(t, MustSize(make([]byte, 7), 7, "registers"))
	assert.Error(t, MustSize(make([]byte, 6), 7, "registers"))
}
