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

// Package drive models a 1541 disk drive at the serial-bus command
// channel level: LISTEN/TALK/SECOND/CIOUT/ACPTR/UNLSN byte exchange,
// a DOS command parser, and block reads from a mounted .d64 image.
// The drive's own 6502 firmware is never executed.
package drive

import (
	"fmt"

	"github.com/btcsuite/goleveldb/leveldb/errors"

	"github.com/kenshaw/c64run/internal/bits"
)

// CommandBufferSize is the capacity of the command channel buffer; a
// 43rd byte written after a LISTEN is a fatal overflow.
const CommandBufferSize = 42

// NumBuffers is the number of 256-byte sector buffers the drive keeps.
const NumBuffers = 4

// Secondary-address command-class nibbles examined by UNLSN.
const (
	SecondaryCommand = 0x60
	SecondaryClose   = 0xE0
	SecondaryOpen    = 0xF0
)

var (
	ErrCommandBufferOverflow = errors.New("drive: command buffer overflow")
	ErrNoImageMounted        = errors.New("drive: no disk image mounted")
	ErrBadImageSize          = errors.New("drive: .d64 image must be 174848 bytes")
	ErrChannelUnbound        = errors.New("drive: channel has no bound buffer")
	ErrInvalidDrive          = errors.New("drive: invalid drive number")
	ErrSectorRange           = errors.New("drive: track/sector out of range")
	ErrWriteUnsupported      = errors.New("drive: write operations are not supported")
)

// Drive is the owned aggregate for the command-channel model.
type Drive struct {
	MountedPath string
	Image       []byte

	CommandBuffer []byte // collected since the last LISTEN
	CommandRecv   byte   // result register read back by M-R / ACPTR channel 15

	Buffers        [NumBuffers][256]byte
	BufferPtrs     [NumBuffers]byte
	BufferChannels [NumBuffers]int // channel bound to this buffer, -1 if free

	SecondaryAddress byte
	listening        bool
}

// NewDrive returns an unmounted drive with all buffers unbound.
func NewDrive() *Drive {
	d := &Drive{}
	d.resetBuffers()
	return d
}

func (d *Drive) resetBuffers() {
	for i := range d.BufferChannels {
		d.BufferChannels[i] = -1
		d.BufferPtrs[i] = 0
	}
}

// Mount installs a .d64 image. The image must be exactly ImageSize
// bytes.
func (d *Drive) Mount(path string, data []byte) error {
	if len(data) != ImageSize {
		return ErrBadImageSize
	}
	d.MountedPath = path
	d.Image = data
	return nil
}

// Listen clears the command buffer, as the real drive does on every
// LISTEN addressed to it.
func (d *Drive) Listen() {
	d.CommandBuffer = d.CommandBuffer[:0]
	d.listening = true
}

// Unlisten drops listener state.
func (d *Drive) Unlisten() {
	d.listening = false
}

// CIOUT appends one byte to the command buffer. A 43rd byte after a
// LISTEN is fatal.
func (d *Drive) CIOUT(b byte) error {
	if len(d.CommandBuffer) >= CommandBufferSize {
		return ErrCommandBufferOverflow
	}
	d.CommandBuffer = append(d.CommandBuffer, b)
	return nil
}

// OpenChannel binds a buffer to channel per a "#n" direct buffer
// request (the only OPEN form this model implements, matching the
// command-channel scope). A bare "#" auto-picks the first free buffer.
func (d *Drive) OpenChannel(channel int, requestedBuffer string) error {
	bufIdx := -1
	if requestedBuffer != "" {
		n, err := parseBufferDigit(requestedBuffer)
		if err != nil {
			return err
		}
		bufIdx = n
	} else {
		for i, ch := range d.BufferChannels {
			if ch == -1 {
				bufIdx = i
				break
			}
		}
		if bufIdx == -1 {
			return fmt.Errorf("drive: no free sector buffers")
		}
	}
	if bufIdx < 0 || bufIdx >= NumBuffers {
		return fmt.Errorf("drive: buffer #%d out of range", bufIdx)
	}
	if d.BufferChannels[bufIdx] != -1 && d.BufferChannels[bufIdx] != channel {
		return fmt.Errorf("drive: buffer #%d already in use", bufIdx)
	}
	d.BufferChannels[bufIdx] = channel
	return nil
}

func parseBufferDigit(s string) (int, error) {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, fmt.Errorf("drive: malformed buffer request %q", s)
	}
	return int(s[0] - '0'), nil
}

// CloseChannel releases whatever buffer is bound to channel, if any.
func (d *Drive) CloseChannel(channel int) {
	for i, ch := range d.BufferChannels {
		if ch == channel {
			d.BufferChannels[i] = -1
			d.BufferPtrs[i] = 0
		}
	}
}

func (d *Drive) bufferForChannel(channel int) (int, error) {
	for i, ch := range d.BufferChannels {
		if ch == channel {
			return i, nil
		}
	}
	return -1, ErrChannelUnbound
}

// ACPTR returns one byte for the given channel: channel 15 returns the
// command response register; any other channel returns the byte at its
// bound buffer's current pointer and then advances the pointer,
// wrapping modulo 256.
func (d *Drive) ACPTR(channel int) (byte, error) {
	if channel == 15 {
		return d.CommandRecv, nil
	}
	idx, err := d.bufferForChannel(channel)
	if err != nil {
		return 0, err
	}
	b := d.Buffers[idx][d.BufferPtrs[idx]]
	d.BufferPtrs[idx]++
	return b, nil
}

// Unlsn dispatches on the secondary address's command-class nibble.
func (d *Drive) Unlsn(secondaryAddress byte) error {
	class := secondaryAddress & 0xF0
	channel := int(secondaryAddress & 0x0F)
	switch class {
	case SecondaryCommand:
		return d.ExecuteCommand()
	case SecondaryClose:
		d.CloseChannel(channel)
		return nil
	case SecondaryOpen:
		if channel == 15 {
			return d.ExecuteCommand()
		}
		return d.OpenChannel(channel, "")
	default:
		return fmt.Errorf("drive: unsupported secondary address class %#02x", class)
	}
}

// ExecuteCommand parses and runs whatever is currently in the command
// buffer.
func (d *Drive) ExecuteCommand() error {
	cmd, err := parseCommand(d.CommandBuffer)
	if err != nil {
		return err
	}
	switch cmd.Name {
	case "I", "UJ":
		d.resetBuffers()
		return nil
	case "B-P":
		return d.execBlockPointer(cmd.Args)
	case "U1":
		return d.execReadSector(cmd.Args)
	case "M-R":
		return d.execMemoryRead(cmd.Args)
	case "M-W":
		return d.execMemoryWrite(cmd.Args)
	default:
		return fmt.Errorf("%w: %s", ErrUnimplementedCommand, cmd.Name)
	}
}

func (d *Drive) execBlockPointer(raw []byte) error {
	args, err := decimalArgs(raw)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return ErrMalformedCommand
	}
	channel, loc := int(args[0]), args[1]
	idx, err := d.bufferForChannel(channel)
	if err != nil {
		return err
	}
	d.BufferPtrs[idx] = loc
	return nil
}

// execReadSector implements U1 channel,drive,track,sector: copy a
// 256-byte sector from the mounted image into the channel's bound
// buffer and set its pointer to 0xFF, matching the 1541's raw-read
// convention that the first ACPTR after a U1 returns the last byte of
// the sector.
func (d *Drive) execReadSector(raw []byte) error {
	args, err := decimalArgs(raw)
	if err != nil {
		return err
	}
	if len(args) != 4 {
		return ErrMalformedCommand
	}
	channel, driveNum, track, sector := int(args[0]), args[1], int(args[2]), int(args[3])
	if driveNum != 0 {
		return ErrInvalidDrive
	}
	if d.Image == nil {
		return ErrNoImageMounted
	}
	idx, err := d.bufferForChannel(channel)
	if err != nil {
		return err
	}
	off, ok := ByteOffset(track, sector)
	if !ok {
		return ErrSectorRange
	}
	copy(d.Buffers[idx][:], d.Image[off:off+SectorSize])
	d.BufferPtrs[idx] = 0xFF
	return nil
}

// execMemoryRead implements M-R addr_lo,addr_hi[,length]: length
// (defaulting to, and limited to, 1) must leave exactly one byte, which
// becomes the next command-channel read (ACPTR channel 15).
func (d *Drive) execMemoryRead(raw []byte) error {
	if len(raw) != 2 && len(raw) != 3 {
		return ErrMalformedCommand
	}
	length := byte(1)
	if len(raw) == 3 {
		length = raw[2]
	}
	if length != 1 {
		return fmt.Errorf("%w: M-R length must be 1", ErrMalformedCommand)
	}
	addr := bits.ToWord(raw[0], raw[1])
	d.CommandRecv = d.memoryPeek(addr)
	return nil
}

// execMemoryWrite implements M-W addr_lo,addr_hi,count,data...: the
// argument list is validated and then discarded, since the addresses
// M-W targets on a real 1541 are mapped to ROM. Nothing is written and
// nothing is logged.
func (d *Drive) execMemoryWrite(raw []byte) error {
	if len(raw) < 3 {
		return ErrMalformedCommand
	}
	count := int(raw[2])
	if len(raw) != 3+count {
		return fmt.Errorf("%w: M-W data length mismatch", ErrMalformedCommand)
	}
	return nil
}

// memoryPeek stands in for the drive's own tiny address space; nothing
// in this model ever writes there, so every location reads zero except
// through CommandRecv set directly by a caller (e.g. a test fixture).
func (d *Drive) memoryPeek(addr uint16) byte {
	_ = addr
	return 0
}
