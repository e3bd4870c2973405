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

// Package trace carries one executed-instruction line at a time out of
// the interpreter, the way mgnes's Logger carries its own trace lines
// out of the CPU package: the consumer decides where the text goes, the
// producer only builds strings.
package trace

import (
	"bufio"
	"io"
	"os"
)

// Sink receives one already-formatted trace line at a time, without a
// trailing newline.
type Sink interface {
	Emit(line string)
}

// NopSink discards every line. It is the default when tracing is off.
type NopSink struct{}

// Emit implements Sink.
func (NopSink) Emit(string) {}

// WriterSink writes each line, newline-terminated, to an underlying
// io.Writer, buffering with bufio the way long trace runs need to.
type WriterSink struct {
	w *bufio.Writer
}

// NewWriterSink wraps w in a buffered Sink. Callers must call Close to
// flush.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w)}
}

// Emit implements Sink.
func (s *WriterSink) Emit(line string) {
	s.w.WriteString(line)
	s.w.WriteByte('\n')
}

// Close flushes buffered output.
func (s *WriterSink) Close() error {
	return s.w.Flush()
}

// FileSink is a WriterSink backed by an *os.File the sink owns and will
// close.
type FileSink struct {
	*WriterSink
	f *os.File
}

// NewFileSink creates (or truncates) path and wraps it in a FileSink.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileSink{WriterSink: NewWriterSink(f), f: f}, nil
}

// Close flushes and closes the underlying file.
func (s *FileSink) Close() error {
	if err := s.WriterSink.Close(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
