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
	"strconv"
	"strings"

	"github.com/btcsuite/goleveldb/leveldb/errors"
)

// ErrMalformedCommand and ErrUnimplementedCommand are the two ways a
// well-formed DOS command string can still be fatal.
var (
	ErrMalformedCommand      = errors.New("drive: malformed DOS command")
	ErrUnimplementedCommand  = errors.New("drive: unimplemented DOS command")
)

type argGrammar int

const (
	grammarNone argGrammar = iota
	grammarDecimal
	grammarBinary
)

// commandGrammar lists every DOS command name this parser recognizes,
// and how its argument bytes are encoded. A name missing from this table
// is reported as ErrUnimplementedCommand by parseCommand; a listed name
// that ExecuteCommand has no case for is reported the same way, without
// its arguments being parsed.
var commandGrammar = map[string]argGrammar{
	"N": grammarNone, "C": grammarNone, "R": grammarNone, "S": grammarNone,
	"I": grammarNone, "V": grammarNone,
	"B-A": grammarDecimal, "B-E": grammarDecimal, "B-F": grammarDecimal,
	"B-R": grammarDecimal, "B-W": grammarDecimal, "B-P": grammarDecimal,
	"M-E": grammarBinary, "M-R": grammarBinary, "M-W": grammarBinary, "P": grammarBinary,
	"U1": grammarDecimal, "U2": grammarDecimal, "U9": grammarNone, "UJ": grammarNone,
}

// parsedCommand is a recognized DOS command name plus its raw argument
// bytes, not yet interpreted per its grammar.
type parsedCommand struct {
	Name string
	Args []byte
}

// parseCommand recognizes the command name prefix of buf and splits off
// its argument bytes. Single-letter commands may be followed by an
// optional drive digit '0'. Dashed and user commands are recognized by
// their first two or three bytes.
func parseCommand(buf []byte) (parsedCommand, error) {
	if len(buf) == 0 {
		return parsedCommand{}, ErrMalformedCommand
	}

	if len(buf) >= 2 && buf[1] == '-' && (buf[0] == 'B' || buf[0] == 'M') {
		if len(buf) < 3 {
			return parsedCommand{}, ErrMalformedCommand
		}
		name := string(buf[0:3])
		if _, ok := commandGrammar[name]; !ok {
			return parsedCommand{}, ErrUnimplementedCommand
		}
		return parsedCommand{Name: name, Args: trimLeadingSeparators(buf[3:])}, nil
	}

	if buf[0] == 'U' && len(buf) >= 2 {
		name, ok := canonicalUCommand(buf[1])
		if !ok {
			return parsedCommand{}, ErrUnimplementedCommand
		}
		return parsedCommand{Name: name, Args: trimLeadingSeparators(buf[2:])}, nil
	}

	name := string(buf[0:1])
	if _, ok := commandGrammar[name]; !ok {
		return parsedCommand{}, ErrUnimplementedCommand
	}
	rest := buf[1:]
	if len(rest) > 0 && rest[0] == '0' {
		rest = rest[1:]
	}
	return parsedCommand{Name: name, Args: trimLeadingSeparators(rest)}, nil
}

// canonicalUCommand maps a U-command selector to its numeric name,
// accepting the letter forms UA/UB/UI as synonyms for U1/U2/U9 the way
// the real 1541 DOS does. UJ has no numeric alias.
func canonicalUCommand(selector byte) (string, bool) {
	switch selector {
	case '1', 'A', 'a':
		return "U1", true
	case '2', 'B', 'b':
		return "U2", true
	case '9', 'I', 'i':
		return "U9", true
	case 'J', 'j':
		return "UJ", true
	default:
		return "", false
	}
}

func trimLeadingSeparators(b []byte) []byte {
	for len(b) > 0 && (b[0] == ':' || b[0] == ' ') {
		b = b[1:]
	}
	return b
}

// decimalArgs splits a colon/comma/space-separated ASCII decimal
// argument list into bytes, failing if any value doesn't fit in a byte.
func decimalArgs(raw []byte) ([]byte, error) {
	fields := strings.FieldsFunc(string(raw), func(r rune) bool {
		return r == ':' || r == ',' || r == ' '
	})
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 || n > 255 {
			return nil, ErrMalformedCommand
		}
		out = append(out, byte(n))
	}
	return out, nil
}
