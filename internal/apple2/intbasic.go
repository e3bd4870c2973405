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

import (
	"fmt"
	"strings"
)

var intBasicTokens = map[byte]string{
	0x03: ":", 0x09: " DEL ", 0x0a: ",", 0x12: "+", 0x13: "-", 0x14: "*",
	0x15: "/", 0x16: "=", 0x17: "#", 0x18: ">=", 0x19: ">", 0x1a: "<=",
	0x1b: "<>", 0x1c: "<", 0x1d: " OR ", 0x1e: " OR ", 0x1f: " MOD ",
	0x20: " ^ ", 0x22: "(", 0x23: ",", 0x24: " THEN ", 0x25: " THEN ",
	0x26: ",", 0x27: ",", 0x2a: "(", 0x2d: "(", 0x2e: " PEEK", 0x2f: " RND ",
	0x30: " SGN ", 0x34: "(", 0x35: " +", 0x36: " -", 0x37: " NOT ",
	0x38: "(", 0x39: "=", 0x3a: " AND ", 0x3b: " LEN(", 0x3d: " SCRN(",
	0x3e: ",", 0x3f: "(", 0x40: "$", 0x45: ";", 0x46: ";", 0x47: ";",
	0x48: ",", 0x4b: " TEXT ", 0x4c: " GR ", 0x4d: " CALL ", 0x4e: " DIM ",
	0x4f: " DIM ", 0x50: " TAB ", 0x51: " END ", 0x52: " INPUT ",
	0x53: " INPUT ", 0x54: " INPUT ", 0x55: " FOR ", 0x56: " = ",
	0x57: " TO ", 0x58: " STEP ", 0x59: " NEXT ", 0x5b: " RETURN ",
	0x5c: " GOSUB ", 0x5f: " GOTO ", 0x60: " IF ", 0x61: " PRINT ",
	0x62: " PRINT ", 0x63: " PRINT ", 0x64: " POKE ", 0x65: ",",
	0x66: " COLOR= ", 0x67: " PLOT ", 0x68: ",", 0x69: " HLIN ", 0x6a: ",",
	0x6b: " AT ", 0x6c: " VLIN ", 0x6d: ",", 0x6e: " AT ", 0x6f: " VTAB ",
	0x70: "=", 0x71: "=", 0x72: ")", 0x77: " POP ",
}

// ListIntegerBasic detokenizes a raw Integer BASIC program image (the
// bytes of a catalog entry of FileTypeInteger, including its 2-byte
// length prefix) into a textual listing, one line per program line.
func ListIntegerBasic(data []byte) (string, error) {
	if len(data) < 2 {
		return "", fmt.Errorf("apple2: integer basic image too short")
	}
	pos := 2 // skip length prefix
	var out strings.Builder
	for pos < len(data) {
		lineLen := int(data[pos])
		pos++
		if lineLen == 0 {
			break
		}
		lineEnd := pos + lineLen - 1
		if lineEnd < pos || lineEnd > len(data) {
			return "", fmt.Errorf("apple2: corrupt integer basic line length %d", lineLen)
		}
		if pos+2 > len(data) {
			return "", fmt.Errorf("apple2: truncated integer basic line number")
		}
		lineNumber := int(data[pos]) | int(data[pos+1])<<8
		pos += 2
		fmt.Fprintf(&out, "%5d ", lineNumber)
		if err := listIntBasicLine(data, &pos, lineEnd, &out); err != nil {
			return "", err
		}
		out.WriteByte('\n')
	}
	return out.String(), nil
}

func listIntBasicLine(data []byte, pos *int, lineEnd int, out *strings.Builder) error {
	for *pos < lineEnd {
		c := data[*pos]
		*pos++
		switch {
		case c == 0x01: // end of line marker
			continue
		case c == 0x28: // open quote
			out.WriteByte('"')
			for *pos < len(data) && data[*pos] != 0x29 {
				out.WriteByte(data[*pos] & 0x7F)
				*pos++
			}
			*pos++ // skip close quote
			out.WriteByte('"')
		case c == 0x5d: // REM
			out.WriteString(" REM ")
			for *pos < lineEnd-1 {
				out.WriteByte(data[*pos] & 0x7F)
				*pos++
			}
		case c >= 0xb0 && c <= 0xb9: // inline decimal literal
			if *pos+2 > len(data) {
				return fmt.Errorf("apple2: truncated integer basic literal")
			}
			value := int(data[*pos]) | int(data[*pos+1])<<8
			*pos += 2
			fmt.Fprintf(out, "%d", value)
		case c >= 'A'|0x80 && c <= 'Z'|0x80:
			out.WriteByte(c & 0x7F)
			for *pos < len(data) {
				n := data[*pos]
				if (n >= 'A'|0x80 && n <= 'Z'|0x80) || (n >= '0'|0x80 && n <= '9'|0x80) {
					out.WriteByte(n & 0x7F)
					*pos++
					continue
				}
				break
			}
		default:
			if tok, ok := intBasicTokens[c]; ok {
				out.WriteString(tok)
			} else {
				return fmt.Errorf("apple2: unrecognized integer basic token $%02X", c)
			}
		}
	}
	return nil
}
