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

const applesoftTokensBegin = 0x80

// applesoftTokens is indexed from applesoftTokensBegin ($80), matching
// Applesoft's token-to-keyword table.
var applesoftTokens = []string{
	"END", "FOR", "NEXT", "DATA", "INPUT", "DEL", "DIM", "READ",
	"GR", "TEXT", "PR#", "IN#", "CALL", "PLOT", "HLIN", "VLIN",
	"HGR2", "HGR", "HCOLOR=", "HPLOT", "DRAW", "XDRAW", "HTAB", "HOME",
	"ROT=", "SCALE=", "SHLOAD", "TRACE", "NOTRACE", "NORMAL", "INVERSE", "FLASH",
	"COLOR=", "POP", "VTAB", "HIMEM:", "LOMEM:", "ONERR", "RESUME", "RECALL",
	"STORE", "SPEED=", "LET", "GOTO", "RUN", "IF", "RESTORE", "&",
	"GOSUB", "RETURN", "REM", "STOP", "ON", "WAIT", "LOAD", "SAVE",
	"DEF", "POKE", "PRINT", "CONT", "LIST", "CLEAR", "GET", "NEW",
	"TAB(", "TO", "FN", "SPC(", "THEN", "AT", "NOT", "STEP",
	"+", "-", "*", "/", "^", "AND", "OR", ">",
	"=", "<", "SGN", "INT", "ABS", "USR", "FRE", "SCRN(",
	"PDL", "POS", "SQR", "RND", "LOG", "EXP", "COS", "SIN",
	"TAN", "ATN", "PEEK", "LEN", "STR$", "VAL", "ASC", "CHR$",
	"LEFT$", "RIGHT$", "MID$",
}

// ListApplesoft detokenizes a raw Applesoft BASIC program image (the
// bytes of a catalog entry of FileTypeApplesoft, starting at its load
// address, terminated by a next-line pointer of zero).
func ListApplesoft(data []byte) (string, error) {
	pos := 0
	var out strings.Builder
	for pos < len(data) {
		if pos+2 > len(data) {
			return "", fmt.Errorf("apple2: truncated applesoft line header")
		}
		nextLineAddr := int(data[pos]) | int(data[pos+1])<<8
		pos += 2
		if nextLineAddr == 0 {
			break
		}
		if pos+2 > len(data) {
			return "", fmt.Errorf("apple2: truncated applesoft line number")
		}
		lineNumber := int(data[pos]) | int(data[pos+1])<<8
		pos += 2
		fmt.Fprintf(&out, " %d ", lineNumber)
		for pos < len(data) {
			c := data[pos]
			pos++
			if c == 0 {
				break
			}
			if c >= applesoftTokensBegin {
				idx := int(c) - applesoftTokensBegin
				if idx >= len(applesoftTokens) {
					return "", fmt.Errorf("apple2: unrecognized applesoft token $%02X", c)
				}
				fmt.Fprintf(&out, " %s ", applesoftTokens[idx])
			} else {
				out.WriteByte(c)
			}
		}
		out.WriteByte('\n')
	}
	return out.String(), nil
}
