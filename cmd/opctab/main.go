package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

type entry struct {
	opcode   int
	mnemonic string
	mode     string
}

func main() {
	var input, output, pkg string

	rootCmd := &cobra.Command{
		Use:   "opctab",
		Short: "generate a 6502 opcode decode table from a tab-separated opcode list",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := readOpcodes(input)
			if err != nil {
				return err
			}
			return writeTable(output, pkg, entries)
		},
	}
	rootCmd.Flags().StringVar(&input, "input", "testdata/opcodes.tsv", "tab-separated opcode,mnemonic,addrmode source")
	rootCmd.Flags().StringVar(&output, "output", "internal/cpu/optable_generated.go", "generated Go file path")
	rootCmd.Flags().StringVar(&pkg, "package", "cpu", "package name for the generated file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readOpcodes parses a header-plus-rows TSV of opcode (hex, no 0x
// prefix), mnemonic and AddrMode identifier.
func readOpcodes(path string) ([]entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []entry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || lineNo == 1 {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("opctab: %s:%d: expected 3 tab-separated fields, got %d", path, lineNo, len(fields))
		}
		op, err := strconv.ParseUint(fields[0], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("opctab: %s:%d: bad opcode %q: %w", path, lineNo, fields[0], err)
		}
		entries = append(entries, entry{opcode: int(op), mnemonic: fields[1], mode: fields[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].opcode < entries[j].opcode })
	return entries, nil
}

const fileHeader = `// Copyright © 2019 mg
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

// Code generated from testdata/opcodes.tsv by cmd/opctab. DO NOT EDIT.

package %s

// Instruction is one entry of the 256-opcode decode table: a mnemonic
// paired with its addressing mode. Opcodes with an empty Mnemonic are
// illegal and fatal when fetched.
type Instruction struct {
	Mnemonic string
	Mode     AddrMode
}

// OpTable is indexed by the raw opcode byte.
var OpTable = [256]Instruction{
`

func writeTable(path, pkg string, entries []entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, fileHeader, pkg)

	lastRow := -1
	for _, e := range entries {
		row := e.opcode / 0x10
		if row != lastRow {
			if lastRow != -1 {
				w.WriteString("\n")
			}
			lastRow = row
		}
		fmt.Fprintf(w, "\t0x%02X: {%q, %s},\n", e.opcode, e.mnemonic, e.mode)
	}
	w.WriteString("}\n")
	return w.Flush()
}
