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

package main

import (
	"fmt"
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/kenshaw/c64run/internal/cpu"
)

const logBacklog = 29

// ringSink keeps the most recent trace lines for the monitor's
// disassembly panel, the way pure6502's Disassembly widget keeps a
// scrolling window around PC but driven off the interpreter's own
// trace output instead of a static disassembly pass.
type ringSink struct {
	lines []string
}

func (r *ringSink) Emit(line string) {
	r.lines = append(r.lines, line)
	if len(r.lines) > logBacklog {
		r.lines = r.lines[len(r.lines)-logBacklog:]
	}
}

func renderCPU(p *widgets.Paragraph, m *cpu.Machine) {
	flags := []byte{
		cpu.FlagNegative, cpu.FlagOverflow, cpu.FlagUnused, cpu.FlagBreak,
		cpu.FlagDecimal, cpu.FlagInterrupt, cpu.FlagZero, cpu.FlagCarry,
	}
	symbols := []rune{'N', 'V', '-', 'B', 'D', 'I', 'Z', 'C'}

	sb := &strings.Builder{}
	sb.WriteString("STATUS: ")
	for i, f := range flags {
		sb.WriteRune('[')
		sb.WriteRune(symbols[i])
		sb.WriteRune(']')
		sb.WriteString("(fg:")
		if m.Reg.GetFlag(f) {
			sb.WriteString("green")
		} else {
			sb.WriteString("red")
		}
		sb.WriteString(") ")
	}
	fmt.Fprintf(sb, "\nPC: $%04X SP: $%02X\n", m.Reg.PC, m.Reg.S)
	fmt.Fprintf(sb, "A: $%02X [%d]\n", m.Reg.A, m.Reg.A)
	fmt.Fprintf(sb, "X: $%02X [%d]\n", m.Reg.X, m.Reg.X)
	fmt.Fprintf(sb, "Y: $%02X [%d]\n", m.Reg.Y, m.Reg.Y)
	fmt.Fprintf(sb, "IC: %d", m.Reg.IC)
	p.Text = sb.String()
}

func renderRAM(p *widgets.Paragraph, m *cpu.Machine, base uint16, numRow, numCol int) {
	sb := &strings.Builder{}
	addr := base
	for row := 0; row < numRow; row++ {
		fmt.Fprintf(sb, "$%04X:", addr)
		for col := 0; col < numCol; col++ {
			fmt.Fprintf(sb, " %02X", m.Banks.Read(addr))
			addr++
		}
		sb.WriteRune('\n')
	}
	p.Text = sb.String()
}

func renderLog(p *widgets.Paragraph, ring *ringSink) {
	p.Text = strings.Join(ring.lines, "\n")
}

func renderTips(p *widgets.Paragraph) {
	p.Text = "SPACE = Step Instruction    Q = Quit"
}

// runMonitor drives an interactive register/RAM/trace-log session over
// an already-seeded Machine. It replaces whatever trace sink run set up
// with a ring buffer so the log panel always has something to show.
func runMonitor(m *cpu.Machine) error {
	if err := ui.Init(); err != nil {
		return fmt.Errorf("c64run: monitor: %w", err)
	}
	defer ui.Close()

	ring := &ringSink{}
	m.Trace = ring

	ram0 := widgets.NewParagraph()
	ram0.Title = "RAM Page 0x00"
	ram0.SetRect(0, 0, 56, 18)

	ram1 := widgets.NewParagraph()
	ram1.Title = "RAM Page 0x80"
	ram1.SetRect(0, 18, 56, 36)

	regs := widgets.NewParagraph()
	regs.Title = "CPU"
	regs.SetRect(56, 0, 56+40, 8)

	log := widgets.NewParagraph()
	log.Title = "Trace"
	log.SetRect(56, 8, 56+40, 8+29)

	tips := widgets.NewParagraph()
	tips.Title = "Tips"
	tips.SetRect(0, 36, 56+40, 39)

	draw := func() {
		renderRAM(ram0, m, 0x0000, 16, 16)
		renderRAM(ram1, m, 0x8000, 16, 16)
		renderCPU(regs, m)
		renderLog(log, ring)
		renderTips(tips)
		ui.Render(ram0, ram1, regs, log, tips)
	}
	draw()

	for e := range ui.PollEvents() {
		if e.Type != ui.KeyboardEvent {
			continue
		}
		switch e.ID {
		case "q", "Q", "<C-c>":
			return nil
		case "<Space>":
			more, err := m.Step()
			if err != nil {
				ring.Emit(fmt.Sprintf("error: %v", err))
			} else if !more {
				ring.Emit("halted")
			}
		}
		draw()
	}
	return nil
}
