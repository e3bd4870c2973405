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
	"os"
	"path/filepath"
	"sort"
	"strconv"

	cli "gopkg.in/urfave/cli.v2"

	"github.com/kenshaw/c64run/internal/cpu"
	"github.com/kenshaw/c64run/internal/drive"
	"github.com/kenshaw/c64run/internal/ioutil"
	"github.com/kenshaw/c64run/internal/kernal"
	"github.com/kenshaw/c64run/internal/loader"
	"github.com/kenshaw/c64run/internal/memory"
	"github.com/kenshaw/c64run/internal/serial"
	"github.com/kenshaw/c64run/internal/trace"
)

// Exit codes per the external interface contract: 0 normal, 1
// argument or I/O error, 2 missing required input file, 255 reserved
// for the generic die-with-message path.
const (
	exitOK            = 0
	exitArgOrIOError  = 1
	exitMissingInput  = 2
	exitGenericDie    = 255
)

func die(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(exitGenericDie)
}

func main() {
	app := &cli.App{
		Name:  "c64run",
		Usage: "run a Commodore 64 program against a headless KERNAL-aware interpreter",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rom-dir", Value: "./roms", Usage: "directory holding chargen.rom, basic.rom, kernal.rom"},
			&cli.StringFlag{Name: "disk", Usage: "path to a .d64 image to mount as device 8"},
			&cli.BoolFlag{Name: "trace", Usage: "emit a per-instruction trace to stderr"},
			&cli.StringFlag{Name: "stop-pc", Usage: "stop execution when PC reaches this hex address"},
			&cli.IntFlag{Name: "ic-limit", Value: cpu.DefaultICLimit, Usage: "fatal instruction-count ceiling"},
			&cli.BoolFlag{Name: "ls", Usage: "print the mounted disk's directory and exit"},
			&cli.BoolFlag{Name: "monitor", Usage: "launch an interactive register/RAM/disassembly monitor"},
		},
		Action: run,
	}
	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		if ec, ok := err.(cli.ExitCoder); ok {
			os.Exit(ec.ExitCode())
		}
		die("c64run: %v", err)
	}
}

func run(c *cli.Context) error {
	banks, err := openBanks(c.String("rom-dir"))
	if err != nil {
		return cli.Exit(err.Error(), exitArgOrIOError)
	}

	m := cpu.NewMachine(banks)
	if c.Bool("trace") {
		ws := trace.NewWriterSink(os.Stderr)
		defer ws.Close()
		m.Trace = ws
	}
	if sp := c.String("stop-pc"); sp != "" {
		addr, err := strconv.ParseUint(sp, 16, 16)
		if err != nil {
			return cli.Exit(fmt.Sprintf("c64run: bad --stop-pc %q: %v", sp, err), exitArgOrIOError)
		}
		m.StopPC = uint16(addr)
		m.HasStopPC = true
	}
	m.ICLimit = uint64(c.Int("ic-limit"))
	m.EnforceICLimit = true

	bus := &serial.Bus{}
	dr := drive.NewDrive()
	if diskPath := c.String("disk"); diskPath != "" {
		data, err := ioutil.ReadExact(diskPath, drive.ImageSize)
		if err != nil {
			return cli.Exit(err.Error(), exitMissingInput)
		}
		if err := dr.Mount(diskPath, data); err != nil {
			return cli.Exit(err.Error(), exitArgOrIOError)
		}
	}
	tramp := kernal.NewTrampoline(bus, dr)
	if c.Bool("trace") {
		tramp.Trace = m.Trace
	}
	m.ROMCall = tramp
	if err := m.Hooks.Freeze(); err != nil {
		return cli.Exit(err.Error(), exitArgOrIOError)
	}

	if c.Bool("ls") {
		return listDirectory(dr)
	}

	args := c.Args().Slice()
	if len(args) == 0 {
		cli.ShowAppHelp(c)
		return cli.Exit("", exitArgOrIOError)
	}

	if args[0] == "state" {
		if len(args) != 4 {
			return cli.Exit("usage: c64run state <reg_path> <ram_path> <disk_path>", exitArgOrIOError)
		}
		if err := loadState(m, dr, args[1], args[2], args[3]); err != nil {
			return cli.Exit(err.Error(), exitMissingInput)
		}
	} else {
		prgPath := args[0]
		data, err := ioutil.ReadAtLeast(prgPath, 2)
		if err != nil {
			return cli.Exit(err.Error(), exitMissingInput)
		}
		result, err := loader.LoadPRG(banks, data)
		if err != nil {
			return cli.Exit(err.Error(), exitArgOrIOError)
		}
		m.Reg.PC = result.LoadAddr
		m.Reg.X, m.Reg.Y = byte(result.EndAddr), byte(result.EndAddr>>8)
		m.Reg.S = 0xFF
		if len(args) > 1 {
			addr, err := strconv.ParseUint(args[1], 16, 16)
			if err != nil {
				return cli.Exit(fmt.Sprintf("c64run: bad override PC %q: %v", args[1], err), exitArgOrIOError)
			}
			m.Reg.PC = uint16(addr)
		}
	}

	if c.Bool("monitor") {
		return runMonitor(m)
	}
	if err := m.Run(); err != nil {
		return cli.Exit(err.Error(), exitGenericDie)
	}
	return nil
}

func openBanks(romDir string) (*memory.Banks, error) {
	char := readROMOrZero(filepath.Join(romDir, "chargen.rom"), memory.CharSize)
	basic := readROMOrZero(filepath.Join(romDir, "basic.rom"), memory.BasicSize)
	kern := readROMOrZero(filepath.Join(romDir, "kernal.rom"), memory.KernalSize)
	return memory.NewBanks(char, basic, kern)
}

// readROMOrZero loads a ROM image if present, or falls back to a
// zero-filled image of the right size. Since this interpreter never
// disassembles ROM code (every JMP/JSR into the KERNAL band is
// intercepted by the trampoline before a fetch happens), the only
// thing real ROM contents affect is a program that PEEKs ROM windows
// directly (e.g. reading chargen character bitmaps).
func readROMOrZero(path string, size int) []byte {
	data, err := ioutil.ReadExact(path, size)
	if err != nil {
		return make([]byte, size)
	}
	return data
}

func loadState(m *cpu.Machine, dr *drive.Drive, regPath, ramPath, diskPath string) error {
	regData, err := ioutil.ReadExact(regPath, 7)
	if err != nil {
		return err
	}
	if err := loader.LoadRegisters(&m.Reg, regData); err != nil {
		return err
	}
	ramData, err := ioutil.ReadExact(ramPath, memory.RAMSize)
	if err != nil {
		return err
	}
	if err := loader.LoadRAM(m.Banks, ramData); err != nil {
		return err
	}
	diskData, err := ioutil.ReadExact(diskPath, drive.ImageSize)
	if err != nil {
		return err
	}
	return dr.Mount(diskPath, diskData)
}

func listDirectory(dr *drive.Drive) error {
	entries, err := dr.ReadDirectory()
	if err != nil {
		return cli.Exit(err.Error(), exitArgOrIOError)
	}
	for _, e := range entries {
		lock := " "
		if e.Locked {
			lock = "*"
		}
		fmt.Printf("%-3d %s%s\n", e.SectorCount, lock, e.Name)
	}
	return nil
}
