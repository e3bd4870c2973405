package memory

import "testing"

func TestBankRead(t *testing.T) {
	b, err := NewBanks(make([]byte, CharSize), make([]byte, BasicSize), make([]byte, KernalSize))
	if err != nil {
		t.Fatalf("NewBanks: %v", err)
	}
	b.Kernal[0x1FFC] = 0xAB
	b.RAM[BankSelectAddr] = 0x07
	if got := b.Read(0xFFFC); got != 0xAB {
		t.Errorf("Read(0xFFFC) in bank 7 = %#02x, want 0xAB", got)
	}

	b.RAM[BankSelectAddr] = 0x04
	b.Write(0xFFFC, 0xCD)
	if got := b.Read(0xFFFC); got != 0xCD {
		t.Errorf("Read(0xFFFC) in bank 4 = %#02x, want 0xCD", got)
	}
}

func TestBankMatrix(t *testing.T) {
	b, err := NewBanks(make([]byte, CharSize), make([]byte, BasicSize), make([]byte, KernalSize))
	if err != nil {
		t.Fatalf("NewBanks: %v", err)
	}
	b.Char[0x800] = 0x11    // $D800
	b.Basic[0] = 0x22       // $A000
	b.Kernal[0x1000] = 0x33 // $F000
	b.RAM[0xA000] = 0x01
	b.RAM[0xC000] = 0x02
	b.RAM[0xD800] = 0x03
	b.RAM[0xF000] = 0x04

	type want struct{ a000, c000, d800, f000 byte }
	cases := map[byte]want{
		0: {0x01, 0x02, 0x03, 0x04},
		1: {0x01, 0x02, 0x11, 0x04},
		2: {0x01, 0x02, 0x11, 0x33},
		3: {0x22, 0x02, 0x11, 0x33},
		4: {0x01, 0x02, 0x03, 0x04},
		5: {0x01, 0x02, 0x03, 0x04},
		6: {0x01, 0x02, 0x03, 0x33},
		7: {0x22, 0x02, 0x03, 0x33},
	}
	for sel, w := range cases {
		b.RAM[BankSelectAddr] = sel
		if got := b.Read(0xA000); got != w.a000 {
			t.Errorf("bank %d: Read($A000) = %#02x, want %#02x", sel, got, w.a000)
		}
		if got := b.Read(0xC000); got != w.c000 {
			t.Errorf("bank %d: Read($C000) = %#02x, want %#02x", sel, got, w.c000)
		}
		if got := b.Read(0xD800); got != w.d800 {
			t.Errorf("bank %d: Read($D800) = %#02x, want %#02x", sel, got, w.d800)
		}
		if got := b.Read(0xF000); got != w.f000 {
			t.Errorf("bank %d: Read($F000) = %#02x, want %#02x", sel, got, w.f000)
		}
	}
}

func TestNewBanksSizeValidation(t *testing.T) {
	if _, err := NewBanks(nil, make([]byte, BasicSize), make([]byte, KernalSize)); err == nil {
		t.Error("expected error for short chargen image")
	}
}
