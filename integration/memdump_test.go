package integration

import (
	"bytes"
	"testing"

	"github.com/jyane/jsnes/bus"
	"github.com/jyane/jsnes/memdump"
	"github.com/jyane/jsnes/snes"
)

// newHiROMConsole builds a 256KiB HiROM console with 16KiB of save RAM. ROM
// bytes hold the low byte of their offset xor their bank.
func newHiROMConsole(t *testing.T) (*snes.Console, *memdump.Dumper) {
	t.Helper()
	data := make([]byte, 0x40000)
	for i := range data {
		data[i] = byte(i) ^ byte(i>>16)
	}
	h := data[0xFFC0:0xFFE0]
	copy(h, "INTEGRATION          ")
	h[0x15] = 0x21
	h[0x18] = 4
	h[0x1C], h[0x1D] = 0xCB, 0xED
	h[0x1E], h[0x1F] = 0x34, 0x12
	console, err := snes.NewConsole(data)
	if err != nil {
		t.Fatal(err)
	}
	if console.Cartridge.MapMode() != snes.HiROM {
		t.Fatalf("MapMode: got=%s, want=HiROM", console.Cartridge.MapMode())
	}
	return console, memdump.New(console.Bus, console.Cartridge, console.WRAM, console.PPU)
}

func TestCPUMemoryMatchesRegions(t *testing.T) {
	_, d := newHiROMConsole(t)
	rom := d.Dump(memdump.PRGROM)
	for _, a := range []uint32{0x00000, 0x12345, 0x3FFFF} {
		if got := d.ReadValue(memdump.CPUMemory, 0xC00000|a, memdump.Inspect); got != rom[a] {
			t.Errorf("cpu[0x%06x]: got=0x%02x, want=0x%02x", 0xC00000|a, got, rom[a])
		}
	}

	d.WriteValue(memdump.WorkRAM, 0x1ABCD, 0x42, memdump.Inspect)
	if got := d.ReadValue(memdump.CPUMemory, 0x7FABCD, memdump.Inspect); got != 0x42 {
		t.Errorf("cpu[0x7fabcd]: got=0x%02x, want=0x42", got)
	}

	sram := bytes.Repeat([]byte{0x5A}, d.SizeOf(memdump.SaveRAM))
	if !d.LoadAll(memdump.SaveRAM, sram) {
		t.Fatal("LoadAll(sram): rejected")
	}
	if got := d.ReadValue(memdump.CPUMemory, 0x216000, memdump.Inspect); got != 0x5A {
		t.Errorf("cpu[0x216000]: got=0x%02x, want=0x5a", got)
	}
}

func TestCPUMemoryWritesReachVideoRAM(t *testing.T) {
	_, d := newHiROMConsole(t)
	// VMAIN, VMADDL, VMADDH, VMDATAL, VMDATAH
	d.WriteValues(memdump.CPUMemory, 0x002115, []byte{0x80, 0x00, 0x10, 0xCD, 0xAB})
	if got := d.ReadValue(memdump.VideoRAM, 0x2000, memdump.Inspect); got != 0xCD {
		t.Errorf("vram[0x2000]: got=0x%02x, want=0xcd", got)
	}
	if got := d.ReadValue(memdump.VideoRAM, 0x2001, memdump.Inspect); got != 0xAB {
		t.Errorf("vram[0x2001]: got=0x%02x, want=0xab", got)
	}
	// CGADD then CGDATA
	d.WriteValue(memdump.CPUMemory, 0x002121, 0x01, memdump.Inspect)
	d.WriteValue(memdump.CPUMemory, 0x002122, 0x1F, memdump.Inspect)
	if got := d.ReadValue(memdump.CGRAM, 0x002, memdump.Inspect); got != 0x1F {
		t.Errorf("cgram[2]: got=0x%02x, want=0x1f", got)
	}
}

func TestLiveReadHasSideEffects(t *testing.T) {
	console, d := newHiROMConsole(t)
	var reads, writes int
	console.Bus.SetAccessHook(func(op bus.Operation, address uint32, data byte) {
		switch op {
		case bus.OpRead:
			reads++
		case bus.OpWrite:
			writes++
		}
	})
	d.WriteValue(memdump.VideoRAM, 0x0000, 0x01, memdump.Inspect)
	d.WriteValue(memdump.VideoRAM, 0x0002, 0x02, memdump.Inspect)
	d.WriteValue(memdump.VideoRAM, 0x0004, 0x03, memdump.Inspect)
	if writes != 0 {
		t.Fatalf("direct writes went through the bus: got=%d", writes)
	}
	// increment after the low byte, VMADD = 0
	d.WriteValues(memdump.CPUMemory, 0x002115, []byte{0x00, 0x00, 0x00})
	if writes != 3 {
		t.Fatalf("writes: got=%d, want=3", writes)
	}

	for i := 0; i < 3; i++ {
		if got := d.ReadValue(memdump.CPUMemory, 0x002139, memdump.Inspect); got != 0x01 {
			t.Errorf("inspect $2139 #%d: got=0x%02x, want=0x01", i, got)
		}
	}
	if reads != 0 {
		t.Fatalf("inspections reached the live path: got=%d", reads)
	}

	want := []byte{0x01, 0x01, 0x02, 0x03}
	for i, w := range want {
		if got := d.ReadValue(memdump.CPUMemory, 0x002139, memdump.Live); got != w {
			t.Errorf("live $2139 #%d: got=0x%02x, want=0x%02x", i, got, w)
		}
	}
	if reads != len(want) {
		t.Errorf("reads: got=%d, want=%d", reads, len(want))
	}
}

func TestDumpCPUMemory(t *testing.T) {
	console, d := newHiROMConsole(t)
	d.WriteValue(memdump.WorkRAM, 0x00010, 0x77, memdump.Inspect)
	d.WriteValue(memdump.WorkRAM, 0x1FFFF, 0x88, memdump.Inspect)
	var reads int
	console.Bus.SetAccessHook(func(bus.Operation, uint32, byte) { reads++ })

	out := make([]byte, d.SizeOf(memdump.CPUMemory))
	if n := d.DumpAll(memdump.CPUMemory, out); n != 0x1000000 {
		t.Fatalf("DumpAll: got=%d, want=0x1000000", n)
	}
	if reads != 0 {
		t.Errorf("DumpAll used the live path %d times", reads)
	}
	wram := d.Dump(memdump.WorkRAM)
	if !bytes.Equal(out[0x7E0000:0x800000], wram) {
		t.Error("cpu[7E0000:800000] differs from work RAM")
	}
	if !bytes.Equal(out[0x000000:0x002000], wram[:0x2000]) {
		t.Error("cpu[000000:002000] differs from the work RAM mirror")
	}
	if !bytes.Equal(out[0xC00000:0xC40000], d.Dump(memdump.PRGROM)) {
		t.Error("cpu[C00000:C40000] differs from ROM")
	}
	if d.LoadAll(memdump.CPUMemory, out[:16]) {
		t.Error("LoadAll(cpu): got=accepted, want=rejected")
	}
}
