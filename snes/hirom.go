package snes

import "github.com/golang/glog"

type hiROM struct {
	prgROM  []byte
	saveRAM []byte
}

// HiROM: https://snes.nesdev.org/wiki/Memory_map#HiROM
// Banks $40-$7D and $C0-$FF map 64KiB of ROM each, banks $00-$3F and $80-$BF
// show the upper half of the same banks. Save RAM is at $6000-$7FFF of banks
// $20-$3F and $A0-$BF in 8KiB pages.

func (m *hiROM) romOffset(address uint32) int {
	return int(address&0x3FFFFF) % len(m.prgROM)
}

func (m *hiROM) sramOffset(address uint32) (int, bool) {
	bank := (address >> 16) & 0x7F
	offset := address & 0xFFFF
	if len(m.saveRAM) == 0 || bank < 0x20 || bank >= 0x40 || offset < 0x6000 || offset >= 0x8000 {
		return 0, false
	}
	return int((bank-0x20)*0x2000+offset-0x6000) % len(m.saveRAM), true
}

func (m *hiROM) ReadFromCPU(address uint32) (byte, bool) {
	if i, ok := m.sramOffset(address); ok {
		return m.saveRAM[i], true
	}
	if address&0x8000 != 0 || (address>>16)&0x7F >= 0x40 {
		return m.prgROM[m.romOffset(address)], true
	}
	return 0, false
}

func (m *hiROM) WriteFromCPU(address uint32, data byte) {
	if i, ok := m.sramOffset(address); ok {
		m.saveRAM[i] = data
		return
	}
	glog.V(2).Infof("Ignored HiROM write: address=0x%06x, data=0x%02x", address, data)
}
