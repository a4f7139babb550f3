package snes

import "github.com/golang/glog"

type loROM struct {
	prgROM  []byte
	saveRAM []byte
}

// LoROM: https://snes.nesdev.org/wiki/Memory_map#LoROM
// ROM is seen as 32KiB banks in the upper half of banks $00-$7D and $80-$FF.
// Save RAM sits in the lower half of banks $70-$7D and $F0-$FF.

func (m *loROM) romOffset(address uint32) int {
	bank := (address >> 16) & 0x7F
	return int(bank<<15|address&0x7FFF) % len(m.prgROM)
}

func (m *loROM) sramOffset(address uint32) (int, bool) {
	bank := (address >> 16) & 0x7F
	if len(m.saveRAM) == 0 || bank < 0x70 || address&0x8000 != 0 {
		return 0, false
	}
	return int((bank-0x70)<<15|address&0x7FFF) % len(m.saveRAM), true
}

// ReadFromCPU returns false for addresses that nothing answers.
func (m *loROM) ReadFromCPU(address uint32) (byte, bool) {
	if i, ok := m.sramOffset(address); ok {
		return m.saveRAM[i], true
	}
	if address&0x8000 != 0 || (address>>16)&0x7F >= 0x40 {
		return m.prgROM[m.romOffset(address)], true
	}
	return 0, false
}

func (m *loROM) WriteFromCPU(address uint32, data byte) {
	if i, ok := m.sramOffset(address); ok {
		m.saveRAM[i] = data
		return
	}
	glog.V(2).Infof("Ignored LoROM write: address=0x%06x, data=0x%02x", address, data)
}
