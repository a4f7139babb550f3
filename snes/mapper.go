package snes

// Mapper translates CPU addresses to cartridge memories.
type Mapper interface {
	ReadFromCPU(uint32) (byte, bool)
	WriteFromCPU(uint32, byte)
}

func NewMapper(mode MapMode, prgROM []byte, saveRAM []byte) Mapper {
	switch mode {
	case HiROM:
		return &hiROM{prgROM, saveRAM}
	default:
		return &loROM{prgROM, saveRAM}
	}
}
