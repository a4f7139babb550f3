// Package bus defines the contracts between the memory router and the parts
// of the console that own memory.
package bus

import "fmt"

// Region sizes in bytes.
// VideoRAMSize and CGRAMSize must stay powers of two, they are wrapped with a mask.
const (
	CPUAddressSpace = 0x1000000
	WorkRAMSize     = 0x20000
	VideoRAMSize    = 0x10000
	SpriteRAMSize   = 544
	CGRAMSize       = 512
)

// Operation tells the interconnect what kind of access is being made.
type Operation int

const (
	OpRead Operation = iota
	OpWrite
)

func (o Operation) String() string {
	switch o {
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	default:
		return fmt.Sprintf("operation(%d)", int(o))
	}
}

// Interconnect is the CPU side of the console. It owns the 24-bit address
// space and decodes it onto memories and registers.
type Interconnect interface {
	// Inspect returns the value at address without triggering any register side effect.
	Inspect(address uint32) uint8
	// Read is the live read path, reading a register may change hardware state.
	Read(address uint32) uint8
	Write(address uint32, data uint8, op Operation)
}

// CartridgeMemory exposes the cartridge buffers. Sizes differ per title.
type CartridgeMemory interface {
	PRGROM() []uint8
	PRGROMSize() int
	SaveRAM() []uint8
	SaveRAMSize() int
}

// VideoMemory exposes the PPU buffers, each VideoRAMSize, SpriteRAMSize and
// CGRAMSize bytes long.
type VideoMemory interface {
	VideoRAM() []uint8
	SpriteRAM() []uint8
	CGRAM() []uint8
}

// WorkMemory exposes the WorkRAMSize bytes of work RAM.
type WorkMemory interface {
	WorkRAM() []uint8
}
