package snes

import (
	"fmt"
	"strings"
)

const (
	copierHeaderSize int  = 0x200  // Some dumps carry a 512 bytes header from the copier device
	minROMSize       int  = 0x8000 // One LoROM bank
	loROMHeader      int  = 0x7FC0
	hiROMHeader      int  = 0xFFC0
	maxSRAMShift     byte = 7 // 128KiB
)

// Offsets in the internal header.
// Reference: https://snes.nesdev.org/wiki/ROM_header
const (
	headerTitle      = 0x00
	headerTitleSize  = 21
	headerMapMode    = 0x15
	headerRAMSize    = 0x18
	headerComplement = 0x1C
	headerChecksum   = 0x1E
)

// MapMode is how the cartridge wires its ROM on the CPU address space.
type MapMode int

const (
	LoROM MapMode = iota
	HiROM
)

func (m MapMode) String() string {
	if m == HiROM {
		return "HiROM"
	}
	return "LoROM"
}

// Cartridge holds the program ROM and the battery backed save RAM.
// Reference: https://snes.nesdev.org/wiki/Memory_map
type Cartridge struct {
	prgROM  []byte
	saveRAM []byte
	title   string
	mode    MapMode
	mapper  Mapper
}

// stripCopierHeader removes the copier header when the image size says there is one.
func stripCopierHeader(data []byte) []byte {
	if len(data)%0x400 == copierHeaderSize {
		return data[copierHeaderSize:]
	}
	return data
}

// scoreHeader gives how likely an internal header lives at offset.
func scoreHeader(data []byte, offset int, mode MapMode) int {
	if offset+0x20 > len(data) {
		return -1
	}
	h := data[offset : offset+0x20]
	score := 0
	complement := uint16(h[headerComplement]) | uint16(h[headerComplement+1])<<8
	checksum := uint16(h[headerChecksum]) | uint16(h[headerChecksum+1])<<8
	if complement^checksum == 0xFFFF {
		score += 2
	}
	if m := h[headerMapMode]; MapMode(m&1) == mode && m&0xE0 == 0x20 {
		score += 2
	}
	if h[headerRAMSize] <= maxSRAMShift {
		score++
	}
	return score
}

func readTitle(header []byte) string {
	title := header[headerTitle : headerTitle+headerTitleSize]
	return strings.TrimRight(strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7E {
			return -1
		}
		return r
	}, string(title)), " ")
}

// sramSize decodes the RAM size byte of the header.
func sramSize(shift byte) int {
	if shift == 0 {
		return 0
	}
	if shift > maxSRAMShift {
		shift = maxSRAMShift
	}
	return 0x400 << shift
}

// NewCartridge creates a cartridge from a ROM image.
func NewCartridge(data []byte) (*Cartridge, error) {
	data = stripCopierHeader(data)
	if len(data) < minROMSize {
		return nil, fmt.Errorf("The buffer is not a valid SNES image: %d bytes", len(data))
	}
	c := &Cartridge{prgROM: data}
	offset := loROMHeader
	if scoreHeader(data, hiROMHeader, HiROM) > scoreHeader(data, loROMHeader, LoROM) {
		c.mode = HiROM
		offset = hiROMHeader
	}
	header := data[offset : offset+0x20]
	c.title = readTitle(header)
	c.saveRAM = make([]byte, sramSize(header[headerRAMSize]))
	c.mapper = NewMapper(c.mode, c.prgROM, c.saveRAM)
	return c, nil
}

// Title is the game title from the internal header.
func (c *Cartridge) Title() string {
	return c.title
}

// MapMode returns the detected mapping.
func (c *Cartridge) MapMode() MapMode {
	return c.mode
}

// PRGROM gives direct access to the ROM, for debuggers.
func (c *Cartridge) PRGROM() []byte {
	return c.prgROM
}

func (c *Cartridge) PRGROMSize() int {
	return len(c.prgROM)
}

// SaveRAM gives direct access to the save RAM, nil when the cartridge has none.
func (c *Cartridge) SaveRAM() []byte {
	return c.saveRAM
}

func (c *Cartridge) SaveRAMSize() int {
	return len(c.saveRAM)
}
