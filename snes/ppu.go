package snes

import (
	"github.com/golang/glog"

	"github.com/jyane/jsnes/bus"
)

// PPU owns the video memories and the CPU facing ports used to reach them.
// Only the memory ports are emulated, rendering is not.
//
// References:
//
//	https://snes.nesdev.org/wiki/PPU_registers
//	https://problemkaputt.de/fullsnes.htm#snesppuregisters
type PPU struct {
	vram  [bus.VideoRAMSize]byte
	oam   [bus.SpriteRAMSize]byte
	cgram [bus.CGRAMSize]byte

	vramPort vramPort

	// OAM byte address, 10 bits. Addresses past $1FF reach the 32 bytes high table.
	oamAddress uint16
	// CGRAM byte address, 9 bits.
	cgAddress uint16
}

// NewPPU creates a PPU.
func NewPPU() *PPU {
	p := &PPU{}
	p.vramPort.vram = &p.vram
	p.Reset()
	return p
}

// Reset clears the port addresses, memories keep their contents.
func (p *PPU) Reset() {
	p.vramPort.reset()
	p.oamAddress = 0
	p.cgAddress = 0
}

// VideoRAM gives direct access to VRAM, for debuggers.
func (p *PPU) VideoRAM() []byte {
	return p.vram[:]
}

// SpriteRAM gives direct access to OAM, for debuggers.
func (p *PPU) SpriteRAM() []byte {
	return p.oam[:]
}

// CGRAM gives direct access to the palette, for debuggers.
func (p *PPU) CGRAM() []byte {
	return p.cgram[:]
}

// oamIndex turns the OAM address into an index of oam. The high table is
// mirrored every 32 bytes.
func (p *PPU) oamIndex() int {
	a := int(p.oamAddress & 0x3FF)
	if a >= 0x200 {
		return 0x200 + a&0x1F
	}
	return a
}

// writeOAMADD writes OAMADDL ($2102) or OAMADDH ($2103), which hold a word address.
func (p *PPU) writeOAMADD(high bool, data byte) {
	word := p.oamAddress >> 1
	if high {
		word = word&0xFF | uint16(data&1)<<8
	} else {
		word = word&0x100 | uint16(data)
	}
	p.oamAddress = word << 1
}

// writeOAMDATA writes OAMDATA ($2104).
func (p *PPU) writeOAMDATA(data byte) {
	p.oam[p.oamIndex()] = data
	p.oamAddress = (p.oamAddress + 1) & 0x3FF
}

// readOAMDATA reads OAMDATAREAD ($2138).
func (p *PPU) readOAMDATA() byte {
	data := p.oam[p.oamIndex()]
	p.oamAddress = (p.oamAddress + 1) & 0x3FF
	return data
}

// writeCGADD writes CGADD ($2121), a word address.
func (p *PPU) writeCGADD(data byte) {
	p.cgAddress = uint16(data) << 1
}

// writeCGDATA writes CGDATA ($2122).
func (p *PPU) writeCGDATA(data byte) {
	p.cgram[p.cgAddress&(bus.CGRAMSize-1)] = data
	p.cgAddress = (p.cgAddress + 1) & (bus.CGRAMSize - 1)
}

// readCGDATA reads CGDATAREAD ($213B).
func (p *PPU) readCGDATA() byte {
	data := p.cgram[p.cgAddress&(bus.CGRAMSize-1)]
	p.cgAddress = (p.cgAddress + 1) & (bus.CGRAMSize - 1)
	return data
}

// readRegister reads a PPU register, data ports advance their address.
func (p *PPU) readRegister(address uint16) byte {
	switch address {
	case 0x2138:
		return p.readOAMDATA()
	case 0x2139:
		return p.vramPort.readData(false)
	case 0x213A:
		return p.vramPort.readData(true)
	case 0x213B:
		return p.readCGDATA()
	}
	glog.V(2).Infof("Unimplemented PPU register read: address=0x%04x", address)
	return 0
}

// peekRegister returns what readRegister would, leaving the PPU untouched.
func (p *PPU) peekRegister(address uint16) byte {
	switch address {
	case 0x2138:
		return p.oam[p.oamIndex()]
	case 0x2139:
		return p.vramPort.peekData(false)
	case 0x213A:
		return p.vramPort.peekData(true)
	case 0x213B:
		return p.cgram[p.cgAddress&(bus.CGRAMSize-1)]
	}
	return 0
}

// writeRegister writes a PPU register.
func (p *PPU) writeRegister(address uint16, data byte) {
	switch address {
	case 0x2102:
		p.writeOAMADD(false, data)
	case 0x2103:
		p.writeOAMADD(true, data)
	case 0x2104:
		p.writeOAMDATA(data)
	case 0x2115:
		p.vramPort.writeVMAIN(data)
	case 0x2116:
		p.vramPort.writeVMADD(false, data)
	case 0x2117:
		p.vramPort.writeVMADD(true, data)
	case 0x2118:
		p.vramPort.writeData(false, data)
	case 0x2119:
		p.vramPort.writeData(true, data)
	case 0x2121:
		p.writeCGADD(data)
	case 0x2122:
		p.writeCGDATA(data)
	default:
		glog.V(2).Infof("Unimplemented PPU register write: address=0x%04x, data=0x%02x", address, data)
	}
}
