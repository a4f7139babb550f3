package snes

import "github.com/jyane/jsnes/bus"

// vram increment steps selected by VMAIN bits 0-1, in words.
var vramSteps = []uint16{1, 32, 128, 128}

// vramPort is the VMADD/VMDATA pair giving the CPU access to VRAM.
//
// VRAM is addressed in 16bit words, the low byte of word w is at 2w.
// Reads go through a one word latch filled when VMADD is written or when the
// address is incremented after a read.
// Reference: https://snes.nesdev.org/wiki/PPU_registers#VMAIN
type vramPort struct {
	vram *[bus.VideoRAMSize]byte

	// word address, $2116/$2117
	address uint16
	// increment after accessing the high byte ($2119/$213A) rather than the low one
	incrementOnHigh bool
	step            uint16
	latch           uint16
}

func (v *vramPort) reset() {
	v.address = 0
	v.incrementOnHigh = false
	v.step = 1
	v.latch = 0
}

func (v *vramPort) word(address uint16) uint16 {
	i := (uint32(address) << 1) & (bus.VideoRAMSize - 1)
	return uint16(v.vram[i]) | uint16(v.vram[i+1])<<8
}

func (v *vramPort) prefetch() {
	v.latch = v.word(v.address)
}

// writeVMAIN writes VMAIN ($2115).
func (v *vramPort) writeVMAIN(data byte) {
	v.incrementOnHigh = data&0x80 != 0
	v.step = vramSteps[data&3]
}

// writeVMADD writes VMADDL ($2116) or VMADDH ($2117).
func (v *vramPort) writeVMADD(high bool, data byte) {
	if high {
		v.address = v.address&0x00FF | uint16(data)<<8
	} else {
		v.address = v.address&0xFF00 | uint16(data)
	}
	v.prefetch()
}

// writeData writes VMDATAL ($2118) or VMDATAH ($2119).
func (v *vramPort) writeData(high bool, data byte) {
	i := (uint32(v.address) << 1) & (bus.VideoRAMSize - 1)
	if high {
		i++
	}
	v.vram[i] = data
	if high == v.incrementOnHigh {
		v.address += v.step
	}
}

// readData reads VMDATALREAD ($2139) or VMDATAHREAD ($213A). The value comes
// from the latch, which is refilled before the address moves on.
func (v *vramPort) readData(high bool) byte {
	data := v.peekData(high)
	if high == v.incrementOnHigh {
		v.prefetch()
		v.address += v.step
	}
	return data
}

func (v *vramPort) peekData(high bool) byte {
	if high {
		return byte(v.latch >> 8)
	}
	return byte(v.latch)
}
