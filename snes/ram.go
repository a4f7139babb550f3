package snes

import "github.com/jyane/jsnes/bus"

// RAM is the 128KiB work RAM of the console.
type RAM struct {
	data [bus.WorkRAMSize]byte
}

// NewRAM creates a work RAM.
func NewRAM() *RAM {
	return &RAM{}
}

// read reads data, address wraps at 128KiB.
func (r *RAM) read(address uint32) byte {
	return r.data[address%bus.WorkRAMSize]
}

// write writes data
func (r *RAM) write(address uint32, x byte) {
	r.data[address%bus.WorkRAMSize] = x
}

// WorkRAM gives direct access to the RAM, for debuggers.
func (r *RAM) WorkRAM() []byte {
	return r.data[:]
}
