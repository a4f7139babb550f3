// Package memdump gives debugging tools a single way to read, write, dump and
// load every memory of the console, whichever part of the hardware owns it.
package memdump

import (
	"github.com/golang/glog"

	"github.com/jyane/jsnes/bus"
)

// Dumper routes memory accesses to the collaborator owning each region. It
// borrows the collaborators and keeps no state of its own.
//
// A Dumper is not synchronised with the emulation. The buffers it reads and
// writes are the ones the running console mutates, so a caller needing a
// consistent snapshot must pause the emulation before calling DumpAll or
// LoadAll. Single byte accesses are only as atomic as the byte store itself.
type Dumper struct {
	bus   bus.Interconnect
	cart  bus.CartridgeMemory
	wram  bus.WorkMemory
	video bus.VideoMemory
}

// New creates a Dumper over the given collaborators.
func New(interconnect bus.Interconnect, cart bus.CartridgeMemory, wram bus.WorkMemory, video bus.VideoMemory) *Dumper {
	return &Dumper{bus: interconnect, cart: cart, wram: wram, video: video}
}

// SizeOf returns the current size of region r in bytes. Cartridge sizes are
// asked to the cartridge every time since they change with the loaded title.
func (d *Dumper) SizeOf(r Region) int {
	switch r {
	case CPUMemory:
		return bus.CPUAddressSpace
	case PRGROM:
		return d.cart.PRGROMSize()
	case WorkRAM:
		return bus.WorkRAMSize
	case SaveRAM:
		return d.cart.SaveRAMSize()
	case VideoRAM:
		return bus.VideoRAMSize
	case SpriteRAM:
		return bus.SpriteRAMSize
	case CGRAM:
		return bus.CGRAMSize
	}
	return 0
}

// buffer returns the backing store of a direct region, nil for CPUMemory.
func (d *Dumper) buffer(r Region) []uint8 {
	switch r {
	case PRGROM:
		return d.cart.PRGROM()
	case WorkRAM:
		return d.wram.WorkRAM()
	case SaveRAM:
		return d.cart.SaveRAM()
	case VideoRAM:
		return d.video.VideoRAM()
	case SpriteRAM:
		return d.video.SpriteRAM()
	case CGRAM:
		return d.video.CGRAM()
	}
	return nil
}

// EffectiveAddress returns the buffer index address resolves to in region r,
// following the mirroring of the region: VideoRAM and CGRAM are masked,
// SpriteRAM wraps with a modulo and the other direct regions do not wrap. ok
// is false when address resolves to nothing, which is always the case for
// CPUMemory since it has no buffer.
//
// ReadValue and WriteValue check address against SizeOf first, so mirrors past
// the end of a region are only visible through EffectiveAddress.
func (d *Dumper) EffectiveAddress(r Region, address uint32) (uint32, bool) {
	size := d.SizeOf(r)
	if size <= 0 {
		return 0, false
	}
	switch r.policy() {
	case masked:
		return address & uint32(size-1), true
	case modulo:
		return address % uint32(size), true
	case bounded:
		return address, uint64(address) < uint64(size)
	}
	return 0, false
}

// inRange reports whether address can be used with r. Out of range accesses
// are dropped silently by every operation.
func (d *Dumper) inRange(r Region, address uint32) bool {
	return uint64(address) < uint64(d.SizeOf(r))
}

// ReadValue returns the byte at address in region r, or 0 when address is out
// of range. The mode only matters for CPUMemory, direct regions never have
// side effects.
func (d *Dumper) ReadValue(r Region, address uint32, mode AccessMode) uint8 {
	if !d.inRange(r, address) {
		return 0
	}
	if r == CPUMemory {
		if mode == Live {
			return d.bus.Read(address)
		}
		return d.bus.Inspect(address)
	}
	i, ok := d.EffectiveAddress(r, address)
	buf := d.buffer(r)
	if !ok || int(i) >= len(buf) {
		return 0
	}
	return buf[i]
}

// WriteValue stores value at address in region r. Out of range writes are
// ignored. CPUMemory writes always take the full write path of the
// interconnect whatever the mode.
func (d *Dumper) WriteValue(r Region, address uint32, value uint8, mode AccessMode) {
	if !d.inRange(r, address) {
		glog.V(3).Infof("Dropped %s write: address=0x%06x, data=0x%02x", r, address, value)
		return
	}
	if r == CPUMemory {
		d.bus.Write(address, value, bus.OpWrite)
		return
	}
	i, ok := d.EffectiveAddress(r, address)
	buf := d.buffer(r)
	if !ok || int(i) >= len(buf) {
		return
	}
	buf[i] = value
}

// WriteValues writes data one byte at a time from start, so each byte gets
// its own bounds check and, for CPUMemory, its own trip through the bus.
func (d *Dumper) WriteValues(r Region, start uint32, data []uint8) {
	for i, v := range data {
		d.WriteValue(r, start+uint32(i), v, Inspect)
	}
}

// DumpAll copies the whole of region r into out and returns the number of
// bytes copied. CPUMemory is scanned address by address with Inspect. An out
// buffer too small for the region is left untouched and 0 is returned.
func (d *Dumper) DumpAll(r Region, out []uint8) int {
	size := d.SizeOf(r)
	if len(out) < size {
		glog.V(1).Infof("Rejected %s dump: buffer=%d bytes, region=%d bytes", r, len(out), size)
		return 0
	}
	if r == CPUMemory {
		for i := 0; i < size; i++ {
			out[i] = d.bus.Inspect(uint32(i))
		}
		return size
	}
	return copy(out[:size], d.buffer(r))
}

// Dump returns a copy of region r.
func (d *Dumper) Dump(r Region) []uint8 {
	out := make([]uint8, d.SizeOf(r))
	d.DumpAll(r, out)
	return out
}

// LoadAll copies in to the start of region r. Nothing is written and false is
// returned when in is larger than the region. An empty in always fits, even a
// region of size 0 such as a missing save RAM. Bulk loads into CPUMemory are
// not supported and are rejected the same way.
func (d *Dumper) LoadAll(r Region, in []uint8) bool {
	size := d.SizeOf(r)
	if len(in) > size {
		glog.V(1).Infof("Rejected %s load: %d bytes, region=%d bytes", r, len(in), size)
		return false
	}
	if r == CPUMemory {
		glog.Warningf("Bulk load into %s memory is not supported", r)
		return false
	}
	buf := d.buffer(r)
	if len(buf) < len(in) {
		return false
	}
	copy(buf, in)
	return true
}
