package snes

import (
	"github.com/golang/glog"

	"github.com/jyane/jsnes/bus"
)

// AccessHook is told about every live access going through the CPU bus.
type AccessHook func(op bus.Operation, address uint32, data byte)

type CPUBus struct {
	wram       *RAM
	ppu        *PPU
	cartridge  *Cartridge
	controller *Controller

	// WMADD ($2181-$2183), the 17bit WRAM address used by WMDATA ($2180)
	wramPort uint32

	hook AccessHook
}

// NewCPUBus creates a new Bus for CPU.
// CPU memory map, banks $00-$3F and $80-$BF
// 0x0000 - 0x1FFF	WRAM (first 8KiB)
// 0x2100 - 0x213F	PPU Registers
// 0x2180 - 0x2183	WRAM port
// 0x4016		Joypad serial port
// 0x4218 - 0x4219	Joypad auto-read
// 0x6000 - 0xFFFF	Cartridge
// Banks $7E-$7F are the 128KiB of WRAM, any other bank belongs to the cartridge.
// Reference: https://snes.nesdev.org/wiki/Memory_map
func NewCPUBus(wram *RAM, ppu *PPU, cartridge *Cartridge, controller *Controller) *CPUBus {
	return &CPUBus{wram: wram, ppu: ppu, cartridge: cartridge, controller: controller}
}

// SetAccessHook installs f to observe live reads and writes, nil removes it.
func (b *CPUBus) SetAccessHook(f AccessHook) {
	b.hook = f
}

func (b *CPUBus) notify(op bus.Operation, address uint32, data byte) {
	if b.hook != nil {
		b.hook(op, address, data)
	}
}

func isSystemBank(bank uint32) bool {
	return bank&0x7F < 0x40
}

// read decodes address. peek selects the side effect free path.
func (b *CPUBus) read(address uint32, peek bool) byte {
	address &= bus.CPUAddressSpace - 1
	bank := address >> 16
	offset := uint16(address)
	switch {
	case bank == 0x7E || bank == 0x7F:
		return b.wram.read(address - 0x7E0000)
	case !isSystemBank(bank):
		data, _ := b.cartridge.mapper.ReadFromCPU(address)
		return data
	case offset < 0x2000:
		return b.wram.read(uint32(offset))
	case 0x2100 <= offset && offset < 0x2140:
		if peek {
			return b.ppu.peekRegister(offset)
		}
		return b.ppu.readRegister(offset)
	case offset == 0x2180:
		data := b.wram.read(b.wramPort)
		if !peek {
			b.wramPort = (b.wramPort + 1) % bus.WorkRAMSize
		}
		return data
	case offset == 0x4016:
		if peek {
			return b.controller.peek()
		}
		return b.controller.read()
	case offset == 0x4218 || offset == 0x4219:
		return b.controller.readAuto(offset == 0x4219)
	case offset >= 0x6000:
		if data, ok := b.cartridge.mapper.ReadFromCPU(address); ok {
			return data
		}
	}
	if !peek {
		glog.V(2).Infof("Open bus read: address=0x%06x", address)
	}
	return 0
}

// Inspect reads a byte without any side effect, for debuggers.
func (b *CPUBus) Inspect(address uint32) byte {
	return b.read(address, true)
}

// Read reads a byte the way the CPU does.
func (b *CPUBus) Read(address uint32) byte {
	data := b.read(address, false)
	b.notify(bus.OpRead, address, data)
	return data
}

// inspect16 reads 2 bytes without side effects, the second from the next
// address in the same bank.
func (b *CPUBus) inspect16(address uint32) uint16 {
	l := b.Inspect(address)
	h := b.Inspect(address&0xFF0000 | uint32(uint16(address)+1))
	return uint16(h)<<8 | uint16(l)
}

func (b *CPUBus) writeWRAMPort(offset uint16, data byte) {
	switch offset {
	case 0x2180:
		b.wram.write(b.wramPort, data)
		b.wramPort = (b.wramPort + 1) % bus.WorkRAMSize
	case 0x2181:
		b.wramPort = b.wramPort&0x1FF00 | uint32(data)
	case 0x2182:
		b.wramPort = b.wramPort&0x100FF | uint32(data)<<8
	case 0x2183:
		b.wramPort = b.wramPort&0x0FFFF | uint32(data&1)<<16
	}
}

// Write writes a byte. op tells who is writing, it is passed on to the access hook.
func (b *CPUBus) Write(address uint32, data byte, op bus.Operation) {
	address &= bus.CPUAddressSpace - 1
	b.notify(op, address, data)
	bank := address >> 16
	offset := uint16(address)
	switch {
	case bank == 0x7E || bank == 0x7F:
		b.wram.write(address-0x7E0000, data)
	case !isSystemBank(bank):
		b.cartridge.mapper.WriteFromCPU(address, data)
	case offset < 0x2000:
		b.wram.write(uint32(offset), data)
	case 0x2100 <= offset && offset < 0x2140:
		b.ppu.writeRegister(offset, data)
	case 0x2180 <= offset && offset < 0x2184:
		b.writeWRAMPort(offset, data)
	case offset == 0x4016:
		b.controller.write(data)
	case offset >= 0x6000:
		b.cartridge.mapper.WriteFromCPU(address, data)
	default:
		glog.V(2).Infof("Unimplemented CPU bus write: address=0x%06x, data=0x%02x", address, data)
	}
}
