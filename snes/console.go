package snes

import "fmt"

// Console groups the parts of the machine that own memory.
type Console struct {
	Cartridge  *Cartridge
	WRAM       *RAM
	PPU        *PPU
	Controller *Controller
	Bus        *CPUBus
}

func NewConsole(buf []byte) (*Console, error) {
	cartridge, err := NewCartridge(buf)
	if err != nil {
		return nil, fmt.Errorf("Failed to load cartridge: %w", err)
	}
	wram := NewRAM()
	ppu := NewPPU()
	controller := NewController()
	return &Console{
		Cartridge:  cartridge,
		WRAM:       wram,
		PPU:        ppu,
		Controller: controller,
		Bus:        NewCPUBus(wram, ppu, cartridge, controller),
	}, nil
}

// ResetVector is where the CPU starts, read from $00FFFC in emulation mode.
func (c *Console) ResetVector() uint16 {
	return c.Bus.inspect16(0x00FFFC)
}

// Reset puts the memory ports back to their power on state.
func (c *Console) Reset() {
	c.PPU.Reset()
	c.Bus.wramPort = 0
	c.Controller.write(0)
}
