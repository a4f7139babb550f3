package snes

import "testing"

func TestPPUOAMHighTable(t *testing.T) {
	p := NewPPU()
	p.writeRegister(0x2102, 0x00)
	p.writeRegister(0x2103, 0x01)
	for i := 0; i < 33; i++ {
		p.writeRegister(0x2104, byte(i+1))
	}
	if got := p.SpriteRAM()[0x21F]; got != 32 {
		t.Errorf("oam[0x21f]: got=%d, want=32", got)
	}
	// 33rd byte wraps inside the 32 bytes table
	if got := p.SpriteRAM()[0x200]; got != 33 {
		t.Errorf("oam[0x200]: got=%d, want=33", got)
	}
	for i, b := range p.SpriteRAM()[:0x200] {
		if b != 0 {
			t.Fatalf("oam[0x%x]: got=%d, want=0", i, b)
		}
	}

	p.writeRegister(0x2102, 0x01)
	p.writeRegister(0x2103, 0x00)
	p.SpriteRAM()[2] = 0x77
	if got := p.peekRegister(0x2138); got != 0x77 {
		t.Errorf("peek($2138): got=0x%02x, want=0x77", got)
	}
	if got := p.readRegister(0x2138); got != 0x77 {
		t.Errorf("read($2138): got=0x%02x, want=0x77", got)
	}
	if p.oamAddress != 3 {
		t.Errorf("oamAddress: got=%d, want=3", p.oamAddress)
	}
}

func TestPPUCGRAMWraps(t *testing.T) {
	p := NewPPU()
	p.writeRegister(0x2121, 0xFF)
	for _, v := range []byte{0xA1, 0xA2, 0xA3} {
		p.writeRegister(0x2122, v)
	}
	cg := p.CGRAM()
	if cg[0x1FE] != 0xA1 || cg[0x1FF] != 0xA2 || cg[0] != 0xA3 {
		t.Errorf("cgram: got=[0x1fe]=0x%02x [0x1ff]=0x%02x [0]=0x%02x, want=0xa1 0xa2 0xa3", cg[0x1FE], cg[0x1FF], cg[0])
	}
	p.writeRegister(0x2121, 0xFF)
	if got := p.readRegister(0x213B); got != 0xA1 {
		t.Errorf("read($213B): got=0x%02x, want=0xa1", got)
	}
	if got := p.peekRegister(0x213B); got != 0xA2 {
		t.Errorf("peek($213B): got=0x%02x, want=0xa2", got)
	}
}

func TestPPUVRAMStep(t *testing.T) {
	tests := []struct {
		vmain byte
		want  uint16
	}{
		{0x80, 1},
		{0x81, 32},
		{0x82, 128},
		{0x83, 128},
	}
	for _, tc := range tests {
		p := NewPPU()
		p.writeRegister(0x2115, tc.vmain)
		p.writeRegister(0x2116, 0)
		p.writeRegister(0x2117, 0)
		p.writeRegister(0x2118, 1)
		if p.vramPort.address != 0 {
			t.Errorf("VMAIN=0x%02x: address after low byte: got=%d, want=0", tc.vmain, p.vramPort.address)
		}
		p.writeRegister(0x2119, 2)
		if p.vramPort.address != tc.want {
			t.Errorf("VMAIN=0x%02x: address: got=%d, want=%d", tc.vmain, p.vramPort.address, tc.want)
		}
	}
}

func TestPPUVRAMAddressWraps(t *testing.T) {
	p := NewPPU()
	p.writeRegister(0x2115, 0x00)
	p.writeRegister(0x2116, 0xFF)
	p.writeRegister(0x2117, 0xFF)
	p.writeRegister(0x2118, 0x12)
	p.writeRegister(0x2118, 0x34)
	if got := p.VideoRAM()[0xFFFE]; got != 0x12 {
		t.Errorf("vram[0xfffe]: got=0x%02x, want=0x12", got)
	}
	if got := p.VideoRAM()[0]; got != 0x34 {
		t.Errorf("vram[0]: got=0x%02x, want=0x34", got)
	}
}

func TestPPUReset(t *testing.T) {
	p := NewPPU()
	p.writeRegister(0x2121, 0x10)
	p.writeRegister(0x2116, 0x10)
	p.VideoRAM()[5] = 9
	p.Reset()
	if p.cgAddress != 0 || p.vramPort.address != 0 || p.vramPort.step != 1 {
		t.Errorf("Reset: got cg=0x%x vram=0x%x step=%d", p.cgAddress, p.vramPort.address, p.vramPort.step)
	}
	if p.VideoRAM()[5] != 9 {
		t.Error("Reset cleared VRAM")
	}
}
