package snes

// newTestImage builds a ROM image with a valid internal header. Every byte
// outside the header holds the low byte of its bank number.
func newTestImage(mode MapMode, size int, sramShift byte, title string) []byte {
	data := make([]byte, size)
	bankSize := 0x8000
	if mode == HiROM {
		bankSize = 0x10000
	}
	for i := range data {
		data[i] = byte(i / bankSize)
	}
	offset := loROMHeader
	if mode == HiROM {
		offset = hiROMHeader
	}
	h := data[offset : offset+0x20]
	for i := range h[:headerTitleSize] {
		h[i] = ' '
	}
	copy(h[headerTitle:], title)
	h[headerMapMode] = 0x20 | byte(mode)
	h[headerRAMSize] = sramShift
	h[headerComplement], h[headerComplement+1] = 0xCB, 0xED
	h[headerChecksum], h[headerChecksum+1] = 0x34, 0x12
	return data
}

func newTestConsole(mode MapMode, size int, sramShift byte) *Console {
	c, err := NewConsole(newTestImage(mode, size, sramShift, "TEST"))
	if err != nil {
		panic(err)
	}
	return c
}
