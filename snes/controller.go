package snes

// Reference:
//
//	https://snes.nesdev.org/wiki/Controller_connector
//	https://problemkaputt.de/fullsnes.htm#snescontrollersjoypadsinputs

type button int

// Buttons in the order the joypad shifts them out.
const (
	ButtonB button = iota
	ButtonY
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA
	ButtonX
	ButtonL
	ButtonR
)

type Controller struct {
	buttons [12]bool
	index   byte
	strobe  byte
}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) Set(buttons [12]bool) {
	c.buttons = buttons
}

// state packs the buttons the way the auto-read registers show them, B in bit 15.
func (c *Controller) state() uint16 {
	var s uint16
	for i, pressed := range c.buttons {
		if pressed {
			s |= 0x8000 >> i
		}
	}
	return s
}

// bit returns the serial bit at index. After the 12 buttons come 4 zero bits
// (the pad signature), then ones.
func (c *Controller) bit(index byte) byte {
	switch {
	case index < 12:
		if c.buttons[index] {
			return 1
		}
		return 0
	case index < 16:
		return 0
	default:
		return 1
	}
}

// read reads JOYSER0 ($4016), each read shifts to the next button.
func (c *Controller) read() byte {
	ret := c.bit(c.index)
	if c.strobe&1 == 1 {
		c.index = 0
	} else if c.index < 16 {
		c.index++
	}
	return ret
}

// peek returns what read would without shifting.
func (c *Controller) peek() byte {
	if c.strobe&1 == 1 {
		return c.bit(0)
	}
	return c.bit(c.index)
}

// write writes the latch.
// - latch on: the pad keeps reporting button B
// - latch off: reads cycle through the buttons
func (c *Controller) write(data byte) {
	c.strobe = data
	if c.strobe&1 == 1 {
		c.index = 0
	}
}

// readAuto reads JOY1L ($4218) or JOY1H ($4219).
func (c *Controller) readAuto(high bool) byte {
	if high {
		return byte(c.state() >> 8)
	}
	return byte(c.state())
}
