package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jyane/jsnes/memdump"
)

// debugConsole is a memory console driven through a reader, one command per line.
// commands:
//
//	p REGION ADDR [LEN]:
//	  print bytes, without side effects.
//	pl REGION ADDR [LEN]:
//	  print bytes through the live read path.
//	w REGION ADDR BYTES...:
//	  write bytes.
//	s:
//	  print the size of every region.
//	d REGION FILE:
//	  dump a region to a file.
//	l REGION FILE:
//	  load a file into a region.
//	r:
//	  reset the memory ports.
//	q:
//	  quit.
type debugConsole struct {
	*session
	in *bufio.Reader
}

func newDebugConsole(s *session, in io.Reader) *debugConsole {
	return &debugConsole{s, bufio.NewReader(in)}
}

const defaultPrintLength = 64

func (c *debugConsole) printCommand(args []string, mode memdump.AccessMode) error {
	if len(args) < 3 {
		return fmt.Errorf("Usage: %s REGION ADDR [LEN]", args[0])
	}
	r, err := memdump.ParseRegion(args[1])
	if err != nil {
		return err
	}
	address, err := memdump.ParseAddress(args[2])
	if err != nil {
		return err
	}
	length := defaultPrintLength
	if len(args) > 3 {
		length, err = strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("Invalid length %q", args[3])
		}
	}
	return c.peek(r, address, length, 16, mode)
}

func (c *debugConsole) writeCommand(args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("Usage: w REGION ADDR BYTES...")
	}
	r, err := memdump.ParseRegion(args[1])
	if err != nil {
		return err
	}
	address, err := memdump.ParseAddress(args[2])
	if err != nil {
		return err
	}
	data, err := memdump.ParseBytes(args[3:])
	if err != nil {
		return err
	}
	c.dumper.WriteValues(r, address, data)
	return nil
}

func (c *debugConsole) fileCommand(args []string, f func(memdump.Region, string) error) error {
	if len(args) != 3 {
		return fmt.Errorf("Usage: %s REGION FILE", args[0])
	}
	r, err := memdump.ParseRegion(args[1])
	if err != nil {
		return err
	}
	return f(r, args[2])
}

// step runs one command line, it returns false once the console should stop.
func (c *debugConsole) step(line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return true, nil
	}
	switch args[0] {
	case "p", "print":
		return true, c.printCommand(args, memdump.Inspect)
	case "pl", "printlive":
		return true, c.printCommand(args, memdump.Live)
	case "w", "write":
		return true, c.writeCommand(args)
	case "s", "size":
		c.printSizes()
	case "d", "dump":
		return true, c.fileCommand(args, c.dumpTo)
	case "l", "load":
		return true, c.fileCommand(args, c.loadFrom)
	case "r", "reset":
		c.console.Reset()
	case "q", "quit":
		fmt.Fprintln(c.out, "Quitting.")
		return false, nil
	default:
		return true, fmt.Errorf("Unknown command %s", args[0])
	}
	return true, nil
}

// Run reads commands until quit or the end of the input. Command errors are
// printed and the console carries on.
func (c *debugConsole) Run() error {
	for {
		fmt.Fprint(c.out, ">> ")
		line, err := c.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		cont, cerr := c.step(line)
		if cerr != nil {
			fmt.Fprintln(c.out, cerr)
		}
		if !cont || err == io.EOF {
			return nil
		}
	}
}
