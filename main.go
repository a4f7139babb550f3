package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/golang/glog"

	"github.com/jyane/jsnes/memdump"
	"github.com/jyane/jsnes/snes"
)

type cliArgs struct {
	ROM         string `short:"r" required:"" type:"existingfile" help:"Path to SNES ROM image."`
	SRAM        string `name:"sram" type:"existingfile" help:"Battery save file loaded into save RAM."`
	Verbosity   int    `short:"v" default:"0" help:"Log verbosity, 2 traces unmapped bus accesses."`
	LogToStderr bool   `name:"logtostderr" default:"true" negatable:"" help:"Log to stderr instead of files."`

	Info  infoCmd  `cmd:"" default:"1" help:"Show the cartridge and the size of every region."`
	Peek  peekCmd  `cmd:"" help:"Print part of a region as hex rows."`
	Dump  dumpCmd  `cmd:"" help:"Write a whole region to a file."`
	Patch patchCmd `cmd:"" help:"Write bytes into a region, then save the region to a file."`
	Shell shellCmd `cmd:"" help:"Interactive memory console on stdin."`
}

type infoCmd struct{}

type peekCmd struct {
	Region  string `arg:"" help:"Region: cpu, prgrom, wram, sram, vram, oam or cgram."`
	Address string `arg:"" help:"Start address (hex: 7E0000, $7E0000, 0x7E0000, 7E:0000)."`
	Length  int    `short:"n" default:"256" help:"Number of bytes."`
	Columns int    `short:"c" default:"16" help:"Bytes per row."`
	Live    bool   `help:"Use the live read path, reading a register may change the hardware state."`
}

type dumpCmd struct {
	Region string `arg:"" help:"Region: cpu, prgrom, wram, sram, vram, oam or cgram."`
	Out    string `short:"o" required:"" type:"path" help:"Output file."`
}

type patchCmd struct {
	Region  string   `arg:"" help:"Region: cpu, prgrom, wram, sram, vram, oam or cgram."`
	Address string   `arg:"" help:"Start address (hex)."`
	Bytes   []string `arg:"" help:"Hex bytes to write."`
	Out     string   `short:"o" required:"" type:"path" help:"Output file for the patched region."`
}

type shellCmd struct{}

// session is what every command works on.
type session struct {
	console *snes.Console
	dumper  *memdump.Dumper
	out     io.Writer
}

func newSession(console *snes.Console, out io.Writer) *session {
	return &session{
		console: console,
		dumper:  memdump.New(console.Bus, console.Cartridge, console.WRAM, console.PPU),
		out:     out,
	}
}

func (s *session) printInfo() {
	cart := s.console.Cartridge
	fmt.Fprintf(s.out, "Title:        %s\n", cart.Title())
	fmt.Fprintf(s.out, "Map mode:     %s\n", cart.MapMode())
	fmt.Fprintf(s.out, "Reset vector: $%04X\n", s.console.ResetVector())
	s.printSizes()
}

func (s *session) printSizes() {
	for _, r := range memdump.Regions {
		fmt.Fprintf(s.out, "%-8s 0x%06X\n", r, s.dumper.SizeOf(r))
	}
}

// peek prints length bytes of r from address. The length is cut down to what
// is left of the region.
func (s *session) peek(r memdump.Region, address uint32, length int, columns int, mode memdump.AccessMode) error {
	size := s.dumper.SizeOf(r)
	if uint64(address) >= uint64(size) {
		return fmt.Errorf("Address 0x%06X is outside of %s (%d bytes)", address, r, size)
	}
	if length <= 0 {
		return nil
	}
	if left := size - int(address); length > left {
		length = left
	}
	data := make([]byte, length)
	for i := range data {
		data[i] = s.dumper.ReadValue(r, address+uint32(i), mode)
	}
	fmt.Fprintln(s.out, memdump.FormatRows(address, data, columns))
	return nil
}

func (s *session) dumpTo(r memdump.Region, path string) error {
	if err := os.WriteFile(path, s.dumper.Dump(r), 0o644); err != nil {
		return fmt.Errorf("Failed to write %s: %w", path, err)
	}
	glog.Infof("Wrote %s (%d bytes) to %s", r, s.dumper.SizeOf(r), path)
	return nil
}

func (s *session) loadFrom(r memdump.Region, path string) error {
	buf, err := readFile(path)
	if err != nil {
		return fmt.Errorf("Failed to read %s: %w", path, err)
	}
	if !s.dumper.LoadAll(r, buf) {
		return fmt.Errorf("Failed to load %s: %d bytes do not fit in %s (%d bytes)", path, len(buf), r, s.dumper.SizeOf(r))
	}
	glog.Infof("Loaded %s (%d bytes) into %s", path, len(buf), r)
	return nil
}

func (c *infoCmd) Run(s *session) error {
	s.printInfo()
	return nil
}

func (c *peekCmd) Run(s *session) error {
	r, err := memdump.ParseRegion(c.Region)
	if err != nil {
		return err
	}
	address, err := memdump.ParseAddress(c.Address)
	if err != nil {
		return err
	}
	mode := memdump.Inspect
	if c.Live {
		mode = memdump.Live
	}
	return s.peek(r, address, c.Length, c.Columns, mode)
}

func (c *dumpCmd) Run(s *session) error {
	r, err := memdump.ParseRegion(c.Region)
	if err != nil {
		return err
	}
	return s.dumpTo(r, c.Out)
}

func (c *patchCmd) Run(s *session) error {
	r, err := memdump.ParseRegion(c.Region)
	if err != nil {
		return err
	}
	address, err := memdump.ParseAddress(c.Address)
	if err != nil {
		return err
	}
	data, err := memdump.ParseBytes(c.Bytes)
	if err != nil {
		return err
	}
	s.dumper.WriteValues(r, address, data)
	return s.dumpTo(r, c.Out)
}

func (c *shellCmd) Run(s *session) error {
	return newDebugConsole(s, os.Stdin).Run()
}

// readFile reads file as bytes
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// setupLogging hands the logging options over to glog, which reads them from
// the standard flag set.
func setupLogging(verbosity int, toStderr bool) {
	if err := flag.Set("v", strconv.Itoa(verbosity)); err != nil {
		glog.Warningf("Failed to set log verbosity: %v", err)
	}
	if err := flag.Set("logtostderr", strconv.FormatBool(toStderr)); err != nil {
		glog.Warningf("Failed to set logtostderr: %v", err)
	}
	if err := flag.CommandLine.Parse(nil); err != nil {
		glog.Warningf("Failed to parse log flags: %v", err)
	}
}

func main() {
	var args cliArgs
	ctx := kong.Parse(&args,
		kong.Name("jsnes"),
		kong.Description("Inspect and patch the memories of a SNES cartridge."),
		kong.UsageOnError(),
	)
	setupLogging(args.Verbosity, args.LogToStderr)
	defer glog.Flush()

	buf, err := readFile(args.ROM)
	if err != nil {
		glog.Fatalln("Failed to read: " + args.ROM)
	}
	console, err := snes.NewConsole(buf)
	if err != nil {
		glog.Fatalln("Failed to initiate Console: ", err)
	}
	s := newSession(console, os.Stdout)
	if args.SRAM != "" {
		if err := s.loadFrom(memdump.SaveRAM, args.SRAM); err != nil {
			glog.Fatalln(err)
		}
	}
	if err := ctx.Run(s); err != nil {
		glog.Errorln(err)
		glog.Flush()
		os.Exit(1)
	}
}
