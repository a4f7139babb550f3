package memdump

import (
	"fmt"
	"strings"
)

// Region identifies one of the memories a Dumper can reach.
type Region int

const (
	CPUMemory Region = iota // the 24-bit address space as seen by the CPU
	PRGROM
	WorkRAM
	SaveRAM
	VideoRAM
	SpriteRAM
	CGRAM
)

// Regions lists every region in declaration order.
var Regions = []Region{CPUMemory, PRGROM, WorkRAM, SaveRAM, VideoRAM, SpriteRAM, CGRAM}

var regionNames = map[Region]string{
	CPUMemory: "cpu",
	PRGROM:    "prgrom",
	WorkRAM:   "wram",
	SaveRAM:   "sram",
	VideoRAM:  "vram",
	SpriteRAM: "oam",
	CGRAM:     "cgram",
}

var regionAliases = map[string]Region{
	"rom":       PRGROM,
	"workram":   WorkRAM,
	"saveram":   SaveRAM,
	"videoram":  VideoRAM,
	"spriteram": SpriteRAM,
	"palette":   CGRAM,
}

func (r Region) String() string {
	if s, ok := regionNames[r]; ok {
		return s
	}
	return fmt.Sprintf("region(%d)", int(r))
}

// ParseRegion returns the region named s. Matching is case insensitive and
// accepts a few longer aliases such as "palette" or "spriteram".
func ParseRegion(s string) (Region, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for r, n := range regionNames {
		if n == name {
			return r, nil
		}
	}
	if r, ok := regionAliases[name]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("Unknown memory region: %q", s)
}

// AccessMode selects between pure inspection and the live access path.
type AccessMode int

const (
	// Inspect never triggers memory-mapped side effects.
	Inspect AccessMode = iota
	// Live goes through the same path the CPU uses.
	Live
)

func (m AccessMode) String() string {
	if m == Live {
		return "live"
	}
	return "inspect"
}

// policy is the rule turning a requested address into a buffer index.
type policy int

const (
	bounded policy = iota
	masked         // address & (size-1), size is a power of two
	modulo         // address % size
	logical        // delegated to the interconnect
)

func (r Region) policy() policy {
	switch r {
	case CPUMemory:
		return logical
	case VideoRAM, CGRAM:
		return masked
	case SpriteRAM:
		return modulo
	default:
		return bounded
	}
}
