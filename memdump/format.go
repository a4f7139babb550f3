package memdump

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatRows renders data as hex rows. Each row starts with the address of its
// first byte, computed from base, and ends with the printable ASCII bytes.
func FormatRows(base uint32, data []uint8, columns int) string {
	if columns <= 0 {
		columns = 16
	}
	lines := make([]string, 0, len(data)/columns+1)
	for offset := 0; offset < len(data); offset += columns {
		end := offset + columns
		if end > len(data) {
			end = len(data)
		}
		chunk := data[offset:end]
		hex := make([]string, len(chunk))
		for i, b := range chunk {
			hex[i] = fmt.Sprintf("%02X", b)
		}
		hexText := strings.Join(hex, " ")
		if w := columns*3 - 1; len(hexText) < w {
			hexText += strings.Repeat(" ", w-len(hexText))
		}
		var ascii strings.Builder
		for _, b := range chunk {
			if b >= 32 && b <= 126 {
				ascii.WriteByte(b)
			} else {
				ascii.WriteByte('.')
			}
		}
		lines = append(lines, fmt.Sprintf("%06X:  %s  %s", base+uint32(offset), hexText, ascii.String()))
	}
	return strings.Join(lines, "\n")
}

func trimHex(value string) string {
	text := strings.TrimSpace(strings.ToLower(value))
	text = strings.TrimPrefix(text, "$")
	return strings.TrimPrefix(text, "0x")
}

// ParseAddress parses a hexadecimal address. "$7E0010", "0x7e0010" and the
// bank form "7E:0010" are all accepted. In the bank form the bank is at most
// $FF and the offset at most $FFFF, "7E:10" is $7E0010.
func ParseAddress(value string) (uint32, error) {
	text := trimHex(value)
	bank, offset, banked := strings.Cut(text, ":")
	if !banked {
		v, err := strconv.ParseUint(text, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("Invalid address %q: %w", value, err)
		}
		return uint32(v), nil
	}
	b, err := strconv.ParseUint(bank, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("Invalid bank in address %q: %w", value, err)
	}
	o, err := strconv.ParseUint(offset, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("Invalid offset in address %q: %w", value, err)
	}
	return uint32(b)<<16 | uint32(o), nil
}

// ParseBytes parses hexadecimal byte values, one per token.
func ParseBytes(tokens []string) ([]uint8, error) {
	out := make([]uint8, 0, len(tokens))
	for _, token := range tokens {
		v, err := strconv.ParseUint(trimHex(token), 16, 8)
		if err != nil {
			return nil, fmt.Errorf("Invalid hex byte %q: %w", token, err)
		}
		out = append(out, uint8(v))
	}
	return out, nil
}
