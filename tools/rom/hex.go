package rom

import (
	"fmt"
	"io"
)

// hexWriter emits Intel HEX (INHX32) records, the format expected by the
// usual flash programmers and simulators.
type hexWriter struct {
	w     io.Writer
	upper uint32 // upper 16 address bits of the last extended record
	begun bool
}

func (h *hexWriter) record(typ byte, addr uint16, data []byte) error {
	sum := byte(len(data)) + byte(addr>>8) + byte(addr) + typ
	if _, err := fmt.Fprintf(h.w, ":%02X%04X%02X", len(data), addr, typ); err != nil {
		return err
	}
	for _, b := range data {
		sum += b
		if _, err := fmt.Fprintf(h.w, "%02X", b); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(h.w, "%02X\n", byte(-sum))
	return err
}

// write emits p as data records at the given byte address, splitting records
// at 16 bytes and 64K boundaries.
func (h *hexWriter) write(addr uint32, p []byte) error {
	for len(p) > 0 {
		if upper := addr >> 16; upper != h.upper || !h.begun {
			ext := []byte{byte(upper >> 8), byte(upper)}
			if err := h.record(4, 0, ext); err != nil {
				return err
			}
			h.upper = upper
			h.begun = true
		}

		n := 16 - int(addr&0xf)
		if n > len(p) {
			n = len(p)
		}
		if left := int(0x10000 - addr&0xffff); n > left {
			n = left
		}
		if err := h.record(0, uint16(addr), p[:n]); err != nil {
			return err
		}
		addr += uint32(n)
		p = p[n:]
	}
	return nil
}

func (h *hexWriter) eof() error {
	return h.record(1, 0, nil)
}
