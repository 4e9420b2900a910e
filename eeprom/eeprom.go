// Package eeprom stores small records in the on-chip data EEPROM panel.
//
// Records are identified by a single byte id and written append-only, the
// last record with a given id wins. Each record carries a CRC-8 so that a
// write interrupted by power loss is detected and ignored on the next scan.
// No atomicity beyond that is promised.
package eeprom

import (
	"errors"
	"unsafe"

	"github.com/sigurn/crc8"
)

var (
	ErrFull     = errors.New("eeprom: panel full, erase first")
	ErrNotFound = errors.New("eeprom: no such record")
	ErrRecord   = errors.New("eeprom: invalid record")
)

var recCRC = crc8.MakeTable(crc8.CRC8_MAXIM)

const (
	erased  = 0xff
	hdrSize = 2 // id, length
	// Id, length and payload are covered by a trailing CRC-8, the whole
	// record padded to word size.
	MaxData = 64
)

// Store is the record view of the EEPROM panel.
type Store struct {
	panel []byte
}

// Open returns the store backed by the on-chip panel.
func Open() *Store {
	return &Store{unsafe.Slice((*byte)(unsafe.Pointer(panelAddr)), panelSize)}
}

// Get copies the latest record with the given id into dst and returns the
// record's full length, which exceeds len(dst) if the copy was truncated.
// Records whose checksum doesn't match are skipped.
func (s *Store) Get(id uint8, dst []byte) (int, error) {
	rec, ok := findRecord(s.panel, id)
	if !ok {
		return 0, ErrNotFound
	}
	copy(dst, rec)
	return len(rec), nil
}

// Put appends a record. Fails with ErrFull if the remaining panel space can't
// hold it, the caller decides whether to Erase and rewrite.
func (s *Store) Put(id uint8, data []byte) error {
	if id == erased || len(data) > MaxData {
		return ErrRecord
	}
	end := used(s.panel)
	rec := appendRecord(nil, id, data)
	if end+len(rec) > len(s.panel) {
		return ErrFull
	}
	return s.program(end, rec)
}

// Erase wipes the whole panel.
func (s *Store) Erase() error {
	for off := 0; off < panelSize; off += 2 * rowWords {
		regs.adr.Store(uint16(panelAddr) + uint16(off))
		regs.con.Store(conWREn | conErase | conOpEraseRow)
		start()
	}
	return nil
}

// program writes rec word-wise at byte offset off.
func (s *Store) program(off int, rec []byte) error {
	for i := 0; i < len(rec); i += 2 {
		regs.adr.Store(uint16(panelAddr) + uint16(off+i))
		regs.dat.Store(uint16(rec[i]) | uint16(rec[i+1])<<8)
		regs.con.Store(conWREn | conOpWriteWord)
		start()
		if regs.con.LoadBits(conWRErr) != 0 {
			return ErrRecord
		}
	}
	return nil
}

// start runs the unlock sequence and blocks until the operation finished.
func start() {
	regs.key.Store(0x55)
	regs.key.Store(0xaa)
	regs.con.SetBits(conWR)
	for regs.con.LoadBits(conWR) != 0 {
	}
}

// appendRecord encodes a record and appends it to dst, padded to word size.
func appendRecord(dst []byte, id uint8, data []byte) []byte {
	dst = append(dst, id, uint8(len(data)))
	dst = append(dst, data...)

	csum := crc8.Init(recCRC)
	csum = crc8.Update(csum, dst[len(dst)-len(data)-hdrSize:], recCRC)
	csum = crc8.Complete(csum, recCRC)
	dst = append(dst, csum)

	if len(dst)&1 != 0 {
		dst = append(dst, erased)
	}
	return dst
}

// recordSize returns the encoded size of a record with n payload bytes.
func recordSize(n int) int {
	return (hdrSize + n + 1 + 1) &^ 1
}

// findRecord scans the panel for the latest valid record with the given id.
func findRecord(panel []byte, id uint8) (data []byte, ok bool) {
	for off := 0; off+hdrSize < len(panel) && panel[off] != erased; {
		rid, n := panel[off], int(panel[off+1])
		size := recordSize(n)
		if off+size > len(panel) {
			break // torn write at the end of the panel
		}
		if rid == id && validRecord(panel[off:off+size], n) {
			data = panel[off+hdrSize : off+hdrSize+n]
			ok = true
		}
		off += size
	}
	return
}

// used returns the byte offset of the first erased word after the last
// record.
func used(panel []byte) int {
	off := 0
	for off+hdrSize < len(panel) && panel[off] != erased {
		size := recordSize(int(panel[off+1]))
		if off+size > len(panel) {
			return len(panel)
		}
		off += size
	}
	return off
}

func validRecord(rec []byte, n int) bool {
	csum := crc8.Init(recCRC)
	csum = crc8.Update(csum, rec[:hdrSize+n], recCRC)
	csum = crc8.Complete(csum, recCRC)
	return rec[hdrSize+n] == csum
}
