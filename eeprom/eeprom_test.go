package eeprom

import (
	"bytes"
	"testing"
)

func freshPanel(n int) []byte {
	return bytes.Repeat([]byte{erased}, n)
}

func put(panel []byte, id uint8, data []byte) []byte {
	rec := appendRecord(nil, id, data)
	copy(panel[used(panel):], rec)
	return panel
}

func TestRecordRoundTrip(t *testing.T) {
	panel := freshPanel(128)
	put(panel, 1, []byte("calibration"))

	got, ok := findRecord(panel, 1)
	if !ok || !bytes.Equal(got, []byte("calibration")) {
		t.Errorf("got %q, %v", got, ok)
	}
	if _, ok := findRecord(panel, 2); ok {
		t.Error("found a record that was never written")
	}
}

func TestLatestRecordWins(t *testing.T) {
	panel := freshPanel(128)
	put(panel, 7, []byte("old"))
	put(panel, 3, []byte("other"))
	put(panel, 7, []byte("new"))

	got, ok := findRecord(panel, 7)
	if !ok || !bytes.Equal(got, []byte("new")) {
		t.Errorf("got %q, %v", got, ok)
	}
	got, ok = findRecord(panel, 3)
	if !ok || !bytes.Equal(got, []byte("other")) {
		t.Errorf("got %q, %v", got, ok)
	}
}

func TestGetShortBuffer(t *testing.T) {
	s := &Store{freshPanel(128)}
	put(s.panel, 1, []byte("calibration"))

	dst := make([]byte, 5)
	n, err := s.Get(1, dst)
	if err != nil {
		t.Fatal(err)
	}
	if n != len("calibration") {
		t.Errorf("got length %v, want the full record length %v", n, len("calibration"))
	}
	if !bytes.Equal(dst, []byte("calib")) {
		t.Errorf("got %q, want the record's prefix", dst)
	}
}

func TestCorruptRecordSkipped(t *testing.T) {
	panel := freshPanel(128)
	put(panel, 7, []byte("good"))
	end := used(panel)
	put(panel, 7, []byte("bad!"))
	panel[end+hdrSize] ^= 0xff // flip a payload byte, breaking the CRC

	got, ok := findRecord(panel, 7)
	if !ok || !bytes.Equal(got, []byte("good")) {
		t.Errorf("got %q, %v", got, ok)
	}
}

func TestTornWriteIgnored(t *testing.T) {
	panel := freshPanel(32)
	put(panel, 1, []byte("ok"))
	end := used(panel)
	// A write that died after the header: length points past the panel.
	panel[end], panel[end+1] = 2, 200

	if _, ok := findRecord(panel, 2); ok {
		t.Error("found a torn record")
	}
	if _, ok := findRecord(panel, 1); !ok {
		t.Error("torn tail hid a valid record")
	}
}

func TestRecordSizeEven(t *testing.T) {
	for n := 0; n <= MaxData; n++ {
		size := recordSize(n)
		if size&1 != 0 {
			t.Fatalf("odd record size %v for %v payload bytes", size, n)
		}
		if got := len(appendRecord(nil, 1, make([]byte, n))); got != size {
			t.Fatalf("encoded %v bytes, recordSize says %v", got, size)
		}
	}
}
