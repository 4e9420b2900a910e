package machine

var trapNames = [8]string{
	0: "Reserved",
	1: "Oscillator Failure",
	2: "Address Error",
	3: "Stack Error",
	4: "Math Error",
	5: "DMAC Error",
}

// Trap reports a hard trap via the failsafe writer. Called by the runtime's
// trap vectors, which can't recover; the watchdog or the user resets.
//
//go:nosplit
func Trap(num uint16, pc uint32) {
	var buf [8]byte
	DefaultWrite(0, []byte("Unhandled "))
	DefaultWrite(0, []byte(trapNames[num&7]))
	DefaultWrite(0, []byte(" Trap"))

	DefaultWrite(0, []byte("\npc  0x"))
	DefaultWrite(0, itoa(buf[:], pc))
	DefaultWrite(0, []byte("\nrcon 0x"))
	DefaultWrite(0, itoa(buf[:4], uint32(Reset())))
	DefaultWrite(0, []byte("\n"))
}

//go:nosplit
func itoa(buf []byte, num uint32) []byte {
	digits := len(buf)
	for i := range digits {
		char := byte(num>>((digits-1-i)*4)) & 0xf
		if char > 9 {
			char += 'a' - 10
		} else {
			char += '0'
		}
		buf[i] = char
	}
	return buf
}
