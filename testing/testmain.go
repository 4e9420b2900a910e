// Package testing provides utilities for writing dsc33 specific tests.
package testing

import (
	"os"
	"syscall"
	"testing"

	"embedded/rtos"

	_ "github.com/clktmr/dsc33/machine"
	"github.com/clktmr/dsc33/uart"

	"github.com/embeddedgo/fs/termfs"
)

const consoleBaud = 115200

// TestMain should be used as TestMain for dsc33 specific tests. It mounts a
// console on UART1 and redirects the test output there.
func TestMain(m *testing.M) {
	var err error

	u := uart.UART1
	u.Init(consoleBaud)

	fs := termfs.NewLight("termfs", u, u)
	rtos.Mount(fs, "/dev/console")
	os.Stdout, err = os.OpenFile("/dev/console", syscall.O_WRONLY, 0)
	if err != nil {
		panic(err)
	}
	os.Stderr = os.Stdout

	// TODO find a way to pass these from the 'go test' command
	os.Args = append(os.Args, "-test.v")

	os.Exit(m.Run())
}
