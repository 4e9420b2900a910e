// Copyright 2024 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rom

import (
	"bufio"
	"debug/elf"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/aymanbagabas/go-pty"
	"github.com/buildkite/shellwords"
)

const usageString = `ELF to dsc33 firmware image converter.

Usage: %s [flags] <elffile>

`

var (
	flags = flag.NewFlagSet("rom", flag.ExitOnError)

	infile string
	format = flags.String("format", "hex", "hex")
	run    = flags.String("run", "", "Run the image with command")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "rom")
	flags.PrintDefaults()
}

func objcopy(dst *hexWriter, src *elf.File) error {
	sections := []*elf.Section{}
	for _, s := range src.Sections {
		if s.Type != elf.SHT_PROGBITS || s.Flags&elf.SHF_ALLOC == 0 {
			continue
		}
		sections = append(sections, s)
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Addr < sections[j].Addr
	})

	for _, s := range sections {
		data, err := s.Data()
		if err != nil {
			return err
		}
		if err := dst.write(uint32(s.Addr), data); err != nil {
			return err
		}
	}

	return dst.eof()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() == 1 {
		infile = flags.Arg(0)
	} else {
		flags.Usage()
		os.Exit(1)
	}

	if *format != "hex" {
		log.Fatalf("objcopy: %s format not supported", *format)
	}

	outfile, _ := strings.CutSuffix(infile, ".elf")
	outfile += "." + *format

	elffile, err := elf.Open(infile)
	if err != nil {
		log.Fatalln(err)
	}
	defer elffile.Close()

	out, err := os.Create(outfile)
	if err != nil {
		log.Fatalln(err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	err = objcopy(&hexWriter{w: w}, elffile)
	if err != nil {
		log.Fatalln("objcopy:", err)
	}
	if err := w.Flush(); err != nil {
		log.Fatalln(err)
	}

	if *run != "" {
		runImage(*run, outfile)
	}
}

// runImage starts the given simulator or flash-and-run command with the image
// appended as last argument, scanning its output for a test verdict. The
// command runs on a pty so line buffered tools behave as if interactive.
func runImage(cmdline, image string) {
	args, err := shellwords.Split(cmdline)
	if err != nil {
		log.Fatal("run: ", err)
	}
	args = append(args, image)

	ptmx, err := pty.New()
	if err != nil {
		log.Fatal("open pty: ", err)
	}
	defer ptmx.Close()

	cmd := ptmx.Command(args[0], args[1:]...)
	err = cmd.Start()
	if err != nil {
		log.Fatal("start command: ", err)
	}

	scanner := bufio.NewScanner(ptmx)
	exiting := false
	code := 0
	for scanner.Scan() {
		log.Println(scanner.Text())
		if exiting {
			continue
		}
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "fatal error:"), strings.HasPrefix(line, "panic:"):
			fallthrough
		case line == "FAIL":
			code = 1
			fallthrough
		case line == "PASS":
			exiting = true
			go func() {
				// give panic() time to print the stacktrace
				time.Sleep(500 * time.Millisecond)
				ptmx.Close()
			}()
		}
	}
	cmd.Wait()
	os.Exit(code)
}
