// Command budalloc runs an interactive REPL against a single
// buddy allocator backed by one mmap'd arena, sized from the command
// line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/bits"
	"os"
	"strconv"
	"strings"
	"unsafe"

	"github.com/2f30/budalloc/arena"
	"github.com/2f30/budalloc/buddy"
)

var minBlock = flag.Int("min-block", 16, "smallest block size in bytes")

func usage() {
	fmt.Fprintf(os.Stderr, "usage: budalloc [-min-block n] bytenumber\n")
}

func main() {
	log.SetFlags(log.Lmicroseconds | log.Lshortfile)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}

	size, err := strconv.ParseInt(flag.Arg(0), 10, 64)
	if err != nil || size <= 0 {
		log.Fatalf("invalid arena size %q", flag.Arg(0))
	}

	a, err := arena.New(int(size))
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	levels := autoLevels(a.Len(), *minBlock)
	alloc := buddy.New(a.Bytes(), levels)
	defer alloc.Close()

	cells := int64(1)<<uint(levels) - 1
	fmt.Printf("compiled for %d levels which provides %d allocation cells\n", levels, cells)

	repl(alloc)
}

// autoLevels picks the number of halving levels so that the smallest
// block is at least minBlock bytes, never fewer than one level.
func autoLevels(arenaSize, minBlock int) int {
	if minBlock < 1 {
		minBlock = 1
	}
	levels := bits.Len(uint(arenaSize/minBlock))
	if levels < 1 {
		levels = 1
	}
	return levels
}

func repl(a *buddy.Allocator) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(">")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}

		switch line[0] {
		case 'Q':
			return
		case 'A':
			fmt.Println("how many?")
			fmt.Print(">")
			if !scanner.Scan() {
				return
			}
			n, err := strconv.Atoi(scanner.Text())
			if err != nil {
				fmt.Println("not a number")
				continue
			}
			fmt.Printf("Alloc @ %p\n", a.Allocate(n))
		case 'F':
			fmt.Println("which addr?")
			fmt.Print(">")
			if !scanner.Scan() {
				return
			}
			ptr, err := parseAddr(a.Base(), scanner.Text())
			if err != nil {
				fmt.Println("not an address")
				continue
			}
			a.Free(ptr)
		case 'P':
			fmt.Print(a.Inspect())
			fmt.Printf("inuse=%d unused=%d requested=%d\n", a.InUse(), a.Unused(), a.Requested())
		default:
			fmt.Println("Q to quit, A to allocate, F to free, P to print")
		}
	}
}

// parseAddr reads either a hex pointer (0x-prefixed, as printed by the A
// command) or a plain decimal offset relative to base, mirroring the
// original REPL's "%p" scan while also accepting the lighter-weight
// offset form.
func parseAddr(base uintptr, text string) (unsafe.Pointer, error) {
	text = strings.TrimSpace(text)
	if rest, ok := trimHexPrefix(text); ok {
		v, err := strconv.ParseUint(rest, 16, 64)
		if err != nil {
			return nil, err
		}
		return unsafe.Pointer(uintptr(v)), nil
	}
	off, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, err
	}
	return unsafe.Pointer(base + uintptr(off)), nil
}

func trimHexPrefix(text string) (string, bool) {
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		return text[2:], true
	}
	return "", false
}
