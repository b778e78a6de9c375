// Command tzinspect dumps the raw decoded structure of a TZif file and
// reports structural validation findings.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nicolasbauw/go-tzfile/tzif"
)

var printV1Flag = flag.Bool("v1", false, "Always print v1 header and data")

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: tzinspect <tzif file>")
		os.Exit(1)
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Println("reading file:", err)
		os.Exit(1)
	}

	data, err := tzif.Decode(b)
	if err != nil {
		fmt.Println("decoding:", err)
		os.Exit(1)
	}

	fmt.Println("Version:", data.Version)
	fmt.Println()
	if data.Version == tzif.V1 || *printV1Flag {
		printBlock(data.V1Header, data.V1Data)
	}
	if data.Version > tzif.V1 {
		printBlock(data.V2Header, data.V2Data)
		printFooter(data.V2Footer)
	}

	if err := tzif.Validate(data); err != nil {
		fmt.Println("validation:")
		fmt.Println(err)
		os.Exit(1)
	}
}

func printHeader(h tzif.Header) {
	fmt.Println("Header")
	fmt.Println("  version  =", h.Version)
	fmt.Println("  isutcnt  =", h.Isutcnt)
	fmt.Println("  isstdcnt =", h.Isstdcnt)
	fmt.Println("  leapcnt  =", h.Leapcnt)
	fmt.Println("  timecnt  =", h.Timecnt)
	fmt.Println("  typecnt  =", h.Typecnt)
	fmt.Println("  charcnt  =", h.Charcnt)
	fmt.Println()
}

func printBlock(h tzif.Header, b tzif.DataBlock) {
	printHeader(h)

	fmt.Println("Data block", h.Version)
	fmt.Printf("  TransitionTimes (%d) = %v\n", len(b.TransitionTimes), b.TransitionTimes)
	fmt.Printf("  TransitionTypes (%d) = %v\n", len(b.TransitionTypes), b.TransitionTypes)
	fmt.Printf("  LocalTimeTypes (%d) = %+v\n", len(b.LocalTimeTypes), b.LocalTimeTypes)
	fmt.Printf("  Designations (%d) = %v\n", len(b.Designations), strings.Split(string(b.Designations), "\x00"))
	fmt.Printf("  LeapSecondRecords (%d) = %+v\n", len(b.LeapSecondRecords), b.LeapSecondRecords)
	fmt.Printf("  StandardWallIndicators (%d) = %v\n", len(b.StandardWallIndicators), b.StandardWallIndicators)
	fmt.Printf("  UTLocalIndicators (%d) = %v\n", len(b.UTLocalIndicators), b.UTLocalIndicators)
	fmt.Println()
}

func printFooter(f tzif.Footer) {
	fmt.Println("Footer")
	fmt.Println("  TZString =", string(f.TZString))
	fmt.Println()
}
