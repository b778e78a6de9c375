// Command tzdiff compares the decoded structure of two TZif files.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"github.com/nicolasbauw/go-tzfile/tzif"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	args := flag.Args()
	if len(args) != 2 {
		return fmt.Errorf("Usage: tzdiff <tzif file A> <tzif file B>")
	}

	af, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	bf, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}

	adata, err := tzif.Decode(af)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[0], err)
	}

	bdata, err := tzif.Decode(bf)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[1], err)
	}

	if diff := cmp.Diff(adata, bdata); diff != "" {
		fmt.Printf("files are different: %s %s\n", color.RedString("-A"), color.GreenString("+B"))
		fmt.Println(diff)
	} else {
		fmt.Println("files are identical")
	}

	return nil
}
