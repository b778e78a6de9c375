// Command tzinfo prints a snapshot of a timezone: current local time,
// offsets, abbreviation, ISO week number and the DST window, or the
// transitions of a chosen year. Zones are read from the system timezone
// database unless -file is given.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/nicolasbauw/go-tzfile/tzdb"
	"github.com/nicolasbauw/go-tzfile/tzinfo"
)

var (
	fileFlag = flag.Bool("file", false, "argument is a TZif file path instead of a zone name")
	yearFlag = flag.Int("year", 0, "print the transitions of this year instead of the snapshot")
	allFlag  = flag.Bool("all", false, "print every recorded transition instead of the snapshot")
	atFlag   = flag.String("at", "", "snapshot instant in RFC 3339 format (default: now)")
	jsonFlag = flag.Bool("json", false, "JSON output")
	yamlFlag = flag.Bool("yaml", false, "YAML output")
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
	if len(args) != 1 {
		return fmt.Errorf("Usage: tzinfo [flags] <zone name>")
	}

	zone, err := load(args[0])
	if err != nil {
		return err
	}

	switch {
	case *yearFlag != 0:
		tt, err := zone.TransitionsInYear(*yearFlag)
		if err != nil {
			return err
		}
		return emitTransitions(tt)
	case *allFlag:
		tt, err := zone.Transitions()
		if err != nil {
			return err
		}
		return emitTransitions(tt)
	}

	var info tzinfo.Info
	if *atFlag != "" {
		at, err := time.Parse(time.RFC3339, *atFlag)
		if err != nil {
			return fmt.Errorf("parsing -at: %w", err)
		}
		info, err = zone.InfoAt(at)
		if err != nil {
			return err
		}
	} else {
		info, err = zone.Info()
		if err != nil {
			return err
		}
	}
	return emitInfo(info)
}

func load(arg string) (*tzinfo.Zone, error) {
	if !*fileFlag {
		return tzdb.Load(arg)
	}
	b, err := os.ReadFile(arg)
	if err != nil {
		return nil, err
	}
	return tzinfo.Parse(zoneName(arg), b)
}

// zoneName derives a zone name like "Europe/Paris" from a file path,
// keeping the last directory unless it is the zoneinfo root itself.
func zoneName(path string) string {
	dir, file := filepath.Split(filepath.Clean(path))
	parent := filepath.Base(dir)
	if parent == "zoneinfo" || parent == "." || parent == string(filepath.Separator) {
		return file
	}
	return parent + "/" + file
}

func marshal(v any) error {
	if *jsonFlag {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}
	b, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Print(string(b))
	return nil
}

func emitInfo(info tzinfo.Info) error {
	if *jsonFlag || *yamlFlag {
		return marshal(info)
	}
	fmt.Println("timezone     =", info.Timezone)
	fmt.Println("utc datetime =", info.UTCDatetime.Format(time.RFC3339))
	fmt.Println("datetime     =", info.Datetime.Format(time.RFC3339))
	if info.DSTFrom != nil {
		fmt.Println("dst from     =", info.DSTFrom.Format(time.RFC3339))
	}
	if info.DSTUntil != nil {
		fmt.Println("dst until    =", info.DSTUntil.Format(time.RFC3339))
	}
	fmt.Println("dst period   =", info.DSTPeriod)
	fmt.Println("raw offset   =", info.RawOffset)
	if info.DSTOffset != nil {
		fmt.Println("dst offset   =", *info.DSTOffset)
	}
	fmt.Println("utc offset   =", info.UTCOffset)
	fmt.Println("abbreviation =", info.Abbreviation)
	fmt.Println("week number  =", info.WeekNumber)
	return nil
}

func emitTransitions(tt []tzinfo.TransitionTime) error {
	if *jsonFlag || *yamlFlag {
		return marshal(tt)
	}
	for _, t := range tt {
		fmt.Printf("%s utoff=%-6d dst=%-5v %s\n", t.Time.Format(time.RFC3339), t.Utoff, t.Dst, t.Abbreviation)
	}
	return nil
}
