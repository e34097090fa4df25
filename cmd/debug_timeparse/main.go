package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"gig-calendar/core/config"
	"gig-calendar/core/timeparse"

	_ "time/tzdata"
)

// Feeds raw scraped time strings through the normalizer, printing the
// UTC instant and the wall clock it came from. Handy when a venue's
// listings stop parsing.
//
// Usage: go run ./cmd/debug_timeparse "March 14, 2026 8:00 PM" 2026-03-14
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_timeparse <raw time> [<raw time> ...]")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	loc, err := time.LoadLocation(cfg.Reconcile.TargetTimezone)
	if err != nil {
		log.Fatal(err)
	}

	n := timeparse.New(cfg.Reconcile.DefaultEventHour)
	fmt.Printf("Zone: %s, default hour: %d\n\n", loc, cfg.Reconcile.DefaultEventHour)

	for _, raw := range os.Args[1:] {
		parsed, err := n.NormalizeIn(raw, loc)
		if err != nil {
			fmt.Printf("%q\n  -> ERROR: %v\n", raw, err)
			continue
		}
		fmt.Printf("%q\n  -> %s (wall clock %s)\n",
			raw,
			parsed.Format(time.RFC3339),
			parsed.In(loc).Format("2006-01-02 15:04 MST"))
	}
}
