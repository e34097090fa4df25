package main

import (
	"gig-calendar/cmd"

	// Fallback IANA timezone database for hosts without tzdata installed.
	// Venue-local parsing must not degrade to UTC on a bare container.
	_ "time/tzdata"
)

func main() {
	cmd.Execute()
}
