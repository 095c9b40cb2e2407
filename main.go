package main

import (
	"log"

	"github.com/helpdesk-tools/incident-tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
