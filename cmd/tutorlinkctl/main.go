package main

import (
	"os"

	"github.com/tutorlink/tutorlink-api/cmd/tutorlinkctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
