package main

import (
	"os"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
