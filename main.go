package main

import (
	"os"

	"github.com/adube/examterm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
