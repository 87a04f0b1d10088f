package main

import (
	"os"

	"github.com/Petkomat/srt-manipulator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
