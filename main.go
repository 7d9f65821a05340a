package main

import (
	"os"

	"github.com/ziadkadry99/botdocs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
