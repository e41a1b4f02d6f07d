package main

import (
	"os"

	"github.com/ycl-tw/attention-monitor/cmd/attention/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
