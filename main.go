package main

import (
	"os"

	"github.com/shandysiswandi/tableview/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
