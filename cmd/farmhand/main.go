package main

import (
	"os"

	"github.com/gorchard/farmhand/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
