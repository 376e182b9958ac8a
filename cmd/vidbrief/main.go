package main

import (
	"os"

	"github.com/mkotlyar/vidbrief/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
