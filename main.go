package main

import (
	"os"

	"github.com/codescope-dev/codescope/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
