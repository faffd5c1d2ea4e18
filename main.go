package main

import (
	"os"

	"github.com/hephbuild/starconsole/internal/cmd"
)

func main() {
	code := cmd.Execute()

	os.Exit(code)
}
