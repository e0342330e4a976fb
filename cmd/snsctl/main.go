package main

import (
	"os"

	"github.com/raywall/fast-sns/cmd/snsctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
