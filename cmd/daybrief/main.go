package main

import (
	"fmt"
	"os"

	"github.com/mwhite/daybrief/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "daybrief: %v\n", err)
		os.Exit(1)
	}
}
