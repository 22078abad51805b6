package main

import (
	"os"

	"github.com/voltms/voltconsole/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
