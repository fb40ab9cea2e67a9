package main

import (
	"os"

	"github.com/yifangd/check-json/internal/adapters/inbound/cli"
)

func main() {
	os.Exit(cli.Execute())
}
