package main

import (
	"os"

	"github.com/archlens/archlens/cmd"
	"github.com/archlens/archlens/internal/iocache"
)

func main() {
	defer iocache.CloseCaching()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
