// Package main implements the igvq CLI.
// It provides commands for listing, inspecting and exporting compiler IR
// graphs from IGV XML dumps.
package main

import (
	"os"

	"github.com/l3aro/igv-query/cmd/igvq/commands"
)

var version = "dev"

func main() {
	commands.RootCmd.Version = version
	commands.RootCmd.SetVersionTemplate(`igvq version {{.Version}}
`)

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
