// Package main is the entry point for the archmap CLI tool.
package main

import (
	"github.com/hargabyte/archmap/internal/cmd"
)

func main() {
	cmd.Execute()
}
